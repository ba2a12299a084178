/*
Copyright © 2025 Benny Powers <web@bennypowers.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package endpoint computes and guards the per-user local-socket address
// the daemon binds and the CLI connects to.
package endpoint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// ProductTag names this daemon in the endpoint filename, distinguishing it
// from any other per-user daemon sharing the same runtime directory.
const ProductTag = "lspkeep"

// ErrUnsupportedPlatform is returned by Address on platforms with no
// per-user runtime directory concept and no Unix-domain-socket support —
// the daemon subsystem is disabled entirely there.
var ErrUnsupportedPlatform = errors.New("lspkeep: daemon transport unsupported on this platform")

// Address computes the endpoint path: <runtime-dir>/<product-tag>-<uid>.sock.
// xdg.RuntimeDir already implements the fallback to a temp directory when
// $XDG_RUNTIME_DIR is unset.
func Address() (string, error) {
	uid := os.Getuid()
	name := fmt.Sprintf("%s-%d.sock", ProductTag, uid)
	return filepath.Join(xdg.RuntimeDir, name), nil
}

// CheckOwnership rejects a pre-existing path at addr whose owner or mode
// does not match the current process's: ownedByMe is true only when the
// path belongs to the current user and grants no group or other
// permissions. Returns (exists, ownedByMe, err).
func CheckOwnership(addr string) (exists bool, ownedByMe bool, err error) {
	info, statErr := os.Lstat(addr)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return false, false, nil
		}
		return false, false, statErr
	}
	owned, err := isOwnedByCurrentUser(info)
	if err != nil {
		return true, false, err
	}
	return true, owned && info.Mode().Perm()&0o077 == 0, nil
}

// ReclaimStale unlinks addr. Callers must have already established (via
// CheckOwnership and a failed connect attempt) that the path is both owned
// by the current user and has no live peer.
func ReclaimStale(addr string) error {
	err := os.Remove(addr)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reclaim stale endpoint %s: %w", addr, err)
	}
	return nil
}
