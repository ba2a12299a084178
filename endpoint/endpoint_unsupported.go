//go:build !unix

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

package endpoint

import (
	"io/fs"
	"net"
)

// Supported reports that this platform lacks the Unix-domain-socket
// transport the daemon subsystem requires. A future named-pipe transport
// is expected to slot in here without touching any higher layer.
const Supported = false

func isOwnedByCurrentUser(info fs.FileInfo) (bool, error) {
	return false, ErrUnsupportedPlatform
}

// Listen always fails: see Supported.
func Listen(addr string) (net.Listener, error) {
	return nil, ErrUnsupportedPlatform
}

// Dial always fails: see Supported.
func Dial(addr string) (net.Conn, error) {
	return nil, ErrUnsupportedPlatform
}

// PeerCredentials always fails: see Supported.
func PeerCredentials(conn net.Conn) (uid int, err error) {
	return 0, ErrUnsupportedPlatform
}
