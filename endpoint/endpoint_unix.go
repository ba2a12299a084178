//go:build unix

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
	"fmt"
	"io/fs"
	"net"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// Supported reports that this platform has Unix-domain stream sockets.
const Supported = true

func isOwnedByCurrentUser(info fs.FileInfo) (bool, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return false, fmt.Errorf("endpoint: unexpected file info type for %s", info.Name())
	}
	return int(stat.Uid) == os.Getuid(), nil
}

// Listen binds a Unix-domain stream socket at addr and chmods it to
// owner-only (mode 0600).
func Listen(addr string) (net.Listener, error) {
	lis, err := net.Listen("unix", addr)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(addr, 0600); err != nil {
		lis.Close()
		return nil, fmt.Errorf("chmod endpoint %s: %w", addr, err)
	}
	return lis, nil
}

// Dial connects to a Unix-domain stream socket at addr.
func Dial(addr string) (net.Conn, error) {
	return net.Dial("unix", addr)
}

// PeerCredentials reads SO_PEERCRED on conn as a second, belt-and-suspenders
// ownership check alongside the filesystem mode/owner check: even if the
// socket file's permissions were somehow loosened after bind, a peer
// connecting with a different uid is rejected here too.
func PeerCredentials(conn net.Conn) (uid int, err error) {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return 0, fmt.Errorf("endpoint: not a unix socket connection")
	}
	raw, err := unixConn.SyscallConn()
	if err != nil {
		return 0, err
	}
	var cred *unix.Ucred
	var credErr error
	err = raw.Control(func(fd uintptr) {
		cred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil {
		return 0, err
	}
	if credErr != nil {
		return 0, credErr
	}
	return int(cred.Uid), nil
}
