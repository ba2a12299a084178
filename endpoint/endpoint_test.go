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

package endpoint_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspkeep/lspkeep/endpoint"
)

func TestAddress_IncludesProductTagAndUID(t *testing.T) {
	addr, err := endpoint.Address()
	require.NoError(t, err)
	assert.Contains(t, filepath.Base(addr), endpoint.ProductTag)
	assert.Contains(t, filepath.Base(addr), fmt.Sprintf("%d", os.Getuid()))
	assert.Equal(t, ".sock", filepath.Ext(addr))
}

func TestCheckOwnership_AbsentPath(t *testing.T) {
	dir := t.TempDir()
	exists, owned, err := endpoint.CheckOwnership(filepath.Join(dir, "nope.sock"))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.False(t, owned)
}

func TestCheckOwnership_OwnedByCurrentUser(t *testing.T) {
	if !endpoint.Supported {
		t.Skip("unix-domain sockets unsupported on this platform")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "owned.sock")
	lis, err := endpoint.Listen(path)
	require.NoError(t, err)
	defer lis.Close()

	exists, owned, err := endpoint.CheckOwnership(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, owned)
}

func TestReclaimStale_RemovesFileAndToleratesAbsence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stale.sock")
	require.NoError(t, os.WriteFile(path, []byte{}, 0600))

	require.NoError(t, endpoint.ReclaimStale(path))
	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err))

	// Reclaiming an already-gone path is not an error.
	assert.NoError(t, endpoint.ReclaimStale(path))
}

func TestListenAndDial_Unix(t *testing.T) {
	if !endpoint.Supported {
		t.Skip("unix-domain sockets unsupported on this platform")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "rt.sock")

	lis, err := endpoint.Listen(path)
	require.NoError(t, err)
	defer lis.Close()

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	accepted := make(chan error, 1)
	go func() {
		conn, err := lis.Accept()
		if err == nil {
			conn.Close()
		}
		accepted <- err
	}()

	conn, err := endpoint.Dial(path)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, <-accepted)
}

func TestPeerCredentials_ReportsOwnUID(t *testing.T) {
	if !endpoint.Supported {
		t.Skip("unix-domain sockets unsupported on this platform")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "cred.sock")

	lis, err := endpoint.Listen(path)
	require.NoError(t, err)
	defer lis.Close()

	serverConns := make(chan interface{ Close() error }, 1)
	go func() {
		conn, err := lis.Accept()
		if err == nil {
			serverConns <- conn
		}
	}()

	client, err := endpoint.Dial(path)
	require.NoError(t, err)
	defer client.Close()

	serverConn := <-serverConns
	defer serverConn.Close()

	uid, err := endpoint.PeerCredentials(client)
	require.NoError(t, err)
	assert.Equal(t, os.Getuid(), uid)
}
