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

package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspkeep/lspkeep/endpoint"
	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/lspclient"
	"github.com/lspkeep/lspkeep/lsppool"
	"github.com/lspkeep/lspkeep/rpc"
)

func newTestDaemon(t *testing.T, cfg Config) *Daemon {
	t.Helper()
	registry, err := lspclient.NewRegistry("", nil)
	require.NoError(t, err)
	fs := platform.NewMapFS(map[string]string{"ws/main.go": "package main\n"})
	clock := platform.NewMockTimeProvider(time.Now())
	pool := lsppool.New(registry, fs, clock)
	return New(cfg, pool, clock)
}

func TestBind_FreshAddress(t *testing.T) {
	if !endpoint.Supported {
		t.Skip("unix-domain sockets unsupported on this platform")
	}
	d := newTestDaemon(t, Config{})
	addr := filepath.Join(t.TempDir(), "fresh.sock")

	lis, err := d.bind(addr)
	require.NoError(t, err)
	defer lis.Close()
}

func TestBind_ReclaimsStaleOwnedSocket(t *testing.T) {
	if !endpoint.Supported {
		t.Skip("unix-domain sockets unsupported on this platform")
	}
	d := newTestDaemon(t, Config{})
	addr := filepath.Join(t.TempDir(), "stale.sock")
	require.NoError(t, os.WriteFile(addr, []byte{}, 0600))

	lis, err := d.bind(addr)
	require.NoError(t, err)
	defer lis.Close()
}

func TestRun_ShutsDownOnExplicitShutdownRPC(t *testing.T) {
	if !endpoint.Supported {
		t.Skip("unix-domain sockets unsupported on this platform")
	}
	d := newTestDaemon(t, Config{IdleTimeout: time.Hour, RequestTimeout: time.Second})
	addr := filepath.Join(t.TempDir(), "run.sock")

	runErr := make(chan error, 1)
	go func() { runErr <- d.Run(context.Background(), addr) }()

	require.Eventually(t, func() bool {
		_, owned, _ := endpoint.CheckOwnership(addr)
		return owned
	}, time.Second, 5*time.Millisecond)

	conn, err := endpoint.Dial(addr)
	require.NoError(t, err)
	client := rpc.NewConn(context.Background(), conn, rpc.DiscardHandler{})

	var result map[string]any
	require.NoError(t, client.Call(context.Background(), "shutdown", nil, &result))

	select {
	case err := <-runErr:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("daemon did not shut down after shutdown RPC")
	}
}

func TestFatal_TriggersShutdownChan(t *testing.T) {
	d := newTestDaemon(t, Config{})
	d.Fatal(assert.AnError)

	select {
	case <-d.shutdownChan:
	case <-time.After(5 * time.Second):
		t.Fatal("expected Fatal to close shutdownChan")
	}
}
