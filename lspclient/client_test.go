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

package lspclient

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/rpc"
)

// TestHelperProcess is not a real test. go test builds the test binary as
// an ordinary executable, so re-execing it with GO_WANT_HELPER_PROCESS set
// and -test.run pinned to this function turns it into a disposable fake
// analyzer speaking the same framed JSON-RPC codec as a real LSP server —
// the same re-exec trick os/exec's own tests use to fake a subprocess
// without shipping a second binary.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	runFakeAnalyzer()
}

func runFakeAnalyzer() {
	conn := rpc.NewConn(context.Background(), pipeRWC{WriteCloser: os.Stdout, ReadCloser: os.Stdin}, fakeAnalyzerHandler{})
	<-conn.DisconnectNotify()
	os.Exit(0)
}

type fakeAnalyzerHandler struct{}

func (fakeAnalyzerHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "initialize":
		_ = conn.Reply(ctx, req.ID, map[string]any{"capabilities": map[string]any{}})
	case "initialized":
		// notification, no reply
	case "textDocument/hover":
		_ = conn.Reply(ctx, req.ID, map[string]any{"contents": "fake hover text"})
	case "textDocument/definition":
		_ = conn.Reply(ctx, req.ID, []map[string]any{
			{
				"uri": "file:///ws/other.go",
				"range": map[string]any{
					"start": map[string]any{"line": 0, "character": 0},
					"end":   map[string]any{"line": 0, "character": 5},
				},
			},
		})
	case "workspace/symbol":
		_ = conn.Reply(ctx, req.ID, []map[string]any{{"name": "Widget", "kind": 5}})
	case "shutdown":
		_ = conn.Reply(ctx, req.ID, nil)
	case "exit":
		os.Exit(0)
	default:
		if !req.Notif {
			_ = conn.Reply(ctx, req.ID, nil)
		}
	}
}

func fakeAnalyzerEntry() AnalyzerEntry {
	return AnalyzerEntry{
		Invocation: Invocation{
			Command: os.Args[0],
			Args:    []string{"-test.run=TestHelperProcess"},
		},
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	os.Setenv("GO_WANT_HELPER_PROCESS", "1")
	t.Cleanup(func() { os.Unsetenv("GO_WANT_HELPER_PROCESS") })

	fs := platform.NewMapFS(map[string]string{"main.go": "package main\n"})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := New(ctx, ".", "go", fakeAnalyzerEntry(), fs)
	require.NoError(t, err)
	t.Cleanup(func() { client.Shutdown(context.Background()) })
	return client
}

func TestNew_PerformsHandshake(t *testing.T) {
	client := newTestClient(t)
	assert.Equal(t, "go", client.Language)
	assert.True(t, client.Alive())
}

func TestClient_Hover(t *testing.T) {
	client := newTestClient(t)
	hover, err := client.Hover(context.Background(), "main.go", Position{Line: 0, Character: 0})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Equal(t, "fake hover text", hover.Contents)
}

func TestClient_Definition(t *testing.T) {
	client := newTestClient(t)
	locations, err := client.Definition(context.Background(), "main.go", Position{Line: 0, Character: 0})
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "file:///ws/other.go", locations[0].URI)
}

func TestClient_WorkspaceSymbols(t *testing.T) {
	client := newTestClient(t)
	symbols, err := client.WorkspaceSymbols(context.Background(), "Widget")
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "Widget", symbols[0].Name)
}

func TestClient_EnsureOpenIsIdempotent(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.ensureOpen(ctx, "main.go"))
	require.NoError(t, client.ensureOpen(ctx, "main.go"))
	assert.True(t, client.openDocs.Has(pathToURI("main.go")))
}

func TestClient_EnsureOpenMissingFile(t *testing.T) {
	client := newTestClient(t)
	err := client.ensureOpen(context.Background(), "missing.go")
	require.Error(t, err)
}

func TestClient_PendingCountReturnsToZeroAfterCall(t *testing.T) {
	client := newTestClient(t)
	_, err := client.WorkspaceSymbols(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, 0, client.PendingCount())
}

func TestClient_ShutdownMakesItNotAlive(t *testing.T) {
	client := newTestClient(t)
	client.Shutdown(context.Background())
	assert.False(t, client.Alive())
}

func TestNew_FailsWhenBinaryDoesNotExist(t *testing.T) {
	fs := platform.NewMapFS(map[string]string{"main.go": "package main\n"})
	entry := AnalyzerEntry{Invocation: Invocation{Command: "no-such-analyzer-binary-xyz"}}

	_, err := New(context.Background(), ".", "go", entry, fs)
	assert.Error(t, err)
}
