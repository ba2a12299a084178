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

package methods_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspkeep/lspkeep/daemon/methods"
	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/lspclient"
	"github.com/lspkeep/lspkeep/lsppool"
)

func newTestContext(t *testing.T) *methods.Context {
	t.Helper()
	registry, err := lspclient.NewRegistry("", nil)
	require.NoError(t, err)
	fs := platform.NewMapFS(map[string]string{
		"ws/main.go": "package main\n",
	})
	clock := platform.NewMockTimeProvider(time.Now())
	pool := lsppool.New(registry, fs, clock)
	return &methods.Context{
		Pool:      pool,
		FS:        fs,
		Clock:     clock,
		StartTime: clock.Now(),
	}
}

func asJSONErr(t *testing.T, err error) *jsonrpc2.Error {
	t.Helper()
	jerr, ok := err.(*jsonrpc2.Error)
	require.True(t, ok, "expected *jsonrpc2.Error, got %T", err)
	return jerr
}

func TestPing_ReportsRunningStatus(t *testing.T) {
	dctx := newTestContext(t)
	result, err := methods.Ping(context.Background(), dctx, nil)
	require.NoError(t, err)

	ping, ok := result.(methods.PingResult)
	require.True(t, ok)
	assert.Equal(t, "running", ping.Status)
	assert.Equal(t, 0, ping.ActiveWorkspaces)
	assert.Empty(t, ping.Workspaces)
}

func TestPing_VerboseIncludesWorkspaces(t *testing.T) {
	dctx := newTestContext(t)
	raw, err := json.Marshal(map[string]any{"verbose": true})
	require.NoError(t, err)

	result, err := methods.Ping(context.Background(), dctx, raw)
	require.NoError(t, err)

	ping, ok := result.(methods.PingResult)
	require.True(t, ok)
	assert.NotNil(t, ping.Workspaces)
}

func TestShutdown_AcknowledgesAndSignalsCallback(t *testing.T) {
	dctx := newTestContext(t)
	called := false
	dctx.ShutdownRequested = func() { called = true }

	result, err := methods.Shutdown(context.Background(), dctx, nil)
	require.NoError(t, err)

	res, ok := result.(methods.ShutdownResult)
	require.True(t, ok)
	assert.True(t, res.Acknowledged)
	assert.True(t, called)
}

func TestHover_RejectsMissingWorkspace(t *testing.T) {
	dctx := newTestContext(t)
	_, err := methods.Hover(context.Background(), dctx, json.RawMessage(`{"file":"a.go","line":1,"column":2}`))
	require.Error(t, err)
	assert.Equal(t, int64(-32600), asJSONErr(t, err).Code)
}

func TestHover_RejectsUnknownWorkspace(t *testing.T) {
	dctx := newTestContext(t)
	raw, _ := json.Marshal(map[string]any{
		"workspace": "no/such/workspace",
		"file":      "a.go",
		"line":      1,
		"column":    2,
	})
	_, err := methods.Hover(context.Background(), dctx, raw)
	require.Error(t, err)
	assert.Equal(t, int64(-32002), asJSONErr(t, err).Code)
}

func TestDefinition_RejectsMissingFile(t *testing.T) {
	dctx := newTestContext(t)
	_, err := methods.Definition(context.Background(), dctx, json.RawMessage(`{"workspace":"ws"}`))
	require.Error(t, err)
	assert.Equal(t, int64(-32600), asJSONErr(t, err).Code)
}

func TestReferences_RejectsMissingWorkspace(t *testing.T) {
	dctx := newTestContext(t)
	_, err := methods.References(context.Background(), dctx, json.RawMessage(`{"file":"a.go"}`))
	require.Error(t, err)
	assert.Equal(t, int64(-32600), asJSONErr(t, err).Code)
}

func TestWorkspaceSymbols_RejectsMissingWorkspace(t *testing.T) {
	dctx := newTestContext(t)
	_, err := methods.WorkspaceSymbols(context.Background(), dctx, json.RawMessage(`{"query":"Foo"}`))
	require.Error(t, err)
	assert.Equal(t, int64(-32600), asJSONErr(t, err).Code)
}

func TestDocumentSymbols_RejectsMissingFile(t *testing.T) {
	dctx := newTestContext(t)
	_, err := methods.DocumentSymbols(context.Background(), dctx, json.RawMessage(`{"workspace":"ws"}`))
	require.Error(t, err)
	assert.Equal(t, int64(-32600), asJSONErr(t, err).Code)
}

func TestDecodeParams_RejectsMalformedJSON(t *testing.T) {
	dctx := newTestContext(t)
	_, err := methods.Hover(context.Background(), dctx, json.RawMessage(`not json`))
	require.Error(t, err)
	assert.Equal(t, int64(-32600), asJSONErr(t, err).Code)
}
