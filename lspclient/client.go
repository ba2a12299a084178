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

// Package lspclient is the per-workspace LSP client: one spawned analyzer,
// one framed-message connection over its stdio, one pending-request table,
// and the open-document bookkeeping a warm LSP child needs.
package lspclient

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/rpc"
	"github.com/lspkeep/lspkeep/set"
)

// pipeRWC adapts a child's separate stdin/stdout pipes to the single
// io.ReadWriteCloser the jsonrpc2 codec wants.
type pipeRWC struct {
	io.WriteCloser
	io.ReadCloser
}

func (p pipeRWC) Close() error {
	werr := p.WriteCloser.Close()
	rerr := p.ReadCloser.Close()
	if werr != nil {
		return werr
	}
	return rerr
}

// Client is one warm LSP connection, shared by every in-flight handler for
// its workspace. The jsonrpc2.Conn it wraps is itself the pending-request
// table and the single-writer serialization point the child's stdin pipe
// requires:
// Call() installs a slot before writing, the connection's own read loop
// demultiplexes responses by id, and a response for an id nobody is
// waiting on anymore (because its dispatcher timeout already fired) is
// silently dropped by the library — exactly the "orphaned, discarded"
// behaviour. pendingMu only guards the diagnostics counter
// surfaced through `ping --verbose`, not request correlation itself.
type Client struct {
	Workspace string
	Language  string

	conn  *jsonrpc2.Conn
	child *childProcess

	pendingMu deadlock.Mutex
	pending   int

	openDocsMu deadlock.Mutex
	openDocs   set.Set[string]

	fs platform.FileSystem
}

// New spawns the analyzer for language (falling back per entry if the
// primary invocation fails to start), performs the LSP initialize/
// initialized handshake against workspace, and returns a ready client. The
// LSP client pool calls this only once per workspace, holding its
// singleflight key until this returns.
func New(ctx context.Context, workspace, language string, entry AnalyzerEntry, fs platform.FileSystem) (*Client, error) {
	child, err := spawnWithFallback(entry, workspace)
	if err != nil {
		return nil, rpc.LSPChildUnavailable(fmt.Sprintf("spawn %s: %v", entry.Invocation.Command, err))
	}

	rwc := pipeRWC{WriteCloser: child.stdin, ReadCloser: child.stdout}
	conn := rpc.NewConn(context.Background(), rwc, rpc.DiscardHandler{})

	c := &Client{
		Workspace: workspace,
		Language:  language,
		conn:      conn,
		child:     child,
		openDocs:  set.NewSet[string](),
		fs:        fs,
	}

	if err := c.handshake(ctx, workspace); err != nil {
		c.conn.Close()
		child.Kill()
		return nil, err
	}
	return c, nil
}

func (c *Client) handshake(ctx context.Context, workspace string) error {
	params := map[string]any{
		"processId": os.Getpid(),
		"rootUri":   pathToURI(workspace),
		"capabilities": map[string]any{
			"textDocument": map[string]any{
				"hover":           map[string]any{"dynamicRegistration": false},
				"definition":      map[string]any{"dynamicRegistration": false},
				"references":      map[string]any{"dynamicRegistration": false},
				"documentSymbol": map[string]any{
					"dynamicRegistration":               false,
					"hierarchicalDocumentSymbolSupport": true,
				},
			},
			"workspace": map[string]any{
				"symbol": map[string]any{"dynamicRegistration": false},
			},
		},
	}

	var result any
	if err := c.call(ctx, "initialize", params, &result); err != nil {
		return rpc.LSPChildUnavailable(fmt.Sprintf("initialize: %v", err))
	}
	if err := c.conn.Notify(ctx, "initialized", map[string]any{}); err != nil {
		return rpc.LSPChildUnavailable(fmt.Sprintf("initialized notification: %v", err))
	}
	return nil
}

// call tracks the in-flight count for diagnostics and delegates
// correlation entirely to jsonrpc2.Conn.Call.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	c.pendingMu.Lock()
	c.pending++
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		c.pending--
		c.pendingMu.Unlock()
	}()

	err := c.conn.Call(ctx, method, params, result)
	if err != nil {
		if ctx.Err() != nil {
			return rpc.Timeout(fmt.Sprintf("%s timed out", method))
		}
		if rpcErr, ok := err.(*jsonrpc2.Error); ok {
			return rpc.LSPRequestFailed(fmt.Sprintf("%s: %s", method, rpcErr.Message))
		}
		return rpc.LSPChildUnavailable(fmt.Sprintf("%s: %v", method, err))
	}
	return nil
}

// PendingCount reports requests currently awaiting a response, for
// `ping --verbose`.
func (c *Client) PendingCount() int {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return c.pending
}

// ensureOpen sends textDocument/didOpen for file the first time it's
// requested, adding it to the open-document set. Idempotent: later calls
// for the same URI are no-ops, and the daemon never sends didChange — every
// request re-reads the file from disk, so a stale didOpen text is
// harmless; only the URI's membership in the analyzer's open set matters.
func (c *Client) ensureOpen(ctx context.Context, file string) error {
	uri := pathToURI(file)

	c.openDocsMu.Lock()
	alreadyOpen := c.openDocs.Has(uri)
	if !alreadyOpen {
		c.openDocs.Add(uri)
	}
	c.openDocsMu.Unlock()
	if alreadyOpen {
		return nil
	}

	content, err := c.fs.ReadFile(file)
	if err != nil {
		c.openDocsMu.Lock()
		delete(c.openDocs, uri)
		c.openDocsMu.Unlock()
		return rpc.WorkspaceNotFound(file)
	}

	params := map[string]any{
		"textDocument": map[string]any{
			"uri":        uri,
			"languageId": c.Language,
			"version":    1,
			"text":       string(content),
		},
	}
	return c.conn.Notify(ctx, "textDocument/didOpen", params)
}

// Hover issues textDocument/hover at position and normalizes whichever of
// the four wire shapes the analyzer used for its contents field.
func (c *Client) Hover(ctx context.Context, file string, pos Position) (*Hover, error) {
	if err := c.ensureOpen(ctx, file); err != nil {
		return nil, err
	}
	var raw jsonRawResult
	if err := c.call(ctx, "textDocument/hover", textDocumentPositionParams(file, pos), &raw); err != nil {
		return nil, err
	}
	if isNullResult(raw) {
		return nil, nil
	}
	hover := &Hover{Contents: normalizeHoverContents(raw)}
	if r := extractRange(raw); r != nil {
		hover.Range = r
	}
	return hover, nil
}

// Definition issues textDocument/definition.
func (c *Client) Definition(ctx context.Context, file string, pos Position) ([]Location, error) {
	if err := c.ensureOpen(ctx, file); err != nil {
		return nil, err
	}
	var locations []Location
	if err := c.call(ctx, "textDocument/definition", textDocumentPositionParams(file, pos), &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// References issues textDocument/references.
func (c *Client) References(ctx context.Context, file string, pos Position, includeDeclaration bool) ([]Location, error) {
	if err := c.ensureOpen(ctx, file); err != nil {
		return nil, err
	}
	params := map[string]any{
		"textDocument": map[string]any{"uri": pathToURI(file)},
		"position":     pos,
		"context":      map[string]any{"includeDeclaration": includeDeclaration},
	}
	var locations []Location
	if err := c.call(ctx, "textDocument/references", params, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

// DocumentSymbols issues textDocument/documentSymbol.
func (c *Client) DocumentSymbols(ctx context.Context, file string) ([]DocumentSymbol, error) {
	if err := c.ensureOpen(ctx, file); err != nil {
		return nil, err
	}
	params := map[string]any{
		"textDocument": map[string]any{"uri": pathToURI(file)},
	}
	var symbols []DocumentSymbol
	if err := c.call(ctx, "textDocument/documentSymbol", params, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// WorkspaceSymbols issues workspace/symbol.
func (c *Client) WorkspaceSymbols(ctx context.Context, query string) ([]SymbolInformation, error) {
	var symbols []SymbolInformation
	if err := c.call(ctx, "workspace/symbol", map[string]any{"query": query}, &symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// Shutdown sends the LSP shutdown/exit sequence, closes the connection and
// pipes, and reaps the child, killing it if it doesn't exit promptly.
func (c *Client) Shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_ = c.call(shutdownCtx, "shutdown", nil, nil)
	_ = c.conn.Notify(shutdownCtx, "exit", nil)
	c.conn.Close()

	select {
	case <-c.child.Done():
	case <-time.After(2 * time.Second):
		c.child.Kill()
	}
}

// Alive reports whether the underlying connection and child are both
// still usable.
func (c *Client) Alive() bool {
	select {
	case <-c.conn.DisconnectNotify():
		return false
	default:
	}
	exited, _ := c.child.Exited()
	return !exited
}

func textDocumentPositionParams(file string, pos Position) map[string]any {
	return map[string]any{
		"textDocument": map[string]any{"uri": pathToURI(file)},
		"position":     pos,
	}
}

func pathToURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
