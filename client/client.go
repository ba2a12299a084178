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

package client

import (
	"context"

	"github.com/lspkeep/lspkeep/daemon/methods"
	"github.com/lspkeep/lspkeep/endpoint"
	"github.com/lspkeep/lspkeep/lspclient"
)

// Client is a single connected session against the daemon. Every method
// maps directly to one of the seven RPC methods the daemon exposes, or to
// ping/shutdown.
type Client struct {
	conn *rpcConn
}

// Connect dials addr directly, without the bootstrap's spawn-and-poll
// fallback. EnsureRunning is the entry point most callers want.
func Connect(addr string) (*Client, error) {
	netConn, err := endpoint.Dial(addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: newRPCConn(netConn)}, nil
}

// Close releases the underlying connection without affecting the daemon.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Ping returns the daemon's current status, uptime, and pool size. When
// verbose is true the result also carries a per-workspace breakdown.
func (c *Client) Ping(ctx context.Context, verbose bool) (methods.PingResult, error) {
	var result methods.PingResult
	err := c.conn.call(ctx, "ping", map[string]any{"verbose": verbose}, &result)
	return result, wrapRPCError(err)
}

// PositionRequest is the shared shape of hover/definition/references:
// a workspace, a file within it, and a one-based external position that
// this layer converts to the zero-based LSP boundary before sending.
type PositionRequest struct {
	Workspace string
	File      string
	Line      int // one-based
	Column    int // one-based
}

func (r PositionRequest) toParams() map[string]any {
	return map[string]any{
		"workspace": r.Workspace,
		"file":      r.File,
		"line":      r.Line - 1,
		"column":    r.Column - 1,
	}
}

// Hover issues `hover`.
func (c *Client) Hover(ctx context.Context, req PositionRequest) (*lspclient.Hover, error) {
	var result *lspclient.Hover
	err := c.conn.call(ctx, "hover", req.toParams(), &result)
	return result, wrapRPCError(err)
}

// Definition issues `definition`.
func (c *Client) Definition(ctx context.Context, req PositionRequest) ([]lspclient.Location, error) {
	var result []lspclient.Location
	err := c.conn.call(ctx, "definition", req.toParams(), &result)
	return result, wrapRPCError(err)
}

// ReferencesRequest extends PositionRequest with the references-only
// include_declaration flag.
type ReferencesRequest struct {
	PositionRequest
	IncludeDeclaration bool
}

// References issues `references`.
func (c *Client) References(ctx context.Context, req ReferencesRequest) ([]lspclient.Location, error) {
	params := req.toParams()
	params["include_declaration"] = req.IncludeDeclaration
	var result []lspclient.Location
	err := c.conn.call(ctx, "references", params, &result)
	return result, wrapRPCError(err)
}

// WorkspaceSymbols issues `workspace_symbols`.
func (c *Client) WorkspaceSymbols(ctx context.Context, workspace, query string, limit int) ([]lspclient.SymbolInformation, error) {
	params := map[string]any{"workspace": workspace, "query": query}
	if limit > 0 {
		params["limit"] = limit
	}
	var result []lspclient.SymbolInformation
	err := c.conn.call(ctx, "workspace_symbols", params, &result)
	return result, wrapRPCError(err)
}

// DocumentSymbols issues `document_symbols`.
func (c *Client) DocumentSymbols(ctx context.Context, workspace, file string) ([]lspclient.DocumentSymbol, error) {
	params := map[string]any{"workspace": workspace, "file": file}
	var result []lspclient.DocumentSymbol
	err := c.conn.call(ctx, "document_symbols", params, &result)
	return result, wrapRPCError(err)
}

// Shutdown issues `shutdown`.
func (c *Client) Shutdown(ctx context.Context) error {
	var result methods.ShutdownResult
	err := c.conn.call(ctx, "shutdown", nil, &result)
	return wrapRPCError(err)
}
