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

// Package daemon implements the connection acceptor, method dispatcher,
// idle sweep, and shutdown coordinator.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lspkeep/lspkeep/daemon/methods"
	"github.com/lspkeep/lspkeep/internal/logging"
	"github.com/lspkeep/lspkeep/rpc"
)

// handlerFunc is the shape every daemon/methods function satisfies.
type handlerFunc func(ctx context.Context, dctx *methods.Context, raw json.RawMessage) (any, error)

// methodTable is the complete and only RPC surface the daemon accepts; any
// method not listed here yields -32601.
var methodTable = map[string]handlerFunc{
	"ping":              methods.Ping,
	"hover":             methods.Hover,
	"definition":        methods.Definition,
	"references":        methods.References,
	"workspace_symbols": methods.WorkspaceSymbols,
	"document_symbols":  methods.DocumentSymbols,
	"shutdown":          methods.Shutdown,
}

// dispatchHandler adapts the method table to jsonrpc2.Handler, imposing a
// per-request timeout and recovering any handler panic into -32603 so a
// single bad request can never take the daemon down.
type dispatchHandler struct {
	dctx           *methods.Context
	requestTimeout time.Duration
}

func (h *dispatchHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	result, rpcErr := h.dispatch(ctx, req)
	if !req.Notif {
		if rpcErr != nil {
			if err := conn.ReplyWithError(ctx, req.ID, rpcErr); err != nil {
				logging.GetLogger().Warning("daemon: failed to write error reply: %v", err)
			}
			return
		}
		if err := conn.Reply(ctx, req.ID, result); err != nil {
			logging.GetLogger().Warning("daemon: failed to write reply: %v", err)
		}
	}
}

func (h *dispatchHandler) dispatch(ctx context.Context, req *jsonrpc2.Request) (result any, rpcErr *jsonrpc2.Error) {
	defer func() {
		if r := recover(); r != nil {
			logging.GetLogger().Error("daemon: handler panic for method %s: %v", req.Method, r)
			rpcErr = rpc.Internal(fmt.Sprintf("internal error handling %s", req.Method))
		}
	}()

	handler, ok := methodTable[req.Method]
	if !ok {
		return nil, rpc.UnknownMethod(req.Method)
	}

	reqCtx, cancel := context.WithTimeout(ctx, h.requestTimeout)
	defer cancel()

	var params json.RawMessage
	if req.Params != nil {
		params = *req.Params
	}

	res, err := handler(reqCtx, h.dctx, params)
	if err != nil {
		if jerr, ok := err.(*jsonrpc2.Error); ok {
			return nil, jerr
		}
		if reqCtx.Err() != nil {
			return nil, rpc.Timeout(fmt.Sprintf("%s timed out", req.Method))
		}
		return nil, rpc.Internal(err.Error())
	}
	return res, nil
}
