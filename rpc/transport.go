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

package rpc

import (
	"context"
	"io"

	"github.com/sourcegraph/jsonrpc2"
)

// ReadWriteCloser is the minimal shape both transports need: the CLI↔daemon
// stream socket and the daemon↔LSP-child stdin/stdout pipes satisfy it
// identically, which is why one codec serves both duplex channels.
type ReadWriteCloser = io.ReadWriteCloser

// NewConn wraps rwc in the Content-Length-framed JSON-RPC 2.0 codec shared
// by both transports and starts the connection's read loop. handler is
// invoked for every inbound request or notification; for the CLI↔daemon
// direction that is the method dispatcher, for the daemon↔LSP-child
// direction it is a handler that only observes notifications (the daemon
// never answers server-initiated requests, per the LSP subprocess
// contract).
func NewConn(ctx context.Context, rwc ReadWriteCloser, handler jsonrpc2.Handler, opts ...jsonrpc2.ConnOpt) *jsonrpc2.Conn {
	stream := jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{})
	return jsonrpc2.NewConn(ctx, stream, handler, opts...)
}

// DiscardHandler answers nothing; it is used on the daemon↔LSP-child
// connection, where the daemon consumes responses through pending-request
// slots registered out of band and ignores every notification the analyzer
// sends (progress, diagnostics, and so on).
type DiscardHandler struct{}

func (DiscardHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {}
