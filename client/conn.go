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
	"net"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lspkeep/lspkeep/rpc"
)

// rpcConn is the one request-per-connection session the CLI opens against
// the daemon: the daemon never sends the CLI a request of its own, so a
// discard handler is all the other direction needs.
type rpcConn struct {
	netConn net.Conn
	jc      *jsonrpc2.Conn
}

func newRPCConn(netConn net.Conn) *rpcConn {
	return &rpcConn{
		netConn: netConn,
		jc:      rpc.NewConn(context.Background(), netConn, rpc.DiscardHandler{}),
	}
}

func (c *rpcConn) call(ctx context.Context, method string, params, result any) error {
	return c.jc.Call(ctx, method, params, result)
}

func (c *rpcConn) Close() error {
	return c.jc.Close()
}
