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

package rpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspkeep/lspkeep/rpc"
)

type echoHandler struct{}

func (echoHandler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Notif {
		return
	}
	var params map[string]any
	_ = req.UnmarshalParams(&params)
	_ = conn.Reply(ctx, req.ID, params)
}

func TestNewConn_RoundTrip(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	ctx := context.Background()
	rpc.NewConn(ctx, serverSide, echoHandler{})
	client := rpc.NewConn(ctx, clientSide, rpc.DiscardHandler{})

	callCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var result map[string]any
	err := client.Call(callCtx, "echo", map[string]any{"hello": "world"}, &result)
	require.NoError(t, err)
	assert.Equal(t, "world", result["hello"])
}

func TestDiscardHandler_IgnoresRequests(t *testing.T) {
	serverSide, clientSide := net.Pipe()
	defer serverSide.Close()
	defer clientSide.Close()

	ctx := context.Background()
	rpc.NewConn(ctx, serverSide, rpc.DiscardHandler{})
	client := rpc.NewConn(ctx, clientSide, rpc.DiscardHandler{})

	client.Notify(ctx, "progress", map[string]any{"done": true})
}
