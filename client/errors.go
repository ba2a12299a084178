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

// Package client is the consumer-facing library: one operation per RPC
// method the daemon exposes, plus ensure_running(), the bootstrap entry
// point.
package client

import (
	"errors"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lspkeep/lspkeep/endpoint"
)

// ErrDaemonUnreachable means the bootstrap's full connect/spawn/poll
// algorithm ran to completion without ever obtaining a connected session.
var ErrDaemonUnreachable = errors.New("lspkeep: daemon did not become reachable")

// ErrUnsupportedPlatform surfaces a clear "unsupported on this platform"
// message rather than a cryptic connect error, for any call beyond the
// bootstrap on a platform without the local-socket transport.
var ErrUnsupportedPlatform = endpoint.ErrUnsupportedPlatform

// RPCError wraps a daemon error response, preserving its code from the
// taxonomy so callers can type-switch on it.
type RPCError struct {
	Code    int64
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("lspkeep: %s (code %d)", e.Message, e.Code)
}

func wrapRPCError(err error) error {
	if err == nil {
		return nil
	}
	if jerr, ok := err.(*jsonrpc2.Error); ok {
		return &RPCError{Code: jerr.Code, Message: jerr.Message}
	}
	return err
}
