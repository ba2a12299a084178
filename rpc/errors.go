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

// Package rpc carries the JSON-RPC framing and error taxonomy shared by the
// CLI-facing daemon transport and the daemon-facing LSP-child transport.
// Both are the same wire shape (Content-Length-framed JSON-RPC 2.0), so both
// reuse the same codec.
package rpc

import "github.com/sourcegraph/jsonrpc2"

// Error codes returned in the JSON-RPC error.code field. The set is closed;
// no handler may invent a code outside this list.
const (
	CodeMalformedRequest  = -32600
	CodeUnknownMethod     = -32601
	CodeInternal          = -32603
	CodeLSPRequestFailed  = -32000
	CodeLSPChildUnavail   = -32001
	CodeWorkspaceNotFound = -32002
	CodeTimeout           = -32003
)

// NewError builds a *jsonrpc2.Error carrying one of the codes above. data
// may be nil; when non-nil it must not contain anything beyond the paths
// already named by the request.
func NewError(code int64, message string, data any) *jsonrpc2.Error {
	e := &jsonrpc2.Error{
		Code:    code,
		Message: message,
	}
	if data != nil {
		_ = e.SetError(data)
	}
	return e
}

// Malformed reports a request missing a required field or schema violation.
func Malformed(message string) *jsonrpc2.Error {
	return NewError(CodeMalformedRequest, message, nil)
}

// UnknownMethod reports a request naming a method outside the seven-method
// surface.
func UnknownMethod(method string) *jsonrpc2.Error {
	return NewError(CodeUnknownMethod, "unknown method: "+method, nil)
}

// Internal wraps an unexpected fault, including recovered panics.
func Internal(message string) *jsonrpc2.Error {
	return NewError(CodeInternal, message, nil)
}

// LSPRequestFailed wraps an error or unexpected payload reported by the
// analyzer itself.
func LSPRequestFailed(message string) *jsonrpc2.Error {
	return NewError(CodeLSPRequestFailed, message, nil)
}

// LSPChildUnavailable reports a child that failed to spawn or has
// terminated.
func LSPChildUnavailable(message string) *jsonrpc2.Error {
	return NewError(CodeLSPChildUnavail, message, nil)
}

// WorkspaceNotFound reports a workspace or file path that does not exist or
// is not readable.
func WorkspaceNotFound(path string) *jsonrpc2.Error {
	return NewError(CodeWorkspaceNotFound, "not found or not readable: "+path, nil)
}

// Timeout reports a request that exceeded its dispatcher deadline.
func Timeout(message string) *jsonrpc2.Error {
	return NewError(CodeTimeout, message, nil)
}
