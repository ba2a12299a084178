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

package methods

import (
	"context"
	"encoding/json"
)

// ShutdownResult is the wire result of `shutdown`.
type ShutdownResult struct {
	Acknowledged bool `json:"acknowledged"`
}

// Shutdown acknowledges the request and calls ShutdownRequested as it
// returns; the daemon's callback starts the coordinator on its own
// goroutine, whose drain grace lets the response go out before teardown.
func Shutdown(ctx context.Context, dctx *Context, raw json.RawMessage) (any, error) {
	if dctx.ShutdownRequested != nil {
		defer dctx.ShutdownRequested()
	}
	return ShutdownResult{Acknowledged: true}, nil
}
