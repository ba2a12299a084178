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

	"github.com/lspkeep/lspkeep/lsppool"
)

// PingResult is the wire result of `ping`. Workspaces is omitted unless the
// request asked for it; it is additive operator detail, not part of the
// minimum required shape.
type PingResult struct {
	Status           string                      `json:"status"`
	UptimeSeconds    int64                       `json:"uptime_seconds"`
	ActiveWorkspaces int                         `json:"active_workspaces"`
	CacheSize        int                         `json:"cache_size"`
	Workspaces       []lsppool.WorkspaceDiagnostic `json:"workspaces,omitempty"`
}

type pingParams struct {
	Verbose bool `json:"verbose"`
}

// Ping answers with the daemon's status, uptime, and pool size. It never
// fails and carries no underlying LSP call.
func Ping(ctx context.Context, dctx *Context, raw json.RawMessage) (any, error) {
	var params pingParams
	if len(raw) > 0 {
		// Unknown/absent params are not an error for ping: it requires no
		// parameters, so a malformed verbose flag is simply ignored rather
		// than rejected.
		_ = json.Unmarshal(raw, &params)
	}

	result := PingResult{
		Status:           "running",
		UptimeSeconds:    int64(dctx.Clock.Now().Sub(dctx.StartTime).Seconds()),
		ActiveWorkspaces: dctx.Pool.Size(),
		CacheSize:        dctx.Pool.Size(),
	}
	if params.Verbose {
		result.Workspaces = dctx.Pool.Diagnostics()
	}
	return result, nil
}
