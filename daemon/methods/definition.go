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

	"github.com/lspkeep/lspkeep/lspclient"
)

// Definition resolves the client for params.Workspace and issues
// textDocument/definition at the given zero-based position.
func Definition(ctx context.Context, dctx *Context, raw json.RawMessage) (any, error) {
	params, err := decodePositionParams(raw)
	if err != nil {
		return nil, err
	}

	client, err := dctx.Pool.GetOrCreate(ctx, params.Workspace)
	if err != nil {
		return nil, err
	}
	dctx.Pool.MarkBusy(params.Workspace)
	defer dctx.Pool.MarkIdle(params.Workspace)

	locations, err := client.Definition(ctx, params.File, lspclient.Position{Line: params.Line, Character: params.Column})
	if err != nil {
		return nil, err
	}
	if locations == nil {
		locations = []lspclient.Location{}
	}
	return locations, nil
}
