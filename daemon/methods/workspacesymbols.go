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
	"github.com/lspkeep/lspkeep/search"
)

// WorkspaceSymbols resolves the client for params.Workspace, issues
// workspace/symbol, client-side re-ranks the result by edit distance, and
// truncates to params.Limit if given.
func WorkspaceSymbols(ctx context.Context, dctx *Context, raw json.RawMessage) (any, error) {
	params, err := decodeWorkspaceSymbolsParams(raw)
	if err != nil {
		return nil, err
	}

	client, err := dctx.Pool.GetOrCreate(ctx, params.Workspace)
	if err != nil {
		return nil, err
	}
	dctx.Pool.MarkBusy(params.Workspace)
	defer dctx.Pool.MarkIdle(params.Workspace)

	symbols, err := client.WorkspaceSymbols(ctx, params.Query)
	if err != nil {
		return nil, err
	}
	symbols = search.RankSymbols(params.Query, symbols)
	if params.Limit > 0 && len(symbols) > params.Limit {
		symbols = symbols[:params.Limit]
	}
	if symbols == nil {
		symbols = []lspclient.SymbolInformation{}
	}
	return symbols, nil
}
