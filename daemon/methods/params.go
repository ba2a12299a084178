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
	"encoding/json"

	"github.com/lspkeep/lspkeep/rpc"
)

// positionParams is the shape shared by hover, definition, and references:
// a workspace, a file within it, and a zero-based position.
type positionParams struct {
	Workspace string `json:"workspace"`
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
}

func decodePositionParams(raw json.RawMessage) (positionParams, error) {
	var p positionParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, rpc.Malformed("invalid params: " + err.Error())
	}
	if p.Workspace == "" {
		return p, rpc.Malformed("missing required parameter: workspace")
	}
	if p.File == "" {
		return p, rpc.Malformed("missing required parameter: file")
	}
	return p, nil
}

type referencesParams struct {
	positionParams
	IncludeDeclaration bool `json:"include_declaration"`
}

func decodeReferencesParams(raw json.RawMessage) (referencesParams, error) {
	var p referencesParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, rpc.Malformed("invalid params: " + err.Error())
	}
	if p.Workspace == "" {
		return p, rpc.Malformed("missing required parameter: workspace")
	}
	if p.File == "" {
		return p, rpc.Malformed("missing required parameter: file")
	}
	return p, nil
}

type workspaceSymbolsParams struct {
	Workspace string `json:"workspace"`
	Query     string `json:"query"`
	Limit     int    `json:"limit"`
}

func decodeWorkspaceSymbolsParams(raw json.RawMessage) (workspaceSymbolsParams, error) {
	var p workspaceSymbolsParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, rpc.Malformed("invalid params: " + err.Error())
	}
	if p.Workspace == "" {
		return p, rpc.Malformed("missing required parameter: workspace")
	}
	return p, nil
}

type documentSymbolsParams struct {
	Workspace string `json:"workspace"`
	File      string `json:"file"`
}

func decodeDocumentSymbolsParams(raw json.RawMessage) (documentSymbolsParams, error) {
	var p documentSymbolsParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, rpc.Malformed("invalid params: " + err.Error())
	}
	if p.Workspace == "" {
		return p, rpc.Malformed("missing required parameter: workspace")
	}
	if p.File == "" {
		return p, rpc.Malformed("missing required parameter: file")
	}
	return p, nil
}
