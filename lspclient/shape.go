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

package lspclient

import (
	"strings"

	"github.com/tidwall/gjson"
)

// normalizeHoverContents flattens the four wire shapes LSP 3.x allows for
// textDocument/hover's "contents" field — a bare string, a MarkedString
// ({language, value}), a list of either, or a MarkupContent ({kind, value})
// — into a single rendering. Analyzers disagree on which shape they emit
// and a strongly-typed union would have to special-case each one anyway;
// gjson lets this stay a single pass over the raw payload instead of a
// struct with every field optional.
func normalizeHoverContents(raw []byte) string {
	contents := gjson.GetBytes(raw, "contents")
	return renderContentsValue(contents)
}

func renderContentsValue(v gjson.Result) string {
	switch {
	case v.IsArray():
		parts := make([]string, 0, len(v.Array()))
		for _, item := range v.Array() {
			if rendered := renderContentsValue(item); rendered != "" {
				parts = append(parts, rendered)
			}
		}
		return strings.Join(parts, "\n\n---\n\n")
	case v.IsObject():
		if value := v.Get("value"); value.Exists() {
			// MarkupContent ({kind, value}) or MarkedString object
			// ({language, value}) — both carry the text under "value".
			return value.String()
		}
		return ""
	default:
		return v.String()
	}
}
