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
	"encoding/json"

	"github.com/tidwall/gjson"
)

// jsonRawResult captures a hover result (or any other loosely-typed
// result) verbatim, so shape.go can sniff it before any strong decoding is
// attempted.
type jsonRawResult = json.RawMessage

func isNullResult(raw jsonRawResult) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// extractRange pulls the optional top-level "range" field out of a hover
// result, if present.
func extractRange(raw jsonRawResult) *Range {
	r := gjson.GetBytes(raw, "range")
	if !r.Exists() {
		return nil
	}
	var out Range
	if err := json.Unmarshal([]byte(r.Raw), &out); err != nil {
		return nil
	}
	return &out
}
