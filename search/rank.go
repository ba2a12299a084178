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

// Package search re-ranks workspace/symbol results client-side. Many
// analyzers do their own naive substring or fuzzy matching, and results
// from heterogeneous backing LSP servers benefit from a consistent
// ordering on top of whatever the analyzer already decided to return.
// Ranking is strictly additive: it never drops a result the analyzer
// returned, only reorders.
package search

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/lspkeep/lspkeep/lspclient"
)

// RankSymbols returns a new slice containing the same symbols reordered by
// edit distance between query and each symbol's name (case-insensitive),
// stable so the analyzer's own ordering survives as a tiebreaker.
func RankSymbols(query string, symbols []lspclient.SymbolInformation) []lspclient.SymbolInformation {
	if len(symbols) == 0 || query == "" {
		return symbols
	}

	q := strings.ToLower(query)
	ranked := make([]lspclient.SymbolInformation, len(symbols))
	copy(ranked, symbols)
	distances := make([]int, len(ranked))
	for i, sym := range ranked {
		distances[i] = levenshtein.Distance(q, strings.ToLower(sym.Name), nil)
	}

	indices := make([]int, len(ranked))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return distances[indices[i]] < distances[indices[j]]
	})

	out := make([]lspclient.SymbolInformation, len(ranked))
	for pos, idx := range indices {
		out[pos] = ranked[idx]
	}
	return out
}
