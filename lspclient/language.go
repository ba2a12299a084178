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
	"fmt"
	"path/filepath"

	"github.com/lspkeep/lspkeep/internal/platform"
)

// maxLanguageDetectDepth bounds the directory walk DetectLanguage performs;
// The pool keys an entry on workspace alone, with no
// language hint, so the first request against a freshly created entry must
// be able to derive one from the workspace contents without indexing the
// whole tree up front.
const maxLanguageDetectDepth = 3

// DetectLanguage walks workspace (breadth-first, bounded depth) looking for
// the first file whose extension the registry recognizes, and returns its
// language id. This runs once per pool entry, at creation time, before the
// LSP handshake.
func DetectLanguage(fs platform.FileSystem, workspace string) (string, error) {
	type dirAtDepth struct {
		path  string
		depth int
	}
	queue := []dirAtDepth{{workspace, 0}}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := fs.ReadDir(dir.path)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			full := filepath.Join(dir.path, entry.Name())
			if entry.IsDir() {
				if dir.depth < maxLanguageDetectDepth && !isIgnoredDir(entry.Name()) {
					queue = append(queue, dirAtDepth{full, dir.depth + 1})
				}
				continue
			}
			if lang := LanguageForFile(full); lang != "" {
				return lang, nil
			}
		}
	}
	return "", fmt.Errorf("no recognized source files under %s", workspace)
}

func isIgnoredDir(name string) bool {
	switch name {
	case ".git", "node_modules", "vendor", "target", "dist", "build", ".venv":
		return true
	default:
		return false
	}
}
