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
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lspkeep/lspkeep/internal/logging"
	"github.com/lspkeep/lspkeep/internal/platform"
)

// Invocation is a single way of launching an analyzer: a command and its
// arguments.
type Invocation struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// AnalyzerEntry names the primary invocation for a language id, plus an
// optional fallback invocation used
// when the primary binary isn't on the search path.
type AnalyzerEntry struct {
	Invocation `yaml:",inline"`
	Fallback   *Invocation `yaml:"fallback,omitempty"`
}

type registryFile struct {
	Analyzers map[string]AnalyzerEntry `yaml:"analyzers"`
}

// builtinAnalyzers ships defaults for a handful of common ecosystems so the
// registry file only needs to override or extend them.
func builtinAnalyzers() map[string]AnalyzerEntry {
	return map[string]AnalyzerEntry{
		"go": {Invocation: Invocation{Command: "gopls", Args: []string{"serve"}}},
		"python": {
			Invocation: Invocation{Command: "pyright-langserver", Args: []string{"--stdio"}},
			Fallback:   &Invocation{Command: "npx", Args: []string{"-y", "pyright-langserver", "--stdio"}},
		},
		"typescript": {
			Invocation: Invocation{Command: "typescript-language-server", Args: []string{"--stdio"}},
			Fallback:   &Invocation{Command: "npx", Args: []string{"-y", "typescript-language-server", "--stdio"}},
		},
		"javascript": {
			Invocation: Invocation{Command: "typescript-language-server", Args: []string{"--stdio"}},
			Fallback:   &Invocation{Command: "npx", Args: []string{"-y", "typescript-language-server", "--stdio"}},
		},
		"rust": {Invocation: Invocation{Command: "rust-analyzer"}},
	}
}

var extensionToLanguage = map[string]string{
	".go":   "go",
	".py":   "python",
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".rs":   "rust",
}

// LanguageForFile derives a language id from a file's extension. Returns
// "" for extensions with no configured analyzer.
func LanguageForFile(path string) string {
	return extensionToLanguage[strings.ToLower(filepath.Ext(path))]
}

// Registry is the live, hot-reloadable table of language id -> analyzer
// invocation. A running daemon watches its backing file (if any) via
// fsnotify and swaps the table in place, so a long-warm daemon picks up a
// newly configured language without a restart.
type Registry struct {
	mu        sync.RWMutex
	analyzers map[string]AnalyzerEntry
	path      string
	watcher   platform.FileWatcher
}

// NewRegistry builds a registry seeded with the built-in defaults, then
// merges in path (if non-empty and readable). If watcher is non-nil it is
// used to watch path for edits and reload on Write/Create events; the
// caller owns the watcher's lifecycle (tests substitute
// platform.MockFileWatcher for instant, deterministic callbacks).
func NewRegistry(path string, watcher platform.FileWatcher) (*Registry, error) {
	r := &Registry{
		analyzers: builtinAnalyzers(),
		path:      path,
		watcher:   watcher,
	}
	if path != "" {
		if err := r.reload(); err != nil {
			return nil, err
		}
		if watcher != nil {
			if err := watcher.Add(path); err != nil {
				logging.GetLogger().Warning("analyzer registry: could not watch %s: %v", path, err)
			} else {
				go r.watchLoop()
			}
		}
	}
	return r, nil
}

func (r *Registry) watchLoop() {
	for event := range r.watcher.Events() {
		if event.Name != r.path {
			continue
		}
		if event.Op&(platform.Write|platform.Create) == 0 {
			continue
		}
		if err := r.reload(); err != nil {
			logging.GetLogger().Warning("analyzer registry: reload of %s failed: %v", r.path, err)
			continue
		}
		logging.GetLogger().Info("analyzer registry: reloaded %s", r.path)
	}
}

func (r *Registry) reload() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read analyzer registry %s: %w", r.path, err)
	}
	var parsed registryFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse analyzer registry %s: %w", r.path, err)
	}

	merged := builtinAnalyzers()
	for lang, entry := range parsed.Analyzers {
		merged[lang] = entry
	}

	r.mu.Lock()
	r.analyzers = merged
	r.mu.Unlock()
	return nil
}

// Lookup returns the analyzer entry configured for language, if any.
func (r *Registry) Lookup(language string) (AnalyzerEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.analyzers[language]
	return entry, ok
}
