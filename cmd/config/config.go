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

// Package config holds the daemon-wide configuration shape bound by cobra
// flags and viper, independent of any single workspace.
package config

import (
	"fmt"
	"slices"
	"time"
)

// validLogLevels are the recognized values for LogLevel.
var validLogLevels = []string{"debug", "info", "warning", "error"}

// LSPKeepConfig is the root configuration object, loaded from
// $XDG_CONFIG_HOME/lspkeep/lspkeep.yaml and overridable by flags and
// LSPKEEP_* environment variables.
type LSPKeepConfig struct {
	ConfigFile string `mapstructure:"configFile" yaml:"configFile"`

	// IdleTimeout is how long the daemon runs with no accepted connections
	// before it shuts itself down. Zero disables the idle shutdown.
	IdleTimeout time.Duration `mapstructure:"idleTimeout" yaml:"idleTimeout"`

	// RequestTimeout is the default per-request dispatcher timeout,
	// overridable per-call by a client-supplied timeout hint.
	RequestTimeout time.Duration `mapstructure:"requestTimeout" yaml:"requestTimeout"`

	// LogLevel is the daemon-side verbosity knob: "debug" turns on debug
	// lines, "warning" and "error" both suppress info and debug lines.
	LogLevel string `mapstructure:"logLevel" yaml:"logLevel"`

	// AnalyzersFile, if set, overrides the default location of the
	// analyzer registry.
	AnalyzersFile string `mapstructure:"analyzersFile" yaml:"analyzersFile"`

	// Verbose mirrors the --verbose flag.
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// Default returns the configuration in effect before any file or flag is
// applied.
func Default() *LSPKeepConfig {
	return &LSPKeepConfig{
		IdleTimeout:    5 * time.Minute,
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
	}
}

// Clone returns a deep copy so callers may mutate without racing the
// loader that produced the original.
func (c *LSPKeepConfig) Clone() *LSPKeepConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Validate rejects configurations the daemon can't run with: a negative
// idleTimeout (zero is allowed), a non-positive requestTimeout, or a
// LogLevel it doesn't recognize. A zero-value LogLevel is
// valid — it means "use the default" — but any non-empty value must be one
// of validLogLevels.
func (c *LSPKeepConfig) Validate() error {
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idleTimeout must not be negative, got %s", c.IdleTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("requestTimeout must be positive, got %s", c.RequestTimeout)
	}
	if c.LogLevel != "" && !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid logLevel %q: must be one of %v", c.LogLevel, validLogLevels)
	}
	return nil
}
