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

// Package logging provides centralized logging that adapts to CLI vs daemon
// contexts.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/pterm/pterm"
)

func init() {
	pterm.Info = *pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(pterm.FgBlue),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Success = *pterm.Success.WithPrefix(pterm.Prefix{
		Text:  "SUCCESS",
		Style: pterm.NewStyle(pterm.FgGreen),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Warning = *pterm.Warning.WithPrefix(pterm.Prefix{
		Text:  "WARNING",
		Style: pterm.NewStyle(pterm.FgYellow),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Error = *pterm.Error.WithPrefix(pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.FgRed),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)

	pterm.Debug = *pterm.Debug.WithPrefix(pterm.Prefix{
		Text:  "DEBUG",
		Style: pterm.NewStyle(pterm.FgCyan),
	}).WithMessageStyle(&pterm.ThemeDefault.DefaultText)
}

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarning
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarning:
		return "WARNING"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Mode determines how logs are emitted.
type Mode int

const (
	// ModeCLI uses pterm for colorized output on the invoking terminal.
	ModeCLI Mode = iota
	// ModeDaemon writes leveled, timestamped lines to the writer set by
	// SetOutput (os.Stderr by default). There is no editor on the other end of the daemon's
	// stdout/stderr to show a popup to, unlike an LSP server talking to
	// its client.
	ModeDaemon
)

// Logger is the process-wide logger. The daemon process sets ModeDaemon
// once at startup; the CLI side leaves the ModeCLI default.
type Logger struct {
	mu           sync.RWMutex
	mode         Mode
	out          io.Writer
	debugEnabled bool
	quietEnabled bool
}

var globalLogger = &Logger{
	mode: ModeCLI,
	out:  os.Stderr,
}

// GetLogger returns the global logger instance.
func GetLogger() *Logger {
	return globalLogger
}

// SetMode configures the logger for CLI or daemon operation.
func (l *Logger) SetMode(mode Mode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mode = mode
}

// SetOutput redirects ModeDaemon output (default os.Stderr). The daemon
// command uses this to point its logs at the daemon log file.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

func (l *Logger) SetDebugEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debugEnabled = enabled
}

func (l *Logger) IsDebugEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.debugEnabled
}

func (l *Logger) SetQuietEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.quietEnabled = enabled
}

func (l *Logger) IsQuietEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.quietEnabled
}

func (l *Logger) Debug(format string, args ...any) { l.log(LogLevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LogLevelInfo, format, args...) }
func (l *Logger) Warning(format string, args ...any) {
	l.log(LogLevelWarning, format, args...)
}
func (l *Logger) Error(format string, args ...any) { l.log(LogLevelError, format, args...) }

// Success logs a success message. Suppressed in quiet mode, same as Info.
func (l *Logger) Success(format string, args ...any) {
	l.mu.RLock()
	mode := l.mode
	quiet := l.quietEnabled
	l.mu.RUnlock()
	if quiet {
		return
	}
	if mode == ModeCLI {
		pterm.Success.Printf(format+"\n", args...)
		return
	}
	l.log(LogLevelInfo, format, args...)
}

// Critical always logs regardless of quiet/debug settings — reserved for
// faults the shutdown coordinator reports on its way down.
func (l *Logger) Critical(format string, args ...any) {
	l.mu.RLock()
	mode := l.mode
	l.mu.RUnlock()
	message := fmt.Sprintf(format, args...)
	if mode == ModeCLI {
		pterm.Error.Println(message)
		return
	}
	l.writeDaemon(LogLevelError, message)
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	l.mu.RLock()
	mode := l.mode
	debugEnabled := l.debugEnabled
	quietEnabled := l.quietEnabled
	l.mu.RUnlock()

	if level == LogLevelDebug && !debugEnabled {
		return
	}
	if quietEnabled && (level == LogLevelInfo || level == LogLevelDebug) {
		return
	}

	message := fmt.Sprintf(format, args...)
	switch mode {
	case ModeCLI:
		l.logCLI(level, message)
	case ModeDaemon:
		l.writeDaemon(level, message)
	}
}

func (l *Logger) logCLI(level LogLevel, message string) {
	switch level {
	case LogLevelDebug:
		pterm.Debug.Println(message)
	case LogLevelInfo:
		pterm.Info.Println(message)
	case LogLevelWarning:
		pterm.Warning.Println(message)
	case LogLevelError:
		pterm.Error.Println(message)
	}
}

func (l *Logger) writeDaemon(level LogLevel, message string) {
	l.mu.RLock()
	out := l.out
	l.mu.RUnlock()
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "%s [%s] %s\n", time.Now().UTC().Format(time.RFC3339), level, message)
}
