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
	"io"
	"os/exec"
	"sync"
	"syscall"

	"github.com/lspkeep/lspkeep/internal/logging"
)

// childProcess supervises one spawned analyzer: its pipes, its process
// group, and a dedicated goroutine observing its exit so that an
// unexpected death is noticed promptly rather than on the next request.
type childProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser

	mu       sync.Mutex
	exited   bool
	exitErr  error
	exitChan chan struct{}
}

// spawnChild launches invocation in dir. Setpgid detaches the child into
// its own process group so it survives the CLI process that triggered
// daemon startup exiting — the daemon, not the original CLI invocation, is
// the child's effective parent.
func spawnChild(invocation Invocation, dir string) (*childProcess, error) {
	cmd := exec.Command(invocation.Command, invocation.Args...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", invocation.Command, err)
	}

	c := &childProcess{
		cmd:      cmd,
		stdin:    stdin,
		stdout:   stdout,
		exitChan: make(chan struct{}),
	}

	go io.Copy(io.Discard, stderr)
	go c.observeExit()

	return c, nil
}

// spawnWithFallback tries entry's primary invocation; if that fails to
// even start (binary missing from the search path, most commonly), it
// retries once through the documented fallback. Both paths are equivalent
// once the child is running.
func spawnWithFallback(entry AnalyzerEntry, dir string) (*childProcess, error) {
	child, err := spawnChild(entry.Invocation, dir)
	if err == nil {
		return child, nil
	}
	if entry.Fallback == nil {
		return nil, err
	}
	logging.GetLogger().Debug("analyzer %q failed to start (%v), trying fallback %q",
		entry.Invocation.Command, err, entry.Fallback.Command)
	return spawnChild(*entry.Fallback, dir)
}

func (c *childProcess) observeExit() {
	err := c.cmd.Wait()
	c.mu.Lock()
	c.exited = true
	c.exitErr = err
	c.mu.Unlock()
	close(c.exitChan)
}

// Exited reports whether the child has terminated and, if so, the error
// cmd.Wait() returned (nil for a clean exit).
func (c *childProcess) Exited() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exited, c.exitErr
}

// Done is closed once the child has exited; a reader task selects on it
// alongside stdout reads to notice death promptly.
func (c *childProcess) Done() <-chan struct{} {
	return c.exitChan
}

// Kill terminates the whole process group, in case the child spawned its
// own descendants (common for ecosystem indirection commands like npx).
func (c *childProcess) Kill() {
	if c.cmd.Process == nil {
		return
	}
	pgid, err := syscall.Getpgid(c.cmd.Process.Pid)
	if err != nil {
		c.cmd.Process.Kill()
		return
	}
	syscall.Kill(-pgid, syscall.SIGKILL)
}
