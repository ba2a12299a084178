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

package client

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/lspkeep/lspkeep/endpoint"
	"github.com/lspkeep/lspkeep/internal/logging"
)

// pollBudget and pollInterval implement the bootstrapper's bounded retry
// budget (up to ~2 seconds, probed every 100 ms).
const (
	pollBudget   = 2 * time.Second
	pollInterval = 100 * time.Millisecond
)

// EnsureRunning implements the daemon bootstrapper: try to connect; if the
// endpoint is absent or its peer is gone, spawn a detached daemon and poll
// until it answers or the budget is exhausted.
func EnsureRunning(ctx context.Context) (*Client, error) {
	if !endpoint.Supported {
		return nil, ErrUnsupportedPlatform
	}

	addr, err := endpoint.Address()
	if err != nil {
		return nil, fmt.Errorf("compute endpoint address: %w", err)
	}

	if c, err := Connect(addr); err == nil {
		return c, nil
	}

	if err := spawnDaemon(); err != nil {
		return nil, fmt.Errorf("spawn daemon: %w", err)
	}

	deadline := time.Now().Add(pollBudget)
	for time.Now().Before(deadline) {
		if c, err := Connect(addr); err == nil {
			return c, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	return nil, ErrDaemonUnreachable
}

// spawnDaemon execs `lspkeep daemon` detached from this process's
// controlling terminal, redirecting its standard streams so this process
// can exit without waiting for it. Multiple concurrent invocations may all
// reach this point and all spawn a candidate daemon; only the one that
// successfully binds the endpoint survives; the rest observe EADDRINUSE
// inside their own Run() and exit, and this process's subsequent poll
// connects to whichever one won (the single-owner invariant).
func spawnDaemon() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate own executable: %w", err)
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	defer devNull.Close()

	cmd := exec.Command(exe, "daemon")
	cmd.Stdin = devNull
	cmd.Stdout = devNull
	cmd.Stderr = devNull
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return err
	}
	logging.GetLogger().Debug("client: spawned daemon pid %d", cmd.Process.Pid)
	// Release rather than Wait: the daemon is a long-running, independent
	// process. Reaping its own children is the daemon's job, not ours.
	return cmd.Process.Release()
}
