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

package daemon

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lspkeep/lspkeep/daemon/methods"
	"github.com/lspkeep/lspkeep/endpoint"
	"github.com/lspkeep/lspkeep/internal/logging"
	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/lsppool"
	"github.com/lspkeep/lspkeep/rpc"
)

// idleSweepInterval is the cadence on which the idle tracker is compared
// against the configured threshold.
const idleSweepInterval = 60 * time.Second

// drainGrace is how long the acceptor waits for in-flight connections to
// finish after shutdown begins; connections still open after it are closed.
const drainGrace = 2 * time.Second

// Config bundles the daemon's tunables; cmd/config.LSPKeepConfig is
// translated into this at startup.
type Config struct {
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// Daemon is the acceptor plus the idle tracker and shutdown coordinator
// that sit around it.
type Daemon struct {
	cfg   Config
	pool  *lsppool.Pool
	clock platform.TimeProvider

	lastAcceptNanos int64 // atomic, the idle tracker

	shutdownOnce sync.Once
	shutdownChan chan struct{}

	wg sync.WaitGroup
}

// New builds a daemon around pool; registry-driven client creation and
// file access already live inside pool.
func New(cfg Config, pool *lsppool.Pool, clock platform.TimeProvider) *Daemon {
	return &Daemon{
		cfg:          cfg,
		pool:         pool,
		clock:        clock,
		shutdownChan: make(chan struct{}),
	}
}

// Run binds the endpoint (reclaiming a stale one if owned by the caller),
// serves connections until shutdown is triggered by an explicit request,
// idle timeout, a fatal fault, or cancellation of ctx, tears everything
// down, and returns nil on a clean exit.
func (d *Daemon) Run(ctx context.Context, addr string) error {
	lis, err := d.bind(addr)
	if err != nil {
		return err
	}
	defer endpoint.ReclaimStale(addr)

	d.touchIdleTracker()

	dctx := &methods.Context{
		Pool:              d.pool,
		Clock:             d.clock,
		StartTime:         d.clock.Now(),
		ShutdownRequested: func() { go d.beginShutdown("shutdown request") },
	}
	handler := &dispatchHandler{dctx: dctx, requestTimeout: d.cfg.RequestTimeout}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.acceptLoop(ctx, lis, handler)
	}()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.idleSweepLoop(ctx)
	}()

	go func() {
		select {
		case <-ctx.Done():
			d.beginShutdown("context cancelled")
		case <-d.shutdownChan:
		}
	}()

	<-d.shutdownChan
	lis.Close()
	d.wg.Wait()
	d.pool.ShutdownAll(context.Background())
	logging.GetLogger().Info("daemon: shut down cleanly")
	return nil
}

// bind implements the racing-daemon reclaim: if a pre-existing endpoint
// is owned by the caller and no peer answers, unlink and retry once;
// EADDRINUSE from a true live peer is left for the caller to observe as
// "someone else already won the race."
func (d *Daemon) bind(addr string) (net.Listener, error) {
	lis, err := endpoint.Listen(addr)
	if err == nil {
		return lis, nil
	}

	exists, ownedByMe, checkErr := endpoint.CheckOwnership(addr)
	if checkErr != nil || !exists || !ownedByMe {
		return nil, fmt.Errorf("bind endpoint %s: %w", addr, err)
	}

	if _, dialErr := endpoint.Dial(addr); dialErr == nil {
		return nil, fmt.Errorf("endpoint %s already has a live daemon", addr)
	}

	if reclaimErr := endpoint.ReclaimStale(addr); reclaimErr != nil {
		return nil, fmt.Errorf("bind endpoint %s: %w", addr, reclaimErr)
	}
	return endpoint.Listen(addr)
}

func (d *Daemon) acceptLoop(ctx context.Context, lis net.Listener, handler *dispatchHandler) {
	for {
		conn, err := lis.Accept()
		if err != nil {
			select {
			case <-d.shutdownChan:
				return
			default:
			}
			logging.GetLogger().Warning("daemon: accept error: %v", err)
			return
		}
		d.touchIdleTracker()

		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			defer conn.Close()
			if uid, credErr := endpoint.PeerCredentials(conn); credErr != nil || uid != os.Getuid() {
				logging.GetLogger().Warning("daemon: rejecting connection from peer uid %d: %v", uid, credErr)
				return
			}
			jc := rpc.NewConn(ctx, conn, handler)
			select {
			case <-jc.DisconnectNotify():
			case <-d.shutdownChan:
			}
		}()
	}
}

func (d *Daemon) idleSweepLoop(ctx context.Context) {
	ticker := time.NewTicker(idleSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-d.shutdownChan:
			return
		case <-ticker.C:
			if d.cfg.IdleTimeout <= 0 {
				continue
			}
			d.pool.CleanupIdle(ctx, d.cfg.IdleTimeout.Nanoseconds())
			if d.idleFor() >= d.cfg.IdleTimeout {
				d.beginShutdown("idle timeout")
				return
			}
		}
	}
}

func (d *Daemon) touchIdleTracker() {
	atomic.StoreInt64(&d.lastAcceptNanos, d.clock.Now().UnixNano())
}

func (d *Daemon) idleFor() time.Duration {
	last := atomic.LoadInt64(&d.lastAcceptNanos)
	return d.clock.Now().Sub(time.Unix(0, last))
}

// beginShutdown is idempotent: whichever trigger (explicit request, idle
// timeout, fatal fault, context cancellation) fires first wins, and later
// triggers are no-ops.
func (d *Daemon) beginShutdown(reason string) {
	d.shutdownOnce.Do(func() {
		logging.GetLogger().Info("daemon: shutting down (%s)", reason)
		time.Sleep(drainGrace)
		close(d.shutdownChan)
	})
}

// Fatal triggers the shutdown coordinator for a fatal internal fault.
func (d *Daemon) Fatal(err error) {
	logging.GetLogger().Critical("daemon: fatal error: %v", err)
	go d.beginShutdown(fmt.Sprintf("fatal error: %v", err))
}
