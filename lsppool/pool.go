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

// Package lsppool owns the map of workspace -> warm LSP client, lazily
// creating entries and evicting idle ones.
package lsppool

import (
	"context"
	"fmt"
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
	"golang.org/x/sync/singleflight"

	"github.com/lspkeep/lspkeep/internal/logging"
	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/lspclient"
	"github.com/lspkeep/lspkeep/rpc"
)

// entry is one pool row: the shared client handle plus the bookkeeping the
// idle sweep and in-flight tracking need.
type entry struct {
	client         *lspclient.Client
	inFlight       int
	lastAccessTime int64 // unix nanos, read by cleanup under the pool lock
}

// Pool maps workspace key -> warm LSP client. The map lock is held only for
// the duration of a lookup or insert, never across the handshake that
// creates a new entry — that wait is arbitrated by group instead, so
// concurrent callers for the same workspace block on the single in-flight
// creation rather than racing to spawn duplicate children.
type Pool struct {
	mu      deadlock.Mutex
	entries map[string]*entry
	group   singleflight.Group

	registry *lspclient.Registry
	fs       platform.FileSystem
	clock    platform.TimeProvider
}

// New returns an empty pool that spawns clients via registry and reads
// workspace files through fs.
func New(registry *lspclient.Registry, fs platform.FileSystem, clock platform.TimeProvider) *Pool {
	return &Pool{
		entries:  make(map[string]*entry),
		registry: registry,
		fs:       fs,
		clock:    clock,
	}
}

// GetOrCreate returns the shared client for workspace, creating and
// handshaking one if none exists yet. Concurrent callers for the same
// workspace all observe the same singleflight.Group call and thus the same
// client, never spawning a second child for one workspace.
func (p *Pool) GetOrCreate(ctx context.Context, workspace string) (*lspclient.Client, error) {
	if !p.fs.Exists(workspace) {
		return nil, rpc.WorkspaceNotFound(workspace)
	}
	stat, err := p.fs.Stat(workspace)
	if err != nil || !stat.IsDir() {
		return nil, rpc.WorkspaceNotFound(workspace)
	}

	p.mu.Lock()
	e, found := p.entries[workspace]
	if found && e.client.Alive() {
		e.lastAccessTime = p.clock.Now().UnixNano()
		p.mu.Unlock()
		return e.client, nil
	}
	p.mu.Unlock()

	if found {
		logging.GetLogger().Warning("lsppool: %s's client died, evicting and respawning", workspace)
		p.Evict(workspace)
	}

	result, err, _ := p.group.Do(workspace, func() (any, error) {
		client, err := p.createClient(ctx, workspace)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.entries[workspace] = &entry{
			client:         client,
			lastAccessTime: p.clock.Now().UnixNano(),
		}
		p.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*lspclient.Client), nil
}

func (p *Pool) createClient(ctx context.Context, workspace string) (*lspclient.Client, error) {
	language, err := lspclient.DetectLanguage(p.fs, workspace)
	if err != nil {
		return nil, rpc.LSPRequestFailed(fmt.Sprintf("cannot determine analyzer for %s: %v", workspace, err))
	}
	analyzer, ok := p.registry.Lookup(language)
	if !ok {
		return nil, rpc.LSPRequestFailed(fmt.Sprintf("no analyzer configured for language %q", language))
	}
	logging.GetLogger().Debug("lsppool: spawning %s for workspace %s (language %s)", analyzer.Invocation.Command, workspace, language)
	return lspclient.New(ctx, workspace, language, analyzer, p.fs)
}

// MarkBusy/MarkIdle bracket a dispatched request so CleanupIdle can skip
// entries with a request in flight: the pool never evicts an entry with
// in-flight requests.
func (p *Pool) MarkBusy(workspace string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[workspace]; ok {
		e.inFlight++
	}
}

func (p *Pool) MarkIdle(workspace string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if e, ok := p.entries[workspace]; ok {
		e.inFlight--
		e.lastAccessTime = p.clock.Now().UnixNano()
	}
}

// CleanupIdle evicts entries whose last access predates threshold and
// which have no request in flight, shutting down their LSP client. Called
// on the same cadence as the daemon's own idle sweep.
func (p *Pool) CleanupIdle(ctx context.Context, threshold int64) {
	now := p.clock.Now().UnixNano()

	p.mu.Lock()
	var evicted []*lspclient.Client
	for workspace, e := range p.entries {
		if e.inFlight > 0 {
			continue
		}
		if now-e.lastAccessTime < threshold {
			continue
		}
		evicted = append(evicted, e.client)
		delete(p.entries, workspace)
	}
	p.mu.Unlock()

	for _, client := range evicted {
		logging.GetLogger().Info("lsppool: evicting idle workspace %s", client.Workspace)
		client.Shutdown(ctx)
	}
}

// Evict immediately removes workspace's entry without waiting for the idle
// threshold — used when a client is discovered dead, so a failed LSP
// child doesn't linger in the pool.
func (p *Pool) Evict(workspace string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.entries, workspace)
}

// Size returns the number of warm workspaces, for `ping`'s cache_size.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Workspaces returns the keys currently warm, for `ping --verbose`.
func (p *Pool) Workspaces() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.entries))
	for k := range p.entries {
		out = append(out, k)
	}
	return out
}

// WorkspaceDiagnostic is one pool entry's operator-facing detail, for
// `ping --verbose`.
type WorkspaceDiagnostic struct {
	Workspace       string  `json:"workspace"`
	IdleSeconds     float64 `json:"idle_seconds"`
	PendingRequests int     `json:"pending_requests"`
}

// Diagnostics returns a per-workspace breakdown beyond the minimum `ping`
// contract — additive detail for operators, never part of the required
// response shape.
func (p *Pool) Diagnostics() []WorkspaceDiagnostic {
	now := p.clock.Now().UnixNano()

	p.mu.Lock()
	out := make([]WorkspaceDiagnostic, 0, len(p.entries))
	for workspace, e := range p.entries {
		out = append(out, WorkspaceDiagnostic{
			Workspace:       workspace,
			IdleSeconds:     float64(now-e.lastAccessTime) / float64(time.Second),
			PendingRequests: e.client.PendingCount(),
		})
	}
	p.mu.Unlock()
	return out
}

// ShutdownAll tears down every pool entry, for the shutdown coordinator.
func (p *Pool) ShutdownAll(ctx context.Context) {
	p.mu.Lock()
	entries := p.entries
	p.entries = make(map[string]*entry)
	p.mu.Unlock()

	for _, e := range entries {
		e.client.Shutdown(ctx)
	}
}
