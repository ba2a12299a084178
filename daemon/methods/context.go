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

// Package methods holds one file per RPC method the daemon exposes,
// mirroring the dispatcher's method table one-to-one.
package methods

import (
	"time"

	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/lsppool"
)

// Context carries everything a method handler needs, threaded through by
// the dispatcher. It is never retained past the handler call that receives
// it.
type Context struct {
	Pool      *lsppool.Pool
	FS        platform.FileSystem
	Clock     platform.TimeProvider
	StartTime time.Time

	// ShutdownRequested is called by the shutdown handler as it returns,
	// before the dispatcher writes the response, to signal the acceptor to
	// begin the shutdown sequence; it must not block.
	ShutdownRequested func()
}
