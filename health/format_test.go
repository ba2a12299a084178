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

package health_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lspkeep/lspkeep/daemon/methods"
	"github.com/lspkeep/lspkeep/health"
	"github.com/lspkeep/lspkeep/internal/platform/testutil"
	"github.com/lspkeep/lspkeep/lsppool"
)

func TestFprintPingResult_JSONGolden(t *testing.T) {
	var buf bytes.Buffer
	result := methods.PingResult{
		Status:           "running",
		UptimeSeconds:    90,
		ActiveWorkspaces: 2,
		CacheSize:        2,
	}

	require.NoError(t, health.FprintPingResult(&buf, result, health.DisplayOptions{JSON: true}))
	testutil.CheckGolden(t, "ping_result", buf.Bytes(), testutil.GoldenOptions{
		Dir:         "testdata/goldens",
		Extension:   ".json",
		UseJSONDiff: true,
	})
}

func TestFprintPingResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	result := methods.PingResult{
		Status:           "running",
		UptimeSeconds:    90,
		ActiveWorkspaces: 2,
		CacheSize:        2,
	}

	require.NoError(t, health.FprintPingResult(&buf, result, health.DisplayOptions{JSON: true}))

	var decoded methods.PingResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, result, decoded)
}

func TestFprintPingResult_TextIncludesStatusAndUptime(t *testing.T) {
	var buf bytes.Buffer
	result := methods.PingResult{
		Status:           "running",
		UptimeSeconds:    125,
		ActiveWorkspaces: 1,
		CacheSize:        1,
	}

	require.NoError(t, health.FprintPingResult(&buf, result, health.DisplayOptions{}))

	out := buf.String()
	assert.Contains(t, out, "lspkeep")
	assert.Contains(t, out, "2m5s")
}

func TestFprintPingResult_TextIncludesWorkspaceTableWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	result := methods.PingResult{
		Status: "running",
		Workspaces: []lsppool.WorkspaceDiagnostic{
			{Workspace: "/home/dev/project", IdleSeconds: 30, PendingRequests: 0},
		},
	}

	require.NoError(t, health.FprintPingResult(&buf, result, health.DisplayOptions{}))

	out := buf.String()
	assert.Contains(t, out, "workspaces")
	assert.Contains(t, out, "/home/dev/project")
}

func TestFprintPingResult_TextOmitsWorkspaceSectionWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	result := methods.PingResult{Status: "running"}

	require.NoError(t, health.FprintPingResult(&buf, result, health.DisplayOptions{}))

	assert.NotContains(t, buf.String(), "pending")
}
