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

// Package health renders the daemon's `ping` result for the CLI, the way
// the original health reports rendered a manifest's module scores: a
// summary line, then (in verbose mode) a table of per-workspace detail.
package health

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/lspkeep/lspkeep/daemon/methods"
)

// DisplayOptions configures ping output formatting.
type DisplayOptions struct {
	JSON bool
}

// PrintPingResult prints result per options to stdout.
func PrintPingResult(result methods.PingResult, options DisplayOptions) error {
	return FprintPingResult(os.Stdout, result, options)
}

// FprintPingResult is PrintPingResult with an explicit writer, letting
// tests capture output without redirecting os.Stdout.
func FprintPingResult(w io.Writer, result methods.PingResult, options DisplayOptions) error {
	if options.JSON {
		return printPingResultJSON(w, result)
	}
	printPingResultText(w, result)
	return nil
}

func printPingResultJSON(w io.Writer, result methods.PingResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printPingResultText(w io.Writer, result methods.PingResult) {
	statusStyle := pterm.FgGreen
	if result.Status != "running" {
		statusStyle = pterm.FgRed
	}

	section := pterm.DefaultSection.WithWriter(w)
	section.Println("lspkeep")
	items := []pterm.BulletListItem{
		{Level: 0, Text: fmt.Sprintf("status: %s", statusStyle.Sprint(result.Status))},
		{Level: 0, Text: fmt.Sprintf("uptime: %s", formatSeconds(result.UptimeSeconds))},
		{Level: 0, Text: fmt.Sprintf("active workspaces: %d", result.ActiveWorkspaces)},
		{Level: 0, Text: fmt.Sprintf("cache size: %d", result.CacheSize)},
	}
	_ = pterm.DefaultBulletList.WithWriter(w).WithItems(items).Render()

	if len(result.Workspaces) == 0 {
		return
	}

	fmt.Fprintln(w)
	section.WithLevel(2).Println("workspaces")
	headers := []string{"workspace", "idle", "pending"}
	rows := make([][]string, 0, len(result.Workspaces))
	for _, ws := range result.Workspaces {
		rows = append(rows, []string{
			ws.Workspace,
			formatSeconds(int64(ws.IdleSeconds)),
			fmt.Sprintf("%d", ws.PendingRequests),
		})
	}
	data := pterm.TableData{headers}
	data = append(data, rows...)
	out, err := pterm.DefaultTable.WithHasHeader(true).WithBoxed(false).WithData(data).Srender()
	if err != nil {
		fmt.Fprintf(w, "render workspace table: %v\n", err)
		return
	}
	fmt.Fprintln(w, out)
}

func formatSeconds(seconds int64) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	if seconds < 3600 {
		return fmt.Sprintf("%dm%ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%dh%dm", seconds/3600, (seconds%3600)/60)
}
