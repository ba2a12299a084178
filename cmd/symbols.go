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

package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/lspkeep/lspkeep/client"
	"github.com/lspkeep/lspkeep/lspclient"
)

var workspaceSymbolsCmd = &cobra.Command{
	Use:   "workspace-symbols",
	Short: "Search symbols across a workspace",
	RunE:  runWorkspaceSymbols,
}

var documentSymbolsCmd = &cobra.Command{
	Use:   "document-symbols",
	Short: "List symbols in a single file",
	RunE:  runDocumentSymbols,
}

func init() {
	workspaceSymbolsCmd.Flags().String("workspace", "", "workspace root directory")
	workspaceSymbolsCmd.Flags().String("query", "", "symbol name query")
	workspaceSymbolsCmd.Flags().Int("limit", 0, "maximum results (0 = analyzer default)")
	workspaceSymbolsCmd.Flags().Bool("json", false, "print raw JSON instead of formatted text")
	workspaceSymbolsCmd.MarkFlagRequired("workspace")
	workspaceSymbolsCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(workspaceSymbolsCmd)

	documentSymbolsCmd.Flags().String("workspace", "", "workspace root directory")
	documentSymbolsCmd.Flags().String("file", "", "file within the workspace")
	documentSymbolsCmd.Flags().Bool("json", false, "print raw JSON instead of formatted text")
	documentSymbolsCmd.MarkFlagRequired("workspace")
	documentSymbolsCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(documentSymbolsCmd)
}

func runWorkspaceSymbols(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	workspace, _ := cmd.Flags().GetString("workspace")
	workspace, err := expandPath(workspace)
	if err != nil {
		return err
	}
	query, _ := cmd.Flags().GetString("query")
	limit, _ := cmd.Flags().GetInt("limit")

	c, err := client.EnsureRunning(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.WorkspaceSymbols(ctx, workspace, query, limit)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(result)
	}
	printSymbolInformation(result)
	return nil
}

func runDocumentSymbols(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	workspace, _ := cmd.Flags().GetString("workspace")
	workspace, err := expandPath(workspace)
	if err != nil {
		return err
	}
	file, _ := cmd.Flags().GetString("file")

	c, err := client.EnsureRunning(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.DocumentSymbols(ctx, workspace, file)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(result)
	}
	printDocumentSymbols(result, 0)
	return nil
}

func printSymbolInformation(symbols []lspclient.SymbolInformation) {
	if len(symbols) == 0 {
		pterm.Info.Println("no results")
		return
	}
	for _, sym := range symbols {
		line := sym.Name
		if sym.ContainerName != "" {
			line = sym.ContainerName + "." + line
		}
		pterm.Printf("%s  %s:%d:%d\n", line, sym.Location.URI, sym.Location.Range.Start.Line+1, sym.Location.Range.Start.Character+1)
	}
}

func printDocumentSymbols(symbols []lspclient.DocumentSymbol, depth int) {
	if len(symbols) == 0 && depth == 0 {
		pterm.Info.Println("no results")
		return
	}
	for _, sym := range symbols {
		pterm.Printf("%s%s:%d\n", indent(depth), sym.Name, sym.Range.Start.Line+1)
		printDocumentSymbols(sym.Children, depth+1)
	}
}

func indent(depth int) string {
	out := ""
	for range depth {
		out += "  "
	}
	return out
}
