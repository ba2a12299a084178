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

var definitionCmd = &cobra.Command{
	Use:   "definition",
	Short: "Find the definition of the symbol at a position",
	RunE:  runDefinition,
}

func init() {
	addPositionFlags(definitionCmd)
	definitionCmd.Flags().Bool("json", false, "print raw JSON instead of formatted text")
	rootCmd.AddCommand(definitionCmd)
}

func runDefinition(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	req, err := positionRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	c, err := client.EnsureRunning(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.Definition(ctx, req)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(result)
	}
	printLocations(result)
	return nil
}

func printLocations(locations []lspclient.Location) {
	if len(locations) == 0 {
		pterm.Info.Println("no results")
		return
	}
	for _, loc := range locations {
		pterm.Printf("%s:%d:%d\n", loc.URI, loc.Range.Start.Line+1, loc.Range.Start.Character+1)
	}
}
