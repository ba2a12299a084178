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

	"github.com/spf13/cobra"

	"github.com/lspkeep/lspkeep/client"
)

var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Find references to the symbol at a position",
	RunE:  runReferences,
}

func init() {
	addPositionFlags(referencesCmd)
	referencesCmd.Flags().Bool("include-declaration", false, "include the declaration site in results")
	referencesCmd.Flags().Bool("json", false, "print raw JSON instead of formatted text")
	rootCmd.AddCommand(referencesCmd)
}

func runReferences(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	pos, err := positionRequestFromFlags(cmd)
	if err != nil {
		return err
	}
	includeDecl, _ := cmd.Flags().GetBool("include-declaration")

	c, err := client.EnsureRunning(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	result, err := c.References(ctx, client.ReferencesRequest{
		PositionRequest:    pos,
		IncludeDeclaration: includeDecl,
	})
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
