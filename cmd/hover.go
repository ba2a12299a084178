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
	"encoding/json"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/lspkeep/lspkeep/client"
)

var hoverCmd = &cobra.Command{
	Use:   "hover",
	Short: "Show hover information at a position",
	RunE:  runHover,
}

func init() {
	addPositionFlags(hoverCmd)
	hoverCmd.Flags().Bool("json", false, "print raw JSON instead of formatted text")
	rootCmd.AddCommand(hoverCmd)
}

func runHover(cmd *cobra.Command, args []string) error {
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

	result, err := c.Hover(ctx, req)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSON(result)
	}
	if result == nil {
		pterm.Info.Println("no hover information at that position")
		return nil
	}
	pterm.Println(result.Contents)
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
