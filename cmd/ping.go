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
	"github.com/lspkeep/lspkeep/health"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check daemon status, starting it if necessary",
	RunE:  runPing,
}

func init() {
	pingCmd.Flags().Bool("verbose", false, "include a per-workspace breakdown")
	pingCmd.Flags().Bool("json", false, "print raw JSON instead of a formatted report")
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	c, err := client.EnsureRunning(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	verbose, _ := cmd.Flags().GetBool("verbose")
	asJSON, _ := cmd.Flags().GetBool("json")

	result, err := c.Ping(ctx, verbose)
	if err != nil {
		return err
	}
	return health.PrintPingResult(result, health.DisplayOptions{JSON: asJSON})
}
