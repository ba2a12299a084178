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
	"github.com/lspkeep/lspkeep/endpoint"
)

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Ask the running daemon to shut down",
	RunE:  runShutdown,
}

func init() {
	rootCmd.AddCommand(shutdownCmd)
}

func runShutdown(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	addr, err := endpoint.Address()
	if err != nil {
		return err
	}
	c, err := client.Connect(addr)
	if err != nil {
		pterm.Info.Println("no daemon running")
		return nil
	}
	defer c.Close()

	if err := c.Shutdown(ctx); err != nil {
		return err
	}
	pterm.Success.Println("shutdown requested")
	return nil
}
