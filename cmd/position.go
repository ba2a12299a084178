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
	"github.com/spf13/cobra"

	"github.com/lspkeep/lspkeep/client"
)

// addPositionFlags registers the --workspace/--file/--line/--column flags
// shared by hover, definition, and references, all one-based at this
// boundary.
func addPositionFlags(c *cobra.Command) {
	c.Flags().String("workspace", "", "workspace root directory")
	c.Flags().String("file", "", "file within the workspace")
	c.Flags().Int("line", 1, "one-based line number")
	c.Flags().Int("column", 1, "one-based column number")
	c.MarkFlagRequired("workspace")
	c.MarkFlagRequired("file")
	c.MarkFlagRequired("line")
	c.MarkFlagRequired("column")
}

func positionRequestFromFlags(c *cobra.Command) (client.PositionRequest, error) {
	workspace, err := c.Flags().GetString("workspace")
	if err != nil {
		return client.PositionRequest{}, err
	}
	workspace, err = expandPath(workspace)
	if err != nil {
		return client.PositionRequest{}, err
	}
	file, err := c.Flags().GetString("file")
	if err != nil {
		return client.PositionRequest{}, err
	}
	line, err := c.Flags().GetInt("line")
	if err != nil {
		return client.PositionRequest{}, err
	}
	column, err := c.Flags().GetInt("column")
	if err != nil {
		return client.PositionRequest{}, err
	}
	return client.PositionRequest{
		Workspace: workspace,
		File:      file,
		Line:      line,
		Column:    column,
	}, nil
}
