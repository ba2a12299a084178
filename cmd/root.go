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
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lspkeep/lspkeep/internal/logging"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lspkeep",
	Short: "A persistent multiplexer for language server CLI invocations",
	Long: `lspkeep keeps a small pool of warm language server processes running
in the background, keyed by workspace, so that one-shot CLI invocations of
hover, definition, references, and symbol lookups don't pay a fresh
language server startup cost every time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// expandPath expands ~, handles relative and absolute paths.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else if strings.HasPrefix(path, "~/") {
			path = filepath.Join(home, path[2:])
		}
		// Note: ~user/ is not supported (Go stdlib doesn't provide this)
	}
	return filepath.Abs(path)
}

// defaultConfigPath returns $XDG_CONFIG_HOME/lspkeep/lspkeep.yaml, creating
// the lspkeep directory if needed but not the file; a missing file is
// tolerated by initConfig.
func defaultConfigPath() (string, error) {
	return xdg.ConfigFile(filepath.Join("lspkeep", "lspkeep.yaml"))
}

func initConfig() {
	cfgFile := viper.GetString("configFile")
	var err error
	if cfgFile != "" {
		cfgFile, err = expandPath(cfgFile)
		cobra.CheckErr(err)
	} else {
		cfgFile, err = defaultConfigPath()
		cobra.CheckErr(err)
	}

	if viper.GetBool("verbose") {
		pterm.EnableDebugMessages()
		logging.GetLogger().SetDebugEnabled(true)
	}

	viper.SetConfigType("yaml")
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err == nil {
		pterm.Debug.Println("Using config file: ", cfgFile)
	}
	viper.Set("configFile", cfgFile)

	viper.SetDefault("idleTimeout", "5m")
	viper.SetDefault("requestTimeout", "30s")
	viper.SetDefault("logLevel", "info")

	viper.SetEnvPrefix("lspkeep")
	viper.AutomaticEnv()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "config file (default is $XDG_CONFIG_HOME/lspkeep/lspkeep.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose logging output")
	viper.BindPFlag("configFile", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
