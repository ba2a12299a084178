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
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	lspkeepconfig "github.com/lspkeep/lspkeep/cmd/config"
	"github.com/lspkeep/lspkeep/daemon"
	"github.com/lspkeep/lspkeep/endpoint"
	"github.com/lspkeep/lspkeep/internal/logging"
	"github.com/lspkeep/lspkeep/internal/platform"
	"github.com/lspkeep/lspkeep/lspclient"
	"github.com/lspkeep/lspkeep/lsppool"
)

// daemonCmd is the acceptor's actual entry point. The bootstrapper execs
// `lspkeep daemon` (without --foreground) and detaches it; it is hidden
// because end users never invoke it directly.
var daemonCmd = &cobra.Command{
	Use:    "daemon",
	Short:  "Run the lspkeep daemon (internal)",
	Hidden: true,
	RunE:   runDaemon,
}

func init() {
	daemonCmd.Flags().Bool("foreground", false, "log to stderr instead of the daemon log file, for debugging")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	foreground, _ := cmd.Flags().GetBool("foreground")
	if !foreground {
		logPath, err := xdg.StateFile(filepath.Join("lspkeep", "daemon.log"))
		if err == nil {
			if f, openErr := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); openErr == nil {
				logging.GetLogger().SetOutput(f)
			}
		}
	}
	logging.GetLogger().SetMode(logging.ModeDaemon)

	addr, err := endpoint.Address()
	if err != nil {
		return fmt.Errorf("compute endpoint address: %w", err)
	}

	fs := platform.NewOSFileSystem()
	clock := platform.NewRealTimeProvider()

	var watcher platform.FileWatcher
	if fw, watchErr := platform.NewFSNotifyFileWatcher(); watchErr == nil {
		watcher = fw
		defer fw.Close()
	} else {
		logging.GetLogger().Warning("daemon: file watcher unavailable: %v", watchErr)
	}

	var lkCfg lspkeepconfig.LSPKeepConfig
	if err := viper.Unmarshal(&lkCfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := lkCfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch lkCfg.LogLevel {
	case "debug":
		logging.GetLogger().SetDebugEnabled(true)
	case "warning", "error":
		logging.GetLogger().SetQuietEnabled(true)
	}

	registry, err := lspclient.NewRegistry(lkCfg.AnalyzersFile, watcher)
	if err != nil {
		return fmt.Errorf("load analyzer registry: %w", err)
	}

	pool := lsppool.New(registry, fs, clock)

	cfg := daemon.Config{
		IdleTimeout:    lkCfg.IdleTimeout,
		RequestTimeout: lkCfg.RequestTimeout,
	}
	d := daemon.New(cfg, pool, clock)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logging.GetLogger().Info("daemon: listening on %s", addr)
	return d.Run(ctx, addr)
}
