package cmd

import (
	"fmt"
	"os"

	"gdps-backend/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gdps-backend",
	Short: "GDPS Backend Service",
	Long: `GDPS Backend is the persistence layer of a Geometry Dash private server.
It keeps the MySQL source of truth, the Meilisearch index and the per-instance
caches in sync across a fleet of stateless server instances.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format so CLI errors stay readable outside the log pipeline.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
