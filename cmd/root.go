package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meetingreel/config"
	"meetingreel/logger"
	"meetingreel/server"
)

var rootCmd = &cobra.Command{
	Use:   "meetingreel",
	Short: "meetingreel composes highlight reels from meeting recordings.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.InitLogger(logger.Config{
			Level:      logger.LogLevel(cfg.LogLevel),
			OutputPath: cfg.LogPath,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAge,
			Compress:   true,
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Running without a subcommand starts the HTTP server.
		server.Start(config.Load())
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
