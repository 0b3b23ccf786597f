package cmd

import (
	"github.com/spf13/cobra"

	"meetingreel/config"
	"meetingreel/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reel generation HTTP server",
	Long:  `Start the HTTP server exposing POST /api/reels for reel generation and GET /api/health.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start(config.Load())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
