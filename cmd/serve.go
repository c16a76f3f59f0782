package cmd

import (
	"github.com/spf13/cobra"

	"github.com/adarchive/adlib-gateway/config"
	"github.com/adarchive/adlib-gateway/pkg/logger"
	"github.com/adarchive/adlib-gateway/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP Server",
	Long:  `Starts the gateway HTTP server under the overseer supervisor`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := server.Start(config.Get().App.Port); err != nil {
			logger.WithScope("serveCmd").Error().Err(err).Msg("Failed to start server")
		}
	},
}

// devCmd runs the same server without the overseer wrapper, for hot reload
// during development.
var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Start HTTP Server (development)",
	Run: func(cmd *cobra.Command, args []string) {
		if err := server.Start(config.Get().App.Port); err != nil {
			logger.WithScope("devCmd").Error().Err(err).Msg("Failed to start server")
		}
	},
}
