package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/adarchive/adlib-gateway/config"
	"github.com/adarchive/adlib-gateway/pkg/archive"
	"github.com/adarchive/adlib-gateway/pkg/logger"
	"github.com/adarchive/adlib-gateway/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "adlib-gateway",
	Short: "Ad Library Archive Gateway",
	Long:  `HTTP gateway exposing search, count and trending aggregation over the ad library archive`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error().Err(err).Msg("Failed to execute command")
		os.Exit(1)
	}
}

// init initializes all application dependencies and registers commands
func init() {
	// Initialize config
	if err := config.Init(); err != nil {
		panic(err)
	}

	// Initialize logger
	logger.Init(config.Get().App.Timezone, config.Get().App.Env)

	// Initialize timezone helpers
	if err := utils.InitTimezone(); err != nil {
		logger.Warn().Err(err).Msg("Timezone initialization failed, continuing with UTC")
	}

	// Initialize archive client
	if err := archive.Init(); err != nil {
		logger.Error().Err(err).Msg("Failed to initialize archive client")
		panic(err)
	}

	// Add commands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(devCmd)
}
