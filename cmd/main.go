package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tesseract-hub/property-service/internal/config"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg    *config.Config
		logger *logrus.Logger
	)

	rootCmd := &cobra.Command{
		Use:           "property-service",
		Short:         "Property management dashboard service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if driver, _ := cmd.Flags().GetString("storage"); driver != "" {
				cfg.Storage.Driver = driver
			}
			logger = newLogger(cfg.LogLevel, cfg.LogFormat)
		},
	}
	rootCmd.PersistentFlags().String("storage", "", "Override STORAGE_DRIVER (memory, sqlite, postgres, redis)")

	deps := func() (*config.Config, *logrus.Logger) { return cfg, logger }
	rootCmd.AddCommand(
		serveCmd(deps),
		reportCmd(deps),
		exportCmd(deps),
		syncCmd(deps),
		seedCmd(deps),
	)
	return rootCmd
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func newLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	switch level {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}
