package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tesseract-hub/property-service/internal/config"
	"github.com/tesseract-hub/property-service/internal/export"
	"github.com/tesseract-hub/property-service/internal/models"
	"github.com/tesseract-hub/property-service/internal/seed"
)

type depsFunc = func() (*config.Config, *logrus.Logger)

// writeOutput writes data to path, or to the command's stdout when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func reportCmd(deps depsFunc) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard report as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := deps()
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.analytics.ExportDashboardReport(ctx)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func exportCmd(deps depsFunc) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export <collection>",
		Short: "Export an entity collection as CSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, logger := deps()
			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			data, err := a.analytics.ExportCollection(args[0], f)
			if err != nil {
				return err
			}
			if output == "." {
				output = export.Filename(args[0], f, time.Now())
			}
			return writeOutput(cmd, output, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Export format (csv or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file; \".\" uses the default export filename")
	return cmd
}

func syncCmd(deps depsFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local state to the remote analytics service and refresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := deps()
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if cfg.Remote.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, 4*cfg.Remote.Timeout)
				defer cancel()
			}

			result := a.sync.Refresh(ctx)
			if result.Source != models.SourceRemote {
				logger.WithField("error", result.Error).Warn("Remote unavailable, printed metrics are local")
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}

func seedCmd(deps depsFunc) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo portfolio into the configured store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := deps()
			ctx := cmd.Context()
			a, err := newApp(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(a.repo.ListProperties()) > 0 && !force {
				return fmt.Errorf("store already holds data; rerun with --force to replace it")
			}

			demo := seed.Demo(time.Now())
			if err := a.sync.ImportSnapshot(ctx, demo); err != nil {
				return err
			}
			logger.WithFields(logrus.Fields{
				"properties":   len(demo.Properties),
				"tenants":      len(demo.Tenants),
				"applications": len(demo.Applications),
			}).Info("Seeded demo portfolio")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing data")
	return cmd
}
