package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"climate-server/internal/app"
	"climate-server/internal/config"
	"climate-server/internal/logging"
)

const appName = "climate"

// Default version is "dev" if not set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           appName,
		Short:         "Read-only JSON API over historical weather station measurements",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(cmd.Context(), serve)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(cmd.Context(), serve)
		},
	}

	checkSchemaCmd := &cobra.Command{
		Use:   "check-schema",
		Short: "Verify the store has the measurement and station tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(cmd.Context(), app.CheckSchema)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary START [END]",
		Short: "Print TMIN, TAVG and TMAX for a date range as JSON",
		Long:  "Print TMIN, TAVG and TMAX between START and END (YYYY-MM-DD, inclusive).\nEND defaults to the latest date in the store.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end := args[0], ""
			if len(args) == 2 {
				end = args[1]
			}
			return runWithConfig(cmd.Context(), func(ctx context.Context, cfg config.Config) error {
				return app.Summary(ctx, cfg, cmd.OutOrStdout(), start, end)
			})
		},
	}

	rootCmd.AddCommand(serveCmd, checkSchemaCmd, summaryCmd)
	return rootCmd
}

// runWithConfig loads the configuration, installs the process logger and
// runs fn until SIGINT or SIGTERM.
func runWithConfig(parent context.Context, fn func(ctx context.Context, cfg config.Config) error) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return err
	}

	logger := logging.New(os.Stderr, cfg, version, appName)
	slog.SetDefault(logger)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "err", err)
		return err
	}
	return nil
}

func serve(ctx context.Context, cfg config.Config) error {
	slog.Info("starting",
		"version", version,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel.String(),
	)
	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("shutting down")
	return nil
}
