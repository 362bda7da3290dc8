// Command utfall downloads Japan Post's utf_all.csv when it changed and loads it
// into a local SQLite database.
//
// It takes no arguments. Settings come from UTFALL_* environment variables,
// optionally read from a .env file in the working directory.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nao1215/utfall"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "utfall",
		Short:         "Mirror Japan Post's utf_all.csv into SQLite",
		Long:          "Download utf_all.csv when its Last-Modified changed and rebuild the utf_all table in a local SQLite database.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}

	root.AddCommand(versionCmd)
	return root
}

func run(ctx context.Context) error {
	// A missing .env file is fine; the process environment is used as is
	envFileErr := godotenv.Load()

	cfg, err := utfall.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		return err
	}

	logger := newLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if envFileErr == nil {
		logger.Debug("loaded .env file")
	}

	logger.Debug("configuration loaded",
		"base_dir", cfg.BaseDir,
		"endpoint", cfg.Endpoint,
		"table", cfg.Table,
		"batch_size", cfg.BatchSize,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := utfall.NewPipeline(cfg, utfall.WithLogger(logger)).Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		return err
	}
	return nil
}
