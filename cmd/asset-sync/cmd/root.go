package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/asset-sync/internal/config"
	"github.com/oshokin/asset-sync/internal/logger"
	"github.com/oshokin/asset-sync/internal/service/sync"
	"github.com/oshokin/asset-sync/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel overrides the default logging level.
	logLevel string

	// rootCmd synchronizes assets around an optional wrapped build command.
	rootCmd = &cobra.Command{
		Use:   "asset-sync [flags] [-- build command...]",
		Short: "Synchronize remote assets into the public directory around a build",
		Long: "Query the content backend, download missing or changed assets into the " +
			"staging directory, run the wrapped build command if one is given, then " +
			"remove the staging directory again if this run created it.",
		Args: cobra.ArbitraryArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			service, err := sync.New(cfg)
			if err != nil {
				return err
			}

			// A broken backend stops the build; nothing gets built
			// against a half-missing asset set for no reason.
			if err = service.OnBuildStart(ctx); err != nil {
				return err
			}

			buildErr := runBuildCommand(ctx, args)

			// The staging directory must not outlive the build artifact,
			// even when the wrapped command failed.
			if err = service.OnBuildEnd(ctx); err != nil {
				return err
			}

			return buildErr
		},
	}
)

// runBuildCommand executes the wrapped build command, when one was provided.
func runBuildCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return nil
	}

	buildCmd := exec.CommandContext(ctx, args[0], args[1:]...)
	buildCmd.Stdout = os.Stdout
	buildCmd.Stderr = os.Stderr

	if err := buildCmd.Run(); err != nil {
		return fmt.Errorf("build command: %w", err)
	}

	return nil
}

// Execute runs the asset-sync CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "logging level (debug, info, warn, error)")
}
