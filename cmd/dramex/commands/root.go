package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"dramex-logger/cmd/dramex/globals"
	"dramex-logger/internal/components/telemetry"
	"dramex-logger/internal/snapshotlog"
	"dramex-logger/lib/configutil"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logDir     string
	prefix     string
)

var otelProviders telemetry.Otel

var rootCmd = &cobra.Command{
	Use:           "dramex",
	Short:         "dramex scrapes DRAM spot prices into a log of timestamped CSV snapshots.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(verbose)

		cfg, err := configutil.ReadConfig(configPath, globals.DefaultConfig())
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config: %w", err)
		}
		if cmd.Flags().Changed("dir") {
			cfg.LogDir = logDir
		}
		if cmd.Flags().Changed("prefix") {
			cfg.Prefix = prefix
		}
		if cfg.LogDir == "" || cfg.Prefix == "" {
			return fmt.Errorf("read config: log_dir and prefix must not be empty")
		}

		otelProviders, err = telemetry.SetupOtel(cmd.Context(), "dramex", cfg.Otlp)
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}

		tel := telemetry.SlogAPI{}
		cmd.SetContext(globals.Set(cmd.Context(), &globals.Value{
			Config: cfg,
			Tel:    tel,
			Log:    snapshotlog.New(cfg.LogDir, cfg.Prefix, tel),
		}))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "config.json5", "Path to the config file, <name>.local.<ext> overrides it.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	flags.StringVar(&logDir, "dir", snapshotlog.DefaultDir, "Directory holding the snapshot log.")
	flags.StringVar(&prefix, "prefix", snapshotlog.DefaultPrefix, "File name prefix of snapshot files.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)

	if shutdownErr := otelProviders.Shutdown(context.Background()); shutdownErr != nil {
		fmt.Fprintln(os.Stderr, "shutdown telemetry:", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
