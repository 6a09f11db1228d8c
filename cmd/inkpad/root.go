package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkpad-app/inkpad"
	"github.com/inkpad-app/inkpad/internal/config"
)

var (
	verbose    bool
	configPath string
	dataDir    string
	hostSocket string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "inkpad",
	Short: "Local-first note storage with reference-counted image assets",
	Long: `Inkpad stores notes as individual JSON documents and image assets as
opaque blobs, with a startup scan that reclaims assets no note references.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		// Flags beat config file and environment.
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if hostSocket != "" {
			cfg.HostSocket = hostSocket
		}

		level := parseLevel(cfg.LogLevel)
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "App data directory (defaults to the platform config dir)")
	rootCmd.PersistentFlags().StringVar(&hostSocket, "socket", "", "Host channel socket (implies the host backend)")
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// openApp wires the app for one-shot commands. The startup GC scan is left
// to the `gc` command so reads never mutate assets implicitly.
func openApp(ctx context.Context) (*inkpad.App, error) {
	opts := []inkpad.Option{
		inkpad.WithLogger(slog.Default()),
		inkpad.WithoutGC(),
	}
	if cfg.DataDir != "" {
		opts = append(opts, inkpad.WithDataDir(cfg.DataDir))
	}
	if cfg.Backend != "" {
		opts = append(opts, inkpad.WithBackend(cfg.Backend))
	}
	if cfg.HostSocket != "" {
		opts = append(opts, inkpad.WithHostSocket(cfg.HostSocket))
	}
	return inkpad.New(ctx, opts...)
}
