// Package main provides the CLI entrypoint for meshmessenger.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/meshmessenger/meshmessenger/internal/config"
	"github.com/meshmessenger/meshmessenger/internal/tui"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		logFile    string
	}
	logger  *slog.Logger
	logSink io.Closer
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "meshmessenger",
	Short: "Terminal chat window",
	Long: `meshmessenger is a single-conversation chat window for the terminal.

It shows a header naming the peer, the message transcript, an input field
with a send button and a footer clock between two light/dark theme toggles.

Key bindings:
  enter       Send the message
  ctrl+t      Switch light/dark theme
  ctrl+l      Clear the chat
  ctrl+y      Copy the chat as YAML (alt+y for JSON)
  f1          Show help
  esc         Quit

Running meshmessenger without a subcommand opens the chat window.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config first: a failure here must not leave the log file open.
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return setupLogger()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logSink != nil {
			return logSink.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), tui.RunOptions{
			Config: getConfig(),
			Logger: logger,
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/meshmessenger/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.logFile, "log-file", "",
		"Write logs to this file (logs are discarded otherwise)")
}

// setupLogger configures the global slog logger. The window owns the
// terminal, so logs only go to --log-file.
func setupLogger() error {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var out io.Writer = io.Discard
	if globalOpts.logFile != "" {
		f, err := os.OpenFile(globalOpts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		logSink = f
	}

	handler := slog.NewTextHandler(out, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
	return nil
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
