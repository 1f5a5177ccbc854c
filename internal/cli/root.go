// Package cli defines the command-line interface for talkpage.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"impractical.co/talkpage/internal/config"
	"impractical.co/talkpage/internal/logging"
)

// Version is the talkpage build version, set at link time.
var Version = "dev"

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	rootCmd := newRootCommand(cfg, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(cfg config.Config, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "talkpage",
		Short: "talkpage renders talk pages for previews and theme development",
		Long:  "talkpage renders the discussion view of a content node from a YAML or JSON render context, using the built-in templates or a theme directory of overrides.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newRenderCommand(cfg),
		newVersionCommand(),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
