package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/passforge/internal/config"
	"github.com/nao1215/passforge/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for passforge.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passforge",
		Short: "Password strength estimator and secure generator",
		Long: `passforge estimates how hard a password is to guess and generates
new passwords from a cryptographically secure random source.

Strength is reported as one of five buckets (Very weak, Weak, Fair,
Strong, Excellent) together with an entropy estimate in bits.
Passwords are never written to logs, reports or the history database.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .passforge.yaml in current directory or XDG config directory)")
	cmd.PersistentFlags().String("lang", config.DefaultLanguage,
		"Language of labels and messages (en, de, ja)")
	cmd.PersistentFlags().String("log-format", string(log.FormatText),
		"Log format written to stderr (text, json)")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewAuditCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig creates a Config from the global flags and the
// configuration file. Command-specific flags are applied by the caller.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg.Language, err = cmd.Flags().GetString("lang")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config path must exist; otherwise a missing file
	// just means defaults.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		f, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(f, cmd.Flags().Changed("lang"), cmd.Flags().Changed("concurrency"))
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	return cfg, nil
}

// newLogger creates the secure logger selected by --log-format and
// --verbose. Logs go to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	name, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return nil, err
	}
	format, err := log.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return log.NewSecureLogger(cmd.ErrOrStderr(), format, cfg.Verbose), nil
}

// setup validates cfg and returns the logger for a command run.
func setup(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	if cfg.ConfigFilePath != "" {
		logger.Debug("using configuration file", "path", cfg.ConfigFilePath)
	}
	return logger, nil
}
