package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/nao1215/passforge/internal/audit"
	"github.com/nao1215/passforge/internal/generator"
	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/strength"
)

// Default configuration values.
const (
	// DefaultConcurrency is the number of goroutines scoring an audit list.
	DefaultConcurrency = audit.DefaultConcurrency

	// DefaultCount is the number of passwords printed by generate.
	DefaultCount = 1

	// DefaultLanguage is the language of labels and messages.
	DefaultLanguage = "en"

	// AppName is the application name used for XDG directory paths.
	AppName = "passforge"
)

// Config holds the runtime options of a passforge command.
// It is built from CLI flags layered over the configuration file and
// passed explicitly to the code that needs it.
type Config struct {
	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// Language selects the locale for bucket labels.
	Language string

	// ConfigFilePath is the explicit --config path, if any.
	ConfigFilePath string

	// File is the parsed configuration file. Never nil after loading;
	// an empty File is used when no file exists.
	File *File

	// Generator holds generation flags given on the command line.
	// They take precedence over File.Generator.
	Generator generator.Settings

	// Count is the number of passwords to generate.
	Count int

	// Seed makes generation deterministic when non-empty.
	Seed string

	// Concurrency is the number of concurrent scorers used by audit.
	Concurrency int

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the destination of the audit report; stdout when empty.
	ReportFile string

	// DBDir is the directory holding the audit history database.
	DBDir string

	// SaveToDB records audit summaries in the history database.
	SaveToDB bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Language:    DefaultLanguage,
		File:        &File{},
		Count:       DefaultCount,
		Concurrency: DefaultConcurrency,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for passforge.
// On Linux: ~/.local/share/passforge
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for passforge.
// On Linux: ~/.config/passforge
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Count <= 0 {
		return ErrInvalidCount
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if !i18n.IsSupported(c.Language) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, c.Language)
	}

	if c.File != nil {
		w := c.File.Strength.Weights()
		if w.Symbol < 0 || w.Extended < 0 {
			return ErrInvalidWeight
		}
	}

	return nil
}

// GeneratorConfig returns the generation config: defaults, then the
// config file, then command-line flags.
func (c *Config) GeneratorConfig() generator.Config {
	settings := c.Generator
	if c.File != nil {
		settings = c.File.Generator.Merge(c.Generator)
	}
	return settings.Apply(generator.DefaultConfig())
}

// NewEstimator builds the strength estimator described by the config
// file. A configured reference list replaces the embedded one, or extends
// it when ExtendDefault is set.
func (c *Config) NewEstimator() (*strength.Estimator, error) {
	var sc StrengthConfig
	if c.File != nil {
		sc = c.File.Strength
	}

	opts := []strength.Option{strength.WithWeights(sc.Weights())}

	if sc.ReferenceList != "" {
		rl, err := strength.LoadReferenceList(sc.ReferenceList)
		if err != nil {
			return nil, err
		}
		if sc.ExtendDefault {
			rl = strength.DefaultReferenceList().Merge(rl)
		}
		opts = append(opts, strength.WithReferenceList(rl))
	}

	return strength.NewEstimator(opts...), nil
}
