package main

import (
	"fmt"

	"github.com/nao1215/passforge/internal/config"
	"github.com/nao1215/passforge/internal/generator"
	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/meter"
	"github.com/nao1215/passforge/internal/random"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	defaults := generator.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords",
		Long: `Generate creates passwords from a cryptographically secure random source.

Every selected character class appears at least once. Lengths outside
8..64 are clamped, and selecting no class falls back to lowercase letters.
Flags override the generator section of the configuration file.

Examples:
  # One 16-character password with letters and digits
  passforge generate

  # Five 24-character passwords including symbols
  passforge generate -l 24 -s -n 5

  # Digits only, with a strength meter
  passforge generate --upper=false --lower=false --score`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	cmd.Flags().IntP("length", "l", defaults.Length,
		fmt.Sprintf("Password length (%d to %d)", generator.MinLength, generator.MaxLength))
	cmd.Flags().Bool("upper", defaults.IncludeUpper, "Include uppercase letters")
	cmd.Flags().Bool("lower", defaults.IncludeLower, "Include lowercase letters")
	cmd.Flags().Bool("digits", defaults.IncludeDigits, "Include digits")
	cmd.Flags().BoolP("symbols", "s", defaults.IncludeSymbols, "Include symbols")
	cmd.Flags().IntP("count", "n", config.DefaultCount, "Number of passwords to generate")
	cmd.Flags().Bool("score", false, "Print a strength meter next to each password")

	// Deterministic output for fixtures and tests. Never use for real passwords.
	cmd.Flags().String("seed", "", "Seed for deterministic generation")
	_ = cmd.Flags().MarkHidden("seed") //nolint:errcheck // flag is defined above

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := applyGeneratorFlags(cmd, cfg); err != nil {
		return err
	}

	score, err := cmd.Flags().GetBool("score")
	if err != nil {
		return err
	}

	logger, err := setup(cmd, cfg)
	if err != nil {
		return err
	}

	var source random.Source = random.NewCrypto()
	if cfg.Seed != "" {
		logger.Warn("using a seeded random source; output is predictable", "seed", cfg.Seed)
		source = random.NewSeeded([]byte(cfg.Seed))
	}

	gc := cfg.GeneratorConfig()
	if n := generator.ClampLength(gc.Length); gc.Length != 0 && n != gc.Length {
		logger.Warn("password length clamped", "requested", gc.Length, "length", n)
	}
	gc = gc.Normalize()

	logger.Debug("generating passwords",
		"length", gc.Length,
		"upper", gc.IncludeUpper,
		"lower", gc.IncludeLower,
		"digits", gc.IncludeDigits,
		"symbols", gc.IncludeSymbols,
		"count", cfg.Count,
	)

	gen := generator.New(source)
	out := cmd.OutOrStdout()

	if !score {
		for range cfg.Count {
			fmt.Fprintln(out, gen.Generate(gc))
		}
		return nil
	}

	estimator, err := cfg.NewEstimator()
	if err != nil {
		return fmt.Errorf("failed to build estimator: %w", err)
	}
	m := meter.New(out, i18n.New(cfg.Language))
	for range cfg.Count {
		pw := gen.Generate(gc)
		fmt.Fprintf(out, "%s  %s\n", pw, m.Render(estimator.Score(pw)))
	}
	return nil
}

// applyGeneratorFlags copies generator flags into cfg. Only flags given on
// the command line are set, so configuration file values survive.
func applyGeneratorFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed("length") {
		n, err := flags.GetInt("length")
		if err != nil {
			return err
		}
		cfg.Generator.Length = &n
	}

	for name, dst := range map[string]**bool{
		"upper":   &cfg.Generator.Upper,
		"lower":   &cfg.Generator.Lower,
		"digits":  &cfg.Generator.Digits,
		"symbols": &cfg.Generator.Symbols,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = &v
	}

	count, err := flags.GetInt("count")
	if err != nil {
		return err
	}
	cfg.Count = count

	cfg.Seed, err = flags.GetString("seed")
	return err
}
