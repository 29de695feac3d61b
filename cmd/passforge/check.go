package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nao1215/passforge/internal/audit"
	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/meter"
	"github.com/nao1215/passforge/internal/report"
	"github.com/nao1215/passforge/internal/strength"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [password...]",
		Short: "Estimate the strength of passwords",
		Long: `Check scores each password and prints a strength meter with the
bucket label and an entropy estimate in bits.

With no arguments, check prompts for one password without echoing it
when stdin is a terminal, or reads one password per line from piped stdin.
Passing passwords as arguments leaves them in your shell history; prefer
the prompt for real secrets.

Examples:
  # Prompt for a password
  passforge check

  # Score passwords from a pipe
  printf 'hunter2\ncorrect horse battery staple\n' | passforge check

  # Show which penalties and bonuses applied
  passforge check --explain

  # Machine-readable output
  passforge check --json < passwords.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runCheckCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output score, label and bits as JSON")
	cmd.Flags().BoolP("explain", "e", false,
		"List the penalties and bonuses behind each score")

	return cmd
}

// checkResult is the JSON form of one explained score.
type checkResult struct {
	strength.Summary
	Penalties []strength.Penalty `json:"penalties"`
	Bonuses   []strength.Bonus   `json:"bonuses"`
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	explain, err := cmd.Flags().GetBool("explain")
	if err != nil {
		return err
	}
	cfg.JSONReport = jsonOutput

	logger, err := setup(cmd, cfg)
	if err != nil {
		return err
	}

	estimator, err := cfg.NewEstimator()
	if err != nil {
		return fmt.Errorf("failed to build estimator: %w", err)
	}

	tr := i18n.New(cfg.Language)

	candidates, err := readCheckCandidates(cmd, args, tr)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return errors.New(tr.T("check.empty", nil))
	}

	results := make([]strength.Result, len(candidates))
	for i, c := range candidates {
		results[i] = estimator.Score(c)
		logger.Debug("scored candidate",
			"index", i,
			"bucket", results[i].Bucket.Key(),
			"bits", results[i].RoundedBits(),
		)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeCheckJSON(out, results, explain)
	}

	m := meter.New(out, tr)
	for _, res := range results {
		fmt.Fprintln(out, m.Render(res))
		if explain {
			writeExplanation(out, tr, res)
		}
	}
	return nil
}

// readCheckCandidates returns the passwords to score: the arguments, a
// no-echo prompt on a terminal, or the lines of piped stdin.
func readCheckCandidates(cmd *cobra.Command, args []string, tr *i18n.Translator) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), tr.T("check.prompt", nil))
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		if len(secret) == 0 {
			return nil, nil
		}
		return []string{string(secret)}, nil
	}

	lines, _, err := audit.ReadCandidates(in)
	if err != nil {
		return nil, err
	}
	candidates := make([]string, len(lines))
	for i, l := range lines {
		candidates[i] = l.Value
	}
	return candidates, nil
}

// writeCheckJSON writes summaries, or the full breakdown when explain is set.
func writeCheckJSON(w io.Writer, results []strength.Result, explain bool) error {
	jw := report.NewJSONWriter(w, report.WithPrettyPrint())

	if !explain {
		summaries := make([]strength.Summary, len(results))
		for i, res := range results {
			summaries[i] = res.Summary()
		}
		_, err := jw.WriteJSON(summaries)
		return err
	}

	explained := make([]checkResult, len(results))
	for i, res := range results {
		explained[i] = checkResult{
			Summary:   res.Summary(),
			Penalties: res.Penalties,
			Bonuses:   res.Bonuses,
		}
	}
	_, err := jw.WriteJSON(explained)
	return err
}

// writeExplanation lists the penalties and bonuses of res under the meter.
func writeExplanation(w io.Writer, tr *i18n.Translator, res strength.Result) {
	if len(res.Penalties) > 0 {
		fmt.Fprintf(w, "  %s:\n", tr.T("check.penalties", nil))
		for _, p := range res.Penalties {
			if p.Count > 1 {
				fmt.Fprintf(w, "    - %s (x%d): -%.1f\n", tr.Rule(p.Rule), p.Count, p.Bits)
				continue
			}
			fmt.Fprintf(w, "    - %s: -%.1f\n", tr.Rule(p.Rule), p.Bits)
		}
	}
	if len(res.Bonuses) > 0 {
		fmt.Fprintf(w, "  %s:\n", tr.T("check.bonuses", nil))
		for _, b := range res.Bonuses {
			fmt.Fprintf(w, "    - %s: +%.1f\n", tr.Rule(b.Rule), b.Bits)
		}
	}
}
