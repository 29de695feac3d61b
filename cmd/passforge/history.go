package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/passforge/internal/config"
	"github.com/nao1215/passforge/internal/database"
	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/report"
	"github.com/spf13/cobra"
)

// historyTimeLayout is the date format of the history listing.
const historyTimeLayout = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded audits and compare them",
		Long: `History lists the audit summaries recorded by 'passforge audit'.

Only aggregate counts are stored: bucket distribution, penalty hits and
entropy statistics. Passwords and line numbers are never recorded.

Examples:
  # List every recorded audit
  passforge history

  # List audits of one password list
  passforge history --source /srv/lists/users.txt

  # List every audited source
  passforge history --sources

  # Compare the latest two audits of a source
  passforge history --compare --source /srv/lists/users.txt

  # Remove all audits of a source
  passforge history --delete --source /srv/lists/users.txt`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().StringP("source", "s", "",
		"Only show audits of this source (absolute list path or \"stdin\")")
	cmd.Flags().BoolP("sources", "S", false,
		"List every audited source")
	cmd.Flags().Bool("compare", false,
		"Compare the latest two audits of --source")
	cmd.Flags().Bool("delete", false,
		"Delete every audit of --source")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the comparison in Markdown format")

	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	source, err := flags.GetString("source")
	if err != nil {
		return err
	}
	listSources, err := flags.GetBool("sources")
	if err != nil {
		return err
	}
	compare, err := flags.GetBool("compare")
	if err != nil {
		return err
	}
	deleteSource, err := flags.GetBool("delete")
	if err != nil {
		return err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return err
	}

	// Validate arguments before opening the database.
	if compare && deleteSource {
		return errors.New("--compare and --delete cannot be used together")
	}
	if deleteSource && source == "" {
		return errors.New("--delete requires --source")
	}

	logger, err := setup(cmd, cfg)
	if err != nil {
		return err
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false

	tr := i18n.New(cfg.Language)
	ctx := cmd.Context()
	db, err := database.Open(ctx, cfg.DBDir, opts)
	if errors.Is(err, database.ErrDatabaseNotFound) && !compare {
		logger.Debug("history database not found", "dir", cfg.DBDir)
		fmt.Fprintln(cmd.OutOrStdout(), tr.T("history.no_audits", nil))
		fmt.Fprintln(cmd.OutOrStdout(), "\n"+tr.T("history.audit_hint", nil))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	switch {
	case listSources:
		return listAuditSources(ctx, out, db, tr, cfg.JSONReport)
	case deleteSource:
		n, err := db.DeleteSource(ctx, source)
		if err != nil {
			return err
		}
		logger.Info("deleted audits", "source", source, "count", n)
		fmt.Fprintln(out, tr.T("history.deleted", map[string]any{"Count": n, "Source": source}))
		return nil
	case compare:
		return compareAudits(ctx, out, db, tr, cfg, source)
	default:
		return listAuditHistory(ctx, out, db, tr, source, cfg.JSONReport)
	}
}

// listAuditSources prints every audited source.
func listAuditSources(ctx context.Context, out io.Writer, db *database.AuditDB, tr *i18n.Translator, jsonOutput bool) error {
	sources, err := db.ListSources(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		if sources == nil {
			sources = []string{}
		}
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteJSON(sources)
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(out, tr.T("history.no_audits", nil))
		return nil
	}

	fmt.Fprintf(out, "%s\n\n", tr.T("history.sources_title", map[string]any{"Count": len(sources)}))
	for _, s := range sources {
		fmt.Fprintf(out, "  • %s\n", s)
	}
	fmt.Fprintln(out, "\n"+tr.T("history.sources_hint", nil))
	return nil
}

// listAuditHistory prints the recorded audits, newest first.
func listAuditHistory(ctx context.Context, out io.Writer, db *database.AuditDB, tr *i18n.Translator, source string, jsonOutput bool) error {
	audits, err := db.ListAudits(ctx, source)
	if err != nil {
		return err
	}

	if jsonOutput {
		if audits == nil {
			audits = []*model.AuditReport{}
		}
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteJSON(audits)
		return err
	}

	if len(audits) == 0 {
		if source != "" {
			fmt.Fprintln(out, tr.T("history.no_audits_for", map[string]any{"Source": source}))
		} else {
			fmt.Fprintln(out, tr.T("history.no_audits", nil))
		}
		return nil
	}

	fmt.Fprintf(out, "%s\n\n", tr.T("history.title", map[string]any{"Count": len(audits)}))
	fmt.Fprintf(out, "  %-6s  %-19s  %7s  %6s  %9s  %s\n",
		tr.T("history.col_id", nil),
		tr.T("history.col_date", nil),
		tr.T("history.col_total", nil),
		tr.T("history.col_weak", nil),
		tr.T("history.col_mean_bits", nil),
		tr.T("history.col_source", nil),
	)
	fmt.Fprintln(out, "  "+strings.Repeat("-", 72))

	for _, a := range audits {
		src := a.Source
		if a.Cancelled {
			src += " " + tr.T("history.interrupted", nil)
		}
		fmt.Fprintf(out, "  %-6d  %-19s  %7d  %6d  %9.1f  %s\n",
			a.ID,
			a.StartedAt.Local().Format(historyTimeLayout),
			a.Total,
			a.WeakCount(),
			a.MeanBits,
			src,
		)
	}

	fmt.Fprintln(out, "\n"+tr.T("history.compare_hint", nil))
	return nil
}

// compareAudits writes the comparison of the latest two audits of source.
// With no source and a single audited source, that source is used.
func compareAudits(ctx context.Context, out io.Writer, db *database.AuditDB, tr *i18n.Translator, cfg *config.Config, source string) error {
	if source == "" {
		sources, err := db.ListSources(ctx)
		if err != nil {
			return err
		}
		if len(sources) != 1 {
			return errors.New("--compare requires --source (use --sources to list them)")
		}
		source = sources[0]
	}

	prev, cur, err := db.LatestTwo(ctx, source)
	if err != nil {
		return err
	}

	w := report.New(reportFormat(cfg), out, tr)
	if _, err := w.WriteComparison(model.CompareAudits(prev, cur)); err != nil {
		return fmt.Errorf("failed to write comparison: %w", err)
	}
	return nil
}
