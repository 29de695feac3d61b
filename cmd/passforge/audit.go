package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/passforge/internal/audit"
	"github.com/nao1215/passforge/internal/config"
	"github.com/nao1215/passforge/internal/database"
	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/report"
	"github.com/spf13/cobra"
)

// stdinSource is the audit source name used for --list -.
const stdinSource = "stdin"

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Score a list of passwords and report the strength distribution",
		Long: `Audit scores every non-empty line of a password list concurrently and
writes a report with the bucket distribution, penalty counts and the
line numbers of weak entries.

Reports and the history database identify passwords by line number only;
the passwords themselves are never written anywhere. A summary of each
audit is recorded in the history database (see 'passforge history')
unless --no-save is given.

Examples:
  # Audit a file
  passforge audit --list passwords.txt

  # Audit from stdin with a Markdown report written to a file
  cat passwords.txt | passforge audit --list - --markdown -o report.md

  # JSON report with every entry, without recording history
  passforge audit --list passwords.txt --json --no-save`,
		Args: cobra.NoArgs,
		RunE: runAuditCmd,
	}

	cmd.Flags().StringP("list", "l", "",
		"Password list file, one password per line (use - for stdin)")
	_ = cmd.MarkFlagRequired("list") //nolint:errcheck // flag is defined above

	cmd.Flags().IntP("concurrency", "p", config.DefaultConcurrency,
		"Number of passwords scored concurrently")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().BoolP("all", "a", false,
		"List every entry in the text report, not only weak ones")

	// History flags
	cmd.Flags().Bool("no-save", false, "Do not record the audit in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the history database")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	listPath, err := cmd.Flags().GetString("list")
	if err != nil {
		return err
	}
	allEntries, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}
	if err := applyAuditFlags(cmd, cfg); err != nil {
		return err
	}

	logger, err := setup(cmd, cfg)
	if err != nil {
		return err
	}

	estimator, err := cfg.NewEstimator()
	if err != nil {
		return fmt.Errorf("failed to build estimator: %w", err)
	}

	source, input, closeInput, err := openList(cmd, listPath)
	if err != nil {
		return err
	}
	defer closeInput()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditor := audit.New(estimator,
		audit.WithConcurrency(cfg.Concurrency),
		audit.WithLogger(logger),
	)

	rep, auditErr := auditor.AuditReader(ctx, source, input)
	if rep == nil {
		return auditErr
	}
	if auditErr != nil {
		logger.Warn("audit interrupted; reporting partial results",
			"source", source,
			"scored", rep.Total,
		)
	}

	tr := i18n.New(cfg.Language)
	if err := outputAuditReport(cmd, cfg, tr, rep, allEntries); err != nil {
		return err
	}

	// The history is written even after an interrupt; the record carries
	// the cancelled flag.
	if cfg.SaveToDB {
		saveCtx := context.WithoutCancel(ctx)
		if err := saveAudit(saveCtx, cfg.DBDir, rep, logger); err != nil {
			logger.Error("failed to save audit", "source", source, "error", err)
		}
	}

	return auditErr
}

// applyAuditFlags copies the audit flags into cfg.
func applyAuditFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return err
		}
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return err
	}
	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return err
	}
	cfg.SaveToDB = !noSave
	return nil
}

// openList opens the password list. The returned source is the name
// recorded in reports and history: "stdin" or the absolute file path.
func openList(cmd *cobra.Command, path string) (string, io.Reader, func(), error) {
	if path == "-" {
		return stdinSource, cmd.InOrStdin(), func() {}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("invalid list path %s: %w", path, err)
	}

	f, err := os.Open(abs) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, nil, fmt.Errorf("password list not found: %s", path)
		}
		return "", nil, nil, fmt.Errorf("failed to open password list: %w", err)
	}
	return abs, f, func() { _ = f.Close() }, nil
}

// reportFormat returns the report format selected in cfg.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// outputAuditReport writes rep in the requested format to stdout or
// cfg.ReportFile.
func outputAuditReport(cmd *cobra.Command, cfg *config.Config, tr *i18n.Translator, rep *model.AuditReport, allEntries bool) error {
	output := cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports list weak line numbers, so keep them owner-readable only.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	format := reportFormat(cfg)

	var w report.Writer
	if format == report.FormatText {
		w = report.NewSimpleWriter(output,
			report.WithTranslator(tr),
			report.WithAllEntries(allEntries),
		)
	} else {
		w = report.New(format, output, tr)
	}

	if _, err := w.WriteAudit(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// saveAudit records the summary of rep in the history database.
func saveAudit(ctx context.Context, dbDir string, rep *model.AuditReport, logger *slog.Logger) error {
	db, err := database.Open(ctx, dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveAudit(ctx, rep.Summary())
	if err != nil {
		return err
	}
	rep.ID = id

	logger.Info("audit saved to database",
		"id", id,
		"source", rep.Source,
		"path", db.Path(),
	)
	return nil
}
