package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/strength"
)

// bucketIcons mark buckets in Markdown tables.
var bucketIcons = [...]string{
	strength.VeryWeak:  "🔴",
	strength.Weak:      "🟠",
	strength.Fair:      "🟡",
	strength.Strong:    "🟢",
	strength.Excellent: "✅",
}

// MarkdownWriter writes reports as Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter writing to output with labels
// from tr. A nil tr selects English.
func NewMarkdownWriter(output io.Writer, tr *i18n.Translator) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, tr)}
}

// WriteAudit writes the audit report.
func (w *MarkdownWriter) WriteAudit(report *model.AuditReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeDistribution(md, report)
	w.writePenalties(md, report)
	w.writeWeakEntries(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuditReport) {
	md.H1("Password Audit Report")
	md.PlainText("")

	status := "✅ Complete"
	if report.Cancelled {
		status = "⚠️ Interrupted (partial results)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Source", "`" + report.Source + "`"},
			{"Audit Date", report.StartedAt.Format(timeLayout)},
			{"Candidates", strconv.Itoa(report.Total)},
			{"Blank Lines Skipped", strconv.Itoa(report.Skipped)},
			{"Mean Bits", fmt.Sprintf("%.1f", report.MeanBits)},
			{"Status", status},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) label(b strength.Bucket) string {
	icon := ""
	if b >= 0 && int(b) < len(bucketIcons) {
		icon = bucketIcons[b] + " "
	}
	return icon + w.tr.Label(b)
}

func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Strength Distribution")
	md.PlainText("")

	rows := make([][]string, 0, len(strength.Buckets)+1)
	for _, b := range strength.Buckets {
		rows = append(rows, []string{
			w.label(b),
			strconv.Itoa(report.Counts.Get(b)),
			fmt.Sprintf("%.1f%%", report.Share(b)*100),
		})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.Total) + "**", ""})

	md.Table(markdown.TableSet{
		Header: []string{"Bucket", "Count", "Share"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.Total > 0 {
		w.writePieChart(md, report)
	}
	w.writeAlert(md, report)
}

func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.AuditReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Strength Distribution"),
		piechart.WithShowData(true),
	)
	for _, b := range strength.Buckets {
		if n := report.Counts.Get(b); n > 0 {
			chart.LabelAndIntValue(w.tr.Label(b), uint64(n))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.AuditReport) {
	refHits := report.RuleHits[strength.RuleReferenceList]
	switch {
	case report.Total == 0:
		md.Note("The list contained no candidates.")
	case report.Counts.VeryWeak > 0:
		md.Cautionf("%d of %d password(s) are very weak and should be replaced.",
			report.Counts.VeryWeak, report.Total)
	case report.Counts.Weak > 0:
		md.Warningf("%d of %d password(s) are weak.", report.Counts.Weak, report.Total)
	case refHits > 0:
		md.Importantf("%d password(s) appear in the common password list.", refHits)
	default:
		md.Tip("Every password is at least fair.")
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writePenalties(md *markdown.Markdown, report *model.AuditReport) {
	md.H2("Penalties")
	md.PlainText("")

	var rows [][]string
	for _, rule := range penaltyRules {
		if n := report.RuleHits[rule]; n > 0 {
			rows = append(rows, []string{w.tr.Rule(rule), "`" + string(rule) + "`", strconv.Itoa(n)})
		}
	}
	if len(rows) == 0 {
		md.PlainText("No penalties applied.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Rule", "ID", "Entries"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeWeakEntries(md *markdown.Markdown, report *model.AuditReport) {
	weak := report.WeakEntries()
	if len(weak) == 0 {
		return
	}

	md.H2("Weak Entries")
	md.PlainText("")

	rows := make([][]string, len(weak))
	for i, e := range weak {
		rows[i] = []string{
			strconv.Itoa(e.Line),
			w.label(e.Bucket),
			strconv.Itoa(e.Bits),
			w.ruleList(e.Penalties),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Line", "Bucket", "Bits", "Penalties"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by passforge. Candidates are identified by line number only.*")
}

// WriteComparison writes the difference between two audits.
func (w *MarkdownWriter) WriteComparison(cmp *model.AuditComparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Audit Comparison")
	md.PlainText("")
	md.PlainText("Source: `" + cmp.Source + "`")
	md.PlainText("")

	rows := make([][]string, 0, len(strength.Buckets)+1)
	for _, b := range strength.Buckets {
		rows = append(rows, []string{
			w.label(b),
			strconv.Itoa(cmp.Previous.Counts.Get(b)),
			strconv.Itoa(cmp.Current.Counts.Get(b)),
			signed(cmp.CountDelta.Get(b)),
		})
	}
	rows = append(rows, []string{
		"Mean bits",
		fmt.Sprintf("%.1f", cmp.Previous.MeanBits),
		fmt.Sprintf("%.1f", cmp.Current.MeanBits),
		fmt.Sprintf("%+.1f", cmp.MeanBitsDelta),
	})

	md.Table(markdown.TableSet{
		Header: []string{"Bucket", "Previous", "Current", "Delta"},
		Rows:   rows,
	})
	md.PlainText("")

	if cmp.Improved() {
		md.Tip(verdict(cmp))
	} else {
		md.Warningf("%s", verdict(cmp))
	}

	return len(md.String()), md.Build()
}
