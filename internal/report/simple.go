package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/strength"
)

const (
	ruleWidth = 70
	barWidth  = 30
)

// SimpleWriter writes plain text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showEntries lists every entry instead of only the weak ones.
	showEntries bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithTranslator sets the language of labels. Nil keeps English.
func WithTranslator(tr *i18n.Translator) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if tr != nil {
			w.tr = tr
		}
	}
}

// WithAllEntries lists every entry, not only those below Fair.
func WithAllEntries(all bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEntries = all
	}
}

// NewSimpleWriter creates a SimpleWriter writing to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output, nil)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteAudit writes the audit report.
func (w *SimpleWriter) WriteAudit(report *model.AuditReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeDistribution(&sb, report)
	w.writePenalties(&sb, report)
	w.writeEntries(&sb, report)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuditReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("                     PASSFORGE AUDIT REPORT\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Source:      %s\n", report.Source)
	fmt.Fprintf(sb, "Audit Date:  %s\n", report.StartedAt.Format(timeLayout))
	fmt.Fprintf(sb, "Candidates:  %d", report.Total)
	if report.Skipped > 0 {
		fmt.Fprintf(sb, " (%d blank lines skipped)", report.Skipped)
	}
	sb.WriteString("\n")
	if report.Total > 0 {
		fmt.Fprintf(sb, "Bits:        mean %.1f, min %d, max %d\n", report.MeanBits, report.MinBits, report.MaxBits)
	}
	if report.Cancelled {
		sb.WriteString("Status:      INTERRUPTED (partial results)\n")
	} else {
		sb.WriteString("Status:      Complete\n")
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeDistribution(sb *strings.Builder, report *model.AuditReport) {
	w.writeSection(sb, "STRENGTH DISTRIBUTION")

	for _, b := range strength.Buckets {
		share := report.Share(b)
		cells := int(share*barWidth + 0.5)
		fmt.Fprintf(sb, "  %-14s %6d  %5.1f%%  %s\n",
			w.tr.Label(b), report.Counts.Get(b), share*100, strings.Repeat("#", cells))
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "  Below %s: %d\n\n", w.tr.Label(strength.Fair), report.WeakCount())
}

func (w *SimpleWriter) writePenalties(sb *strings.Builder, report *model.AuditReport) {
	if len(report.RuleHits) == 0 {
		return
	}
	w.writeSection(sb, "PENALTIES")

	for _, rule := range penaltyRules {
		if n := report.RuleHits[rule]; n > 0 {
			fmt.Fprintf(sb, "  %-36s %6d\n", w.tr.Rule(rule), n)
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeEntries(sb *strings.Builder, report *model.AuditReport) {
	entries := report.Entries
	title := "ALL ENTRIES"
	if !w.showEntries {
		entries = report.WeakEntries()
		title = "WEAK ENTRIES"
	}
	if len(entries) == 0 {
		return
	}
	w.writeSection(sb, title)

	for _, e := range entries {
		fmt.Fprintf(sb, "  line %-6d %-14s %s  %s\n",
			e.Line, w.tr.Label(e.Bucket), w.tr.Bits(e.Bits), w.ruleList(e.Penalties))
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString("Report generated by passforge. Candidates are identified by line only.\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// WriteComparison writes the difference between two audits.
func (w *SimpleWriter) WriteComparison(cmp *model.AuditComparison) (int, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Audit comparison: %s\n\n", cmp.Source)
	fmt.Fprintf(&sb, "  Previous: #%d  %s  (%d candidates)\n",
		cmp.Previous.ID, cmp.Previous.StartedAt.Format(timeLayout), cmp.Previous.Total)
	fmt.Fprintf(&sb, "  Current:  #%d  %s  (%d candidates)\n\n",
		cmp.Current.ID, cmp.Current.StartedAt.Format(timeLayout), cmp.Current.Total)

	fmt.Fprintf(&sb, "  %-14s %9s %9s %9s\n", "Bucket", "Previous", "Current", "Delta")
	for _, b := range strength.Buckets {
		fmt.Fprintf(&sb, "  %-14s %9d %9d %9s\n",
			w.tr.Label(b), cmp.Previous.Counts.Get(b), cmp.Current.Counts.Get(b), signed(cmp.CountDelta.Get(b)))
	}
	fmt.Fprintf(&sb, "  %-14s %9.1f %9.1f %9s\n\n",
		"Mean bits", cmp.Previous.MeanBits, cmp.Current.MeanBits, fmt.Sprintf("%+.1f", cmp.MeanBitsDelta))

	sb.WriteString("  " + verdict(cmp) + "\n")

	return io.WriteString(w.output, sb.String())
}

// signed formats n with an explicit sign.
func signed(n int) string {
	return fmt.Sprintf("%+d", n)
}

// verdict summarizes a comparison in one sentence.
func verdict(cmp *model.AuditComparison) string {
	switch {
	case cmp.Improved():
		return "Improved: the share of weak passwords went down."
	case cmp.WeakDelta == 0 && cmp.TotalDelta == 0:
		return "Unchanged: no difference in weak passwords."
	default:
		return "Not improved: the share of weak passwords did not go down."
	}
}
