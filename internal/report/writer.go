package report

import (
	"io"

	"github.com/nao1215/passforge/internal/i18n"
	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/strength"
)

// Writer writes audit results in one format.
type Writer interface {
	// WriteAudit writes a full audit report.
	WriteAudit(report *model.AuditReport) (int, error)

	// WriteComparison writes the difference between two audits.
	WriteComparison(cmp *model.AuditComparison) (int, error)
}

// Format names a report format.
type Format string

const (
	// FormatText selects SimpleWriter.
	FormatText Format = "text"
	// FormatJSON selects JSONWriter.
	FormatJSON Format = "json"
	// FormatMarkdown selects MarkdownWriter.
	FormatMarkdown Format = "markdown"
)

// New returns the writer for format. Unknown formats fall back to text.
func New(format Format, output io.Writer, tr *i18n.Translator) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output, tr)
	default:
		return NewSimpleWriter(output, WithTranslator(tr))
	}
}

// baseWriter holds the output destination and translator shared by the
// human-readable writers.
type baseWriter struct {
	output io.Writer
	tr     *i18n.Translator
}

func newBaseWriter(output io.Writer, tr *i18n.Translator) baseWriter {
	if tr == nil {
		tr = i18n.New("en")
	}
	return baseWriter{output: output, tr: tr}
}

// ruleList joins the localized descriptions of rules.
func (b baseWriter) ruleList(rules []strength.Rule) string {
	if len(rules) == 0 {
		return "-"
	}
	out := ""
	for i, r := range rules {
		if i > 0 {
			out += ", "
		}
		out += b.tr.Rule(r)
	}
	return out
}

// penaltyRules lists the penalty rules in the order they are applied.
var penaltyRules = []strength.Rule{
	strength.RuleReferenceList,
	strength.RuleAllDigits,
	strength.RuleRepeatedChar,
	strength.RuleRepeatedPair,
	strength.RuleRepeatedTriple,
	strength.RuleSequence,
}

// timeLayout formats audit timestamps.
const timeLayout = "2006-01-02 15:04:05 MST"
