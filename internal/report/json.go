package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/passforge/internal/model"
)

// JSONWriter writes reports as JSON.
type JSONWriter struct {
	output io.Writer

	// indent enables pretty-printed output.
	indent       bool
	indentPrefix string
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON with the given prefix and indent.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON indented by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter writing to output.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteAudit writes the audit report as JSON.
func (w *JSONWriter) WriteAudit(report *model.AuditReport) (int, error) {
	return w.WriteJSON(report)
}

// WriteComparison writes the comparison as JSON.
func (w *JSONWriter) WriteComparison(cmp *model.AuditComparison) (int, error) {
	return w.WriteJSON(cmp)
}

// WriteJSON marshals v and writes it followed by a newline.
func (w *JSONWriter) WriteJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
