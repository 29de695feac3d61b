package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys are attribute keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	// Password material handled by passforge.
	"candidate":  true,
	"password":   true,
	"passwd":     true,
	"passphrase": true,
	"pw":         true,
	"generated":  true,
	"entry":      true,
	"seed":       true,

	// Credentials that may reach a log through a reference list or config.
	"secret":      true,
	"token":       true,
	"api_key":     true,
	"private_key": true,
	"credential":  true,
}

// sensitiveKeywords mark a key as sensitive when contained in it.
// A bare "key" is not listed: it matches too many harmless names.
var sensitiveKeywords = []string{
	"password", "passwd", "passphrase", "secret", "token",
	"credential", "private", "seed", "candidate",
}

// sensitivePatterns match values masked regardless of their key.
var sensitivePatterns = []*regexp.Regexp{
	// Long tokens without spaces look like generated passwords or keys.
	// Dots and slashes are left out so file paths stay readable.
	regexp.MustCompile(`^[A-Za-z0-9!@#$%^&*()\-_=+\[\]{};:,?]{32,}$`),

	// Bearer and basic credentials.
	regexp.MustCompile(`(?i)^(bearer|basic)\s+\S+`),

	// PEM private keys.
	regexp.MustCompile(`(?i)-----BEGIN.*(PRIVATE|SECRET).*KEY-----`),
}

// MaskValue replaces masked attribute values.
const MaskValue = "***REDACTED***"

// Format selects the output encoding of a logger.
type Format string

const (
	// FormatText writes logfmt-style key=value lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per record.
	FormatJSON Format = "json"
)

// ParseFormat converts a --log-format value into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q: use text or json", s)
	}
}

// SecureHandler wraps an slog.Handler and masks sensitive attributes
// before they reach it. Groups are masked recursively.
type SecureHandler struct {
	handler slog.Handler
}

// NewSecureHandler creates a SecureHandler wrapping handler.
// A nil handler wraps slog.Default().Handler().
func NewSecureHandler(handler slog.Handler) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it on.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(mask(a))
		return true
	})
	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a handler with the masked attrs attached.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = mask(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(masked)}
}

// WithGroup returns a handler that nests subsequent attrs under name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name)}
}

func mask(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, len(group))
		for i, ga := range group {
			masked[i] = mask(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString && isSensitiveValue(a.Value.String()) {
		return slog.String(a.Key, MaskValue)
	}

	return a
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if sensitiveKeys[key] {
		return true
	}
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

// NewSecureLogger returns a logger writing to w in the given format.
// Verbose selects slog.LevelDebug; otherwise only warnings and errors
// are written.
func NewSecureLogger(w io.Writer, format Format, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(NewSecureHandler(handler))
}
