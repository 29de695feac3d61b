// Package log builds the slog loggers used by passforge.
//
// Every logger returned here wraps its output handler in a SecureHandler,
// which masks attribute values that could hold password material: the
// candidate being scored, a generated password, a generation seed, or any
// attribute whose key mentions a password or secret. Masking applies in
// verbose mode as well, so debug output can be shared safely.
//
//	logger := log.NewSecureLogger(os.Stderr, log.FormatText, true)
//	logger.Debug("scored", "candidate", pw, "bucket", "weak")
//	// candidate=***REDACTED*** bucket=weak
package log
