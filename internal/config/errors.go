package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// They are sentinels so callers can match them with errors.Is.
var (
	// ErrInvalidConcurrency is returned when the audit concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidCount is returned when the number of passwords to generate is not positive.
	ErrInvalidCount = errors.New("invalid count: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidWeight is returned when a charset weight in the strength
	// section is negative.
	ErrInvalidWeight = errors.New("invalid strength weight: must be non-negative")

	// ErrUnsupportedLanguage is returned for a language without a locale.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
