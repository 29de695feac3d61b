package config

import (
	"github.com/nao1215/passforge/internal/charset"
	"github.com/nao1215/passforge/internal/generator"
)

// File is the content of a passforge configuration file.
//
// Example:
//
//	language: de
//	generator:
//	  length: 24
//	  symbols: true
//	strength:
//	  referenceList: ./banned.txt
//	  extendDefault: true
//	audit:
//	  concurrency: 4
type File struct {
	// Language selects the locale for labels. Empty keeps the default.
	Language string `yaml:"language,omitempty"`

	// Generator holds default generation settings. Unset fields keep the
	// built-in defaults.
	Generator generator.Settings `yaml:"generator,omitempty"`

	// Strength tunes the estimator.
	Strength StrengthConfig `yaml:"strength,omitempty"`

	// Audit holds defaults for the audit command.
	Audit AuditConfig `yaml:"audit,omitempty"`
}

// StrengthConfig tunes the strength estimator.
type StrengthConfig struct {
	// ReferenceList is a path to a newline-separated list of common
	// passwords. Empty uses the embedded list. A relative path is
	// relative to the configuration file.
	ReferenceList string `yaml:"referenceList,omitempty"`

	// ExtendDefault merges ReferenceList into the embedded list instead of
	// replacing it.
	ExtendDefault bool `yaml:"extendDefault,omitempty"`

	// SymbolClassSize overrides the charset size contributed by symbols.
	SymbolClassSize *int `yaml:"symbolClassSize,omitempty"`

	// ExtendedBump overrides the charset size contributed by non-ASCII
	// characters.
	ExtendedBump *int `yaml:"extendedBump,omitempty"`
}

// Weights returns the charset weights with the configured overrides
// applied.
func (s StrengthConfig) Weights() charset.Weights {
	w := charset.DefaultWeights()
	if s.SymbolClassSize != nil {
		w.Symbol = *s.SymbolClassSize
	}
	if s.ExtendedBump != nil {
		w.Extended = *s.ExtendedBump
	}
	return w
}

// AuditConfig holds defaults for the audit command.
type AuditConfig struct {
	// Concurrency is the number of concurrent scorers. Zero keeps the
	// default.
	Concurrency int `yaml:"concurrency,omitempty"`
}
