package generator

import "github.com/nao1215/passforge/internal/charset"

// Length limits and default.
const (
	MinLength     = 8
	MaxLength     = 64
	DefaultLength = 16
)

// Config selects the length and character classes of a password.
type Config struct {
	// Length is the password length. Zero means DefaultLength; other
	// values are clamped into [MinLength, MaxLength].
	Length int `json:"length"`

	IncludeUpper   bool `json:"includeUpper"`
	IncludeLower   bool `json:"includeLower"`
	IncludeDigits  bool `json:"includeDigits"`
	IncludeSymbols bool `json:"includeSymbols"`
}

// DefaultConfig returns a 16-character config using lowercase,
// uppercase and digits. Symbols are opt-in.
func DefaultConfig() Config {
	return Config{
		Length:         DefaultLength,
		IncludeUpper:   true,
		IncludeLower:   true,
		IncludeDigits:  true,
		IncludeSymbols: false,
	}
}

// Normalize returns cfg with the length clamped and at least one class
// selected. When no class is selected, lowercase is used.
func (c Config) Normalize() Config {
	c.Length = ClampLength(c.Length)
	if !c.IncludeUpper && !c.IncludeLower && !c.IncludeDigits && !c.IncludeSymbols {
		c.IncludeLower = true
	}
	return c
}

// ClampLength maps a requested length into [MinLength, MaxLength].
// Zero selects DefaultLength.
func ClampLength(n int) int {
	if n == 0 {
		n = DefaultLength
	}
	return min(max(n, MinLength), MaxLength)
}

// Classes returns the selected classes in the order lower, upper, digits,
// symbols. The result is empty only for a config that was not normalized.
func (c Config) Classes() []charset.Class {
	classes := make([]charset.Class, 0, 4)
	if c.IncludeLower {
		classes = append(classes, charset.ClassLower)
	}
	if c.IncludeUpper {
		classes = append(classes, charset.ClassUpper)
	}
	if c.IncludeDigits {
		classes = append(classes, charset.ClassDigit)
	}
	if c.IncludeSymbols {
		classes = append(classes, charset.ClassSymbol)
	}
	return classes
}

// Settings is a partially specified Config as read from a config file or
// flags. Nil fields are left unchanged by Apply.
type Settings struct {
	Length  *int  `yaml:"length,omitempty"`
	Upper   *bool `yaml:"upper,omitempty"`
	Lower   *bool `yaml:"lower,omitempty"`
	Digits  *bool `yaml:"digits,omitempty"`
	Symbols *bool `yaml:"symbols,omitempty"`
}

// Apply overlays the set fields of s onto base.
func (s Settings) Apply(base Config) Config {
	if s.Length != nil {
		base.Length = *s.Length
	}
	if s.Upper != nil {
		base.IncludeUpper = *s.Upper
	}
	if s.Lower != nil {
		base.IncludeLower = *s.Lower
	}
	if s.Digits != nil {
		base.IncludeDigits = *s.Digits
	}
	if s.Symbols != nil {
		base.IncludeSymbols = *s.Symbols
	}
	return base
}

// Merge returns s with the set fields of override replacing its own.
func (s Settings) Merge(override Settings) Settings {
	if override.Length != nil {
		s.Length = override.Length
	}
	if override.Upper != nil {
		s.Upper = override.Upper
	}
	if override.Lower != nil {
		s.Lower = override.Lower
	}
	if override.Digits != nil {
		s.Digits = override.Digits
	}
	if override.Symbols != nil {
		s.Symbols = override.Symbols
	}
	return s
}
