package charset

import "unicode/utf8"

// Default alphabet weights used when sizing a profile.
const (
	// DefaultLowerSize is the number of ASCII lowercase letters.
	DefaultLowerSize = 26
	// DefaultUpperSize is the number of ASCII uppercase letters.
	DefaultUpperSize = 26
	// DefaultDigitSize is the number of ASCII digits.
	DefaultDigitSize = 10
	// DefaultSymbolSize approximates the printable ASCII symbols.
	// The bucket thresholds were tuned against this value.
	DefaultSymbolSize = 33
	// DefaultExtendedBump stands in for the non-ASCII space.
	// The bucket thresholds were tuned against this value.
	DefaultExtendedBump = 1000
)

// Profile records which character classes occur in a string.
type Profile struct {
	// Lower is true when any rune is in a-z.
	Lower bool `json:"lower"`
	// Upper is true when any rune is in A-Z.
	Upper bool `json:"upper"`
	// Digit is true when any rune is in 0-9.
	Digit bool `json:"digit"`
	// Symbol is true when any rune is not an ASCII letter or digit.
	// Spaces and non-ASCII runes count as symbols.
	Symbol bool `json:"symbol"`
	// Extended is true when any rune is at or above U+0080.
	Extended bool `json:"extended"`
}

// Classify computes the Profile of s in a single pass.
func Classify(s string) Profile {
	var p Profile
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			p.Lower = true
		case r >= 'A' && r <= 'Z':
			p.Upper = true
		case r >= '0' && r <= '9':
			p.Digit = true
		default:
			p.Symbol = true
			if r >= utf8.RuneSelf {
				p.Extended = true
			}
		}
	}
	return p
}

// HasAllClasses reports whether lowercase, uppercase, digits and symbols
// are all present.
func (p Profile) HasAllClasses() bool {
	return p.Lower && p.Upper && p.Digit && p.Symbol
}

// Weights assigns an alphabet size to each class of a Profile.
type Weights struct {
	Lower    int `yaml:"lower,omitempty" json:"lower"`
	Upper    int `yaml:"upper,omitempty" json:"upper"`
	Digit    int `yaml:"digit,omitempty" json:"digit"`
	Symbol   int `yaml:"symbol,omitempty" json:"symbol"`
	Extended int `yaml:"extended,omitempty" json:"extended"`
}

// DefaultWeights returns the weights the bucket thresholds were tuned for.
func DefaultWeights() Weights {
	return Weights{
		Lower:    DefaultLowerSize,
		Upper:    DefaultUpperSize,
		Digit:    DefaultDigitSize,
		Symbol:   DefaultSymbolSize,
		Extended: DefaultExtendedBump,
	}
}

// Size returns the upper-bound alphabet size for the profile.
// The result is never less than 1.
func (w Weights) Size(p Profile) int {
	n := 0
	if p.Lower {
		n += w.Lower
	}
	if p.Upper {
		n += w.Upper
	}
	if p.Digit {
		n += w.Digit
	}
	if p.Symbol {
		n += w.Symbol
	}
	if p.Extended {
		n += w.Extended
	}
	return max(n, 1)
}

// Size returns the alphabet size of the profile using DefaultWeights.
func Size(p Profile) int {
	return DefaultWeights().Size(p)
}
