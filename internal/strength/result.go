package strength

import (
	"math"

	"github.com/nao1215/passforge/internal/charset"
)

// Rule names a scoring adjustment.
type Rule string

// Penalty rules.
const (
	RuleReferenceList  Rule = "reference_list"
	RuleAllDigits      Rule = "all_digits"
	RuleRepeatedChar   Rule = "repeated_char"
	RuleRepeatedPair   Rule = "repeated_pair"
	RuleRepeatedTriple Rule = "repeated_triple"
	RuleSequence       Rule = "sequence"
)

// Bonus rules.
const (
	RuleLength     Rule = "length"
	RuleAllClasses Rule = "all_classes"
)

// Penalty is a deduction applied to the raw estimate.
type Penalty struct {
	Rule Rule    `json:"rule"`
	Bits float64 `json:"bits"`
	// Count is the number of matches folded into Bits. Only sequence
	// penalties can exceed 1.
	Count int `json:"count"`
}

// Bonus is an addition applied to the raw estimate.
type Bonus struct {
	Rule Rule    `json:"rule"`
	Bits float64 `json:"bits"`
}

// Result is the outcome of scoring one candidate. It never contains the
// candidate itself.
type Result struct {
	// Bucket is the strength tier for Bits.
	Bucket Bucket `json:"bucket"`

	// Bits is the clamped estimate, in [0, MaxBits].
	Bits float64 `json:"bits"`

	// Length is the candidate length in runes.
	Length int `json:"length"`

	// CharsetSize is the assumed alphabet size.
	CharsetSize int `json:"charsetSize"`

	// Profile lists the character classes found.
	Profile charset.Profile `json:"profile"`

	// Penalties lists every deduction that fired, in evaluation order.
	Penalties []Penalty `json:"penalties,omitempty"`

	// Bonuses lists every addition that applied.
	Bonuses []Bonus `json:"bonuses,omitempty"`
}

// Label returns the English label of the bucket.
func (r Result) Label() string {
	return r.Bucket.String()
}

// RoundedBits returns Bits rounded to the nearest integer.
func (r Result) RoundedBits() int {
	return int(math.Round(r.Bits))
}

// HasPenalty reports whether the given rule fired.
func (r Result) HasPenalty(rule Rule) bool {
	for _, p := range r.Penalties {
		if p.Rule == rule {
			return true
		}
	}
	return false
}

// Summary is the compact form rendered by presenters.
type Summary struct {
	Score int    `json:"score"`
	Label string `json:"label"`
	Bits  int    `json:"bits"`
}

// Summary returns the bucket index, label and rounded bits.
func (r Result) Summary() Summary {
	return Summary{
		Score: int(r.Bucket),
		Label: r.Label(),
		Bits:  r.RoundedBits(),
	}
}

func (r *Result) addPenalty(rule Rule, bits float64, count int) {
	r.Penalties = append(r.Penalties, Penalty{Rule: rule, Bits: bits, Count: count})
}

func (r *Result) addBonus(rule Rule, bits float64) {
	r.Bonuses = append(r.Bonuses, Bonus{Rule: rule, Bits: bits})
}
