package strength

import (
	"math"
	"sync"
	"unicode/utf8"

	"github.com/nao1215/passforge/internal/charset"
)

// Score adjustments, in bits.
const (
	ReferenceListPenalty  = 45.0
	AllDigitsPenalty      = 25.0
	RepeatedCharPenalty   = 12.0
	RepeatedPairPenalty   = 10.0
	RepeatedTriplePenalty = 8.0
	SequencePenalty       = 10.0

	LengthBonus     = 8.0
	AllClassesBonus = 10.0
)

// Rule limits.
const (
	// AllDigitsMinLength is the shortest all-digit string penalized as a PIN.
	AllDigitsMinLength = 6
	// LengthBonusMinLength is the shortest candidate earning the length bonus.
	LengthBonusMinLength = 12
	// MaxBits is the upper clamp of every estimate.
	MaxBits = 200.0
)

// Estimator scores candidate passwords. It holds no mutable state and is
// safe for concurrent use.
type Estimator struct {
	reference *ReferenceList
	weights   charset.Weights
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithReferenceList replaces the known-weak password list.
// A nil list disables the reference list penalty.
func WithReferenceList(rl *ReferenceList) Option {
	return func(e *Estimator) {
		e.reference = rl
	}
}

// WithWeights replaces the alphabet weights used for charset sizing.
func WithWeights(w charset.Weights) Option {
	return func(e *Estimator) {
		e.weights = w
	}
}

// NewEstimator returns an Estimator using the embedded reference list and
// the default weights unless overridden by opts.
func NewEstimator(opts ...Option) *Estimator {
	e := &Estimator{
		reference: DefaultReferenceList(),
		weights:   charset.DefaultWeights(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEstimator = sync.OnceValue(func() *Estimator {
	return NewEstimator()
})

// Score scores candidate with the default Estimator.
func Score(candidate string) Result {
	return defaultEstimator().Score(candidate)
}

// Score estimates the strength of candidate. It never fails: the empty
// string scores VeryWeak with 0 bits.
func (e *Estimator) Score(candidate string) Result {
	if candidate == "" {
		return Result{Bucket: VeryWeak}
	}

	length := utf8.RuneCountInString(candidate)
	profile := charset.Classify(candidate)
	size := e.weights.Size(profile)

	res := Result{
		Length:      length,
		CharsetSize: size,
		Profile:     profile,
	}

	bits := float64(length) * math.Log2(float64(size))

	folded := fold(candidate)
	runes := []rune(folded)

	if e.reference.containsFolded(folded) {
		res.addPenalty(RuleReferenceList, ReferenceListPenalty, 1)
	}
	if length >= AllDigitsMinLength && isAllDigits(candidate) {
		res.addPenalty(RuleAllDigits, AllDigitsPenalty, 1)
	}

	if hasRepeatedUnit(runes, 1, 3) {
		res.addPenalty(RuleRepeatedChar, RepeatedCharPenalty, 1)
	}
	if hasRepeatedUnit(runes, 2, 3) {
		res.addPenalty(RuleRepeatedPair, RepeatedPairPenalty, 1)
	}
	if hasRepeatedUnit(runes, 3, 2) {
		res.addPenalty(RuleRepeatedTriple, RepeatedTriplePenalty, 1)
	}
	if n := countSequences(runes); n > 0 {
		res.addPenalty(RuleSequence, SequencePenalty*float64(n), n)
	}

	if length >= LengthBonusMinLength {
		res.addBonus(RuleLength, LengthBonus)
	}
	if profile.HasAllClasses() {
		res.addBonus(RuleAllClasses, AllClassesBonus)
	}

	for _, p := range res.Penalties {
		bits -= p.Bits
	}
	for _, b := range res.Bonuses {
		bits += b.Bits
	}

	res.Bits = clamp(bits)
	res.Bucket = BucketFor(res.Bits)
	return res
}

// clamp limits bits to [0, MaxBits]. NaN becomes 0.
func clamp(bits float64) float64 {
	if math.IsNaN(bits) || bits < 0 {
		return 0
	}
	return math.Min(bits, MaxBits)
}
