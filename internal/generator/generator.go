// Package generator produces random passwords that contain at least one
// character from every selected class.
//
// Generation draws one character per selected class, fills the remaining
// length from the union of the selected alphabets, and finishes with a
// Fisher-Yates shuffle so the guaranteed characters can land anywhere.
// All randomness comes from an injected random.Source.
package generator

import (
	"strings"

	"github.com/nao1215/passforge/internal/charset"
	"github.com/nao1215/passforge/internal/random"
)

// Generator produces passwords from a random source.
// It is safe for concurrent use when its source is.
type Generator struct {
	source random.Source
}

// New returns a Generator drawing from source.
// A nil source selects crypto/rand.
func New(source random.Source) *Generator {
	if source == nil {
		source = random.NewCrypto()
	}
	return &Generator{source: source}
}

var cryptoGenerator = New(random.NewCrypto())

// Generate produces a password with a cryptographically secure source.
func Generate(cfg Config) string {
	return cryptoGenerator.Generate(cfg)
}

// Generate produces a password for cfg. It never fails: cfg is normalized
// first, so the length is in [MinLength, MaxLength] and at least one class
// is selected.
func (g *Generator) Generate(cfg Config) string {
	cfg = cfg.Normalize()
	classes := cfg.Classes()

	buf := make([]byte, 0, cfg.Length)

	// One character from each class, in selection order.
	var pool strings.Builder
	for _, c := range classes {
		alphabet := c.Alphabet()
		buf = append(buf, g.pick(alphabet))
		pool.WriteString(alphabet)
	}

	combined := pool.String()
	for len(buf) < cfg.Length {
		buf = append(buf, g.pick(combined))
	}

	g.shuffle(buf)
	return string(buf)
}

// pick draws one character of alphabet uniformly.
func (g *Generator) pick(alphabet string) byte {
	return alphabet[g.source.IntN(len(alphabet))]
}

// shuffle permutes buf in place with the Fisher-Yates algorithm.
func (g *Generator) shuffle(buf []byte) {
	for i := len(buf) - 1; i > 0; i-- {
		j := g.source.IntN(i + 1)
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// ContainsClass reports whether s contains a character of class c.
func ContainsClass(s string, c charset.Class) bool {
	for _, r := range s {
		if c.Contains(r) {
			return true
		}
	}
	return false
}
