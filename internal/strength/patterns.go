package strength

import (
	"strings"

	"github.com/nao1215/passforge/internal/charset"
)

// sequenceWidth is the length of an alphabet run that counts as a sequence.
const sequenceWidth = 4

// hasRepeatedUnit reports whether some unit of the given width occurs
// times times back to back in r. It compares fixed windows only, so the
// cost is linear in len(r).
func hasRepeatedUnit(r []rune, width, times int) bool {
	span := width * times
	for i := 0; i+span <= len(r); i++ {
		if repeatsAt(r, i, width, times) {
			return true
		}
	}
	return false
}

// repeatsAt reports whether r[i:i+width] repeats times times from i.
func repeatsAt(r []rune, i, width, times int) bool {
	for k := 1; k < times; k++ {
		for j := range width {
			if r[i+j] != r[i+k*width+j] {
				return false
			}
		}
	}
	return true
}

// sequenceWindow identifies one run of an alphabet, e.g. "bcde" is
// {base: 0, start: 1}.
type sequenceWindow struct {
	base  int
	start int
}

// countSequences returns the number of distinct alphabet windows of
// sequenceWidth characters that appear in r. A window appearing several
// times counts once.
func countSequences(r []rune) int {
	if len(r) < sequenceWidth {
		return 0
	}
	seen := make(map[sequenceWindow]struct{})
	for i := 0; i+sequenceWidth <= len(r); i++ {
		for b, base := range charset.SequenceBases {
			start := strings.IndexRune(base, r[i])
			if start < 0 || start+sequenceWidth > len(base) {
				continue
			}
			if matchesWindow(r[i:i+sequenceWidth], base[start:start+sequenceWidth]) {
				seen[sequenceWindow{base: b, start: start}] = struct{}{}
			}
		}
	}
	return len(seen)
}

// matchesWindow compares runes against an ASCII window.
func matchesWindow(r []rune, window string) bool {
	for j := range len(window) {
		if r[j] != rune(window[j]) {
			return false
		}
	}
	return true
}

// isAllDigits reports whether s is non-empty and made only of ASCII digits.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
