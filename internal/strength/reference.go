package strength

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed common_passwords.txt
var defaultReferenceRaw string

// ErrReferenceListNotFound is returned when a reference list file does not exist.
var ErrReferenceListNotFound = errors.New("reference list not found")

// ReferenceList is an immutable set of known-weak passwords.
// Entries are stored lower-cased. A ReferenceList is safe for concurrent use.
type ReferenceList struct {
	entries map[string]struct{}
}

// NewReferenceList builds a list from the given entries.
// Entries are trimmed and lower-cased; empty entries are skipped.
func NewReferenceList(entries ...string) *ReferenceList {
	rl := &ReferenceList{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		rl.entries[fold(e)] = struct{}{}
	}
	return rl
}

// ParseReferenceList reads one entry per line from r.
// Blank lines and lines starting with '#' are ignored.
func ParseReferenceList(r io.Reader) (*ReferenceList, error) {
	var entries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reference list: %w", err)
	}
	return NewReferenceList(entries...), nil
}

// LoadReferenceList reads a reference list file.
// If the file does not exist, it returns ErrReferenceListNotFound.
func LoadReferenceList(path string) (*ReferenceList, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrReferenceListNotFound, path)
		}
		return nil, fmt.Errorf("failed to open reference list: %w", err)
	}
	defer f.Close()

	return ParseReferenceList(f)
}

// defaultReferenceList parses the embedded list exactly once.
var defaultReferenceList = sync.OnceValue(func() *ReferenceList {
	rl, err := ParseReferenceList(strings.NewReader(defaultReferenceRaw))
	if err != nil {
		// The embedded list is a string; reading it cannot fail.
		panic(err)
	}
	return rl
})

// DefaultReferenceList returns the embedded list of common passwords.
func DefaultReferenceList() *ReferenceList {
	return defaultReferenceList()
}

// Contains reports whether the lower-cased candidate is in the list.
// A nil list contains nothing.
func (rl *ReferenceList) Contains(candidate string) bool {
	if rl == nil {
		return false
	}
	_, ok := rl.entries[fold(candidate)]
	return ok
}

// containsFolded is Contains for an already folded candidate.
func (rl *ReferenceList) containsFolded(folded string) bool {
	if rl == nil {
		return false
	}
	_, ok := rl.entries[folded]
	return ok
}

// Len returns the number of entries.
func (rl *ReferenceList) Len() int {
	if rl == nil {
		return 0
	}
	return len(rl.entries)
}

// Merge returns a new list holding the entries of rl and other.
// Neither input is modified.
func (rl *ReferenceList) Merge(other *ReferenceList) *ReferenceList {
	merged := &ReferenceList{entries: make(map[string]struct{}, rl.Len()+other.Len())}
	for _, src := range []*ReferenceList{rl, other} {
		if src == nil {
			continue
		}
		for e := range src.entries {
			merged.entries[e] = struct{}{}
		}
	}
	return merged
}

// fold returns the lower-cased form of s used for matching. Unlike full
// case folding it never expands a letter into several ("ß" stays "ß"), so
// patterns see the same runs as the candidate.
// A Caser keeps state, so a new one is created per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
