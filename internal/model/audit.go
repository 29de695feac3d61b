package model

import (
	"time"

	"github.com/nao1215/passforge/internal/strength"
)

// AuditEntry is the scored result of one line of an audit list.
// It never carries the candidate itself.
type AuditEntry struct {
	// Line is the 1-based line number in the source list.
	Line int `json:"line"`

	// Bucket is the strength bucket.
	Bucket strength.Bucket `json:"score"`

	// Label is the English bucket label.
	Label string `json:"label"`

	// Bits is the rounded entropy estimate.
	Bits int `json:"bits"`

	// Length is the candidate length in runes.
	Length int `json:"length"`

	// Penalties lists the rules that reduced the estimate.
	Penalties []strength.Rule `json:"penalties,omitempty"`
}

// NewAuditEntry builds an entry for line from a strength result.
func NewAuditEntry(line int, res strength.Result) AuditEntry {
	entry := AuditEntry{
		Line:   line,
		Bucket: res.Bucket,
		Label:  res.Label(),
		Bits:   res.RoundedBits(),
		Length: res.Length,
	}
	for _, p := range res.Penalties {
		entry.Penalties = append(entry.Penalties, p.Rule)
	}
	return entry
}

// IsWeak reports whether the entry is below Fair.
func (e AuditEntry) IsWeak() bool {
	return e.Bucket < strength.Fair
}

// BucketCounts counts entries per strength bucket.
type BucketCounts struct {
	VeryWeak  int `json:"very_weak"`
	Weak      int `json:"weak"`
	Fair      int `json:"fair"`
	Strong    int `json:"strong"`
	Excellent int `json:"excellent"`
}

// Add increments the counter for b. Unknown buckets are ignored.
func (c *BucketCounts) Add(b strength.Bucket) {
	if p := c.field(b); p != nil {
		*p++
	}
}

// Get returns the count for b.
func (c BucketCounts) Get(b strength.Bucket) int {
	if p := c.field(b); p != nil {
		return *p
	}
	return 0
}

// Total returns the sum of all counters.
func (c BucketCounts) Total() int {
	return c.VeryWeak + c.Weak + c.Fair + c.Strong + c.Excellent
}

// Sub returns c minus other, bucket by bucket.
func (c BucketCounts) Sub(other BucketCounts) BucketCounts {
	return BucketCounts{
		VeryWeak:  c.VeryWeak - other.VeryWeak,
		Weak:      c.Weak - other.Weak,
		Fair:      c.Fair - other.Fair,
		Strong:    c.Strong - other.Strong,
		Excellent: c.Excellent - other.Excellent,
	}
}

func (c *BucketCounts) field(b strength.Bucket) *int {
	switch b {
	case strength.VeryWeak:
		return &c.VeryWeak
	case strength.Weak:
		return &c.Weak
	case strength.Fair:
		return &c.Fair
	case strength.Strong:
		return &c.Strong
	case strength.Excellent:
		return &c.Excellent
	default:
		return nil
	}
}

// AuditReport summarizes the scoring of one candidate list.
type AuditReport struct {
	// ID is the history database ID, zero until saved.
	ID int64 `json:"id,omitempty"`

	// Source names the audited list, usually its path or "stdin".
	Source string `json:"source"`

	// StartedAt and FinishedAt bound the audit run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Total is the number of scored candidates.
	Total int `json:"total"`

	// Skipped is the number of blank lines ignored.
	Skipped int `json:"skipped"`

	// Counts is the bucket distribution.
	Counts BucketCounts `json:"counts"`

	// RuleHits counts the entries each penalty rule applied to.
	RuleHits map[strength.Rule]int `json:"rule_hits,omitempty"`

	// MeanBits, MinBits and MaxBits describe the rounded estimates.
	MeanBits float64 `json:"mean_bits"`
	MinBits  int     `json:"min_bits"`
	MaxBits  int     `json:"max_bits"`

	// Cancelled is true when the run stopped before every line was scored.
	Cancelled bool `json:"cancelled,omitempty"`

	// Entries holds per-line results ordered by line. They are not stored
	// in the history database.
	Entries []AuditEntry `json:"entries,omitempty"`
}

// NewAuditReport creates an empty report for source started now.
func NewAuditReport(source string) *AuditReport {
	return &AuditReport{
		Source:    source,
		StartedAt: time.Now(),
		RuleHits:  make(map[strength.Rule]int),
	}
}

// Add records an entry and updates the aggregates.
// Add is not safe for concurrent use.
func (r *AuditReport) Add(e AuditEntry) {
	if r.RuleHits == nil {
		r.RuleHits = make(map[strength.Rule]int)
	}

	if r.Total == 0 {
		r.MinBits, r.MaxBits = e.Bits, e.Bits
	} else {
		r.MinBits = min(r.MinBits, e.Bits)
		r.MaxBits = max(r.MaxBits, e.Bits)
	}
	r.MeanBits += (float64(e.Bits) - r.MeanBits) / float64(r.Total+1)
	r.Total++

	r.Counts.Add(e.Bucket)
	for _, rule := range e.Penalties {
		r.RuleHits[rule]++
	}
	r.Entries = append(r.Entries, e)
}

// Finish stamps the end time.
func (r *AuditReport) Finish() {
	r.FinishedAt = time.Now()
}

// Duration returns the time the audit took.
func (r *AuditReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// WeakCount returns the number of entries below Fair.
func (r *AuditReport) WeakCount() int {
	return r.Counts.VeryWeak + r.Counts.Weak
}

// Share returns the fraction of entries in bucket b, or 0 for an empty
// report.
func (r *AuditReport) Share(b strength.Bucket) float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Counts.Get(b)) / float64(r.Total)
}

// WeakEntries returns the entries below Fair in line order.
func (r *AuditReport) WeakEntries() []AuditEntry {
	var weak []AuditEntry
	for _, e := range r.Entries {
		if e.IsWeak() {
			weak = append(weak, e)
		}
	}
	return weak
}

// Summary returns a copy of r without per-line entries, as stored in the
// history database.
func (r *AuditReport) Summary() *AuditReport {
	s := *r
	s.Entries = nil
	s.RuleHits = make(map[strength.Rule]int, len(r.RuleHits))
	for k, v := range r.RuleHits {
		s.RuleHits[k] = v
	}
	return &s
}
