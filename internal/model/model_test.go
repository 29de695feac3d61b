package model

import (
	"math"
	"slices"
	"testing"

	"github.com/nao1215/passforge/internal/strength"
)

// TestNewAuditEntry tests conversion from a strength result.
func TestNewAuditEntry(t *testing.T) {
	t.Parallel()

	res := strength.Score("password")
	entry := NewAuditEntry(7, res)

	if entry.Line != 7 {
		t.Errorf("expected line 7, got %d", entry.Line)
	}
	if entry.Bucket != res.Bucket || entry.Label != res.Label() {
		t.Errorf("expected bucket %v, got %v (%q)", res.Bucket, entry.Bucket, entry.Label)
	}
	if entry.Length != 8 {
		t.Errorf("expected length 8, got %d", entry.Length)
	}
	if !slices.Contains(entry.Penalties, strength.RuleReferenceList) {
		t.Errorf("expected reference list penalty, got %v", entry.Penalties)
	}
	if !entry.IsWeak() {
		t.Error("expected entry to be weak")
	}
}

// TestBucketCounts tests the per-bucket counters.
func TestBucketCounts(t *testing.T) {
	t.Parallel()

	var c BucketCounts
	for _, b := range []strength.Bucket{strength.VeryWeak, strength.VeryWeak, strength.Fair, strength.Excellent, strength.Bucket(99)} {
		c.Add(b)
	}

	if c.Get(strength.VeryWeak) != 2 || c.Get(strength.Fair) != 1 || c.Get(strength.Excellent) != 1 {
		t.Errorf("unexpected counts: %+v", c)
	}
	if c.Get(strength.Bucket(99)) != 0 {
		t.Error("expected unknown bucket to count 0")
	}
	if c.Total() != 4 {
		t.Errorf("expected total 4, got %d", c.Total())
	}

	d := c.Sub(BucketCounts{VeryWeak: 3, Strong: 1})
	if d.VeryWeak != -1 || d.Strong != -1 || d.Fair != 1 {
		t.Errorf("unexpected delta: %+v", d)
	}
}

// TestAuditReportAdd tests aggregate updates.
func TestAuditReportAdd(t *testing.T) {
	t.Parallel()

	r := NewAuditReport("list.txt")
	r.Add(AuditEntry{Line: 1, Bucket: strength.VeryWeak, Bits: 0, Penalties: []strength.Rule{strength.RuleReferenceList}})
	r.Add(AuditEntry{Line: 2, Bucket: strength.Strong, Bits: 70})
	r.Add(AuditEntry{Line: 3, Bucket: strength.Weak, Bits: 35, Penalties: []strength.Rule{strength.RuleSequence, strength.RuleReferenceList}})
	r.Finish()

	if r.Total != 3 {
		t.Errorf("expected total 3, got %d", r.Total)
	}
	if r.MinBits != 0 || r.MaxBits != 70 {
		t.Errorf("expected bits range 0..70, got %d..%d", r.MinBits, r.MaxBits)
	}
	if math.Abs(r.MeanBits-35) > 1e-9 {
		t.Errorf("expected mean 35, got %v", r.MeanBits)
	}
	if r.RuleHits[strength.RuleReferenceList] != 2 || r.RuleHits[strength.RuleSequence] != 1 {
		t.Errorf("unexpected rule hits: %v", r.RuleHits)
	}
	if r.WeakCount() != 2 {
		t.Errorf("expected 2 weak entries, got %d", r.WeakCount())
	}
	if got := r.WeakEntries(); len(got) != 2 || got[0].Line != 1 || got[1].Line != 3 {
		t.Errorf("unexpected weak entries: %+v", got)
	}
	if math.Abs(r.Share(strength.Strong)-1.0/3) > 1e-9 {
		t.Errorf("expected strong share 1/3, got %v", r.Share(strength.Strong))
	}
	if r.Duration() < 0 {
		t.Errorf("expected non-negative duration, got %v", r.Duration())
	}
}

// TestAuditReportEmpty tests an empty report.
func TestAuditReportEmpty(t *testing.T) {
	t.Parallel()

	r := NewAuditReport("empty.txt")
	if r.Share(strength.Weak) != 0 {
		t.Error("expected zero share for empty report")
	}
	if r.Duration() != 0 {
		t.Error("expected zero duration before Finish")
	}
	if r.WeakEntries() != nil {
		t.Error("expected no weak entries")
	}
}

// TestAuditReportSummary tests that Summary drops entries without
// touching the original.
func TestAuditReportSummary(t *testing.T) {
	t.Parallel()

	r := NewAuditReport("list.txt")
	r.Add(AuditEntry{Line: 1, Bucket: strength.Weak, Bits: 40, Penalties: []strength.Rule{strength.RuleAllDigits}})

	s := r.Summary()
	if s.Entries != nil {
		t.Error("expected summary without entries")
	}
	if len(r.Entries) != 1 {
		t.Error("expected original entries to be kept")
	}
	s.RuleHits[strength.RuleAllDigits] = 99
	if r.RuleHits[strength.RuleAllDigits] != 1 {
		t.Error("expected summary rule hits to be a copy")
	}
}

// TestCompareAudits tests deltas between two runs.
func TestCompareAudits(t *testing.T) {
	t.Parallel()

	prev := &AuditReport{Source: "users.txt", Total: 10, MeanBits: 30, Counts: BucketCounts{VeryWeak: 4, Weak: 2, Fair: 4}}
	cur := &AuditReport{Source: "users.txt", Total: 12, MeanBits: 45.5, Counts: BucketCounts{VeryWeak: 1, Weak: 1, Fair: 6, Strong: 4}}

	cmp := CompareAudits(prev, cur)
	if cmp.Source != "users.txt" {
		t.Errorf("unexpected source %q", cmp.Source)
	}
	if cmp.CountDelta.VeryWeak != -3 || cmp.CountDelta.Strong != 4 {
		t.Errorf("unexpected delta: %+v", cmp.CountDelta)
	}
	if cmp.TotalDelta != 2 || cmp.WeakDelta != -4 {
		t.Errorf("unexpected totals: total %d weak %d", cmp.TotalDelta, cmp.WeakDelta)
	}
	if math.Abs(cmp.MeanBitsDelta-15.5) > 1e-9 {
		t.Errorf("expected mean delta 15.5, got %v", cmp.MeanBitsDelta)
	}
	if !cmp.Improved() {
		t.Error("expected comparison to be an improvement")
	}
	if CompareAudits(cur, prev).Improved() {
		t.Error("expected reversed comparison to be a regression")
	}
}
