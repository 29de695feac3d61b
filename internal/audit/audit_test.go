package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/strength"
)

// funcScorer adapts a function to Scorer.
type funcScorer func(string) strength.Result

func (f funcScorer) Score(candidate string) strength.Result {
	return f(candidate)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func candidatesOf(values ...string) []Candidate {
	out := make([]Candidate, len(values))
	for i, v := range values {
		out[i] = Candidate{Line: i + 1, Value: v}
	}
	return out
}

// TestNew tests the constructor and options.
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates auditor with defaults", func(t *testing.T) {
		t.Parallel()

		a := New(nil)
		if a.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency %d, got %d", DefaultConcurrency, a.concurrency)
		}
		if a.scorer == nil || a.logger == nil {
			t.Error("expected default scorer and logger")
		}
	})

	t.Run("applies WithConcurrency option", func(t *testing.T) {
		t.Parallel()

		if a := New(nil, WithConcurrency(3)); a.concurrency != 3 {
			t.Errorf("expected concurrency 3, got %d", a.concurrency)
		}
	})

	t.Run("ignores non-positive concurrency", func(t *testing.T) {
		t.Parallel()

		if a := New(nil, WithConcurrency(0)); a.concurrency != DefaultConcurrency {
			t.Errorf("expected default concurrency, got %d", a.concurrency)
		}
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		if a := New(nil, WithLogger(nil)); a.logger == nil {
			t.Error("expected non-nil logger")
		}
	})
}

// TestReadCandidates tests line splitting.
func TestReadCandidates(t *testing.T) {
	t.Parallel()

	input := "password\r\n\n  spaced  \nletmein\n\n"
	got, skipped, err := ReadCandidates(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Candidate{
		{Line: 1, Value: "password"},
		{Line: 3, Value: "  spaced  "},
		{Line: 4, Value: "letmein"},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped lines, got %d", skipped)
	}
}

// TestReadCandidatesTooLong tests the line size limit.
func TestReadCandidatesTooLong(t *testing.T) {
	t.Parallel()

	input := strings.Repeat("a", maxLineSize+1)
	if _, _, err := ReadCandidates(strings.NewReader(input)); err == nil {
		t.Error("expected error for an oversized line")
	}
}

// TestAudit tests scoring and aggregation.
func TestAudit(t *testing.T) {
	t.Parallel()

	t.Run("scores every candidate in line order", func(t *testing.T) {
		t.Parallel()

		values := []string{"password", "111111", "k7#Qm2!vZp9@Lw4$Rt8&", "abcd", "Tr0ub4dor&3xyzw"}
		a := New(strength.NewEstimator(), WithConcurrency(2), WithLogger(discardLogger()))

		report, err := a.Audit(t.Context(), "fixture.txt", candidatesOf(values...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Total != len(values) {
			t.Fatalf("expected %d entries, got %d", len(values), report.Total)
		}
		for i, e := range report.Entries {
			if e.Line != i+1 {
				t.Errorf("entry %d: expected line %d, got %d", i, i+1, e.Line)
			}
			want := strength.Score(values[i])
			if e.Bucket != want.Bucket || e.Bits != want.RoundedBits() {
				t.Errorf("line %d: expected %v/%d, got %v/%d", e.Line, want.Bucket, want.RoundedBits(), e.Bucket, e.Bits)
			}
		}
		if report.Counts.Total() != len(values) {
			t.Errorf("expected bucket counts to sum to %d, got %d", len(values), report.Counts.Total())
		}
		if report.RuleHits[strength.RuleReferenceList] == 0 {
			t.Error("expected reference list hits")
		}
		if report.Cancelled {
			t.Error("expected report not to be cancelled")
		}
		if report.Source != "fixture.txt" {
			t.Errorf("expected source fixture.txt, got %q", report.Source)
		}
	})

	t.Run("empty list yields empty report", func(t *testing.T) {
		t.Parallel()

		report, err := New(nil, WithLogger(discardLogger())).Audit(t.Context(), "empty", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Total != 0 || len(report.Entries) != 0 {
			t.Errorf("expected empty report, got %+v", report)
		}
	})

	t.Run("respects concurrency limit", func(t *testing.T) {
		t.Parallel()

		var current, peak atomic.Int32
		scorer := funcScorer(func(string) strength.Result {
			n := current.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			current.Add(-1)
			return strength.Result{Bucket: strength.Fair, Bits: 50}
		})

		a := New(scorer, WithConcurrency(3), WithLogger(discardLogger()))
		values := make([]string, 30)
		for i := range values {
			values[i] = "x"
		}

		if _, err := a.Audit(t.Context(), "limit", candidatesOf(values...)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := peak.Load(); got > 3 {
			t.Errorf("expected at most 3 concurrent scorers, got %d", got)
		}
	})
}

// TestAuditCancellation tests partial results on cancellation.
func TestAuditCancellation(t *testing.T) {
	t.Parallel()

	t.Run("cancelled before start scores nothing", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		report, err := New(nil, WithLogger(discardLogger())).Audit(ctx, "list", candidatesOf("a", "b", "c"))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if report == nil {
			t.Fatal("expected a partial report")
		}
		if report.Total != 0 {
			t.Errorf("expected no entries, got %d", report.Total)
		}
		if !report.Cancelled {
			t.Error("expected Cancelled to be set")
		}
	})

	t.Run("cancelled mid-run keeps scored entries", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		var calls atomic.Int32
		scorer := funcScorer(func(string) strength.Result {
			if calls.Add(1) == 3 {
				cancel()
			}
			return strength.Result{Bucket: strength.Weak, Bits: 40}
		})

		values := make([]string, 50)
		for i := range values {
			values[i] = "candidate"
		}

		report, err := New(scorer, WithConcurrency(1), WithLogger(discardLogger())).Audit(ctx, "list", candidatesOf(values...))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if report.Total == 0 || report.Total >= len(values) {
			t.Errorf("expected a partial report, got %d entries", report.Total)
		}
		for i, e := range report.Entries {
			if e.Line != i+1 {
				t.Errorf("expected contiguous lines from 1, got line %d at %d", e.Line, i)
			}
		}
		if !report.Cancelled {
			t.Error("expected Cancelled to be set")
		}
	})
}

// TestAuditReader tests reading and auditing in one call.
func TestAuditReader(t *testing.T) {
	t.Parallel()

	report, err := New(nil, WithLogger(discardLogger())).AuditReader(t.Context(), "stdin", strings.NewReader("qwerty\n\nhunter2\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Total != 2 {
		t.Errorf("expected 2 entries, got %d", report.Total)
	}
	if report.Skipped != 1 {
		t.Errorf("expected 1 skipped line, got %d", report.Skipped)
	}
	if report.Entries[1].Line != 3 {
		t.Errorf("expected second entry on line 3, got %d", report.Entries[1].Line)
	}
}

// TestAuditWithCallback tests streaming results.
func TestAuditWithCallback(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		lines = make(map[int]bool)
	)
	err := New(nil, WithConcurrency(4), WithLogger(discardLogger())).AuditWithCallback(
		t.Context(),
		candidatesOf("one", "two", "three", "four", "five"),
		func(e model.AuditEntry) {
			mu.Lock()
			defer mu.Unlock()
			lines[e.Line] = true
		},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for line := 1; line <= 5; line++ {
		if !lines[line] {
			t.Errorf("expected callback for line %d", line)
		}
	}
}
