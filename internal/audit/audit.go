package audit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/passforge/internal/model"
	"github.com/nao1215/passforge/internal/strength"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when no positive concurrency is configured.
// Scoring is CPU-bound, so a small fixed pool is enough.
const DefaultConcurrency = 8

// maxLineSize bounds a single line of a candidate list.
const maxLineSize = 1 << 20

// Scorer estimates the strength of one candidate.
// *strength.Estimator satisfies it.
type Scorer interface {
	Score(candidate string) strength.Result
}

// Candidate is one non-empty line of a list.
type Candidate struct {
	// Line is the 1-based line number.
	Line int

	// Value is the line content without its line terminator.
	Value string
}

// Auditor scores candidates with a bounded number of goroutines.
type Auditor struct {
	scorer      Scorer
	concurrency int
	logger      *slog.Logger
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithConcurrency sets the maximum number of concurrent scorers.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(a *Auditor) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithLogger sets the logger for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Auditor) {
		a.logger = logger
	}
}

// New creates an Auditor. A nil scorer uses the default estimator.
func New(scorer Scorer, opts ...Option) *Auditor {
	if scorer == nil {
		scorer = strength.NewEstimator()
	}
	a := &Auditor{
		scorer:      scorer,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// ReadCandidates reads one candidate per line from r. Empty lines are
// skipped and counted. A trailing carriage return is removed; all other
// whitespace is part of the candidate.
func ReadCandidates(r io.Reader) ([]Candidate, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		candidates []Candidate
		skipped    int
		line       int
	)
	for scanner.Scan() {
		line++
		value := strings.TrimSuffix(scanner.Text(), "\r")
		if value == "" {
			skipped++
			continue
		}
		candidates = append(candidates, Candidate{Line: line, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read candidate list at line %d: %w", line+1, err)
	}
	return candidates, skipped, nil
}

// AuditReader reads candidates from r and audits them under source.
func (a *Auditor) AuditReader(ctx context.Context, source string, r io.Reader) (*model.AuditReport, error) {
	candidates, skipped, err := ReadCandidates(r)
	if err != nil {
		return nil, err
	}
	report, err := a.Audit(ctx, source, candidates)
	if report != nil {
		report.Skipped = skipped
	}
	return report, err
}

// Audit scores candidates concurrently and returns the report with
// entries in line order.
//
// When ctx is cancelled the report holds the entries scored so far,
// Cancelled is set, and the context error is returned with it.
func (a *Auditor) Audit(ctx context.Context, source string, candidates []Candidate) (*model.AuditReport, error) {
	report := model.NewAuditReport(source)

	a.logger.Debug("starting audit",
		"source", source,
		"total", len(candidates),
		"concurrency", a.concurrency,
	)

	entries := make([]model.AuditEntry, len(candidates))
	scored := make([]bool, len(candidates))

	err := a.run(ctx, candidates, func(i int, e model.AuditEntry) {
		entries[i] = e
		scored[i] = true
	})

	for i := range entries {
		if scored[i] {
			report.Add(entries[i])
		}
	}
	report.Finish()
	report.Cancelled = err != nil

	a.logger.Debug("audit complete",
		"source", source,
		"scored", report.Total,
		"weak", report.WeakCount(),
		"elapsed", report.Duration().Round(time.Millisecond),
	)

	if err != nil {
		return report, fmt.Errorf("audit of %s interrupted: %w", source, err)
	}
	return report, nil
}

// AuditWithCallback scores candidates and calls fn for each entry as soon
// as it is ready. fn is called from multiple goroutines and must be safe
// for concurrent use. Entries arrive in completion order.
func (a *Auditor) AuditWithCallback(ctx context.Context, candidates []Candidate, fn func(model.AuditEntry)) error {
	return a.run(ctx, candidates, func(_ int, e model.AuditEntry) {
		fn(e)
	})
}

// run scores every candidate and passes its index and entry to store.
// Each index is stored at most once, so store may write to a slice slot
// without locking.
func (a *Auditor) run(ctx context.Context, candidates []Candidate, store func(int, model.AuditEntry)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	launched := 0
	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		launched++
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res := a.scorer.Score(c.Value)
			a.logger.Debug("scored candidate",
				"line", c.Line,
				"bucket", res.Bucket.Key(),
			)
			store(i, model.NewAuditEntry(c.Line, res))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if launched < len(candidates) {
		return ctx.Err()
	}
	return nil
}
