// Package verifier runs the scanner over a batch of sources and keeps one
// ordered result per source.
package verifier

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cmake-checker/cmake-checker/internal/scanner"
	"github.com/cmake-checker/cmake-checker/internal/types"
)

// Result pairs a source identifier with its violations. Err is set, and
// Violations is nil, when the source could not be read or was not reached
// before the context was cancelled.
type Result struct {
	ID         string
	Violations types.ScanResult
	Err        error
}

// Cache lets the verifier reuse violations for unchanged content.
// Implementations must be safe for concurrent use.
type Cache interface {
	Lookup(id, text string) (types.ScanResult, bool)
	Store(id, text string, violations types.ScanResult)
}

// Options controls how sources are verified.
type Options struct {
	// Workers bounds concurrent scans. Values below 2 scan sequentially.
	Workers int
	Cache   Cache
	Logger  *zap.Logger
}

// Verifier runs the scanner over a batch of sources.
type Verifier struct {
	opts Options
	log  *zap.Logger
}

func New(opts Options) *Verifier {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Verifier{opts: opts, log: log.Named("verifier")}
}

// Verify scans every source once and returns one result per source in
// input order. A read failure is recorded on that source's result and the
// remaining sources are still processed.
func (v *Verifier) Verify(ctx context.Context, sources []Source) []Result {
	results := make([]Result, len(sources))
	if v.opts.Workers < 2 || len(sources) < 2 {
		for i, src := range sources {
			results[i] = v.verifyOne(ctx, src)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(v.opts.Workers)
	for i, src := range sources {
		g.Go(func() error {
			results[i] = v.verifyOne(ctx, src)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (v *Verifier) verifyOne(ctx context.Context, src Source) Result {
	id := src.ID()
	if err := ctx.Err(); err != nil {
		return Result{ID: id, Err: err}
	}
	text, err := src.Read()
	if err != nil {
		v.log.Warn("source unreadable", zap.String("source", id), zap.Error(err))
		return Result{ID: id, Err: &ReadError{ID: id, Err: err}}
	}
	if v.opts.Cache != nil {
		if cached, ok := v.opts.Cache.Lookup(id, text); ok {
			v.log.Debug("cache hit", zap.String("source", id), zap.Int("violations", len(cached)))
			return Result{ID: id, Violations: cached}
		}
	}
	// Each source gets its own scanner so concurrent workers share nothing.
	found := scanner.New().Scan(text)
	if v.opts.Cache != nil {
		v.opts.Cache.Store(id, text, found)
	}
	v.log.Debug("scanned", zap.String("source", id), zap.Int("violations", len(found)))
	return Result{ID: id, Violations: found}
}

// CountViolations sums the violations of all readable sources.
func CountViolations(results []Result) int {
	n := 0
	for _, r := range results {
		n += len(r.Violations)
	}
	return n
}

// Failed returns the results whose source could not be verified.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
