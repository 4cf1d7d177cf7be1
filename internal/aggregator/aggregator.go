// Package aggregator computes team, batting and bowling records from a
// dataset.Store. Every function is a pure read of the store.
package aggregator

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pable/go-ipl-stats/internal/dataset"
)

// StrikeRateMode selects the batting strike-rate formula.
type StrikeRateMode string

const (
	// StrikeRatePerBall is runs per legitimate ball faced × 100.
	StrikeRatePerBall StrikeRateMode = "per-ball"
	// StrikeRatePerInnings is runs per innings × 100, as older reports computed it.
	StrikeRatePerInnings StrikeRateMode = "per-innings"
)

// AverageMode selects the batting average formula.
type AverageMode string

const (
	// AveragePerDismissal is runs per dismissal, +Inf when never dismissed.
	AveragePerDismissal AverageMode = "per-dismissal"
	// AveragePerInnings is runs per innings.
	AveragePerInnings AverageMode = "per-innings"
)

// Options controls formula variants and full-report parallelism.
type Options struct {
	StrikeRate  StrikeRateMode
	Average     AverageMode
	Parallelism int // concurrent per-opponent computations; <=0 means GOMAXPROCS
}

// DefaultOptions returns the per-ball, per-dismissal formulas.
func DefaultOptions() Options {
	return Options{
		StrikeRate:  StrikeRatePerBall,
		Average:     AveragePerDismissal,
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

// Validate rejects unknown formula modes.
func (o Options) Validate() error {
	switch o.StrikeRate {
	case StrikeRatePerBall, StrikeRatePerInnings:
	default:
		return fmt.Errorf("unknown strike rate mode %q", o.StrikeRate)
	}
	switch o.Average {
	case AveragePerDismissal, AveragePerInnings:
	default:
		return fmt.Errorf("unknown average mode %q", o.Average)
	}
	return nil
}

// Engine answers record queries against one immutable store.
type Engine struct {
	store *dataset.Store
	opts  Options
}

// New returns an engine over store. Empty option fields take their defaults.
func New(store *dataset.Store, opts Options) (*Engine, error) {
	def := DefaultOptions()
	if opts.StrikeRate == "" {
		opts.StrikeRate = def.StrikeRate
	}
	if opts.Average == "" {
		opts.Average = def.Average
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = def.Parallelism
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{store: store, opts: opts}, nil
}

// Store returns the underlying dataset.
func (e *Engine) Store() *dataset.Store { return e.store }

// fanOut runs fn for every key with bounded parallelism and returns the
// results keyed by name. The map contents do not depend on completion order.
func fanOut[T any](ctx context.Context, keys []string, limit int, fn func(key string) T) (map[string]T, error) {
	results := make([]T, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, key := range keys {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fn(key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string]T, len(keys))
	for i, key := range keys {
		out[key] = results[i]
	}
	return out, nil
}
