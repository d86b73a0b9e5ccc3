// README: Estimator fans distance queries out to a provider with bounded concurrency.
package distance

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"courier/internal/logger"
	"courier/internal/types"
)

type Estimator struct {
	provider    Provider
	cache       Cache
	concurrency int
	log         *zap.Logger
}

type Option func(*Estimator)

func WithCache(c Cache) Option {
	return func(e *Estimator) { e.cache = c }
}

func WithConcurrency(n int) Option {
	return func(e *Estimator) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Estimator) { e.log = logger.OrNop(l) }
}

// NewEstimator builds an estimator. A nil provider selects synthetic estimates.
func NewEstimator(p Provider, opts ...Option) *Estimator {
	e := &Estimator{provider: p, concurrency: defaultConcurrent, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Synthetic reports whether estimates are placeholders.
func (e *Estimator) Synthetic() bool {
	return e.provider == nil
}

// EstimateBatch returns one estimate per pair, keyed by candidate id. Pairs
// whose query fails are left out; the call itself never fails.
func (e *Estimator) EstimateBatch(ctx context.Context, pairs []Pair) map[types.ID]Estimate {
	out := make(map[types.ID]Estimate, len(pairs))
	if len(pairs) == 0 {
		return out
	}
	if e.provider == nil {
		for i, p := range pairs {
			out[p.CandidateID] = syntheticEstimate(p.CandidateID, i)
		}
		return out
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			est, err := e.estimate(gctx, p)
			if err != nil {
				if gctx.Err() == nil && !errors.Is(err, context.Canceled) {
					e.log.Warn("distance query failed",
						zap.String("candidate_id", string(p.CandidateID)),
						zap.String("origin", p.Origin),
						zap.String("destination", p.Destination),
						zap.Error(err))
				}
				return nil
			}
			mu.Lock()
			out[p.CandidateID] = est
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (e *Estimator) estimate(ctx context.Context, p Pair) (Estimate, error) {
	if e.cache != nil {
		cached, ok, err := e.cache.Get(ctx, p.Origin, p.Destination)
		if err != nil {
			e.log.Debug("distance cache read failed", zap.Error(err))
		} else if ok {
			cached.CandidateID = p.CandidateID
			return cached, nil
		}
	}

	meters, dur, err := e.provider.Distance(ctx, p.Origin, p.Destination)
	if err != nil {
		return Estimate{}, err
	}
	est := Estimate{
		CandidateID: p.CandidateID,
		DistanceKm:  float64(meters) / 1000,
		DurationMin: dur.Minutes(),
	}
	if e.cache != nil {
		if err := e.cache.Set(ctx, p.Origin, p.Destination, est); err != nil {
			e.log.Debug("distance cache write failed", zap.Error(err))
		}
	}
	return est, nil
}

func syntheticEstimate(id types.ID, i int) Estimate {
	return Estimate{
		CandidateID: id,
		DistanceKm:  syntheticBaseKm + syntheticStepKm*float64(i),
		DurationMin: syntheticBaseMin + syntheticStepMin*float64(i),
		IsEstimated: true,
	}
}
