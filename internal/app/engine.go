package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/brianzzs/GreenFiveInnings/internal/adapters/cache"
	"github.com/brianzzs/GreenFiveInnings/internal/adapters/coalescing"
	"github.com/brianzzs/GreenFiveInnings/internal/domain"
	"github.com/brianzzs/GreenFiveInnings/internal/logging"
)

// SubRequest is one independent atomic fetch within a composite request.
// Name identifies the logical piece in results and error annotations and
// must be unique within a composite; Key is the cache key; TTL is the
// freshness class for the fetched value.
type SubRequest struct {
	Name  string
	Key   string
	TTL   time.Duration
	Fetch func(ctx context.Context) (any, error)
}

// Engine is the fetch pipeline core: per-key cache lookup, coalesced
// upstream fetch on miss, cache population on success. One Engine instance
// is shared process-wide; all composite operations dispatch through it.
type Engine struct {
	cache   cache.Cache[any]
	flights *coalescing.Coalescer[any]

	metrics engineMetricsCollection
}

func NewEngine(store cache.Cache[any]) (*Engine, error) {
	meter := otel.Meter("app/engine")
	metrics, err := setupEngineMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &Engine{
		cache:   store,
		flights: coalescing.NewCoalescer[any](),

		metrics: metrics,
	}, nil
}

// Resolve dispatches every sub-request concurrently and joins them at a
// single barrier. A sub-request failure never aborts its siblings. The
// returned result preserves the declared sub-request order regardless of
// completion order.
func (e *Engine) Resolve(ctx context.Context, subs []SubRequest) *AggregateResult {
	values := make([]any, len(subs))
	errs := make([]error, len(subs))

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub SubRequest) {
			defer wg.Done()
			values[i], errs[i] = e.fetchOne(ctx, sub)
		}(i, sub)
	}
	wg.Wait()

	return newAggregateResult(subs, values, errs)
}

// fetchOne serves one sub-request: cache hit short-circuits; on a miss the
// fetch is coalesced per key, and only a successful fetch populates the
// cache. Failures are never cached, so the next caller retries upstream.
func (e *Engine) fetchOne(ctx context.Context, sub SubRequest) (any, error) {
	if value, ok := e.cache.Get(sub.Key); ok {
		logging.FromContext(ctx).InfoContext(ctx, "Resolving sub-request", "name", sub.Name, "cache", "hit")
		e.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "hit")))
		return value, nil
	}

	logging.FromContext(ctx).InfoContext(ctx, "Resolving sub-request", "name", sub.Name, "cache", "miss")
	e.metrics.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", "miss")))

	value, err := e.flights.FetchOrJoin(ctx, sub.Key, func(ctx context.Context) (any, error) {
		value, err := sub.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		e.cache.Set(sub.Key, value, sub.TTL)
		return value, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", sub.Name, err)
	}

	return value, nil
}

type engineMetricsCollection struct {
	cacheLookups metric.Int64Counter
}

func setupEngineMetrics(meter metric.Meter) (engineMetricsCollection, error) {
	cacheLookups, err := meter.Int64Counter("app/engine/cache_lookups")
	if err != nil {
		return engineMetricsCollection{}, fmt.Errorf("failed to create metric: %w", err)
	}

	return engineMetricsCollection{
		cacheLookups: cacheLookups,
	}, nil
}

// errorKind maps an error onto the sentinel it wraps, for dominant-error
// classification. Unclassified errors count as upstream failures.
func errorKind(err error) error {
	for _, kind := range []error{
		domain.ErrTimeout,
		domain.ErrRateLimited,
		domain.ErrNotFound,
		domain.ErrMalformedResponse,
		domain.ErrCanceled,
		domain.ErrUpstream,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return domain.ErrUpstream
}
