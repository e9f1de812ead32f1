package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

func countingSub(name, key string, ttl time.Duration, calls *atomic.Int64, value any, err error) SubRequest {
	return SubRequest{
		Name: name,
		Key:  key,
		TTL:  ttl,
		Fetch: func(ctx context.Context) (any, error) {
			calls.Add(1)
			return value, err
		},
	}
}

func TestEngineCaching(t *testing.T) {
	t.Run("cache hit skips the fetch", func(t *testing.T) {
		clock := newTestClock()
		engine := newTestEngine(t, clock)

		var calls atomic.Int64
		sub := countingSub("piece", "key1", time.Minute, &calls, "value", nil)

		result := engine.Resolve(context.Background(), []SubRequest{sub})
		require.Equal(t, FullySucceeded, result.Outcome())
		assert.Equal(t, "value", result.Value("piece"))
		assert.Equal(t, int64(1), calls.Load())

		result = engine.Resolve(context.Background(), []SubRequest{sub})
		require.Equal(t, FullySucceeded, result.Outcome())
		assert.Equal(t, "value", result.Value("piece"))
		assert.Equal(t, int64(1), calls.Load(), "second resolve should be served from cache")
	})

	t.Run("expired entry is fetched again", func(t *testing.T) {
		clock := newTestClock()
		engine := newTestEngine(t, clock)

		var calls atomic.Int64
		sub := countingSub("piece", "key1", time.Minute, &calls, "value", nil)

		engine.Resolve(context.Background(), []SubRequest{sub})
		clock.Advance(2 * time.Minute)
		engine.Resolve(context.Background(), []SubRequest{sub})

		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("failures are not cached", func(t *testing.T) {
		clock := newTestClock()
		engine := newTestEngine(t, clock)

		var calls atomic.Int64
		failing := SubRequest{
			Name: "piece",
			Key:  "key1",
			TTL:  time.Minute,
			Fetch: func(ctx context.Context) (any, error) {
				if calls.Add(1) == 1 {
					return nil, fmt.Errorf("%w: boom", domain.ErrUpstream)
				}
				return "recovered", nil
			},
		}

		result := engine.Resolve(context.Background(), []SubRequest{failing})
		require.Equal(t, FullyFailed, result.Outcome())

		result = engine.Resolve(context.Background(), []SubRequest{failing})
		require.Equal(t, FullySucceeded, result.Outcome())
		assert.Equal(t, "recovered", result.Value("piece"))
		assert.Equal(t, int64(2), calls.Load(), "next resolve must retry upstream")
	})
}

func TestEngineCoalescing(t *testing.T) {
	clock := newTestClock()
	engine := newTestEngine(t, clock)

	var calls atomic.Int64
	release := make(chan struct{})
	started := make(chan struct{})

	blocking := SubRequest{
		Name: "piece",
		Key:  "key1",
		TTL:  time.Minute,
		Fetch: func(ctx context.Context) (any, error) {
			if calls.Add(1) == 1 {
				close(started)
			}
			<-release
			return "shared", nil
		},
	}

	var wg sync.WaitGroup
	results := make([]*AggregateResult, 5)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = engine.Resolve(context.Background(), []SubRequest{blocking})
	}()
	<-started

	for i := 1; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Resolve(context.Background(), []SubRequest{blocking})
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load(), "concurrent misses for one key should share a fetch")
	for i := 0; i < 5; i++ {
		require.Equal(t, FullySucceeded, results[i].Outcome())
		assert.Equal(t, "shared", results[i].Value("piece"))
	}
}

func TestEngineOrdering(t *testing.T) {
	clock := newTestClock()
	engine := newTestEngine(t, clock)

	// The slowest sub-request is declared first; completion order must not
	// leak into the result order.
	subs := []SubRequest{
		{
			Name: "slow",
			Key:  "slow",
			TTL:  time.Minute,
			Fetch: func(ctx context.Context) (any, error) {
				time.Sleep(30 * time.Millisecond)
				return "a", nil
			},
		},
		{
			Name: "medium",
			Key:  "medium",
			TTL:  time.Minute,
			Fetch: func(ctx context.Context) (any, error) {
				time.Sleep(10 * time.Millisecond)
				return "b", nil
			},
		},
		{
			Name: "fast",
			Key:  "fast",
			TTL:  time.Minute,
			Fetch: func(ctx context.Context) (any, error) {
				return "c", nil
			},
		},
	}

	result := engine.Resolve(context.Background(), subs)

	require.Equal(t, FullySucceeded, result.Outcome())
	assert.Equal(t, []any{"a", "b", "c"}, result.Values())
}

func TestEnginePartialFailure(t *testing.T) {
	clock := newTestClock()
	engine := newTestEngine(t, clock)

	var calls atomic.Int64
	subs := []SubRequest{
		countingSub("ok", "ok", time.Minute, &calls, "value", nil),
		countingSub("bad", "bad", time.Minute, &calls, nil, fmt.Errorf("%w: boom", domain.ErrUpstream)),
	}

	result := engine.Resolve(context.Background(), subs)

	assert.Equal(t, PartiallySucceeded, result.Outcome())
	assert.Equal(t, "value", result.Value("ok"))
	assert.Nil(t, result.Value("bad"))
	assert.ErrorIs(t, result.Err("bad"), domain.ErrUpstream)
	assert.Equal(t, int64(2), calls.Load(), "a failing sibling must not abort the others")

	errs := result.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "bad")
}

func TestDominantError(t *testing.T) {
	t.Run("most frequent kind wins", func(t *testing.T) {
		clock := newTestClock()
		engine := newTestEngine(t, clock)

		var calls atomic.Int64
		subs := []SubRequest{
			countingSub("a", "a", time.Minute, &calls, nil, fmt.Errorf("%w: a", domain.ErrTimeout)),
			countingSub("b", "b", time.Minute, &calls, nil, fmt.Errorf("%w: b", domain.ErrUpstream)),
			countingSub("c", "c", time.Minute, &calls, nil, fmt.Errorf("%w: c", domain.ErrUpstream)),
		}

		result := engine.Resolve(context.Background(), subs)

		require.Equal(t, FullyFailed, result.Outcome())
		assert.ErrorIs(t, result.DominantError(), domain.ErrUpstream)
	})

	t.Run("ties go to the first declared", func(t *testing.T) {
		clock := newTestClock()
		engine := newTestEngine(t, clock)

		var calls atomic.Int64
		subs := []SubRequest{
			countingSub("a", "a", time.Minute, &calls, nil, fmt.Errorf("%w: a", domain.ErrTimeout)),
			countingSub("b", "b", time.Minute, &calls, nil, fmt.Errorf("%w: b", domain.ErrUpstream)),
		}

		result := engine.Resolve(context.Background(), subs)

		assert.ErrorIs(t, result.DominantError(), domain.ErrTimeout)
	})

	t.Run("nothing failed", func(t *testing.T) {
		clock := newTestClock()
		engine := newTestEngine(t, clock)

		var calls atomic.Int64
		result := engine.Resolve(context.Background(), []SubRequest{
			countingSub("a", "a", time.Minute, &calls, "value", nil),
		})

		assert.NoError(t, result.DominantError())
	})

	t.Run("unclassified errors count as upstream", func(t *testing.T) {
		assert.ErrorIs(t, errorKind(fmt.Errorf("some random error")), domain.ErrUpstream)
	})
}
