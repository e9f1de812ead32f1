package coalescing

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// Coalescer collapses concurrent fetches for the same key into a single
// upstream call. All callers waiting on a key receive the same outcome, and
// the in-flight slot is cleared atomically with resolution, so a call made
// right after one resolves starts a fresh fetch.
type Coalescer[T any] struct {
	group singleflight.Group
}

func NewCoalescer[T any]() *Coalescer[T] {
	return &Coalescer[T]{}
}

// FetchOrJoin runs fetch for key, or joins an already in-flight fetch for
// the same key. The fetch runs detached from any single caller's context:
// a caller whose ctx is canceled gets domain.ErrCanceled immediately, while
// the shared call keeps running for the remaining subscribers.
func (c *Coalescer[T]) FetchOrJoin(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	resultChan := c.group.DoChan(key, func() (interface{}, error) {
		return fetch(context.WithoutCancel(ctx))
	})

	var empty T
	select {
	case <-ctx.Done():
		return empty, fmt.Errorf("%w: %w", domain.ErrCanceled, ctx.Err())
	case result := <-resultChan:
		if result.Err != nil {
			return empty, result.Err
		}
		value, ok := result.Val.(T)
		if !ok {
			return empty, fmt.Errorf("coalescer: unexpected value type %T for key %q", result.Val, key)
		}
		return value, nil
	}
}
