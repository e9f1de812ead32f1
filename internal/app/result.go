package app

import (
	"fmt"
	"maps"
)

type Outcome int

const (
	FullySucceeded Outcome = iota
	PartiallySucceeded
	FullyFailed
)

// AggregateResult is the immutable outcome of resolving one composite
// request. Values sit in the declared sub-request order; failed pieces hold
// a nil value and an entry in the error map keyed by sub-request name.
type AggregateResult struct {
	names  []string
	values []any
	errs   map[string]error
}

func newAggregateResult(subs []SubRequest, values []any, errs []error) *AggregateResult {
	names := make([]string, len(subs))
	errMap := make(map[string]error)
	for i, sub := range subs {
		names[i] = sub.Name
		if errs[i] != nil {
			errMap[sub.Name] = errs[i]
			values[i] = nil
		}
	}

	return &AggregateResult{
		names:  names,
		values: values,
		errs:   errMap,
	}
}

func (r *AggregateResult) Outcome() Outcome {
	switch {
	case len(r.errs) == 0:
		return FullySucceeded
	case len(r.errs) == len(r.names) && len(r.names) > 0:
		return FullyFailed
	default:
		return PartiallySucceeded
	}
}

// Value returns the resolved value for the named sub-request, or nil if it
// failed or does not exist.
func (r *AggregateResult) Value(name string) any {
	for i, n := range r.names {
		if n == name {
			return r.values[i]
		}
	}
	return nil
}

// Values returns all resolved values in declared sub-request order, with
// nil holes for failed pieces.
func (r *AggregateResult) Values() []any {
	return r.values
}

func (r *AggregateResult) Err(name string) error {
	return r.errs[name]
}

func (r *AggregateResult) Errors() map[string]error {
	return maps.Clone(r.errs)
}

// DominantError summarizes a failed composite as its most frequent error
// kind. Ties go to the kind that appears first in declared sub-request
// order. Returns nil if nothing failed.
func (r *AggregateResult) DominantError() error {
	if len(r.errs) == 0 {
		return nil
	}

	counts := make(map[error]int)
	var dominant error
	for _, name := range r.names {
		err, ok := r.errs[name]
		if !ok {
			continue
		}
		kind := errorKind(err)
		counts[kind]++
		if dominant == nil || counts[kind] > counts[dominant] {
			dominant = kind
		}
	}

	return fmt.Errorf("%w: %d of %d sub-requests failed", dominant, len(r.errs), len(r.names))
}
