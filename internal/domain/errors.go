package domain

import "errors"

var (
	ErrTimeout           = errors.New("upstream call timed out")
	ErrRateLimited       = errors.New("upstream rate limit exceeded")
	ErrNotFound          = errors.New("resource not found")
	ErrUpstream          = errors.New("upstream server error")
	ErrMalformedResponse = errors.New("malformed upstream response")
	ErrCanceled          = errors.New("caller canceled")
)
