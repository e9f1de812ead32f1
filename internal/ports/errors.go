package ports

import (
	"errors"
	"net/http"

	"github.com/brianzzs/GreenFiveInnings/internal/domain"
)

// Nginx's non-standard status for a client that went away before the
// response was written.
const statusClientClosedRequest = 499

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrCanceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, domain.ErrCanceled):
		return "canceled"
	default:
		return "upstream"
	}
}

// errorLabels flattens a per-piece error map to short labels so that
// clients of a partial response can tell retryable failures from dead ends
// without parsing error strings.
func errorLabels(errs map[string]error) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	labels := make(map[string]string, len(errs))
	for name, err := range errs {
		labels[name] = errorLabel(err)
	}
	return labels
}
