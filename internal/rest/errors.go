package rest

import "errors"

// APIError is the only error shape surfaced to callers: a message suitable
// for direct display, plus the HTTP status when one was received.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// ErrUnauthorized marks a 401; the global teardown hook has already run by
// the time a caller sees it.
var ErrUnauthorized = errors.New("unauthorized")

// IsUnauthorized reports whether err represents an expired session.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == 401
	}
	return errors.Is(err, ErrUnauthorized)
}
