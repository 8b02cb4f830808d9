package shared

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Upstream errors
	ErrRemoteTimeout     = errors.New("request timed out")
	ErrRemoteUnavailable = errors.New("upstream service unavailable")
	ErrDecodeFailure     = errors.New("unexpected upstream response")
	ErrUpstreamRejected  = errors.New("upstream rejected request")

	// Request errors
	ErrBadRequest       = errors.New("bad request")
	ErrNotFound         = errors.New("resource not found")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrInternal         = errors.New("internal server error")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// BadRequestf returns an error matching [ErrBadRequest] whose message is the formatted text alone,
// suitable for echoing back to an API caller.
func BadRequestf(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...), kind: ErrBadRequest}
}

type requestError struct {
	msg  string
	kind error
}

func (e *requestError) Error() string { return e.msg }

func (e *requestError) Is(target error) bool { return target == e.kind }
