package services

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/desertthunder/siren/internal/shared"
)

// RemoteError reports that the upstream could not be reached or answered with a non-2xx status.
//
// It matches [shared.ErrRemoteTimeout] when Timeout is set and [shared.ErrRemoteUnavailable] otherwise.
type RemoteError struct {
	URL     string
	Status  int // zero for transport failures
	Timeout bool
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("request %s failed: %v", e.URL, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func (e *RemoteError) Is(target error) bool {
	if e.Timeout {
		return target == shared.ErrRemoteTimeout
	}
	return target == shared.ErrRemoteUnavailable
}

// DecodeError reports a body that does not match the expected envelope. It matches [shared.ErrDecodeFailure].
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == shared.ErrDecodeFailure }

func newTransportError(url string, err error) *RemoteError {
	return &RemoteError{URL: url, Timeout: isTimeout(err), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
