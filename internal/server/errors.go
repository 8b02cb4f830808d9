package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/desertthunder/siren/internal/shared"
)

// ErrorBody is the JSON body of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// StatusFor maps an error to its HTTP status and caller-facing message.
//
// Upstream decode failures are reported like any other unavailable upstream; only the logs tell them apart.
func StatusFor(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, shared.ErrRemoteTimeout):
		return http.StatusRequestTimeout, shared.ErrRemoteTimeout.Error()
	case errors.Is(err, shared.ErrRemoteUnavailable), errors.Is(err, shared.ErrDecodeFailure):
		return http.StatusBadGateway, shared.ErrRemoteUnavailable.Error()
	case errors.Is(err, shared.ErrBadRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound, shared.ErrNotFound.Error()
	case errors.Is(err, shared.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, shared.ErrMethodNotAllowed.Error()
	default:
		return http.StatusInternalServerError, shared.ErrInternal.Error()
	}
}

// ErrorKind names the error class for logs and metrics labels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, shared.ErrRemoteTimeout):
		return "timeout"
	case errors.Is(err, shared.ErrDecodeFailure):
		return "decode"
	case errors.Is(err, shared.ErrRemoteUnavailable):
		return "unavailable"
	case errors.Is(err, shared.ErrBadRequest):
		return "bad_request"
	case errors.Is(err, shared.ErrNotFound):
		return "not_found"
	case errors.Is(err, shared.ErrMethodNotAllowed):
		return "method_not_allowed"
	default:
		return "internal"
	}
}

// WriteError writes the JSON error body for err and returns the status used.
//
// A failed body write is recorded on the response and reported by [Logging].
func WriteError(w http.ResponseWriter, err error) int {
	status, msg := StatusFor(err)
	writeJSON(w, status, ErrorBody{Error: msg, Code: status})
	return status
}

// writeJSON encodes v as the response body. The header is already sent when the write fails, so callers can
// only log the error.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}
