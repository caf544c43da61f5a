// Package apperr defines the failure conditions a build can surface.
// Handlers map each condition to its own HTTP status; conditions are never
// collapsed into a generic error.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound: the repository or its default branch does not exist.
	ErrNotFound = errors.New("repository not found")
	// ErrUpstreamTimeout: a network operation (commit resolution, clone)
	// exceeded its deadline. The whole build aborts; no partial data.
	ErrUpstreamTimeout = errors.New("upstream timeout")
	// ErrCloneFailure: repository materialization exited non-zero.
	ErrCloneFailure = errors.New("clone failed")
	// ErrPartialRead: a single file could not be read or decoded. Always
	// recovered locally (the file contributes no edges); exported so callers
	// can count occurrences if they care.
	ErrPartialRead = errors.New("file unreadable")
	// ErrInternal: anything unexpected.
	ErrInternal = errors.New("internal error")
)

// HTTPStatus maps a build error to its response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrCloneFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
