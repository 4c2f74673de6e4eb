package domain

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied reports that the device location permission was
// refused. Fatal for starting a session; retryable by re-invoking.
var ErrPermissionDenied = errors.New("location permission denied")

// ErrPlaceNotFound reports that a destination query matched no places.
var ErrPlaceNotFound = errors.New("place not found")

// RouteFetchError reports a failed route request: network failure,
// non-success status, or a malformed reply.
type RouteFetchError struct {
	Reason string
	Err    error
}

func (e *RouteFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("route fetch: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("route fetch: %s", e.Reason)
}

func (e *RouteFetchError) Unwrap() error { return e.Err }
