package ports

import (
	"campus-nav-service/internal/domain"
	"context"
)

// Contract for the device location collaborator.
type LocationProvider interface {
	// Return the current position once. Fails with
	// domain.ErrPermissionDenied when location permission is refused.
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)

	// Begin continuous position delivery. Readings closer than
	// minDistanceMeters to the previously delivered one may be withheld by
	// the provider. The returned stop function releases the watch and is
	// safe to call more than once.
	WatchPosition(ctx context.Context, minDistanceMeters float64, emit func(domain.Coordinate)) (stop func(), err error)
}
