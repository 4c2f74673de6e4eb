package ports

import (
	"campus-nav-service/internal/domain"
	"context"
)

// Contract for computing a route between two coordinates via the external
// routing backend. Implementations do not retry internally; retry policy
// belongs to the caller.
type RouteProvider interface {
	// Fetch a route from start to end for the given travel mode.
	// Fails with *domain.RouteFetchError on network failure, non-success
	// status, or a malformed point list.
	FetchRoute(ctx context.Context, start, end domain.Coordinate, mode domain.TravelMode) (*domain.Route, error)
}
