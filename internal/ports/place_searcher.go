package ports

import (
	"campus-nav-service/internal/domain"
	"context"
)

// Port: a boundary for resolving free-text queries into campus places.
type PlaceSearcher interface {
	// Return places matching the query, best match first.
	SearchPlaces(ctx context.Context, query string) ([]domain.Place, error)
}
