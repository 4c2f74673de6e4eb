package ports

import (
	"campus-nav-service/internal/domain"
	"context"
)

// Optional cache in front of a PlaceSearcher, keyed by normalized query.
// A miss is (nil, false, nil); cache write failures are non-fatal to the
// search path and are logged by callers.
type PlaceCache interface {
	Get(ctx context.Context, query string) ([]domain.Place, bool, error)
	Put(ctx context.Context, query string, places []domain.Place) error
}
