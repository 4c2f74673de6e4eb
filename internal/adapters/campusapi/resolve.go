package campusapi

import (
	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/ports"
	"context"
	"fmt"
)

// ResolveDestination returns the best match for a destination query using
// any PlaceSearcher, or domain.ErrPlaceNotFound when nothing matches.
func ResolveDestination(ctx context.Context, searcher ports.PlaceSearcher, query string) (domain.Place, error) {
	places, err := searcher.SearchPlaces(ctx, query)
	if err != nil {
		return domain.Place{}, fmt.Errorf("resolve destination %q: %w", query, err)
	}

	if len(places) == 0 {
		return domain.Place{}, domain.ErrPlaceNotFound
	}

	return places[0], nil
}
