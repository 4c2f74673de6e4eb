package campusapi

import (
	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// The backend serializes coordinates as decimal strings in some
// deployments and as JSON numbers in others; accept both.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type placeResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Latitude    flexFloat `json:"latitude"`
	Longitude   flexFloat `json:"longitude"`
}

// SearchPlaces resolves a free-text query against the place directory
// (/places/?search=). Results pass through the place cache when one is
// configured; cache write failures are logged, never fatal.
func (c *Client) SearchPlaces(ctx context.Context, query string) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "campusapi.SearchPlaces")(&err)

	norm := c.normalize(query)
	if norm == "" {
		return nil, errors.New("search places: query must be non-empty")
	}

	if c.placeCache != nil {
		cached, ok, err := c.placeCache.Get(ctx, norm)
		if err != nil {
			return nil, fmt.Errorf("search places: place cache read: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	endpoint := c.baseURL + "/places/"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("search", norm)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("search places: execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []placeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("search places: decode response: %w", err)
	}

	places := make([]domain.Place, 0, len(decoded))
	for _, item := range decoded {
		places = append(places, domain.Place{
			PlaceID:     item.ID,
			Name:        item.Name,
			Category:    item.Category,
			Description: item.Description,
			ImageURL:    item.Image,
			Coordinate: domain.Coordinate{
				Latitude:  float64(item.Latitude),
				Longitude: float64(item.Longitude),
			},
		})
	}

	if c.placeCache != nil && len(places) > 0 {
		if err := c.placeCache.Put(ctx, norm, places); err != nil {
			log.Printf("place cache write failed: %v", err)
		}
	}

	return places, nil
}
