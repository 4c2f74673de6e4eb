package campusapi

import (
	"campus-nav-service/internal/ports"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Client talks to the campus backend, which fronts both the routing
// engine (/route/) and the place directory (/places/).
//
// It coordinates:
//   - Query normalization
//   - Optional place-search caching
//   - External API calls (search retries transient failures; route
//     fetches never retry, that policy belongs to the navigation session)
//
// The client is safe for concurrent use.
type Client struct {
	session    *http.Client
	baseURL    string
	authToken  string
	placeCache ports.PlaceCache
}

func NewClient(baseURL string, authToken string, placeCache ports.PlaceCache) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("campus API base URL is empty")
	}

	client := &Client{
		session:    &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		authToken:  authToken,
		placeCache: placeCache,
	}

	return client, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (c *Client) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
