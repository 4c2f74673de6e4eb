package campusapi

import (
	"campus-nav-service/internal/domain"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchRouteConvertsWireFormat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route/" {
			t.Errorf("path = %q, want /route/", r.URL.Path)
		}
		if got := r.URL.Query().Get("vehicle"); got != "foot" {
			t.Errorf("vehicle = %q, want foot", got)
		}
		if got := r.URL.Query().Get("start"); got != "9.030000,38.760000" {
			t.Errorf("start = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"points": [[38.76, 9.03], [38.77, 9.04]],
			"distance_km": 1.5,
			"time_minutes": 18,
			"instructions": [
				{"text": "Head north", "distance": 800, "time": 540},
				{"text": "Turn right", "distance": 700, "time": 540}
			]
		}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, "", nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	route, err := client.FetchRoute(
		context.Background(),
		domain.Coordinate{Latitude: 9.03, Longitude: 38.76},
		domain.Coordinate{Latitude: 9.04, Longitude: 38.77},
		domain.ModeFoot,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Polyline) != 2 {
		t.Fatalf("polyline length = %d, want 2", len(route.Polyline))
	}

	// Wire order is [lon, lat]; internal order is lat/lon.
	want := []domain.Coordinate{
		{Latitude: 9.03, Longitude: 38.76},
		{Latitude: 9.04, Longitude: 38.77},
	}
	for i, c := range route.Polyline {
		if c != want[i] {
			t.Fatalf("polyline[%d] = %+v, want %+v", i, c, want[i])
		}
	}

	if route.DistanceMeters != 1500 {
		t.Fatalf("distance = %.1f m, want 1500", route.DistanceMeters)
	}
	if route.DurationSeconds != 1080 {
		t.Fatalf("duration = %.1f s, want 1080", route.DurationSeconds)
	}

	if len(route.Instructions) != 2 {
		t.Fatalf("instructions length = %d, want 2", len(route.Instructions))
	}
	if route.Instructions[0].Text != "Head north" {
		t.Fatalf("instruction[0] = %q", route.Instructions[0].Text)
	}
	if route.Instructions[1].DistanceMeters != 700 {
		t.Fatalf("instruction[1] distance = %.1f", route.Instructions[1].DistanceMeters)
	}
}

func TestFetchRouteEmptyPoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"points": [], "distance_km": 2.0, "time_minutes": 10}`))
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "", nil)
	_, err := client.FetchRoute(context.Background(), domain.Coordinate{}, domain.Coordinate{}, domain.ModeCar)

	var fetchErr *domain.RouteFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected RouteFetchError, got %v", err)
	}
}

func TestFetchRouteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no path found", http.StatusBadGateway)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "", nil)
	_, err := client.FetchRoute(context.Background(), domain.Coordinate{}, domain.Coordinate{}, domain.ModeBike)

	var fetchErr *domain.RouteFetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected RouteFetchError, got %v", err)
	}
	if fetchErr.Reason != "request failed" {
		t.Fatalf("reason = %q", fetchErr.Reason)
	}
}

func TestFetchRouteDoesNotRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, _ := NewClient(srv.URL, "", nil)
	_, err := client.FetchRoute(context.Background(), domain.Coordinate{}, domain.Coordinate{}, domain.ModeFoot)
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("backend called %d times, want 1 (route fetches never retry)", calls)
	}
}
