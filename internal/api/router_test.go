package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"campus-nav-service/internal/adapters/campusapi"
	"campus-nav-service/internal/adapters/speech"
	"campus-nav-service/internal/api/dto"
	"campus-nav-service/internal/api/handlers"
	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/nav"
)

type fakeSearcher struct {
	places []domain.Place
}

func (f *fakeSearcher) SearchPlaces(ctx context.Context, query string) ([]domain.Place, error) {
	var out []domain.Place
	for _, p := range f.places {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	route := &domain.Route{
		Polyline:        []domain.Coordinate{{Latitude: 9.03, Longitude: 38.76}, {Latitude: 9.04, Longitude: 38.77}},
		DistanceMeters:  1200,
		DurationSeconds: 960,
		Instructions:    []domain.Instruction{{Text: "Head north", DistanceMeters: 1200, DurationSeconds: 960}},
	}
	searcher := &fakeSearcher{places: []domain.Place{
		{PlaceID: 1, Name: "Main Library", Category: "library", Coordinate: domain.Coordinate{Latitude: 9.04, Longitude: 38.77}},
		{PlaceID: 2, Name: "Cafeteria", Category: "food", Coordinate: domain.Coordinate{Latitude: 9.05, Longitude: 38.78}},
	}}

	registry := handlers.NewSessionRegistry(
		campusapi.NewMockRouteProvider(route),
		speech.NewLogEngine(),
		nav.Config{
			RerouteDebounce: 20 * time.Millisecond,
			AnnounceStagger: 10 * time.Millisecond,
		},
	)
	t.Cleanup(registry.CloseAll)

	srv := httptest.NewServer(NewRouter(searcher, registry))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()

	if out != nil && res.StatusCode < 300 {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return res.StatusCode
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var created dto.SessionResponse
	status := doJSON(t, http.MethodPost, srv.URL+"/sessions", dto.CreateSessionRequest{Mode: "foot"}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.SessionID == "" || created.State != "idle" {
		t.Fatalf("created = %+v", created)
	}

	base := srv.URL + "/sessions/" + created.SessionID

	status = doJSON(t, http.MethodPost, base+"/location", dto.LocationUpdateRequest{Latitude: 9.03, Longitude: 38.76}, nil)
	if status != http.StatusOK {
		t.Fatalf("location status = %d", status)
	}

	var snap dto.SessionResponse
	status = doJSON(t, http.MethodPost, base+"/destination", dto.SetDestinationRequest{Query: "library"}, &snap)
	if status != http.StatusOK {
		t.Fatalf("destination status = %d", status)
	}

	deadline := time.Now().Add(2 * time.Second)
	for snap.State != "route_active" && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
		doJSON(t, http.MethodGet, base, nil, &snap)
	}
	if snap.State != "route_active" {
		t.Fatalf("state = %s, want route_active (err=%s)", snap.State, snap.Error)
	}
	if snap.Route == nil || len(snap.Route.Instructions) != 1 {
		t.Fatalf("route = %+v", snap.Route)
	}
	if snap.Destination == nil || snap.Destination.PlaceID != 1 {
		t.Fatalf("destination = %+v", snap.Destination)
	}

	if status = doJSON(t, http.MethodDelete, base, nil, nil); status != http.StatusNoContent {
		t.Fatalf("delete status = %d", status)
	}
	if status = doJSON(t, http.MethodGet, base, nil, nil); status != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", status)
	}
}

func TestCreateSessionRejectsUnknownMode(t *testing.T) {
	srv := newTestServer(t)

	status := doJSON(t, http.MethodPost, srv.URL+"/sessions", dto.CreateSessionRequest{Mode: "boat"}, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
}

func TestDestinationQueryWithNoMatchReturnsNotFound(t *testing.T) {
	srv := newTestServer(t)

	var created dto.SessionResponse
	doJSON(t, http.MethodPost, srv.URL+"/sessions", dto.CreateSessionRequest{}, &created)

	url := fmt.Sprintf("%s/sessions/%s/destination", srv.URL, created.SessionID)
	status := doJSON(t, http.MethodPost, url, dto.SetDestinationRequest{Query: "observatory"}, nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}

func TestPlaceSearchEndpoint(t *testing.T) {
	srv := newTestServer(t)

	var res dto.SearchPlacesResponse
	status := doJSON(t, http.MethodGet, srv.URL+"/places?search=cafeteria", nil, &res)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(res.Places) != 1 || res.Places[0].Name != "Cafeteria" {
		t.Fatalf("places = %+v", res.Places)
	}

	if status := doJSON(t, http.MethodGet, srv.URL+"/places", nil, nil); status != http.StatusBadRequest {
		t.Fatalf("missing query status = %d, want 400", status)
	}
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	srv := newTestServer(t)

	status := doJSON(t, http.MethodGet, srv.URL+"/sessions/nope", nil, nil)
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
}
