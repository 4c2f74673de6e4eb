package campusapi

import (
	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/platform/obs"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type routeInstruction struct {
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

type routeResponse struct {
	Points       [][]float64        `json:"points"`
	DistanceKM   float64            `json:"distance_km"`
	TimeMinutes  float64            `json:"time_minutes"`
	Instructions []routeInstruction `json:"instructions"`
}

// FetchRoute asks the routing backend for a path from start to end.
// The backend replies with points as [longitude, latitude] pairs, a
// distance in kilometers and a duration in minutes; everything is
// converted to the internal lat/lon, meters and seconds representation.
//
// A single request is issued; no retry. The session decides whether a
// failure is fatal (first fetch) or absorbed (reroute fetch).
func (c *Client) FetchRoute(
	ctx context.Context,
	start domain.Coordinate,
	end domain.Coordinate,
	mode domain.TravelMode,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "campusapi.FetchRoute")(&err)

	endpoint := c.baseURL + "/route/"

	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.RouteFetchError{Reason: "build request", Err: err}
	}

	q := req.URL.Query()
	q.Set("start", fmt.Sprintf("%.6f,%.6f", start.Latitude, start.Longitude))
	q.Set("end", fmt.Sprintf("%.6f,%.6f", end.Latitude, end.Longitude))
	q.Set("vehicle", string(mode))
	req.URL.RawQuery = q.Encode()

	resp, err := c.do(req)
	if err != nil {
		return nil, &domain.RouteFetchError{Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &domain.RouteFetchError{Reason: "decode response", Err: err}
	}

	return routeFromResponse(&decoded)
}

// routeFromResponse converts the wire format into a domain.Route.
// Point order is [lon, lat] on the wire and must be swapped.
func routeFromResponse(decoded *routeResponse) (*domain.Route, error) {
	if len(decoded.Points) == 0 {
		return nil, &domain.RouteFetchError{Reason: "empty point list"}
	}

	polyline := make([]domain.Coordinate, 0, len(decoded.Points))
	for i, p := range decoded.Points {
		if len(p) != 2 {
			return nil, &domain.RouteFetchError{
				Reason: fmt.Sprintf("malformed point at index %d (want [lon, lat])", i),
			}
		}
		polyline = append(polyline, domain.Coordinate{
			Latitude:  p[1],
			Longitude: p[0],
		})
	}

	distanceMeters := decoded.DistanceKM * 1000
	if distanceMeters > 0 && len(polyline) < 2 {
		return nil, &domain.RouteFetchError{
			Reason: fmt.Sprintf("route of %.0f m has a single point", distanceMeters),
		}
	}

	instructions := make([]domain.Instruction, 0, len(decoded.Instructions))
	for _, ins := range decoded.Instructions {
		// Step distance and time are already meters/seconds on the wire;
		// only the route totals need unit conversion.
		instructions = append(instructions, domain.Instruction{
			Text:            ins.Text,
			DistanceMeters:  ins.Distance,
			DurationSeconds: ins.Time,
		})
	}

	return &domain.Route{
		Polyline:        polyline,
		DistanceMeters:  distanceMeters,
		DurationSeconds: decoded.TimeMinutes * 60,
		Instructions:    instructions,
	}, nil
}
