package dto

type CreateSessionRequest struct {
	Mode          string `json:"mode"`
	VoiceGuidance bool   `json:"voice_guidance"`
}

// SetDestinationRequest accepts either a free-text query resolved through
// place search, or an explicit place payload from a client that already
// has one.
type SetDestinationRequest struct {
	Query string         `json:"query,omitempty"`
	Place *PlaceResponse `json:"place,omitempty"`
}

type LocationUpdateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type SetModeRequest struct {
	Mode string `json:"mode"`
}

type SetVoiceRequest struct {
	Enabled bool `json:"enabled"`
}

type CoordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type InstructionResponse struct {
	Text            string  `json:"text"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type RouteResponse struct {
	Polyline        []CoordinateResponse  `json:"polyline"`
	DistanceMeters  float64               `json:"distance_meters"`
	DurationSeconds float64               `json:"duration_seconds"`
	Instructions    []InstructionResponse `json:"instructions"`
}

type SessionResponse struct {
	SessionID       string              `json:"session_id"`
	State           string              `json:"state"`
	Mode            string              `json:"mode"`
	VoiceGuidance   bool                `json:"voice_guidance"`
	Destination     *PlaceResponse      `json:"destination,omitempty"`
	Route           *RouteResponse      `json:"route,omitempty"`
	LastKnown       *CoordinateResponse `json:"last_known,omitempty"`
	RerouteAttempts int                 `json:"reroute_attempts"`
	Error           string              `json:"error,omitempty"`
}
