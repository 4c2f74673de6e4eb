package handlers

import (
	"errors"
	"log"
	"net/http"

	"campus-nav-service/internal/adapters/campusapi"
	"campus-nav-service/internal/api/dto"
	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/nav"
	"campus-nav-service/internal/ports"
)

// SessionHandler exposes the navigation session lifecycle over HTTP.
// The device pushes its GPS readings here and reads snapshots back; the
// session itself runs server-side.
type SessionHandler struct {
	Registry *SessionRegistry
	Searcher ports.PlaceSearcher
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg := h.Registry.Defaults()
	cfg.VoiceGuidance = req.VoiceGuidance
	if req.Mode != "" {
		mode, err := domain.ParseTravelMode(req.Mode)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "unknown travel mode")
			return
		}
		cfg.Mode = mode
	}

	id, entry := h.Registry.Create(cfg)
	log.Printf("session created id=%s mode=%s voice=%t", id, cfg.Mode, cfg.VoiceGuidance)
	h.writeSnapshot(w, r, http.StatusCreated, id, entry)
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.writeSnapshot(w, r, http.StatusOK, id, entry)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.Registry.Remove(id) {
		writeError(w, r, http.StatusNotFound, "session not found")
		return
	}
	log.Printf("session closed id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

// SetDestination resolves the requested destination and hands it to the
// session. A free-text query goes through place search; an explicit
// place payload is used as-is.
func (h *SessionHandler) SetDestination(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.SetDestinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	var place domain.Place
	switch {
	case req.Place != nil:
		place = placeFromDTO(*req.Place)
	case req.Query != "":
		var err error
		place, err = campusapi.ResolveDestination(r.Context(), h.Searcher, req.Query)
		if errors.Is(err, domain.ErrPlaceNotFound) {
			writeError(w, r, http.StatusNotFound, "no place matches the query")
			return
		}
		if err != nil {
			log.Printf("destination resolve failed: session=%s err=%v", id, err)
			writeError(w, r, http.StatusBadGateway, "place search failed")
			return
		}
	default:
		writeError(w, r, http.StatusBadRequest, "query or place is required")
		return
	}

	entry.Session.SelectDestination(place)
	h.writeSnapshot(w, r, http.StatusOK, id, entry)
}

func (h *SessionHandler) ClearDestination(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := h.lookup(w, r)
	if !ok {
		return
	}
	entry.Session.ClearDestination()
	h.writeSnapshot(w, r, http.StatusOK, id, entry)
}

func (h *SessionHandler) PushLocation(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.LocationUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	entry.Locations.Push(domain.Coordinate{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	h.writeSnapshot(w, r, http.StatusOK, id, entry)
}

func (h *SessionHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.SetModeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := domain.ParseTravelMode(req.Mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "unknown travel mode")
		return
	}

	entry.Session.SetTravelMode(mode)
	h.writeSnapshot(w, r, http.StatusOK, id, entry)
}

func (h *SessionHandler) SetVoice(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req dto.SetVoiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	entry.Session.SetVoiceGuidance(req.Enabled)
	h.writeSnapshot(w, r, http.StatusOK, id, entry)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (string, *SessionEntry, bool) {
	id := r.PathValue("id")
	entry, ok := h.Registry.Get(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "session not found")
		return "", nil, false
	}
	return id, entry, true
}

func (h *SessionHandler) writeSnapshot(w http.ResponseWriter, r *http.Request, status int, id string, entry *SessionEntry) {
	snap, err := entry.Session.Snapshot()
	if err != nil {
		writeError(w, r, http.StatusGone, "session closed")
		return
	}
	writeJSON(w, r, status, snapshotToDTO(id, snap))
}

func snapshotToDTO(id string, snap nav.Snapshot) dto.SessionResponse {
	res := dto.SessionResponse{
		SessionID:       id,
		State:           string(snap.State),
		Mode:            string(snap.TravelMode),
		VoiceGuidance:   snap.VoiceGuidance,
		RerouteAttempts: snap.RerouteAttempts,
	}
	if snap.Destination != nil {
		d := placeToDTO(*snap.Destination)
		res.Destination = &d
	}
	if snap.LastKnown != nil {
		res.LastKnown = &dto.CoordinateResponse{
			Latitude:  snap.LastKnown.Latitude,
			Longitude: snap.LastKnown.Longitude,
		}
	}
	if snap.Route != nil {
		res.Route = routeToDTO(snap.Route)
	}
	if snap.LastError != nil {
		res.Error = snap.LastError.Error()
	}
	return res
}

func routeToDTO(route *domain.Route) *dto.RouteResponse {
	res := &dto.RouteResponse{
		Polyline:        make([]dto.CoordinateResponse, 0, len(route.Polyline)),
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Instructions:    make([]dto.InstructionResponse, 0, len(route.Instructions)),
	}
	for _, c := range route.Polyline {
		res.Polyline = append(res.Polyline, dto.CoordinateResponse{
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		})
	}
	for _, in := range route.Instructions {
		res.Instructions = append(res.Instructions, dto.InstructionResponse{
			Text:            in.Text,
			DistanceMeters:  in.DistanceMeters,
			DurationSeconds: in.DurationSeconds,
		})
	}
	return res
}
