package handlers

import (
	"log"
	"net/http"
	"strings"

	"campus-nav-service/internal/api/dto"
	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/ports"
)

// PlaceHandler exposes place search over HTTP.
type PlaceHandler struct {
	Searcher ports.PlaceSearcher
}

func (h *PlaceHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search"))
	if query == "" {
		writeError(w, r, http.StatusBadRequest, "search query is required")
		return
	}

	places, err := h.Searcher.SearchPlaces(r.Context(), query)
	if err != nil {
		log.Printf("place search failed: query=%q err=%v", query, err)
		writeError(w, r, http.StatusBadGateway, "place search failed")
		return
	}

	res := dto.SearchPlacesResponse{
		Places: make([]dto.PlaceResponse, 0, len(places)),
	}
	for _, p := range places {
		res.Places = append(res.Places, placeToDTO(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func placeToDTO(p domain.Place) dto.PlaceResponse {
	return dto.PlaceResponse{
		PlaceID:     p.PlaceID,
		Name:        p.Name,
		Category:    p.Category,
		Latitude:    p.Coordinate.Latitude,
		Longitude:   p.Coordinate.Longitude,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

func placeFromDTO(p dto.PlaceResponse) domain.Place {
	return domain.Place{
		PlaceID:  p.PlaceID,
		Name:     p.Name,
		Category: p.Category,
		Coordinate: domain.Coordinate{
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
		},
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}
