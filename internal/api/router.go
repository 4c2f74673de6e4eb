package api

import (
	"net/http"

	"campus-nav-service/internal/api/handlers"
	"campus-nav-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(searcher ports.PlaceSearcher, registry *handlers.SessionRegistry) http.Handler {
	mux := http.NewServeMux()

	placeHandler := &handlers.PlaceHandler{Searcher: searcher}
	sessionHandler := &handlers.SessionHandler{
		Registry: registry,
		Searcher: searcher,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /places", placeHandler.Search)

	mux.HandleFunc("POST /sessions", sessionHandler.Create)
	mux.HandleFunc("GET /sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("DELETE /sessions/{id}", sessionHandler.Delete)
	mux.HandleFunc("POST /sessions/{id}/destination", sessionHandler.SetDestination)
	mux.HandleFunc("DELETE /sessions/{id}/destination", sessionHandler.ClearDestination)
	mux.HandleFunc("POST /sessions/{id}/location", sessionHandler.PushLocation)
	mux.HandleFunc("POST /sessions/{id}/mode", sessionHandler.SetMode)
	mux.HandleFunc("POST /sessions/{id}/voice", sessionHandler.SetVoice)

	return loggingMiddleware(mux)
}
