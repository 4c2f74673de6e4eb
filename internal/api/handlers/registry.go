package handlers

import (
	"sync"

	"github.com/google/uuid"

	"campus-nav-service/internal/adapters/location"
	"campus-nav-service/internal/nav"
	"campus-nav-service/internal/ports"
)

// SessionEntry pairs a navigation session with the push provider that
// feeds it device readings.
type SessionEntry struct {
	Session   *nav.Session
	Locations *location.PushProvider
}

// SessionRegistry owns every live navigation session, keyed by UUID.
// Each session gets its own push-fed location provider; routing and
// speech collaborators are shared.
type SessionRegistry struct {
	routes   ports.RouteProvider
	speech   ports.SpeechEngine
	defaults nav.Config

	mu       sync.Mutex
	sessions map[string]*SessionEntry
}

func NewSessionRegistry(routes ports.RouteProvider, speech ports.SpeechEngine, defaults nav.Config) *SessionRegistry {
	return &SessionRegistry{
		routes:   routes,
		speech:   speech,
		defaults: defaults,
		sessions: map[string]*SessionEntry{},
	}
}

// Create starts a new session and returns its identifier.
func (r *SessionRegistry) Create(cfg nav.Config) (string, *SessionEntry) {
	provider := location.NewPushProvider()
	entry := &SessionEntry{
		Session:   nav.NewSession(r.routes, provider, r.speech, cfg),
		Locations: provider,
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = entry
	r.mu.Unlock()

	return id, entry
}

// Defaults returns the registry-wide base configuration for new sessions.
func (r *SessionRegistry) Defaults() nav.Config {
	return r.defaults
}

func (r *SessionRegistry) Get(id string) (*SessionEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[id]
	return entry, ok
}

// Remove closes the session and forgets it. Returns false when the id
// is unknown.
func (r *SessionRegistry) Remove(id string) bool {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		entry.Session.Close()
	}
	return ok
}

// CloseAll tears down every live session, for server shutdown.
func (r *SessionRegistry) CloseAll() {
	r.mu.Lock()
	entries := make([]*SessionEntry, 0, len(r.sessions))
	for id, entry := range r.sessions {
		entries = append(entries, entry)
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	for _, entry := range entries {
		entry.Session.Close()
	}
}
