package nav

import (
	"context"
	"errors"
	"log"
	"sync"

	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/ports"
)

// State is the session lifecycle phase.
type State string

const (
	StateIdle        State = "idle"
	StateLocating    State = "locating"
	StateRouteActive State = "route_active"
	StateRerouting   State = "rerouting"
	StateArrived     State = "arrived"
	StateError       State = "error"
)

var ErrSessionClosed = errors.New("navigation session closed")

// Session coordinates location tracking, route fetching, rerouting and
// voice guidance for one traveler. All mutable state lives on a single
// goroutine; collaborators talk to it through the event channel, so the
// route, attempt counter and anchor have exactly one writer.
type Session struct {
	cfg    Config
	routes ports.RouteProvider

	events chan event
	done   chan struct{}

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	policy    *ReroutePolicy
	announcer *Announcer
	sub       *Subscription

	// Run-loop state. Never touched outside run().
	state       State
	mode        domain.TravelMode
	voice       bool
	destination *domain.Place
	activeRoute *domain.Route
	lastKnown   *domain.Coordinate
	lastErr     error
	attempts    int
	awaitingFix bool
	fetchSeq    int
	fetchBusy   bool
	handle      *Handle
}

type event interface{}

type evLocation struct{ c domain.Coordinate }
type evLocationError struct{ err error }
type evSelect struct{ place domain.Place }
type evMode struct{ mode domain.TravelMode }
type evClear struct{}
type evVoice struct{ enabled bool }
type evRerouteTrigger struct{ c domain.Coordinate }
type evClose struct{}

type evFetchResult struct {
	seq     int
	reroute bool
	origin  domain.Coordinate
	route   *domain.Route
	err     error
}

type evSnapshot struct{ reply chan Snapshot }

// Snapshot is a point-in-time copy of the session's observable state.
type Snapshot struct {
	State           State
	TravelMode      domain.TravelMode
	VoiceGuidance   bool
	Destination     *domain.Place
	Route           *domain.Route
	LastKnown       *domain.Coordinate
	RerouteAttempts int
	LastError       error
}

// NewSession starts tracking immediately and runs until Close.
func NewSession(
	routes ports.RouteProvider,
	locations ports.LocationProvider,
	speechEngine ports.SpeechEngine,
	cfg Config,
) *Session {
	cfg = cfg.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		cfg:       cfg,
		routes:    routes,
		events:    make(chan event, 32),
		done:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		announcer: NewAnnouncer(speechEngine, cfg.AnnounceStagger),
		state:     StateIdle,
		mode:      cfg.Mode,
		voice:     cfg.VoiceGuidance,
	}
	s.policy = NewReroutePolicy(cfg.RerouteDistanceMeters, cfg.RerouteDebounce, func(c domain.Coordinate) {
		s.post(evRerouteTrigger{c: c})
	})

	tracker := NewTracker(locations, cfg.WatchDistanceMeters)
	s.sub = tracker.Start(
		func(c domain.Coordinate) { s.post(evLocation{c: c}) },
		func(err error) { s.post(evLocationError{err: err}) },
	)

	go s.run()
	return s
}

func (s *Session) SelectDestination(place domain.Place) { s.post(evSelect{place: place}) }
func (s *Session) ClearDestination()                    { s.post(evClear{}) }
func (s *Session) SetTravelMode(mode domain.TravelMode) { s.post(evMode{mode: mode}) }
func (s *Session) SetVoiceGuidance(enabled bool)        { s.post(evVoice{enabled: enabled}) }

// Snapshot asks the run loop for a copy of the current state.
func (s *Session) Snapshot() (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	select {
	case s.events <- evSnapshot{reply: reply}:
	case <-s.done:
		return Snapshot{}, ErrSessionClosed
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-s.done:
		return Snapshot{}, ErrSessionClosed
	}
}

// Close tears the session down: location subscription first, then voice
// playback, then the debounce timer. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.sub.Cancel()
		s.post(evClose{})
	})
}

func (s *Session) post(ev event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) run() {
	for ev := range s.events {
		switch ev := ev.(type) {
		case evLocation:
			s.handleLocation(ev.c)
		case evLocationError:
			s.handleLocationError(ev.err)
		case evSelect:
			s.handleSelect(ev.place)
		case evMode:
			s.handleMode(ev.mode)
		case evClear:
			s.handleClear()
		case evVoice:
			s.handleVoice(ev.enabled)
		case evRerouteTrigger:
			s.handleRerouteTrigger(ev.c)
		case evFetchResult:
			s.handleFetchResult(ev)
		case evSnapshot:
			ev.reply <- s.snapshot()
		case evClose:
			s.cancel()
			s.cancelAnnouncer()
			s.policy.Clear()
			close(s.done)
			return
		}
	}
}

func (s *Session) handleLocation(c domain.Coordinate) {
	s.lastKnown = &c

	switch s.state {
	case StateLocating:
		if s.awaitingFix && s.destination != nil {
			s.awaitingFix = false
			s.startFetch(c, false)
		}
	case StateRouteActive:
		if c.DistanceTo(s.destination.Coordinate) < s.cfg.ArrivalDistanceMeters {
			s.arrive()
			return
		}
		s.policy.OnLocationUpdate(c)
	case StateRerouting:
		// Keep the fix fresh; drift handling resumes once the fetch lands.
	}
}

func (s *Session) handleLocationError(err error) {
	log.Printf("nav: location error: %v", err)
	s.lastErr = err
	if s.state == StateLocating {
		s.awaitingFix = false
		s.state = StateError
	}
}

func (s *Session) handleSelect(place domain.Place) {
	s.destination = &place
	s.resetForNewRoute()

	if s.lastKnown != nil {
		s.startFetch(*s.lastKnown, false)
	} else {
		s.awaitingFix = true
	}
}

func (s *Session) handleMode(mode domain.TravelMode) {
	if mode == s.mode {
		return
	}
	s.mode = mode
	if s.destination == nil {
		return
	}

	// The active route was computed for the old mode.
	s.resetForNewRoute()
	if s.lastKnown != nil {
		s.startFetch(*s.lastKnown, false)
	} else {
		s.awaitingFix = true
	}
}

// resetForNewRoute discards everything tied to the previous route and
// moves to Locating. The fetch sequence bump orphans any in-flight fetch.
func (s *Session) resetForNewRoute() {
	s.cancelAnnouncer()
	s.policy.Clear()
	s.activeRoute = nil
	s.attempts = 0
	s.lastErr = nil
	s.awaitingFix = false
	s.fetchSeq++
	s.fetchBusy = false
	s.state = StateLocating
}

func (s *Session) handleClear() {
	s.cancelAnnouncer()
	s.policy.Clear()
	s.destination = nil
	s.activeRoute = nil
	s.attempts = 0
	s.lastErr = nil
	s.awaitingFix = false
	s.fetchSeq++
	s.fetchBusy = false
	s.state = StateIdle
}

func (s *Session) handleVoice(enabled bool) {
	if enabled == s.voice {
		return
	}
	s.voice = enabled
	if !enabled {
		s.cancelAnnouncer()
		return
	}
	if s.activeRoute != nil {
		s.restartAnnouncer()
	}
}

func (s *Session) handleRerouteTrigger(c domain.Coordinate) {
	if s.state != StateRouteActive || s.destination == nil {
		return
	}
	if s.fetchBusy {
		log.Printf("nav: reroute trigger dropped, fetch in flight")
		return
	}
	if s.attempts >= s.cfg.MaxRerouteAttempts {
		log.Printf("nav: reroute cap reached attempts=%d, keeping current route", s.attempts)
		return
	}

	s.attempts++
	s.policy.SetAnchor(c)
	s.state = StateRerouting
	s.startFetch(c, true)
}

func (s *Session) startFetch(origin domain.Coordinate, reroute bool) {
	s.fetchBusy = true
	seq := s.fetchSeq
	dest := s.destination.Coordinate
	mode := s.mode

	go func() {
		route, err := s.routes.FetchRoute(s.ctx, origin, dest, mode)
		s.post(evFetchResult{seq: seq, reroute: reroute, origin: origin, route: route, err: err})
	}()
}

func (s *Session) handleFetchResult(ev evFetchResult) {
	if ev.seq != s.fetchSeq {
		// Destination or mode changed while this fetch was in flight.
		return
	}
	s.fetchBusy = false

	if ev.err != nil {
		if ev.reroute {
			log.Printf("nav: reroute fetch failed, keeping active route: %v", ev.err)
			s.state = StateRouteActive
			return
		}
		log.Printf("nav: route fetch failed: %v", ev.err)
		s.lastErr = ev.err
		s.state = StateError
		return
	}

	s.activeRoute = ev.route
	s.lastErr = nil
	if !ev.reroute {
		s.attempts = 0
		anchor := ev.origin
		if s.lastKnown != nil {
			anchor = *s.lastKnown
		}
		s.policy.SetAnchor(anchor)
	}
	s.state = StateRouteActive
	s.restartAnnouncer()
}

func (s *Session) arrive() {
	log.Printf("nav: arrived at destination=%q", s.destination.Name)
	s.cancelAnnouncer()
	s.policy.Clear()
	s.activeRoute = nil
	s.state = StateArrived
}

func (s *Session) restartAnnouncer() {
	s.cancelAnnouncer()
	if s.voice && s.activeRoute != nil && len(s.activeRoute.Instructions) > 0 {
		s.handle = s.announcer.Announce(s.activeRoute.Instructions)
	}
}

func (s *Session) cancelAnnouncer() {
	if s.handle != nil {
		s.handle.Cancel()
		s.handle = nil
	}
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		State:           s.state,
		TravelMode:      s.mode,
		VoiceGuidance:   s.voice,
		Route:           s.activeRoute,
		RerouteAttempts: s.attempts,
		LastError:       s.lastErr,
	}
	if s.destination != nil {
		d := *s.destination
		snap.Destination = &d
	}
	if s.lastKnown != nil {
		c := *s.lastKnown
		snap.LastKnown = &c
	}
	return snap
}
