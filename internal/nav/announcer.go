package nav

import (
	"fmt"
	"log"
	"sync"
	"time"

	"campus-nav-service/internal/domain"
	"campus-nav-service/internal/ports"
)

// Announcer reads a route's instructions aloud, one every stagger
// interval, numbered in route order.
type Announcer struct {
	engine  ports.SpeechEngine
	stagger time.Duration
}

func NewAnnouncer(engine ports.SpeechEngine, stagger time.Duration) *Announcer {
	return &Announcer{engine: engine, stagger: stagger}
}

// Announce schedules every instruction up front and returns a handle
// that stops the remaining ones. Instructions with empty text are
// skipped without consuming a slot in the numbering.
func (a *Announcer) Announce(instructions []domain.Instruction) *Handle {
	h := &Handle{engine: a.engine}

	n := 0
	for _, in := range instructions {
		if in.Text == "" {
			continue
		}
		n++
		line := fmt.Sprintf("%d. %s", n, in.Text)
		delay := time.Duration(n-1) * a.stagger
		h.timers = append(h.timers, time.AfterFunc(delay, func() {
			h.speak(line)
		}))
	}

	return h
}

// Handle controls one playback of a route's instructions.
type Handle struct {
	engine ports.SpeechEngine

	mu        sync.Mutex
	timers    []*time.Timer
	cancelled bool
}

func (h *Handle) speak(line string) {
	h.mu.Lock()
	if h.cancelled {
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()

	// A failed utterance must not silence the rest of the route.
	if err := h.engine.Speak(line); err != nil {
		log.Printf("announcer: speak failed: %v", err)
	}
}

// Cancel stops all pending announcements and interrupts any utterance
// in progress. Safe to call more than once.
func (h *Handle) Cancel() {
	h.mu.Lock()
	if h.cancelled {
		h.mu.Unlock()
		return
	}
	h.cancelled = true
	timers := h.timers
	h.timers = nil
	h.mu.Unlock()

	for _, t := range timers {
		t.Stop()
	}
	h.engine.Stop()
}
