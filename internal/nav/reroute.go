package nav

import (
	"sync"
	"time"

	"campus-nav-service/internal/domain"
)

// ReroutePolicy watches drift from the last route anchor and, after a
// sustained excursion past the distance threshold, fires the trigger
// callback once. It is purely mechanical: the session decides whether a
// trigger actually becomes a reroute, and advances the anchor when it
// accepts one.
type ReroutePolicy struct {
	thresholdMeters float64
	debounce        time.Duration
	onTrigger       func(domain.Coordinate)

	mu      sync.Mutex
	anchor  *domain.Coordinate
	pending domain.Coordinate
	timer   *time.Timer
}

func NewReroutePolicy(thresholdMeters float64, debounce time.Duration, onTrigger func(domain.Coordinate)) *ReroutePolicy {
	return &ReroutePolicy{
		thresholdMeters: thresholdMeters,
		debounce:        debounce,
		onTrigger:       onTrigger,
	}
}

// SetAnchor records the position the current route was computed from.
// Any pending debounce refers to drift from the old anchor and is
// discarded.
func (p *ReroutePolicy) SetAnchor(c domain.Coordinate) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.anchor = &c
	p.stopTimerLocked()
}

// Clear drops the anchor and any pending debounce. With no anchor the
// policy ignores location updates entirely.
func (p *ReroutePolicy) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.anchor = nil
	p.stopTimerLocked()
}

// Cancel stops a pending debounce without touching the anchor.
func (p *ReroutePolicy) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimerLocked()
}

// OnLocationUpdate feeds a new position through the drift gate. Each
// qualifying update restarts the debounce window, so only sustained
// drift fires the trigger.
func (p *ReroutePolicy) OnLocationUpdate(c domain.Coordinate) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.anchor == nil {
		return
	}
	if c.DistanceTo(*p.anchor) <= p.thresholdMeters {
		return
	}

	p.pending = c
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.fire)
}

func (p *ReroutePolicy) fire() {
	p.mu.Lock()
	if p.anchor == nil || p.timer == nil {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	c := p.pending
	p.mu.Unlock()

	p.onTrigger(c)
}

func (p *ReroutePolicy) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
