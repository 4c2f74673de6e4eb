package nav

import (
	"campus-nav-service/internal/ports"
	"context"
	"sync"

	"campus-nav-service/internal/domain"
)

// Tracker wraps the device location collaborator: one immediate reading
// on start, then continuous updates gated by a minimum movement distance.
type Tracker struct {
	provider          ports.LocationProvider
	minDistanceMeters float64
}

func NewTracker(provider ports.LocationProvider, minDistanceMeters float64) *Tracker {
	return &Tracker{provider: provider, minDistanceMeters: minDistanceMeters}
}

// Start requests permission and begins delivery. A permission refusal
// arrives as domain.ErrPermissionDenied on onError and tracking never
// begins. The returned subscription is the one long-lived resource the
// caller must release on every exit path.
func (t *Tracker) Start(onUpdate func(domain.Coordinate), onError func(error)) *Subscription {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{cancel: cancel}

	go func() {
		current, err := t.provider.CurrentPosition(ctx)
		if err != nil {
			if ctx.Err() == nil {
				onError(err)
			}
			return
		}
		onUpdate(current)

		stop, err := t.provider.WatchPosition(ctx, t.minDistanceMeters, onUpdate)
		if err != nil {
			onError(err)
			return
		}
		sub.attach(stop)
	}()

	return sub
}

// Subscription is a handle on a live location watch.
type Subscription struct {
	cancel context.CancelFunc

	mu        sync.Mutex
	stop      func()
	cancelled bool
}

// Cancel stops delivery and releases the provider watch. Safe to call
// more than once.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	stop := s.stop
	s.mu.Unlock()

	s.cancel()
	if stop != nil {
		stop()
	}
}

// attach records the provider's stop function once the watch is live.
// If cancellation already happened the watch is released immediately.
func (s *Subscription) attach(stop func()) {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		stop()
		return
	}
	s.stop = stop
	s.mu.Unlock()
}
