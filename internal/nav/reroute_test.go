package nav

import (
	"sync"
	"testing"
	"time"

	"campus-nav-service/internal/domain"
)

type triggerRecorder struct {
	mu       sync.Mutex
	triggers []domain.Coordinate
}

func (r *triggerRecorder) record(c domain.Coordinate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.triggers = append(r.triggers, c)
}

func (r *triggerRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.triggers)
}

func (r *triggerRecorder) last() domain.Coordinate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.triggers[len(r.triggers)-1]
}

// ~55 m north of the origin at the equator.
var driftPoint = domain.Coordinate{Latitude: 0.0005, Longitude: 0}

func TestNoTriggerWithoutAnchor(t *testing.T) {
	rec := &triggerRecorder{}
	p := NewReroutePolicy(20, 10*time.Millisecond, rec.record)

	p.OnLocationUpdate(driftPoint)
	time.Sleep(60 * time.Millisecond)

	if rec.count() != 0 {
		t.Fatalf("triggered %d times without an anchor", rec.count())
	}
}

func TestNoTriggerWithinThreshold(t *testing.T) {
	rec := &triggerRecorder{}
	p := NewReroutePolicy(20, 10*time.Millisecond, rec.record)
	p.SetAnchor(domain.Coordinate{})

	// ~5 m of drift, below the 20 m gate.
	p.OnLocationUpdate(domain.Coordinate{Latitude: 0.000045})
	time.Sleep(60 * time.Millisecond)

	if rec.count() != 0 {
		t.Fatalf("triggered %d times within threshold", rec.count())
	}
}

func TestSustainedDriftTriggersOnce(t *testing.T) {
	rec := &triggerRecorder{}
	p := NewReroutePolicy(20, 10*time.Millisecond, rec.record)
	p.SetAnchor(domain.Coordinate{})

	p.OnLocationUpdate(driftPoint)

	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if rec.count() != 1 {
		t.Fatalf("triggered %d times, want 1", rec.count())
	}
	if rec.last() != driftPoint {
		t.Fatalf("trigger location = %+v, want %+v", rec.last(), driftPoint)
	}

	// The window is consumed. No further updates, no further triggers.
	time.Sleep(60 * time.Millisecond)
	if rec.count() != 1 {
		t.Fatalf("triggered %d times after the window fired", rec.count())
	}
}

func TestDriftBurstTriggersOnceWithLastCoordinate(t *testing.T) {
	rec := &triggerRecorder{}
	p := NewReroutePolicy(20, 60*time.Millisecond, rec.record)
	p.SetAnchor(domain.Coordinate{})

	// Qualifying updates arriving faster than the debounce window: each
	// one restarts the window, so only the last coordinate may fire.
	burst := []domain.Coordinate{
		{Latitude: 0.0005},
		{Latitude: 0.0010},
		{Latitude: 0.0015},
	}
	for _, c := range burst {
		p.OnLocationUpdate(c)
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	// Leave room for any stray second timer before counting.
	time.Sleep(120 * time.Millisecond)

	if rec.count() != 1 {
		t.Fatalf("triggered %d times for one burst, want 1", rec.count())
	}
	if rec.last() != burst[len(burst)-1] {
		t.Fatalf("trigger location = %+v, want %+v", rec.last(), burst[len(burst)-1])
	}
}

func TestCancelSuppressesPendingTrigger(t *testing.T) {
	rec := &triggerRecorder{}
	p := NewReroutePolicy(20, 30*time.Millisecond, rec.record)
	p.SetAnchor(domain.Coordinate{})

	p.OnLocationUpdate(driftPoint)
	p.Cancel()
	time.Sleep(100 * time.Millisecond)

	if rec.count() != 0 {
		t.Fatalf("triggered %d times after cancel", rec.count())
	}
}

func TestSetAnchorDiscardsPendingTrigger(t *testing.T) {
	rec := &triggerRecorder{}
	p := NewReroutePolicy(20, 30*time.Millisecond, rec.record)
	p.SetAnchor(domain.Coordinate{})

	p.OnLocationUpdate(driftPoint)
	p.SetAnchor(driftPoint)
	time.Sleep(100 * time.Millisecond)

	if rec.count() != 0 {
		t.Fatalf("triggered %d times after the anchor moved", rec.count())
	}
}
