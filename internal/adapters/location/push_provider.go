package location

import (
	"campus-nav-service/internal/domain"
	"context"
	"sync"
)

// PushProvider is a LocationProvider fed from outside the process: the
// device GPS lives on the phone, and the HTTP surface (or a test) pushes
// readings in. It applies the same minimum-distance gating a device
// provider would.
type PushProvider struct {
	mu       sync.Mutex
	last     *domain.Coordinate
	first    chan struct{}
	watchers map[int]*watcher
	nextID   int
}

type watcher struct {
	minDistance float64
	emit        func(domain.Coordinate)
	delivered   *domain.Coordinate
}

func NewPushProvider() *PushProvider {
	return &PushProvider{
		first:    make(chan struct{}),
		watchers: map[int]*watcher{},
	}
}

// Push records a new device reading and fans it out to watchers whose
// distance gate it passes. Callbacks run on the caller's goroutine.
func (p *PushProvider) Push(c domain.Coordinate) {
	p.mu.Lock()

	if p.last == nil {
		close(p.first)
	}
	p.last = &c

	emits := make([]func(domain.Coordinate), 0, len(p.watchers))
	for _, w := range p.watchers {
		if w.delivered != nil && w.delivered.DistanceTo(c) < w.minDistance {
			continue
		}
		w.delivered = &c
		emits = append(emits, w.emit)
	}
	p.mu.Unlock()

	for _, emit := range emits {
		emit(c)
	}
}

// CurrentPosition returns the latest reading, waiting for the first push
// if none has arrived yet.
func (p *PushProvider) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	p.mu.Lock()
	if p.last != nil {
		c := *p.last
		p.mu.Unlock()
		return c, nil
	}
	first := p.first
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return domain.Coordinate{}, ctx.Err()
	case <-first:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.last, nil
}

// WatchPosition registers a continuous delivery callback. The returned
// stop function is idempotent.
func (p *PushProvider) WatchPosition(
	ctx context.Context,
	minDistanceMeters float64,
	emit func(domain.Coordinate),
) (func(), error) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.watchers[id] = &watcher{
		minDistance: minDistanceMeters,
		emit:        emit,
	}
	p.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.watchers, id)
			p.mu.Unlock()
		})
	}

	return stop, nil
}
