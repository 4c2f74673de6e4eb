package campusapi

import (
	"campus-nav-service/internal/domain"
	"context"
	"sync"
)

// MockRouteProvider serves canned routes for tests. When a FailWith error
// is set, every fetch fails with it until cleared.
type MockRouteProvider struct {
	mu       sync.Mutex
	route    *domain.Route
	failWith error
	calls    int
}

func NewMockRouteProvider(route *domain.Route) *MockRouteProvider {
	return &MockRouteProvider{route: route}
}

func (p *MockRouteProvider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failWith = err
}

func (p *MockRouteProvider) SetRoute(route *domain.Route) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.route = route
}

func (p *MockRouteProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *MockRouteProvider) FetchRoute(
	ctx context.Context,
	start domain.Coordinate,
	end domain.Coordinate,
	mode domain.TravelMode,
) (*domain.Route, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	if p.failWith != nil {
		return nil, p.failWith
	}

	route := *p.route
	return &route, nil
}
