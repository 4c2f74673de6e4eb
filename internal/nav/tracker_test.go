package nav

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-nav-service/internal/adapters/location"
	"campus-nav-service/internal/domain"
)

type deniedProvider struct{}

func (deniedProvider) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	return domain.Coordinate{}, domain.ErrPermissionDenied
}

func (deniedProvider) WatchPosition(ctx context.Context, minDistanceMeters float64, emit func(domain.Coordinate)) (func(), error) {
	return func() {}, nil
}

func TestTrackerReportsPermissionDenied(t *testing.T) {
	tr := NewTracker(deniedProvider{}, 10)

	errs := make(chan error, 1)
	sub := tr.Start(
		func(domain.Coordinate) { t.Error("update delivered despite denial") },
		func(err error) { errs <- err },
	)
	defer sub.Cancel()

	select {
	case err := <-errs:
		if !errors.Is(err, domain.ErrPermissionDenied) {
			t.Fatalf("error = %v, want permission denied", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no error delivered")
	}
}

func TestTrackerDeliversInitialThenWatchedReadings(t *testing.T) {
	provider := location.NewPushProvider()
	provider.Push(domain.Coordinate{Latitude: 0, Longitude: 0})

	tr := NewTracker(provider, 10)
	updates := make(chan domain.Coordinate, 8)
	sub := tr.Start(
		func(c domain.Coordinate) { updates <- c },
		func(err error) { t.Errorf("unexpected error: %v", err) },
	)
	defer sub.Cancel()

	select {
	case c := <-updates:
		if c.Latitude != 0 {
			t.Fatalf("initial reading = %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no initial reading")
	}

	// Give the watch time to register, then push a movement past the gate.
	time.Sleep(20 * time.Millisecond)
	moved := domain.Coordinate{Latitude: 0.0005, Longitude: 0}
	provider.Push(moved)

	select {
	case c := <-updates:
		if c != moved {
			t.Fatalf("watched reading = %+v, want %+v", c, moved)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no watched reading")
	}
}

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	provider := location.NewPushProvider()
	provider.Push(domain.Coordinate{})

	tr := NewTracker(provider, 10)
	sub := tr.Start(func(domain.Coordinate) {}, func(error) {})

	time.Sleep(20 * time.Millisecond)
	sub.Cancel()
	sub.Cancel()
}
