package cache

import (
	"campus-nav-service/internal/domain"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisCache(t *testing.T) *RedisPlaceCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPlaceCache(client)
}

func TestRedisPlaceCacheRoundTrip(t *testing.T) {
	c := newTestRedisCache(t)
	ctx := context.Background()

	places := []domain.Place{
		{
			PlaceID:  3,
			Name:     "Science Building",
			Category: "Academic",
			Coordinate: domain.Coordinate{
				Latitude:  9.0412,
				Longitude: 38.7611,
			},
		},
		{
			PlaceID:  9,
			Name:     "Science Cafe",
			Category: "Food",
			Coordinate: domain.Coordinate{
				Latitude:  9.0420,
				Longitude: 38.7615,
			},
		},
	}

	if err := c.Put(ctx, "science", places); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(ctx, "science")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 {
		t.Fatalf("got %d places, want 2", len(got))
	}
	if got[0].Name != "Science Building" || got[1].Name != "Science Cafe" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestRedisPlaceCacheMiss(t *testing.T) {
	c := newTestRedisCache(t)

	_, ok, err := c.Get(context.Background(), "unknown")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}
