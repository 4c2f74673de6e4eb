package cache

import (
	"campus-nav-service/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default lifetime for cached search results; the place directory changes
// rarely but is editable by campus staff.
const redisPlaceTTL = 24 * time.Hour

// RedisPlaceCache stores search results as JSON values in Redis, one key
// per normalized query. Suited to deployments where several instances
// share a cache.
type RedisPlaceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlaceCache(client *redis.Client) *RedisPlaceCache {
	return &RedisPlaceCache{client: client, ttl: redisPlaceTTL}
}

func redisPlaceKey(query string) string {
	return "places:search:" + query
}

// Fetch the cached result list for a query.
func (r *RedisPlaceCache) Get(ctx context.Context, query string) ([]domain.Place, bool, error) {
	raw, err := r.client.Get(ctx, redisPlaceKey(query)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get place cache: redis get: %w", err)
	}

	var places []domain.Place
	if err := json.Unmarshal([]byte(raw), &places); err != nil {
		return nil, false, fmt.Errorf("get place cache: decode value: %w", err)
	}

	return places, true, nil
}

// Store the result list for a query with the cache TTL.
func (r *RedisPlaceCache) Put(ctx context.Context, query string, places []domain.Place) error {
	if len(places) == 0 {
		return nil
	}

	raw, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("insert place cache: encode value: %w", err)
	}

	if err := r.client.Set(ctx, redisPlaceKey(query), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("insert place cache: redis set: %w", err)
	}

	return nil
}
