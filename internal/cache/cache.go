package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/tourist-routes/internal/places"
)

const defaultTTL = time.Hour

// Cache wraps a Redis client and provides typed get/set/delete for
// external place-search results, keyed by normalized query.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache with a 1-hour TTL.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// key returns the Redis key for the given search query.
func key(query string) string {
	return "places:" + strings.ToLower(strings.TrimSpace(query))
}

// Get retrieves cached search results for a query.
// Returns nil, nil on a cache miss (not an error).
func (c *Cache) Get(ctx context.Context, query string) ([]places.Place, error) {
	val, err := c.client.Get(ctx, key(query)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get for query %q: %w", query, err)
	}

	var results []places.Place
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, fmt.Errorf("unmarshaling cached results for query %q: %w", query, err)
	}

	return results, nil
}

// Set stores search results for a query with the configured TTL.
func (c *Cache) Set(ctx context.Context, query string, results []places.Place) error {
	if results == nil {
		return nil
	}

	b, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshaling results for query %q: %w", query, err)
	}

	if err := c.client.Set(ctx, key(query), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for query %q: %w", query, err)
	}

	return nil
}

// Delete removes the cached entry for the given query.
func (c *Cache) Delete(ctx context.Context, query string) error {
	if err := c.client.Del(ctx, key(query)).Err(); err != nil {
		return fmt.Errorf("cache delete for query %q: %w", query, err)
	}
	return nil
}
