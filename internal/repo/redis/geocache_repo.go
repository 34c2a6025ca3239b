package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const geocacheGetPrefix = "geocache:q:"

// GeocacheRepo caches raw geocoder responses keyed by normalized query so a
// repeated lookup costs no external call.
type GeocacheRepo struct {
	client *goredis.Client
}

func NewGeocacheRepo(client *goredis.Client) *GeocacheRepo {
	return &GeocacheRepo{client: client}
}

// Get returns the cached response body for the query, or ok=false on a miss.
func (r *GeocacheRepo) Get(ctx context.Context, query string) ([]byte, bool, error) {
	if r.client == nil {
		return nil, false, fmt.Errorf("redis client is nil")
	}

	key := geocacheKey(query)
	if key == "" {
		return nil, false, fmt.Errorf("geocache query is empty")
	}

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get geocache entry: %w", err)
	}

	return data, true, nil
}

func (r *GeocacheRepo) Set(ctx context.Context, query string, body []byte, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if ttl <= 0 {
		return fmt.Errorf("geocache ttl must be positive")
	}

	key := geocacheKey(query)
	if key == "" {
		return fmt.Errorf("geocache query is empty")
	}

	if err := r.client.Set(ctx, key, body, ttl).Err(); err != nil {
		return fmt.Errorf("set geocache entry: %w", err)
	}

	return nil
}

func geocacheKey(query string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return ""
	}
	return geocacheGetPrefix + normalized
}
