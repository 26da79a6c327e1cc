package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"transit-route-service/internal/domain"
	"transit-route-service/internal/platform/obs"
)

const directoryKey = "transit:city_directory"

// RedisDirectoryCache stores the city directory as a single JSON blob with a
// TTL. The directory changes rarely, so one key is simpler than per-city
// entries and expiry handles staleness.
type RedisDirectoryCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDirectoryCache(client *redis.Client, ttl time.Duration) *RedisDirectoryCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RedisDirectoryCache{Client: client, TTL: ttl}
}

// Get returns the cached city list; an absent key is a cache miss.
func (c *RedisDirectoryCache) Get(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time("directory.cache.Get")(&err)

	if c.Client == nil {
		return nil, errors.New("directory cache: redis client is nil")
	}

	raw, err := c.Client.Get(ctx, directoryKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get directory cache: %w", err)
	}

	var cities []domain.City
	if err := json.Unmarshal(raw, &cities); err != nil {
		return nil, fmt.Errorf("get directory cache: decode: %w", err)
	}

	return cities, nil
}

// Put replaces the cached directory with the given city list.
func (c *RedisDirectoryCache) Put(ctx context.Context, cities []domain.City) error {
	if c.Client == nil {
		return errors.New("directory cache: redis client is nil")
	}

	if len(cities) == 0 {
		return nil
	}

	raw, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("put directory cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, directoryKey, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("put directory cache: %w", err)
	}

	return nil
}
