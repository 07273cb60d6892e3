// internal/scorecache/redis.go
package scorecache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a Redis instance, for sharing scores across
// runs and machines working the same proteome pair.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects and pings; a TTL of zero stores scores forever.
func NewRedis(addr string, db int, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Name() string { return "redis" }

func (r *Redis) Get(ctx context.Context, key string) (float64, error) {
	v, err := r.client.Get(ctx, key).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrMiss
	}
	return v, err
}

func (r *Redis) Put(ctx context.Context, key string, score float64) error {
	return r.client.Set(ctx, key, score, r.ttl).Err()
}

func (r *Redis) Close() error { return r.client.Close() }
