package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/erazemk/shramba/internal/refresh"
)

// DefaultRedisKey is the key the latest feed is stored under.
const DefaultRedisKey = "shramba:alerts:latest"

// RedisSink stores the latest feed as JSON so other processes can read it
// without touching the database.
type RedisSink struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisSink creates a sink. The ttl should cover a few refresh intervals so
// a stalled scheduler lets the cached feed expire; zero keeps it forever.
func NewRedisSink(client *redis.Client, key string, ttl time.Duration) *RedisSink {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisSink{client: client, key: key, ttl: ttl}
}

// Publish implements refresh.Sink.
func (s *RedisSink) Publish(ctx context.Context, r refresh.Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding feed: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing feed in redis: %w", err)
	}
	return nil
}

// Load returns the cached feed. The second result is false when nothing is
// cached.
func (s *RedisSink) Load(ctx context.Context) (refresh.Result, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return refresh.Result{}, false, nil
	}
	if err != nil {
		return refresh.Result{}, false, fmt.Errorf("reading feed from redis: %w", err)
	}

	var r refresh.Result
	if err := json.Unmarshal(data, &r); err != nil {
		return refresh.Result{}, false, fmt.Errorf("decoding feed: %w", err)
	}
	return r, true, nil
}
