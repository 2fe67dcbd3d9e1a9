package feed

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/refresh"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisSinkRoundTrip(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	key := "shramba:test:" + t.Name()
	client.Del(ctx, key)
	defer client.Del(ctx, key)

	sink := NewRedisSink(client, key, time.Minute)

	_, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	generated := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	want := refresh.Result{
		Alerts:      []model.Alert{{ID: "x", ItemID: "a", Urgency: model.UrgencyHigh, Message: "Milk has expired!"}},
		Summary:     notify.Summary{Total: 1, High: 1},
		GeneratedAt: generated,
	}
	require.NoError(t, sink.Publish(ctx, want))

	got, ok, err := sink.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Alerts, got.Alerts)
	assert.Equal(t, want.Summary, got.Summary)
	assert.True(t, want.GeneratedAt.Equal(got.GeneratedAt))

	ttl, err := client.TTL(ctx, key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestNewRedisSinkDefaultKey(t *testing.T) {
	sink := NewRedisSink(nil, "", 0)
	assert.Equal(t, DefaultRedisKey, sink.key)
}
