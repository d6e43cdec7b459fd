package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/whats-on/internal/domain"
	"github.com/whats-on/internal/repository/cache"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	return client
}

func TestPreferenceRepository_SaveLoad(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	key := "test:venuePreferences:" + uuid.NewString()
	defer client.Del(ctx, key)

	repo := cache.NewPreferenceRepository(cache.NewRedisFromClient(client, zap.NewNop()), key)

	assert.Empty(t, repo.Load(ctx), "missing key loads as empty")

	err := repo.Save(ctx, domain.VenuePreferences{"Amsterdam:7": true, "Amsterdam:8": false})
	require.NoError(t, err)

	raw, err := client.Get(ctx, key).Result()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Amsterdam:7": true}`, raw)

	assert.Equal(t, domain.VenuePreferences{"Amsterdam:7": true}, repo.Load(ctx))
}

func TestPreferenceRepository_CorruptValue(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	key := "test:venuePreferences:" + uuid.NewString()
	defer client.Del(ctx, key)

	require.NoError(t, client.Set(ctx, key, "{not json", 0).Err())

	repo := cache.NewPreferenceRepository(cache.NewRedisFromClient(client, zap.NewNop()), key)
	assert.Empty(t, repo.Load(ctx))
}

func TestPreferenceRepository_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx := context.Background()
	repo := cache.NewPreferenceRepository(cache.NewRedisFromClient(client, zap.NewNop()), "venuePreferences")

	assert.Empty(t, repo.Load(ctx), "load never fails")
	assert.Error(t, repo.Save(ctx, domain.VenuePreferences{"1": true}))
}
