package cache_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swasthya/operations-backend/internal/adapters/cache"
	"github.com/swasthya/operations-backend/internal/domain/providers"
	redisclient "github.com/swasthya/operations-backend/internal/infrastructure/clients/redis"
	"github.com/swasthya/operations-backend/pkg/config"
	apperrors "github.com/swasthya/operations-backend/pkg/errors"
)

func newTestCache(t *testing.T) providers.CacheProvider {
	t.Helper()

	server := miniredis.RunT(t)
	port, err := strconv.Atoi(server.Port())
	require.NoError(t, err)

	client, err := redisclient.NewClient(&config.RedisConfig{Host: server.Host(), Port: port})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return cache.NewRedisAdapter(client)
}

func TestRedisAdapter_SnapshotRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	payload := []byte(`{"schedule":[],"last_daily_run":"2026-08-25T06:00:00Z"}`)

	require.NoError(t, c.Set(ctx, providers.CacheKeySnapshot, payload, 60))

	got, err := c.Get(ctx, providers.CacheKeySnapshot)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	exists, err := c.Exists(ctx, providers.CacheKeySnapshot)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, providers.CacheKeySnapshot))

	exists, err = c.Exists(ctx, providers.CacheKeySnapshot)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisAdapter_GetMissingKey(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Get(context.Background(), "workflow:absent")

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
