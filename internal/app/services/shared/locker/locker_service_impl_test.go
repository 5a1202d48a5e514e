package locker

import (
	sharedRedis "chart-service/internal/app/services/shared/redis"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLockService(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	locker := NewLockService(sharedRedis.NewRedisRepository(client), zap.NewNop())

	t.Run("Exclusive Until Unlocked", func(t *testing.T) {
		acquired, token, err := locker.TryLock(ctx, "workspace:a:lock", 5*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)
		assert.NotEmpty(t, token)

		acquired, _, err = locker.TryLock(ctx, "workspace:a:lock", 5*time.Second)
		require.NoError(t, err)
		assert.False(t, acquired)

		require.NoError(t, locker.Unlock(ctx, "workspace:a:lock", token))

		acquired, _, err = locker.TryLock(ctx, "workspace:a:lock", 5*time.Second)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("Unlock By Another Holder Fails", func(t *testing.T) {
		acquired, _, err := locker.TryLock(ctx, "workspace:b:lock", 5*time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		err = locker.Unlock(ctx, "workspace:b:lock", "someone-else")
		assert.Error(t, err)
		assert.True(t, server.Exists("workspace:b:lock"))
	})

	t.Run("Unlock Expired Lock Is No-op", func(t *testing.T) {
		acquired, token, err := locker.TryLock(ctx, "workspace:c:lock", time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		server.FastForward(2 * time.Second)

		assert.NoError(t, locker.Unlock(ctx, "workspace:c:lock", token))
	})

	t.Run("Refresh Extends Owned Lock", func(t *testing.T) {
		acquired, token, err := locker.TryLock(ctx, "workspace:d:lock", time.Second)
		require.NoError(t, err)
		require.True(t, acquired)

		require.NoError(t, locker.Refresh(ctx, "workspace:d:lock", token, time.Minute))
		assert.Equal(t, time.Minute, server.TTL("workspace:d:lock"))

		assert.Error(t, locker.Refresh(ctx, "workspace:d:lock", "other", time.Minute))
	})
}
