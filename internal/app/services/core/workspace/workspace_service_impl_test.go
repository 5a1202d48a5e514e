package workspace

import (
	"chart-service/internal/app/config"
	"chart-service/internal/app/services/shared/locker"
	sharedRedis "chart-service/internal/app/services/shared/redis"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*miniredis.Miniredis, *workspaceService) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	repo := sharedRedis.NewRedisRepository(client)
	internalConfig := &config.InternalConfig{Workspace: config.AppWorkspace{TTLInHours: 12}}
	service := NewWorkspaceService(repo, locker.NewLockService(repo, zap.NewNop()), internalConfig, zap.NewNop()).(*workspaceService)
	service.retryInterval = time.Millisecond
	return server, service
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	return customErr.StatusCode
}

func conditionsForm() *requests.OpenWorkspaceTab {
	return &requests.OpenWorkspaceTab{
		Component: constvars.WorkspaceComponentConditionsForm,
		Name:      constvars.WorkspaceTitleEditConditions,
		Props:     map[string]interface{}{"conditionUuid": "cond-1"},
	}
}

func TestWorkspaceService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores Tab With TTL", func(t *testing.T) {
		server, service := newTestService(t)

		tab, err := service.Open(ctx, "user-1", conditionsForm())

		require.NoError(t, err)
		assert.NotEmpty(t, tab.ID)
		assert.Equal(t, constvars.WorkspaceComponentConditionsForm, tab.Component)
		assert.Equal(t, "cond-1", tab.Props["conditionUuid"])
		assert.Equal(t, 12*time.Hour, server.TTL("workspace:user-1:tabs"))
		assert.False(t, server.Exists("workspace:user-1:lock"), "lock should be released")
	})

	t.Run("One Tab Per Component", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.Open(ctx, "user-1", conditionsForm())
		require.NoError(t, err)
		_, err = service.Open(ctx, "user-1", conditionsForm())

		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
	})

	t.Run("Owners Are Isolated", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.Open(ctx, "user-1", conditionsForm())
		require.NoError(t, err)
		_, err = service.Open(ctx, "user-2", conditionsForm())
		require.NoError(t, err)

		tabs, err := service.List(ctx, "user-2")
		require.NoError(t, err)
		assert.Len(t, tabs, 1)
	})

	t.Run("Invalid Request", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.Open(ctx, "user-1", &requests.OpenWorkspaceTab{Name: "No component"})

		assert.Equal(t, constvars.StatusBadRequest, statusCodeOf(t, err))
	})

	t.Run("Missing Owner", func(t *testing.T) {
		_, service := newTestService(t)

		_, err := service.Open(ctx, "", conditionsForm())

		assert.Equal(t, constvars.StatusUnauthorized, statusCodeOf(t, err))
	})

	t.Run("Lock Held Elsewhere", func(t *testing.T) {
		server, service := newTestService(t)
		server.Set("workspace:user-1:lock", `"someone-else"`)

		_, err := service.Open(ctx, "user-1", conditionsForm())

		assert.Equal(t, constvars.StatusConflict, statusCodeOf(t, err))
		assert.False(t, server.Exists("workspace:user-1:tabs"))
	})

	t.Run("Concurrent Opens Keep One Tab", func(t *testing.T) {
		_, service := newTestService(t)

		var wg sync.WaitGroup
		results := make(chan error, 5)
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := service.Open(ctx, "user-1", conditionsForm())
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		succeeded := 0
		for err := range results {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)

		tabs, err := service.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, tabs, 1)
	})
}

func TestWorkspaceService_CloseFindList(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty Workspace", func(t *testing.T) {
		_, service := newTestService(t)

		tabs, err := service.List(ctx, "user-1")
		require.NoError(t, err)
		assert.NotNil(t, tabs)
		assert.Empty(t, tabs)

		tab, err := service.Find(ctx, "user-1", constvars.WorkspaceComponentConditionsForm)
		require.NoError(t, err)
		assert.Nil(t, tab)
	})

	t.Run("Find Then Close", func(t *testing.T) {
		server, service := newTestService(t)
		opened, err := service.Open(ctx, "user-1", conditionsForm())
		require.NoError(t, err)
		_, err = service.Open(ctx, "user-1", &requests.OpenWorkspaceTab{Component: "vitals-form", Name: "Vitals"})
		require.NoError(t, err)

		found, err := service.Find(ctx, "user-1", constvars.WorkspaceComponentConditionsForm)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, opened.ID, found.ID)

		require.NoError(t, service.Close(ctx, "user-1", opened.ID))

		tabs, err := service.List(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, tabs, 1)
		assert.Equal(t, "vitals-form", tabs[0].Component)

		require.NoError(t, service.Close(ctx, "user-1", tabs[0].ID))
		assert.False(t, server.Exists("workspace:user-1:tabs"))
	})

	t.Run("Close Unknown Tab", func(t *testing.T) {
		_, service := newTestService(t)

		err := service.Close(ctx, "user-1", "missing")

		assert.Equal(t, constvars.StatusNotFound, statusCodeOf(t, err))
	})

	t.Run("Corrupt Registry", func(t *testing.T) {
		server, service := newTestService(t)
		server.Set("workspace:user-1:tabs", "{")

		_, err := service.List(ctx, "user-1")

		assert.Equal(t, constvars.StatusInternalServerError, statusCodeOf(t, err))
	})
}
