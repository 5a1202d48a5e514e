package workspace

import (
	"chart-service/internal/app/config"
	"chart-service/internal/app/contracts"
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// workspaceService keeps the open tabs of each workspace owner in Redis. Reads go
// straight to Redis; every mutation holds the owner's workspace lock.
type workspaceService struct {
	RedisRepository contracts.RedisRepository
	LockerService   contracts.LockerService
	InternalConfig  *config.InternalConfig
	Log             *zap.Logger
	now             func() time.Time
	retryInterval   time.Duration
}

func NewWorkspaceService(
	redisRepository contracts.RedisRepository,
	lockerService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.WorkspaceService {
	return &workspaceService{
		RedisRepository: redisRepository,
		LockerService:   lockerService,
		InternalConfig:  internalConfig,
		Log:             logger,
		now:             time.Now,
		retryInterval:   constvars.WorkspaceLockRetryIntervalInMs * time.Millisecond,
	}
}

// Open adds a tab for request.Component. A workspace holds at most one tab per component.
func (s *workspaceService) Open(ctx context.Context, owner string, request *requests.OpenWorkspaceTab) (*models.WorkspaceTab, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("workspaceService.Open called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceKey, owner),
		zap.String(constvars.LoggingComponentKey, request.Component),
	)

	if owner == "" {
		return nil, exceptions.ErrTokenSubjectMissing(nil)
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	var opened models.WorkspaceTab
	err = s.withLock(ctx, owner, func() error {
		tabs, err := s.loadTabs(ctx, owner)
		if err != nil {
			return err
		}

		if tabs.IndexOfComponent(request.Component) >= 0 {
			return exceptions.ErrWorkspaceTabAlreadyOpen(nil, request.Component)
		}

		opened = models.WorkspaceTab{
			ID:         uuid.NewString(),
			Component:  request.Component,
			Name:       request.Name,
			Props:      request.Props,
			InProgress: request.InProgress,
			OpenedAt:   s.now().UTC(),
		}
		return s.saveTabs(ctx, owner, append(tabs, opened))
	})
	if err != nil {
		s.Log.Error("workspaceService.Open error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWorkspaceKey, owner),
			zap.Error(err),
		)
		return nil, err
	}

	s.Log.Info("workspaceService.Open succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTabIDKey, opened.ID),
	)
	return &opened, nil
}

func (s *workspaceService) Close(ctx context.Context, owner, tabID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("workspaceService.Close called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceKey, owner),
		zap.String(constvars.LoggingTabIDKey, tabID),
	)

	if owner == "" {
		return exceptions.ErrTokenSubjectMissing(nil)
	}

	return s.withLock(ctx, owner, func() error {
		tabs, err := s.loadTabs(ctx, owner)
		if err != nil {
			return err
		}

		index := tabs.IndexOfID(tabID)
		if index < 0 {
			return exceptions.ErrWorkspaceTabNotFound(nil, tabID)
		}

		remaining := append(tabs[:index:index], tabs[index+1:]...)
		if len(remaining) == 0 {
			return s.RedisRepository.Delete(ctx, tabsKey(owner))
		}
		return s.saveTabs(ctx, owner, remaining)
	})
}

// Find returns the open tab rendering component, or nil when there is none.
func (s *workspaceService) Find(ctx context.Context, owner, component string) (*models.WorkspaceTab, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("workspaceService.Find called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceKey, owner),
		zap.String(constvars.LoggingComponentKey, component),
	)

	tabs, err := s.loadTabs(ctx, owner)
	if err != nil {
		return nil, err
	}

	index := tabs.IndexOfComponent(component)
	if index < 0 {
		return nil, nil
	}
	return &tabs[index], nil
}

func (s *workspaceService) List(ctx context.Context, owner string) ([]models.WorkspaceTab, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("workspaceService.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceKey, owner),
	)

	tabs, err := s.loadTabs(ctx, owner)
	if err != nil {
		return nil, err
	}
	return tabs, nil
}

// withLock runs fn while holding the owner's workspace lock, retrying a bounded number
// of times when another request holds it.
func (s *workspaceService) withLock(ctx context.Context, owner string, fn func() error) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := fmt.Sprintf(constvars.RedisKeyWorkspaceLockFormat, owner)
	expiration := constvars.WorkspaceLockExpiration * time.Second

	for attempt := 1; attempt <= constvars.WorkspaceLockMaxAttempts; attempt++ {
		acquired, lockValue, err := s.LockerService.TryLock(ctx, key, expiration)
		if err != nil {
			return err
		}

		if acquired {
			defer func() {
				if err := s.LockerService.Unlock(context.WithoutCancel(ctx), key, lockValue); err != nil {
					s.Log.Warn("workspaceService.withLock error calling LockerService.Unlock",
						zap.String(constvars.LoggingRequestIDKey, requestID),
						zap.String(constvars.LoggingRedisKey, key),
						zap.Error(err),
					)
				}
			}()
			return fn()
		}

		if attempt == constvars.WorkspaceLockMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return exceptions.ErrServerDeadlineExceeded(ctx.Err())
		case <-time.After(s.retryInterval):
		}
	}

	return exceptions.ErrWorkspaceLockNotAcquired(nil, key)
}

func (s *workspaceService) loadTabs(ctx context.Context, owner string) (models.WorkspaceTabs, error) {
	stored, err := s.RedisRepository.Get(ctx, tabsKey(owner))
	if err != nil {
		return nil, err
	}

	tabs := models.WorkspaceTabs{}
	if stored == "" {
		return tabs, nil
	}

	err = json.Unmarshal([]byte(stored), &tabs)
	if err != nil {
		return nil, exceptions.ErrCannotUnmarshalJSON(err)
	}
	return tabs, nil
}

func (s *workspaceService) saveTabs(ctx context.Context, owner string, tabs models.WorkspaceTabs) error {
	ttl := time.Duration(s.InternalConfig.Workspace.TTLInHours) * time.Hour
	return s.RedisRepository.Set(ctx, tabsKey(owner), tabs, ttl)
}

func tabsKey(owner string) string {
	return fmt.Sprintf(constvars.RedisKeyWorkspaceTabsFormat, owner)
}
