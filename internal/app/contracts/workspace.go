package contracts

import (
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/dto/requests"
	"context"
)

type WorkspaceService interface {
	Open(ctx context.Context, owner string, request *requests.OpenWorkspaceTab) (*models.WorkspaceTab, error)
	Close(ctx context.Context, owner, tabID string) error
	Find(ctx context.Context, owner, component string) (*models.WorkspaceTab, error)
	List(ctx context.Context, owner string) ([]models.WorkspaceTab, error)
}
