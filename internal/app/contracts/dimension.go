package contracts

import (
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/dto/responses"
	"context"
)

type DimensionUsecase interface {
	GetDimensions(ctx context.Context, patientID string) ([]responses.Dimension, error)
	RecordDimensions(ctx context.Context, request *requests.RecordDimensions) ([]responses.Dimension, error)
	UpdateDimension(ctx context.Context, request *requests.UpdateDimension) ([]responses.Dimension, error)
	DeleteDimension(ctx context.Context, request *requests.DeleteDimension) error
	ExportDimensions(ctx context.Context, patientID string) (*responses.DimensionExport, error)
	// RefreshDimensions schedules a background reload of the cached dimensions and
	// supersedes any reload already running for the same patient.
	RefreshDimensions(ctx context.Context, patientID string) bool
	Close()
}

type DimensionsRefreshQueue interface {
	Publish(ctx context.Context, event *models.DimensionsRefreshEvent) error
	Consume(ctx context.Context) (<-chan models.DimensionsRefreshEvent, error)
	Close() error
}
