package contracts

import (
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/dto/responses"
	"chart-service/internal/pkg/fhir_dto"
	"context"
)

type ConditionUsecase interface {
	GetConditionRecord(ctx context.Context, conditionID string) (*responses.ConditionRecord, error)
	EditConditionTab(ctx context.Context, owner, conditionID string) (*models.WorkspaceTab, error)
}

type ConditionFhirClient interface {
	FindConditionByID(ctx context.Context, conditionID string) (*fhir_dto.Condition, error)
}
