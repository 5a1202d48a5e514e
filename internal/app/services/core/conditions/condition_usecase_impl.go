package conditions

import (
	"chart-service/internal/app/config"
	"chart-service/internal/app/contracts"
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/dto/responses"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/utils"
	"context"

	"go.uber.org/zap"
)

type conditionUsecase struct {
	ConditionFhirClient contracts.ConditionFhirClient
	WorkspaceService    contracts.WorkspaceService
	InternalConfig      *config.InternalConfig
	Log                 *zap.Logger
}

func NewConditionUsecase(
	conditionFhirClient contracts.ConditionFhirClient,
	workspaceService contracts.WorkspaceService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ConditionUsecase {
	return &conditionUsecase{
		ConditionFhirClient: conditionFhirClient,
		WorkspaceService:    workspaceService,
		InternalConfig:      internalConfig,
		Log:                 logger,
	}
}

func (uc *conditionUsecase) GetConditionRecord(ctx context.Context, conditionID string) (*responses.ConditionRecord, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("conditionUsecase.GetConditionRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConditionIDKey, conditionID),
	)

	if !utils.ValidateFhirID(conditionID) {
		return nil, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamConditionID)
	}

	condition, err := uc.ConditionFhirClient.FindConditionByID(ctx, conditionID)
	if err != nil {
		uc.Log.Error("conditionUsecase.GetConditionRecord error calling ConditionFhirClient.FindConditionByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	return utils.MapConditionToRecord(condition), nil
}

// EditConditionTab opens the condition form for conditionID in the owner's workspace.
func (uc *conditionUsecase) EditConditionTab(ctx context.Context, owner, conditionID string) (*models.WorkspaceTab, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("conditionUsecase.EditConditionTab called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkspaceKey, owner),
		zap.String(constvars.LoggingConditionIDKey, conditionID),
	)

	if !utils.ValidateFhirID(conditionID) {
		return nil, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamConditionID)
	}

	condition, err := uc.ConditionFhirClient.FindConditionByID(ctx, conditionID)
	if err != nil {
		uc.Log.Error("conditionUsecase.EditConditionTab error calling ConditionFhirClient.FindConditionByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	tab, err := uc.WorkspaceService.Open(ctx, owner, &requests.OpenWorkspaceTab{
		Component: constvars.WorkspaceComponentConditionsForm,
		Name:      constvars.WorkspaceTitleEditConditions,
		Props:     utils.BuildEditConditionTabProps(condition),
	})
	if err != nil {
		uc.Log.Error("conditionUsecase.EditConditionTab error calling WorkspaceService.Open",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	utils.LogBusinessEvent(uc.Log, "condition_form_opened", requestID,
		zap.String(constvars.LoggingConditionIDKey, conditionID),
		zap.String(constvars.LoggingTabIDKey, tab.ID),
	)
	return tab, nil
}
