package controllers

import (
	"chart-service/internal/app/contracts"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/utils"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ConditionController struct {
	Log              *zap.Logger
	ConditionUsecase contracts.ConditionUsecase
}

func NewConditionController(logger *zap.Logger, conditionUsecase contracts.ConditionUsecase) *ConditionController {
	return &ConditionController{
		Log:              logger,
		ConditionUsecase: conditionUsecase,
	}
}

func (ctrl *ConditionController) GetConditionRecord(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ConditionController.GetConditionRecord requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	conditionID := chi.URLParam(r, constvars.URLParamConditionID)
	ctrl.Log.Info("ConditionController.GetConditionRecord called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConditionIDKey, conditionID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.ConditionUsecase.GetConditionRecord(ctx, conditionID)
	if err != nil {
		ctrl.Log.Error("ConditionController.GetConditionRecord error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetConditionRecordSuccessMessage, response)
}

func (ctrl *ConditionController) EditConditionTab(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ConditionController.EditConditionTab requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	conditionID := chi.URLParam(r, constvars.URLParamConditionID)
	ctrl.Log.Info("ConditionController.EditConditionTab called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConditionIDKey, conditionID),
	)

	owner := utils.GetWorkspaceOwner(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.ConditionUsecase.EditConditionTab(ctx, owner, conditionID)
	if err != nil {
		ctrl.Log.Error("ConditionController.EditConditionTab error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.EditConditionTabSuccessMessage, response)
}
