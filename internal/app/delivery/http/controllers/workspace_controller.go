package controllers

import (
	"chart-service/internal/app/contracts"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/utils"
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type WorkspaceController struct {
	Log              *zap.Logger
	WorkspaceService contracts.WorkspaceService
}

func NewWorkspaceController(logger *zap.Logger, workspaceService contracts.WorkspaceService) *WorkspaceController {
	return &WorkspaceController{
		Log:              logger,
		WorkspaceService: workspaceService,
	}
}

func (ctrl *WorkspaceController) ListTabs(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("WorkspaceController.ListTabs requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("WorkspaceController.ListTabs called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.WorkspaceService.List(ctx, utils.GetWorkspaceOwner(r.Context()))
	if err != nil {
		ctrl.Log.Error("WorkspaceController.ListTabs error from service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWorkspaceTabsSuccessMessage, response)
}

func (ctrl *WorkspaceController) FindTab(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("WorkspaceController.FindTab requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	component := chi.URLParam(r, constvars.URLParamComponent)
	ctrl.Log.Info("WorkspaceController.FindTab called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingComponentKey, component),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.WorkspaceService.Find(ctx, utils.GetWorkspaceOwner(r.Context()), component)
	if err != nil {
		ctrl.Log.Error("WorkspaceController.FindTab error from service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindWorkspaceTabSuccessMessage, response)
}

func (ctrl *WorkspaceController) OpenTab(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("WorkspaceController.OpenTab requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("WorkspaceController.OpenTab called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.OpenWorkspaceTab)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("WorkspaceController.OpenTab error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.WorkspaceService.Open(ctx, utils.GetWorkspaceOwner(r.Context()), request)
	if err != nil {
		ctrl.Log.Error("WorkspaceController.OpenTab error from service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OpenWorkspaceTabSuccessMessage, response)
}

func (ctrl *WorkspaceController) CloseTab(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("WorkspaceController.CloseTab requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	tabID := chi.URLParam(r, constvars.URLParamTabID)
	ctrl.Log.Info("WorkspaceController.CloseTab called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTabIDKey, tabID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	err := ctrl.WorkspaceService.Close(ctx, utils.GetWorkspaceOwner(r.Context()), tabID)
	if err != nil {
		ctrl.Log.Error("WorkspaceController.CloseTab error from service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CloseWorkspaceTabSuccessMessage, nil)
}
