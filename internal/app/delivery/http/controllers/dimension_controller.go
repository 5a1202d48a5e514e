package controllers

import (
	"chart-service/internal/app/contracts"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	usecaseTimeout = 10 * time.Second
	exportTimeout  = 60 * time.Second
)

type DimensionController struct {
	Log              *zap.Logger
	DimensionUsecase contracts.DimensionUsecase
}

func NewDimensionController(logger *zap.Logger, dimensionUsecase contracts.DimensionUsecase) *DimensionController {
	return &DimensionController{
		Log:              logger,
		DimensionUsecase: dimensionUsecase,
	}
}

func (ctrl *DimensionController) GetDimensions(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DimensionController.GetDimensions requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Info("DimensionController.GetDimensions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.DimensionUsecase.GetDimensions(ctx, patientID)
	if err != nil {
		ctrl.Log.Error("DimensionController.GetDimensions error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDimensionsSuccessMessage, response)
}

func (ctrl *DimensionController) RecordDimensions(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DimensionController.RecordDimensions requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DimensionController.RecordDimensions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.RecordDimensions)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("DimensionController.RecordDimensions error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PatientID = chi.URLParam(r, constvars.URLParamPatientID)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.DimensionUsecase.RecordDimensions(ctx, request)
	if err != nil {
		ctrl.Log.Error("DimensionController.RecordDimensions error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DimensionController.RecordDimensions succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RecordDimensionsSuccessMessage, response)
}

func (ctrl *DimensionController) UpdateDimension(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DimensionController.UpdateDimension requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DimensionController.UpdateDimension called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.UpdateDimension)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("DimensionController.UpdateDimension error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.PatientID = chi.URLParam(r, constvars.URLParamPatientID)
	request.ObservationID = chi.URLParam(r, constvars.URLParamObservationID)

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	response, err := ctrl.DimensionUsecase.UpdateDimension(ctx, request)
	if err != nil {
		ctrl.Log.Error("DimensionController.UpdateDimension error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateDimensionSuccessMessage, response)
}

func (ctrl *DimensionController) DeleteDimension(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DimensionController.DeleteDimension requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("DimensionController.DeleteDimension called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := &requests.DeleteDimension{
		PatientID:     chi.URLParam(r, constvars.URLParamPatientID),
		ObservationID: chi.URLParam(r, constvars.URLParamObservationID),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	err := ctrl.DimensionUsecase.DeleteDimension(ctx, request)
	if err != nil {
		ctrl.Log.Error("DimensionController.DeleteDimension error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteDimensionSuccessMessage, nil)
}

func (ctrl *DimensionController) ExportDimensions(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("DimensionController.ExportDimensions requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	ctrl.Log.Info("DimensionController.ExportDimensions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), exportTimeout)
	defer cancel()

	response, err := ctrl.DimensionUsecase.ExportDimensions(ctx, patientID)
	if err != nil {
		ctrl.Log.Error("DimensionController.ExportDimensions error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ExportDimensionsSuccessMessage, response)
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
