package dimensions

import (
	"chart-service/internal/app/config"
	"chart-service/internal/app/contracts"
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/dto/responses"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/fhir_dto"
	"chart-service/internal/pkg/loader"
	"chart-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type dimensionUsecase struct {
	ObservationFhirClient contracts.ObservationFhirClient
	RedisRepository       contracts.RedisRepository
	Storage               contracts.Storage
	RefreshQueue          contracts.DimensionsRefreshQueue
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger
	loads                 *loader.Group[[]responses.Dimension]
	now                   func() time.Time
}

func NewDimensionUsecase(
	observationFhirClient contracts.ObservationFhirClient,
	redisRepository contracts.RedisRepository,
	storage contracts.Storage,
	refreshQueue contracts.DimensionsRefreshQueue,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.DimensionUsecase {
	refreshTimeout := time.Duration(internalConfig.Dimension.RefreshTimeoutSeconds) * time.Second
	return &dimensionUsecase{
		ObservationFhirClient: observationFhirClient,
		RedisRepository:       redisRepository,
		Storage:               storage,
		RefreshQueue:          refreshQueue,
		InternalConfig:        internalConfig,
		Log:                   logger,
		loads:                 loader.NewGroup[[]responses.Dimension](refreshTimeout),
		now:                   time.Now,
	}
}

// GetDimensions returns the patient's height and weight history, most recent first.
// A cached list is served when present; a cache failure only costs a FHIR round trip.
func (uc *dimensionUsecase) GetDimensions(ctx context.Context, patientID string) ([]responses.Dimension, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dimensionUsecase.GetDimensions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if !utils.ValidateFhirID(patientID) {
		return nil, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamPatientID)
	}

	cached, ok := uc.findCachedDimensions(ctx, patientID)
	if ok {
		uc.Log.Info("dimensionUsecase.GetDimensions served from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Bool(constvars.LoggingCacheHitKey, true),
			zap.Int(constvars.LoggingCountKey, len(cached)),
		)
		return cached, nil
	}

	// A write for the patient while the load runs makes its result stale; Fill then
	// skips the cache write.
	dimensions, err := uc.loads.Fill(ctx, patientID,
		func(loadCtx context.Context) ([]responses.Dimension, error) {
			return uc.loadDimensions(loadCtx, patientID)
		},
		func(dimensions []responses.Dimension) {
			uc.cacheDimensions(ctx, patientID, dimensions)
		},
	)
	if err != nil {
		uc.Log.Error("dimensionUsecase.GetDimensions error loading dimensions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("dimensionUsecase.GetDimensions succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingCacheHitKey, false),
		zap.Int(constvars.LoggingCountKey, len(dimensions)),
	)
	return dimensions, nil
}

// RecordDimensions creates one observation per supplied measurement. Both share the
// same issued instant so they pair into a single record.
func (uc *dimensionUsecase) RecordDimensions(ctx context.Context, request *requests.RecordDimensions) ([]responses.Dimension, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dimensionUsecase.RecordDimensions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		uc.Log.Error("dimensionUsecase.RecordDimensions validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrInputValidation(err)
	}

	issued := uc.now()
	if request.Issued != "" {
		issued, err = utils.ParseFHIRInstant(request.Issued)
		if err != nil {
			return nil, exceptions.ErrCannotParseTime(err)
		}
	}

	observations := utils.MapRecordDimensionsToObservations(
		request,
		uc.InternalConfig.Dimension.WeightConcept,
		uc.InternalConfig.Dimension.HeightConcept,
		issued,
	)

	created := make([]fhir_dto.Observation, 0, len(observations))
	for _, observation := range observations {
		result, err := uc.ObservationFhirClient.CreateObservation(ctx, observation)
		if err != nil {
			uc.Log.Error("dimensionUsecase.RecordDimensions error calling ObservationFhirClient.CreateObservation",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingCountKey, len(created)),
				zap.Error(err),
			)
			uc.invalidate(ctx, request.PatientID, constvars.RefreshReasonRecorded)
			return nil, err
		}
		created = append(created, *result)
	}

	uc.invalidate(ctx, request.PatientID, constvars.RefreshReasonRecorded)

	weights, heights := utils.SplitDimensionObservations(created, uc.InternalConfig.Dimension.WeightConcept, uc.InternalConfig.Dimension.HeightConcept)
	dimensions := utils.FormatDimensions(weights, heights)

	utils.LogBusinessEvent(uc.Log, "dimensions_recorded", requestID,
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.Int(constvars.LoggingCountKey, len(created)),
	)
	return dimensions, nil
}

// UpdateDimension corrects the value of one weight or height reading and marks it amended.
func (uc *dimensionUsecase) UpdateDimension(ctx context.Context, request *requests.UpdateDimension) ([]responses.Dimension, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dimensionUsecase.UpdateDimension called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingObservationIDKey, request.ObservationID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	observation, err := uc.findOwnedDimensionObservation(ctx, request.PatientID, request.ObservationID)
	if err != nil {
		return nil, err
	}

	if observation.ValueQuantity == nil {
		observation.ValueQuantity = &fhir_dto.Quantity{}
	}
	observation.ValueQuantity.Value = request.Value
	observation.Status = constvars.FhirObservationStatusAmended

	updated, err := uc.ObservationFhirClient.UpdateObservation(ctx, observation)
	if err != nil {
		uc.Log.Error("dimensionUsecase.UpdateDimension error calling ObservationFhirClient.UpdateObservation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.invalidate(ctx, request.PatientID, constvars.RefreshReasonUpdated)

	weights, heights := utils.SplitDimensionObservations([]fhir_dto.Observation{*updated}, uc.InternalConfig.Dimension.WeightConcept, uc.InternalConfig.Dimension.HeightConcept)
	return utils.FormatDimensions(weights, heights), nil
}

func (uc *dimensionUsecase) DeleteDimension(ctx context.Context, request *requests.DeleteDimension) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dimensionUsecase.DeleteDimension called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingObservationIDKey, request.ObservationID),
	)

	err := utils.ValidateStruct(request)
	if err != nil {
		return exceptions.ErrInputValidation(err)
	}

	_, err = uc.findOwnedDimensionObservation(ctx, request.PatientID, request.ObservationID)
	if err != nil {
		return err
	}

	err = uc.ObservationFhirClient.DeleteObservationByID(ctx, request.ObservationID)
	if err != nil {
		uc.Log.Error("dimensionUsecase.DeleteDimension error calling ObservationFhirClient.DeleteObservationByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.invalidate(ctx, request.PatientID, constvars.RefreshReasonDeleted)

	utils.LogBusinessEvent(uc.Log, "dimension_deleted", requestID,
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingObservationIDKey, request.ObservationID),
	)
	return nil
}

// ExportDimensions uploads the patient's dimensions as a spreadsheet and returns a
// download link that expires after the configured number of hours.
func (uc *dimensionUsecase) ExportDimensions(ctx context.Context, patientID string) (*responses.DimensionExport, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dimensionUsecase.ExportDimensions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	dimensions, err := uc.GetDimensions(ctx, patientID)
	if err != nil {
		return nil, err
	}

	workbook, err := buildDimensionsWorkbook(dimensions)
	if err != nil {
		uc.Log.Error("dimensionUsecase.ExportDimensions error building workbook",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrBuildSpreadsheet(err)
	}

	now := uc.now()
	bucketName := uc.InternalConfig.Minio.BucketName
	objectName := utils.GenerateExportObjectName(patientID, now)
	err = utils.LogOperation(uc.Log, "dimensionUsecase.ExportDimensions.UploadObject", requestID, func() error {
		_, err := uc.Storage.UploadObject(ctx, workbook, int64(workbook.Len()), bucketName, objectName, constvars.MIMEApplicationXLSX)
		return err
	})
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.InternalConfig.App.MinioPreSignedUrlObjectExpiryTimeInHours) * time.Hour
	url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, bucketName, objectName, expiry)
	if err != nil {
		uc.Log.Error("dimensionUsecase.ExportDimensions error calling Storage.GetObjectUrlWithExpiryTime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("dimensionUsecase.ExportDimensions succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectNameKey, objectName),
		zap.Int(constvars.LoggingCountKey, len(dimensions)),
	)
	return &responses.DimensionExport{
		PatientID:  patientID,
		ObjectName: objectName,
		Url:        url,
		Rows:       len(dimensions),
		ExpiresAt:  now.Add(expiry),
	}, nil
}

// RefreshDimensions reloads the patient's dimensions in the background and writes
// them to the cache, unless a newer refresh for the same patient started meanwhile or
// the usecase was closed.
func (uc *dimensionUsecase) RefreshDimensions(ctx context.Context, patientID string) bool {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("dimensionUsecase.RefreshDimensions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	cacheCtx := context.WithoutCancel(ctx)
	return uc.loads.Go(ctx, patientID,
		func(loadCtx context.Context) ([]responses.Dimension, error) {
			return uc.loadDimensions(loadCtx, patientID)
		},
		func(dimensions []responses.Dimension, err error) {
			if err != nil {
				uc.Log.Error("dimensionUsecase.RefreshDimensions error loading dimensions",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingPatientIDKey, patientID),
					zap.Error(err),
				)
				return
			}
			uc.cacheDimensions(cacheCtx, patientID, dimensions)
		},
	)
}

// Close cancels running refreshes and waits for them, after which no refresh writes
// to the cache.
func (uc *dimensionUsecase) Close() {
	uc.loads.Close()
}

func (uc *dimensionUsecase) loadDimensions(ctx context.Context, patientID string) ([]responses.Dimension, error) {
	weightConcept := uc.InternalConfig.Dimension.WeightConcept
	heightConcept := uc.InternalConfig.Dimension.HeightConcept

	observations, err := uc.ObservationFhirClient.FindObservations(ctx, &requests.FindObservationsParams{
		PatientID: patientID,
		Codes:     []string{weightConcept, heightConcept},
		Count:     uc.InternalConfig.FHIR.PageSize,
	})
	if err != nil {
		return nil, err
	}

	weights, heights := utils.SplitDimensionObservations(observations, weightConcept, heightConcept)
	return utils.FormatDimensions(weights, heights), nil
}

func (uc *dimensionUsecase) findCachedDimensions(ctx context.Context, patientID string) ([]responses.Dimension, bool) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := dimensionsCacheKey(patientID)

	cached, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("dimensionUsecase.findCachedDimensions error calling RedisRepository.Get",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, false
	}
	if cached == "" {
		return nil, false
	}

	var dimensions []responses.Dimension
	err = json.Unmarshal([]byte(cached), &dimensions)
	if err != nil {
		uc.Log.Warn("dimensionUsecase.findCachedDimensions dropping unreadable cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
		return nil, false
	}
	if dimensions == nil {
		dimensions = []responses.Dimension{}
	}
	return dimensions, true
}

func (uc *dimensionUsecase) cacheDimensions(ctx context.Context, patientID string, dimensions []responses.Dimension) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := dimensionsCacheKey(patientID)
	ttl := time.Duration(uc.InternalConfig.Dimension.CacheTTLInSeconds) * time.Second

	err := uc.RedisRepository.Set(ctx, key, dimensions, ttl)
	if err != nil {
		uc.Log.Warn("dimensionUsecase.cacheDimensions error calling RedisRepository.Set",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
}

// invalidate drops the cached list and asks the refresher to rebuild it. Loads for the
// patient that started before the write are marked stale first, so none of them can
// put the old list back. Neither step fails the write that triggered it.
func (uc *dimensionUsecase) invalidate(ctx context.Context, patientID, reason string) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	key := dimensionsCacheKey(patientID)

	uc.loads.Cancel(patientID)

	err := uc.RedisRepository.Delete(ctx, key)
	if err != nil {
		uc.Log.Warn("dimensionUsecase.invalidate error calling RedisRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}

	if uc.RefreshQueue == nil {
		return
	}
	err = uc.RefreshQueue.Publish(ctx, &models.DimensionsRefreshEvent{
		PatientID:  patientID,
		Reason:     reason,
		RequestID:  requestID,
		OccurredAt: uc.now().UTC(),
	})
	if err != nil {
		uc.Log.Warn("dimensionUsecase.invalidate error calling RefreshQueue.Publish",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
	}
}

func (uc *dimensionUsecase) findOwnedDimensionObservation(ctx context.Context, patientID, observationID string) (*fhir_dto.Observation, error) {
	observation, err := uc.ObservationFhirClient.FindObservationByID(ctx, observationID)
	if err != nil {
		return nil, err
	}

	if observation.SubjectPatientID() != patientID {
		return nil, exceptions.ErrObservationNotOwned(nil, observationID, patientID)
	}

	if !observation.Code.HasCode(uc.InternalConfig.Dimension.WeightConcept) &&
		!observation.Code.HasCode(uc.InternalConfig.Dimension.HeightConcept) {
		return nil, exceptions.ErrObservationNotDimension(nil, observationID)
	}

	return observation, nil
}

func dimensionsCacheKey(patientID string) string {
	return fmt.Sprintf(constvars.RedisKeyDimensionsFormat, patientID)
}
