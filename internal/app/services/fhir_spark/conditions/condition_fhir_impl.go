package conditions

import (
	"chart-service/internal/app/contracts"
	"chart-service/internal/app/services/fhir_spark"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/fhir_dto"
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type conditionFhirClient struct {
	BaseUrl   string
	Requester *fhir_spark.Requester
	Log       *zap.Logger
}

func NewConditionFhirClient(requester *fhir_spark.Requester, logger *zap.Logger) contracts.ConditionFhirClient {
	return &conditionFhirClient{
		BaseUrl:   requester.ResourceUrl(constvars.ResourceCondition),
		Requester: requester,
		Log:       logger,
	}
}

func (c *conditionFhirClient) FindConditionByID(ctx context.Context, conditionID string) (*fhir_dto.Condition, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("conditionFhirClient.FindConditionByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConditionIDKey, conditionID),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, conditionID), nil)
	if err != nil {
		c.Log.Error("conditionFhirClient.FindConditionByID error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.Requester.Do(ctx, req)
	if err != nil {
		c.Log.Error("conditionFhirClient.FindConditionByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == constvars.StatusNotFound || resp.StatusCode == constvars.StatusGone:
		fhirErrorIssue := fhir_spark.OutcomeError(resp)
		c.Log.Info("conditionFhirClient.FindConditionByID no data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingConditionIDKey, conditionID),
		)
		return nil, exceptions.ErrNoDataFHIRResource(fhirErrorIssue, constvars.ResourceCondition)
	case resp.StatusCode != constvars.StatusOK:
		fhirErrorIssue := fhir_spark.OutcomeError(resp)
		c.Log.Error("conditionFhirClient.FindConditionByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourceCondition)
	}

	conditionFhir := new(fhir_dto.Condition)
	err = json.NewDecoder(resp.Body).Decode(conditionFhir)
	if err != nil {
		c.Log.Error("conditionFhirClient.FindConditionByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceCondition)
	}

	c.Log.Info("conditionFhirClient.FindConditionByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingConditionIDKey, conditionFhir.ID),
	)
	return conditionFhir, nil
}
