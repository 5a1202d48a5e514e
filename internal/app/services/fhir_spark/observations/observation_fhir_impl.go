package observations

import (
	"bytes"
	"chart-service/internal/app/contracts"
	"chart-service/internal/app/services/fhir_spark"
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/fhir_dto"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type observationFhirClient struct {
	BaseUrl   string
	Requester *fhir_spark.Requester
	Log       *zap.Logger
	MaxPages  int
}

func NewObservationFhirClient(requester *fhir_spark.Requester, logger *zap.Logger) contracts.ObservationFhirClient {
	return &observationFhirClient{
		BaseUrl:   requester.ResourceUrl(constvars.ResourceObservation),
		Requester: requester,
		Log:       logger,
		MaxPages:  constvars.FhirMaxSearchPages,
	}
}

// FindObservations searches the observations of one patient filtered by concept codes,
// following the bundle's next links until the last page. Paging stops early on a next
// link already visited or after MaxPages pages. Entries of other resource types, such
// as an OperationOutcome warning, are skipped.
func (c *observationFhirClient) FindObservations(ctx context.Context, params *requests.FindObservationsParams) ([]fhir_dto.Observation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("observationFhirClient.FindObservations called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, params.PatientID),
	)

	query := url.Values{}
	query.Set(constvars.FhirSearchParamSubjectPatient, params.PatientID)
	if len(params.Codes) > 0 {
		query.Set(constvars.FhirSearchParamCode, strings.Join(params.Codes, ","))
	}
	if params.Count > 0 {
		query.Set(constvars.FhirSearchParamCount, strconv.Itoa(params.Count))
	}

	observations := []fhir_dto.Observation{}
	pageUrl := fmt.Sprintf("%s?%s", c.BaseUrl, query.Encode())
	visited := map[string]struct{}{}
	for pageUrl != "" {
		if _, ok := visited[pageUrl]; ok {
			c.Log.Warn("observationFhirClient.FindObservations stopped on repeated next link",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingFhirURLKey, pageUrl),
			)
			break
		}
		if c.MaxPages > 0 && len(visited) >= c.MaxPages {
			c.Log.Warn("observationFhirClient.FindObservations stopped at page limit",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingCountKey, len(visited)),
			)
			break
		}
		visited[pageUrl] = struct{}{}

		bundle, err := c.findObservationPage(ctx, pageUrl)
		if err != nil {
			return nil, err
		}

		for _, entry := range bundle.Entry {
			var observation fhir_dto.Observation
			err := json.Unmarshal(entry.Resource, &observation)
			if err != nil {
				c.Log.Error("observationFhirClient.FindObservations error decoding bundle entry",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
			}
			if observation.ResourceType != constvars.ResourceObservation {
				continue
			}
			observations = append(observations, observation)
		}

		pageUrl = bundle.NextPageUrl()
	}

	c.Log.Info("observationFhirClient.FindObservations succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingCountKey, len(observations)),
	)
	return observations, nil
}

func (c *observationFhirClient) findObservationPage(ctx context.Context, pageUrl string) (*fhir_dto.FHIRBundle, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, pageUrl, nil)
	if err != nil {
		c.Log.Error("observationFhirClient.findObservationPage error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.Requester.Do(ctx, req)
	if err != nil {
		c.Log.Error("observationFhirClient.findObservationPage error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		fhirErrorIssue := fhir_spark.OutcomeError(resp)
		c.Log.Error("observationFhirClient.findObservationPage FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourceObservation)
	}

	bundle := new(fhir_dto.FHIRBundle)
	err = json.NewDecoder(resp.Body).Decode(bundle)
	if err != nil {
		c.Log.Error("observationFhirClient.findObservationPage error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
	}

	return bundle, nil
}

func (c *observationFhirClient) CreateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("observationFhirClient.CreateObservation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		c.Log.Error("observationFhirClient.CreateObservation error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, c.BaseUrl, bytes.NewBuffer(requestJSON))
	if err != nil {
		c.Log.Error("observationFhirClient.CreateObservation error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.Requester.Do(ctx, req)
	if err != nil {
		c.Log.Error("observationFhirClient.CreateObservation error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusCreated && resp.StatusCode != constvars.StatusOK {
		fhirErrorIssue := fhir_spark.OutcomeError(resp)
		c.Log.Error("observationFhirClient.CreateObservation FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrCreateFHIRResource(fhirErrorIssue, constvars.ResourceObservation)
	}

	observationFhir := new(fhir_dto.Observation)
	err = json.NewDecoder(resp.Body).Decode(observationFhir)
	if err != nil {
		c.Log.Error("observationFhirClient.CreateObservation error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
	}

	c.Log.Info("observationFhirClient.CreateObservation succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObservationIDKey, observationFhir.ID),
	)
	return observationFhir, nil
}

func (c *observationFhirClient) FindObservationByID(ctx context.Context, observationID string) (*fhir_dto.Observation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("observationFhirClient.FindObservationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObservationIDKey, observationID),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, fmt.Sprintf("%s/%s", c.BaseUrl, observationID), nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.Requester.Do(ctx, req)
	if err != nil {
		c.Log.Error("observationFhirClient.FindObservationByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == constvars.StatusNotFound || resp.StatusCode == constvars.StatusGone:
		return nil, exceptions.ErrNoDataFHIRResource(fhir_spark.OutcomeError(resp), constvars.ResourceObservation)
	case resp.StatusCode != constvars.StatusOK:
		fhirErrorIssue := fhir_spark.OutcomeError(resp)
		c.Log.Error("observationFhirClient.FindObservationByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrGetFHIRResource(fhirErrorIssue, constvars.ResourceObservation)
	}

	observationFhir := new(fhir_dto.Observation)
	err = json.NewDecoder(resp.Body).Decode(observationFhir)
	if err != nil {
		c.Log.Error("observationFhirClient.FindObservationByID error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
	}

	return observationFhir, nil
}

func (c *observationFhirClient) UpdateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("observationFhirClient.UpdateObservation called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObservationIDKey, request.ID),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPut, fmt.Sprintf("%s/%s", c.BaseUrl, request.ID), bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.Requester.Do(ctx, req)
	if err != nil {
		c.Log.Error("observationFhirClient.UpdateObservation error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		fhirErrorIssue := fhir_spark.OutcomeError(resp)
		c.Log.Error("observationFhirClient.UpdateObservation FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return nil, exceptions.ErrUpdateFHIRResource(fhirErrorIssue, constvars.ResourceObservation)
	}

	observationFhir := new(fhir_dto.Observation)
	err = json.NewDecoder(resp.Body).Decode(observationFhir)
	if err != nil {
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceObservation)
	}

	return observationFhir, nil
}

func (c *observationFhirClient) DeleteObservationByID(ctx context.Context, observationID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("observationFhirClient.DeleteObservationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObservationIDKey, observationID),
	)

	req, err := http.NewRequestWithContext(ctx, constvars.MethodDelete, fmt.Sprintf("%s/%s", c.BaseUrl, observationID), nil)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}

	resp, err := c.Requester.Do(ctx, req)
	if err != nil {
		c.Log.Error("observationFhirClient.DeleteObservationByID error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusNoContent && resp.StatusCode != constvars.StatusOK {
		fhirErrorIssue := fhir_spark.OutcomeError(resp)
		c.Log.Error("observationFhirClient.DeleteObservationByID FHIR error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(fhirErrorIssue),
		)
		return exceptions.ErrDeleteFHIRResource(fhirErrorIssue, constvars.ResourceObservation)
	}

	return nil
}
