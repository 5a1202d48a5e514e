package dimensions

import (
	"chart-service/internal/app/models"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/dto/responses"
	"chart-service/internal/pkg/fhir_dto"
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockObservationFhirClient struct {
	mock.Mock
}

func (m *MockObservationFhirClient) FindObservations(ctx context.Context, params *requests.FindObservationsParams) ([]fhir_dto.Observation, error) {
	args := m.Called(ctx, params)
	observations, _ := args.Get(0).([]fhir_dto.Observation)
	return observations, args.Error(1)
}

func (m *MockObservationFhirClient) CreateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error) {
	args := m.Called(ctx, request)
	observation, _ := args.Get(0).(*fhir_dto.Observation)
	return observation, args.Error(1)
}

func (m *MockObservationFhirClient) UpdateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error) {
	args := m.Called(ctx, request)
	observation, _ := args.Get(0).(*fhir_dto.Observation)
	return observation, args.Error(1)
}

func (m *MockObservationFhirClient) FindObservationByID(ctx context.Context, observationID string) (*fhir_dto.Observation, error) {
	args := m.Called(ctx, observationID)
	observation, _ := args.Get(0).(*fhir_dto.Observation)
	return observation, args.Error(1)
}

func (m *MockObservationFhirClient) DeleteObservationByID(ctx context.Context, observationID string) error {
	args := m.Called(ctx, observationID)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadObject(ctx context.Context, content io.Reader, size int64, bucketName, objectName, contentType string) (string, error) {
	args := m.Called(ctx, content, size, bucketName, objectName, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type MockRefreshQueue struct {
	mock.Mock
}

func (m *MockRefreshQueue) Publish(ctx context.Context, event *models.DimensionsRefreshEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockRefreshQueue) Consume(ctx context.Context) (<-chan models.DimensionsRefreshEvent, error) {
	args := m.Called(ctx)
	events, _ := args.Get(0).(<-chan models.DimensionsRefreshEvent)
	return events, args.Error(1)
}

func (m *MockRefreshQueue) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockDimensionUsecase struct {
	mock.Mock
}

func (m *MockDimensionUsecase) GetDimensions(ctx context.Context, patientID string) ([]responses.Dimension, error) {
	args := m.Called(ctx, patientID)
	dimensions, _ := args.Get(0).([]responses.Dimension)
	return dimensions, args.Error(1)
}

func (m *MockDimensionUsecase) RecordDimensions(ctx context.Context, request *requests.RecordDimensions) ([]responses.Dimension, error) {
	args := m.Called(ctx, request)
	dimensions, _ := args.Get(0).([]responses.Dimension)
	return dimensions, args.Error(1)
}

func (m *MockDimensionUsecase) UpdateDimension(ctx context.Context, request *requests.UpdateDimension) ([]responses.Dimension, error) {
	args := m.Called(ctx, request)
	dimensions, _ := args.Get(0).([]responses.Dimension)
	return dimensions, args.Error(1)
}

func (m *MockDimensionUsecase) DeleteDimension(ctx context.Context, request *requests.DeleteDimension) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockDimensionUsecase) ExportDimensions(ctx context.Context, patientID string) (*responses.DimensionExport, error) {
	args := m.Called(ctx, patientID)
	export, _ := args.Get(0).(*responses.DimensionExport)
	return export, args.Error(1)
}

func (m *MockDimensionUsecase) RefreshDimensions(ctx context.Context, patientID string) bool {
	args := m.Called(ctx, patientID)
	return args.Bool(0)
}

func (m *MockDimensionUsecase) Close() {
	m.Called()
}
