package contracts

import (
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/fhir_dto"
	"context"
)

type ObservationFhirClient interface {
	FindObservations(ctx context.Context, params *requests.FindObservationsParams) ([]fhir_dto.Observation, error)
	CreateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error)
	UpdateObservation(ctx context.Context, request *fhir_dto.Observation) (*fhir_dto.Observation, error)
	FindObservationByID(ctx context.Context, observationID string) (*fhir_dto.Observation, error)
	DeleteObservationByID(ctx context.Context, observationID string) error
}
