package utils

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/dto/responses"
	"chart-service/internal/pkg/fhir_dto"
	"sort"
	"time"
)

// SplitDimensionObservations separates a mixed search result into weight and height
// series using the observation code. Observations matching neither concept are dropped.
func SplitDimensionObservations(observations []fhir_dto.Observation, weightConcept, heightConcept string) (weights, heights []fhir_dto.Observation) {
	weights = []fhir_dto.Observation{}
	heights = []fhir_dto.Observation{}
	for _, observation := range observations {
		if observation.Code.HasCode(weightConcept) {
			weights = append(weights, observation)
		}
		if observation.Code.HasCode(heightConcept) {
			heights = append(heights, observation)
		}
	}
	return weights, heights
}

// FormatDimensions pairs weight and height readings by their issued timestamp.
//
// One record is produced per distinct issued value across both series, most recent
// first. Readings are matched by exact issued string; when a series holds the same
// timestamp twice the first reading wins. BMI is only set when both readings exist
// and the height is non-zero.
func FormatDimensions(weights, heights []fhir_dto.Observation) []responses.Dimension {
	issuedDates := uniqueIssuedDates(weights, heights)
	sortLatestFirst(issuedDates)

	dimensions := make([]responses.Dimension, 0, len(issuedDates))
	for _, issued := range issuedDates {
		weight := findByIssued(weights, issued)
		height := findByIssued(heights, issued)

		dimension := responses.Dimension{
			ID:       weight.EncounterID(),
			Issued:   issued,
			Date:     FormatMonthYear(issued),
			DateLong: FormatDayMonthYear(issued),
			Weight:   weight.Value(),
			Height:   height.Value(),
			ObsData: responses.DimensionObservations{
				Weight: weight,
				Height: height,
			},
		}

		if dimension.Weight != nil && dimension.Height != nil {
			if bmi, ok := CalculateBMI(*dimension.Weight, *dimension.Height); ok {
				dimension.BMI = &bmi
			}
		}

		dimensions = append(dimensions, dimension)
	}

	return dimensions
}

func uniqueIssuedDates(series ...[]fhir_dto.Observation) []string {
	seen := make(map[string]struct{})
	dates := []string{}
	for _, observations := range series {
		for _, observation := range observations {
			if _, ok := seen[observation.Issued]; ok {
				continue
			}
			seen[observation.Issued] = struct{}{}
			dates = append(dates, observation.Issued)
		}
	}
	return dates
}

// sortLatestFirst orders by parsed instant, not by string. Unparseable values go last
// and equal instants keep their first-seen order.
func sortLatestFirst(dates []string) {
	instants := make(map[string]time.Time, len(dates))
	valid := make(map[string]bool, len(dates))
	for _, date := range dates {
		parsed, err := ParseFHIRInstant(date)
		instants[date] = parsed
		valid[date] = err == nil
	}

	sort.SliceStable(dates, func(i, j int) bool {
		a, b := dates[i], dates[j]
		if valid[a] != valid[b] {
			return valid[a]
		}
		return instants[a].After(instants[b])
	})
}

func findByIssued(observations []fhir_dto.Observation, issued string) *fhir_dto.Observation {
	for i := range observations {
		if observations[i].Issued == issued {
			return &observations[i]
		}
	}
	return nil
}

// MapRecordDimensionsToObservations builds one FHIR Observation per measurement in the
// request. Both share the same issued timestamp so they pair up again when read back.
func MapRecordDimensionsToObservations(request *requests.RecordDimensions, weightConcept, heightConcept string, issued time.Time) []*fhir_dto.Observation {
	issuedAt := issued.Format(time.RFC3339)
	observations := []*fhir_dto.Observation{}

	if request.Weight != nil {
		observations = append(observations, buildDimensionObservation(request, weightConcept, constvars.FhirConceptWeightDisplay, constvars.FhirUnitKilogram, *request.Weight, issuedAt))
	}
	if request.Height != nil {
		observations = append(observations, buildDimensionObservation(request, heightConcept, constvars.FhirConceptHeightDisplay, constvars.FhirUnitCentimeter, *request.Height, issuedAt))
	}

	return observations
}

func buildDimensionObservation(request *requests.RecordDimensions, concept, display, unit string, value float64, issuedAt string) *fhir_dto.Observation {
	observation := &fhir_dto.Observation{
		ResourceType: constvars.ResourceObservation,
		Status:       constvars.FhirObservationStatusFinal,
		Code: fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{{Code: concept, Display: display}},
			Text:   display,
		},
		Subject: fhir_dto.Reference{
			Reference: constvars.FhirReferencePatientPrefix + request.PatientID,
		},
		EffectiveDateTime: issuedAt,
		Issued:            issuedAt,
		ValueQuantity: &fhir_dto.Quantity{
			Value:  value,
			Unit:   unit,
			System: constvars.FhirUnitsOfMeasureSystem,
			Code:   unit,
		},
	}

	if request.EncounterID != "" {
		observation.Encounter = &fhir_dto.Reference{
			Reference: constvars.FhirReferenceEncounterPrefix + request.EncounterID,
		}
	}

	return observation
}
