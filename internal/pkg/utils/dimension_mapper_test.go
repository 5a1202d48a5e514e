package utils

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/requests"
	"chart-service/internal/pkg/fhir_dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(issued string, value float64, encounterID string) fhir_dto.Observation {
	observation := fhir_dto.Observation{
		ResourceType:  constvars.ResourceObservation,
		Issued:        issued,
		ValueQuantity: &fhir_dto.Quantity{Value: value},
	}
	if encounterID != "" {
		observation.Encounter = &fhir_dto.Reference{Reference: "Encounter/" + encounterID}
	}
	return observation
}

func TestFormatDimensions(t *testing.T) {
	t.Run("Empty Inputs", func(t *testing.T) {
		dimensions := FormatDimensions(nil, nil)
		assert.NotNil(t, dimensions)
		assert.Empty(t, dimensions)

		dimensions = FormatDimensions([]fhir_dto.Observation{}, []fhir_dto.Observation{})
		assert.Empty(t, dimensions)
	})

	t.Run("Same Date Pair Computes BMI", func(t *testing.T) {
		weights := []fhir_dto.Observation{reading("2023-01-10", 70, "enc-1")}
		heights := []fhir_dto.Observation{reading("2023-01-10", 175, "enc-2")}

		dimensions := FormatDimensions(weights, heights)

		require.Len(t, dimensions, 1)
		dimension := dimensions[0]
		require.NotNil(t, dimension.Weight)
		require.NotNil(t, dimension.Height)
		require.NotNil(t, dimension.BMI)
		assert.Equal(t, 70.0, *dimension.Weight)
		assert.Equal(t, 175.0, *dimension.Height)
		assert.InDelta(t, 22.86, *dimension.BMI, 0.001)
		assert.Equal(t, "Jan-2023", dimension.Date)
		assert.Equal(t, "10-Jan-2023", dimension.DateLong)
		assert.Equal(t, "2023-01-10", dimension.Issued)
		assert.Equal(t, "enc-1", dimension.ID, "encounter id should come from the weight reading")
		assert.Same(t, &weights[0], dimension.ObsData.Weight)
		assert.Same(t, &heights[0], dimension.ObsData.Height)
	})

	t.Run("Weight Without Height", func(t *testing.T) {
		weights := []fhir_dto.Observation{reading("2023-02-01", 68, "")}

		dimensions := FormatDimensions(weights, nil)

		require.Len(t, dimensions, 1)
		require.NotNil(t, dimensions[0].Weight)
		assert.Equal(t, 68.0, *dimensions[0].Weight)
		assert.Nil(t, dimensions[0].Height)
		assert.Nil(t, dimensions[0].BMI)
		assert.Nil(t, dimensions[0].ObsData.Height)
		assert.Empty(t, dimensions[0].ID)
	})

	t.Run("Height Without Weight Has No Encounter ID", func(t *testing.T) {
		heights := []fhir_dto.Observation{reading("2023-02-01", 170, "enc-9")}

		dimensions := FormatDimensions(nil, heights)

		require.Len(t, dimensions, 1)
		assert.Empty(t, dimensions[0].ID)
		assert.Nil(t, dimensions[0].Weight)
		assert.Nil(t, dimensions[0].BMI)
	})

	t.Run("Disjoint Dates Produce One Record Each", func(t *testing.T) {
		weights := []fhir_dto.Observation{
			reading("2023-01-01T08:00:00Z", 70, ""),
			reading("2023-03-01T08:00:00Z", 71, ""),
		}
		heights := []fhir_dto.Observation{
			reading("2023-02-01T08:00:00Z", 175, ""),
			reading("2023-04-01T08:00:00Z", 176, ""),
			reading("2023-05-01T08:00:00Z", 176, ""),
		}

		dimensions := FormatDimensions(weights, heights)

		assert.Len(t, dimensions, 5)
		for _, dimension := range dimensions {
			assert.Nil(t, dimension.BMI)
		}
	})

	t.Run("Sorted Latest First By Instant", func(t *testing.T) {
		// 2023-10-01T01:00:00+05:00 is 2023-09-30T20:00:00Z.
		weights := []fhir_dto.Observation{
			reading("2023-09-30T22:00:00Z", 70, ""),
			reading("2023-10-01T01:00:00+05:00", 71, ""),
			reading("2022-12-31", 69, ""),
		}
		heights := []fhir_dto.Observation{
			reading("2023-10-01T12:00:00Z", 175, ""),
		}

		dimensions := FormatDimensions(weights, heights)

		require.Len(t, dimensions, 4)
		assert.Equal(t, "2023-10-01T12:00:00Z", dimensions[0].Issued)
		assert.Equal(t, "2023-09-30T22:00:00Z", dimensions[1].Issued)
		assert.Equal(t, "2023-10-01T01:00:00+05:00", dimensions[2].Issued)
		assert.Equal(t, "2022-12-31", dimensions[3].Issued)

		for i := 1; i < len(dimensions); i++ {
			previous, err := ParseFHIRInstant(dimensions[i-1].Issued)
			require.NoError(t, err)
			current, err := ParseFHIRInstant(dimensions[i].Issued)
			require.NoError(t, err)
			assert.False(t, current.After(previous))
		}
	})

	t.Run("Duplicate Timestamp First Match Wins", func(t *testing.T) {
		weights := []fhir_dto.Observation{
			reading("2023-01-10", 70, "first"),
			reading("2023-01-10", 90, "second"),
		}

		dimensions := FormatDimensions(weights, nil)

		require.Len(t, dimensions, 1)
		assert.Equal(t, 70.0, *dimensions[0].Weight)
		assert.Equal(t, "first", dimensions[0].ID)
	})

	t.Run("Zero Height Leaves BMI Absent", func(t *testing.T) {
		weights := []fhir_dto.Observation{reading("2023-01-10", 70, "")}
		heights := []fhir_dto.Observation{reading("2023-01-10", 0, "")}

		dimensions := FormatDimensions(weights, heights)

		require.Len(t, dimensions, 1)
		require.NotNil(t, dimensions[0].Height)
		assert.Equal(t, 0.0, *dimensions[0].Height)
		assert.Nil(t, dimensions[0].BMI)
	})

	t.Run("Negative Values Pass Through", func(t *testing.T) {
		weights := []fhir_dto.Observation{reading("2023-01-10", -70, "")}
		heights := []fhir_dto.Observation{reading("2023-01-10", 175, "")}

		dimensions := FormatDimensions(weights, heights)

		require.Len(t, dimensions, 1)
		assert.Equal(t, -70.0, *dimensions[0].Weight)
		require.NotNil(t, dimensions[0].BMI)
		assert.InDelta(t, -22.86, *dimensions[0].BMI, 0.001)
	})

	t.Run("Unparseable Timestamp Sorted Last", func(t *testing.T) {
		weights := []fhir_dto.Observation{
			reading("not-a-date", 70, ""),
			reading("2021-06-01", 72, ""),
		}

		dimensions := FormatDimensions(weights, nil)

		require.Len(t, dimensions, 2)
		assert.Equal(t, "2021-06-01", dimensions[0].Issued)
		assert.Equal(t, "not-a-date", dimensions[1].Issued)
		assert.Equal(t, "not-a-date", dimensions[1].Date)
	})

	t.Run("Idempotent", func(t *testing.T) {
		weights := []fhir_dto.Observation{reading("2023-01-10", 70, "e"), reading("2023-03-10", 72, "")}
		heights := []fhir_dto.Observation{reading("2023-01-10", 175, ""), reading("2023-02-10", 175, "")}

		first := FormatDimensions(weights, heights)
		second := FormatDimensions(weights, heights)

		assert.Equal(t, first, second)
	})
}

func TestSplitDimensionObservations(t *testing.T) {
	weight := reading("2023-01-10", 70, "")
	weight.Code = fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: constvars.FhirConceptWeight}}}
	height := reading("2023-01-10", 175, "")
	height.Code = fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "other"}, {Code: constvars.FhirConceptHeight}}}
	unrelated := reading("2023-01-10", 37, "")
	unrelated.Code = fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "5088AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"}}}

	weights, heights := SplitDimensionObservations([]fhir_dto.Observation{weight, height, unrelated}, constvars.FhirConceptWeight, constvars.FhirConceptHeight)

	require.Len(t, weights, 1)
	require.Len(t, heights, 1)
	assert.Equal(t, 70.0, weights[0].ValueQuantity.Value)
	assert.Equal(t, 175.0, heights[0].ValueQuantity.Value)

	weights, heights = SplitDimensionObservations(nil, constvars.FhirConceptWeight, constvars.FhirConceptHeight)
	assert.NotNil(t, weights)
	assert.NotNil(t, heights)
}

func TestMapRecordDimensionsToObservations(t *testing.T) {
	weight := 70.5
	height := 176.0
	issued := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

	t.Run("Both Measurements", func(t *testing.T) {
		request := &requests.RecordDimensions{PatientID: "pat-1", Weight: &weight, Height: &height, EncounterID: "enc-7"}

		observations := MapRecordDimensionsToObservations(request, constvars.FhirConceptWeight, constvars.FhirConceptHeight, issued)

		require.Len(t, observations, 2)
		assert.True(t, observations[0].Code.HasCode(constvars.FhirConceptWeight))
		assert.Equal(t, constvars.FhirUnitKilogram, observations[0].ValueQuantity.Unit)
		assert.True(t, observations[1].Code.HasCode(constvars.FhirConceptHeight))
		assert.Equal(t, constvars.FhirUnitCentimeter, observations[1].ValueQuantity.Unit)
		for _, observation := range observations {
			assert.Equal(t, "2024-03-05T09:30:00Z", observation.Issued)
			assert.Equal(t, "Patient/pat-1", observation.Subject.Reference)
			assert.Equal(t, "enc-7", observation.EncounterID())
			assert.Equal(t, constvars.FhirObservationStatusFinal, observation.Status)
		}
	})

	t.Run("Weight Only", func(t *testing.T) {
		request := &requests.RecordDimensions{PatientID: "pat-1", Weight: &weight}

		observations := MapRecordDimensionsToObservations(request, constvars.FhirConceptWeight, constvars.FhirConceptHeight, issued)

		require.Len(t, observations, 1)
		assert.Nil(t, observations[0].Encounter)
		assert.Equal(t, 70.5, observations[0].ValueQuantity.Value)
	})
}
