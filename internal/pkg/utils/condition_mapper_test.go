package utils

import (
	"chart-service/internal/pkg/fhir_dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapConditionToRecord(t *testing.T) {
	lastUpdated := time.Date(2024, 5, 7, 10, 0, 0, 0, time.UTC)

	t.Run("Full Condition", func(t *testing.T) {
		condition := &fhir_dto.Condition{
			ID:   "cond-1",
			Meta: &fhir_dto.Meta{LastUpdated: &lastUpdated},
			ClinicalStatus: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{Code: "active"}},
			},
			Code: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{Code: "116128AAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", Display: "Malaria"}},
				Text:   "Malaria, confirmed",
			},
			Encounter:     &fhir_dto.Reference{Reference: "Encounter/enc-1", Display: "Outpatient Clinic"},
			OnsetDateTime: "2024-04-02T00:00:00+00:00",
			Recorder:      &fhir_dto.Reference{Display: "Dr. Ama Mensah"},
			Asserter:      &fhir_dto.Reference{Display: "Nurse"},
		}

		record := MapConditionToRecord(condition)

		assert.Equal(t, "cond-1", record.ID)
		assert.Equal(t, "Malaria, confirmed", record.Name)
		assert.Equal(t, "Active", record.ClinicalStatus)
		assert.Equal(t, "Apr-2024", record.OnsetDate)
		assert.Equal(t, "2024-04-02T00:00:00+00:00", record.OnsetDateTime)
		assert.Equal(t, "07-May-2024", record.LastUpdated)
		assert.Equal(t, "Dr. Ama Mensah", record.LastUpdatedBy)
		assert.Equal(t, "Outpatient Clinic", record.LastUpdatedLocation)
	})

	t.Run("Sparse Condition Falls Back", func(t *testing.T) {
		condition := &fhir_dto.Condition{
			ID: "cond-2",
			ClinicalStatus: &fhir_dto.CodeableConcept{
				Text: "inactive",
			},
			Code: &fhir_dto.CodeableConcept{
				Coding: []fhir_dto.Coding{{Code: "x"}, {Code: "y", Display: "Asthma"}},
			},
			Asserter: &fhir_dto.Reference{Display: "Patient"},
		}

		record := MapConditionToRecord(condition)

		assert.Equal(t, "Asthma", record.Name)
		assert.Equal(t, "Inactive", record.ClinicalStatus)
		assert.Empty(t, record.OnsetDate)
		assert.Empty(t, record.LastUpdated)
		assert.Equal(t, "Patient", record.LastUpdatedBy)
		assert.Empty(t, record.LastUpdatedLocation)
	})
}

func TestBuildEditConditionTabProps(t *testing.T) {
	condition := &fhir_dto.Condition{
		ID:             "cond-3",
		ClinicalStatus: &fhir_dto.CodeableConcept{Coding: []fhir_dto.Coding{{Code: "active"}}},
		Code:           &fhir_dto.CodeableConcept{Text: "Hypertension"},
		OnsetDateTime:  "2022-11-01",
	}

	props := BuildEditConditionTabProps(condition)

	assert.Equal(t, map[string]interface{}{
		"conditionUuid":  "cond-3",
		"name":           "Hypertension",
		"clinicalStatus": "active",
		"onsetDateTime":  "2022-11-01",
	}, props)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Active", Capitalize("active"))
	assert.Equal(t, "Ébauche", Capitalize("ébauche"))
	assert.Equal(t, "", Capitalize(""))
}
