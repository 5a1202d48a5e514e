package responses

import (
	"chart-service/internal/pkg/fhir_dto"
	"time"
)

// Dimension pairs the height and weight observations issued at the same instant.
// Height is in centimeters, weight in kilograms.
type Dimension struct {
	ID       string                `json:"id,omitempty"`
	Issued   string                `json:"issued"`
	Date     string                `json:"date"`
	DateLong string                `json:"date_long"`
	Weight   *float64              `json:"weight,omitempty"`
	Height   *float64              `json:"height,omitempty"`
	BMI      *float64              `json:"bmi,omitempty"`
	ObsData  DimensionObservations `json:"obs_data"`
}

type DimensionObservations struct {
	Weight *fhir_dto.Observation `json:"weight,omitempty"`
	Height *fhir_dto.Observation `json:"height,omitempty"`
}

type DimensionExport struct {
	PatientID  string    `json:"patient_id"`
	ObjectName string    `json:"object_name"`
	Url        string    `json:"url"`
	Rows       int       `json:"rows"`
	ExpiresAt  time.Time `json:"expires_at"`
}
