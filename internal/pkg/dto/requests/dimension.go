package requests

type FindObservationsParams struct {
	PatientID string
	Codes     []string
	Count     int
}

type RecordDimensions struct {
	PatientID   string   `json:"-" validate:"required,fhir_id"`
	Weight      *float64 `json:"weight" validate:"required_without=Height,omitempty,gt=0"`
	Height      *float64 `json:"height" validate:"required_without=Weight,omitempty,gt=0"`
	Issued      string   `json:"issued" validate:"omitempty,fhir_instant"`
	EncounterID string   `json:"encounter_id" validate:"omitempty,fhir_id"`
}

type DeleteDimension struct {
	PatientID     string `validate:"required,fhir_id"`
	ObservationID string `validate:"required,fhir_id"`
}

// UpdateDimension amends the value of a single recorded weight or height reading.
type UpdateDimension struct {
	PatientID     string  `json:"-" validate:"required,fhir_id"`
	ObservationID string  `json:"-" validate:"required,fhir_id"`
	Value         float64 `json:"value" validate:"required,gt=0"`
}
