package models

import "time"

// DimensionsRefreshEvent asks the refresher to rebuild the cached dimensions of a patient.
type DimensionsRefreshEvent struct {
	PatientID  string    `json:"patient_id"`
	Reason     string    `json:"reason"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
