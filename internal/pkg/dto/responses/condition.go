package responses

type ConditionRecord struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	ClinicalStatus      string `json:"clinical_status"`
	OnsetDate           string `json:"onset_date,omitempty"`
	OnsetDateTime       string `json:"onset_date_time,omitempty"`
	LastUpdated         string `json:"last_updated,omitempty"`
	LastUpdatedBy       string `json:"last_updated_by,omitempty"`
	LastUpdatedLocation string `json:"last_updated_location,omitempty"`
}
