package fhir_dto

import "strings"

type Observation struct {
	ResourceType      string            `json:"resourceType"`
	ID                string            `json:"id,omitempty"`
	Meta              *Meta             `json:"meta,omitempty"`
	Identifier        []Identifier      `json:"identifier,omitempty"`
	Status            string            `json:"status"`
	Category          []CodeableConcept `json:"category,omitempty"`
	Code              CodeableConcept   `json:"code"`
	Subject           Reference         `json:"subject"`
	Encounter         *Reference        `json:"encounter,omitempty"`
	Performer         []Reference       `json:"performer,omitempty"`
	EffectiveDateTime string            `json:"effectiveDateTime,omitempty"`
	Issued            string            `json:"issued,omitempty"`
	ValueQuantity     *Quantity         `json:"valueQuantity,omitempty"`
	Note              []Annotation      `json:"note,omitempty"`
}

// Value returns the observed quantity, or nil when the observation carries none.
func (o *Observation) Value() *float64 {
	if o == nil || o.ValueQuantity == nil {
		return nil
	}
	value := o.ValueQuantity.Value
	return &value
}

// EncounterID strips the "Encounter/" prefix from the encounter reference.
func (o *Observation) EncounterID() string {
	if o == nil || o.Encounter == nil {
		return ""
	}
	return strings.TrimPrefix(o.Encounter.Reference, "Encounter/")
}

// SubjectPatientID strips the "Patient/" prefix from the subject reference.
func (o *Observation) SubjectPatientID() string {
	if o == nil {
		return ""
	}
	return strings.TrimPrefix(o.Subject.Reference, "Patient/")
}
