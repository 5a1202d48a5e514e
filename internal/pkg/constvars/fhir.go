package constvars

const (
	ResourcePatient     = "Patient"
	ResourceObservation = "Observation"
	ResourceCondition   = "Condition"
	ResourceEncounter   = "Encounter"
	ResourceBundle      = "Bundle"
)

const (
	FhirObservationStatusFinal   = "final"
	FhirObservationStatusAmended = "amended"
)

const (
	// CIEL concept UUIDs used by the OpenMRS FHIR module for vitals.
	FhirConceptWeight = "5089AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	FhirConceptHeight = "5090AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

	FhirConceptWeightDisplay = "Weight (kg)"
	FhirConceptHeightDisplay = "Height (cm)"
)

const (
	FhirUnitsOfMeasureSystem = "http://unitsofmeasure.org"
	FhirUnitKilogram         = "kg"
	FhirUnitCentimeter       = "cm"
)

const (
	FhirSearchParamSubjectPatient = "subject:Patient"
	FhirSearchParamCode           = "code"
	FhirSearchParamCount          = "_count"
	FhirDefaultPageSize           = 100
	FhirMaxSearchPages            = 50
)

const (
	FhirReferenceEncounterPrefix = "Encounter/"
	FhirReferencePatientPrefix   = "Patient/"
)
