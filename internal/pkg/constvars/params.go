package constvars

const (
	URLParamPatientID     = "patient_id"
	URLParamConditionID   = "condition_id"
	URLParamObservationID = "observation_id"
	URLParamTabID         = "tab_id"
	URLParamComponent     = "component"
)
