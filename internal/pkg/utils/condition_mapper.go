package utils

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/dto/responses"
	"chart-service/internal/pkg/fhir_dto"
	"unicode"
	"unicode/utf8"
)

func MapConditionToRecord(condition *fhir_dto.Condition) *responses.ConditionRecord {
	record := &responses.ConditionRecord{
		ID:             condition.ID,
		Name:           conditionName(condition.Code),
		ClinicalStatus: Capitalize(condition.ClinicalStatusCode()),
		OnsetDate:      FormatMonthYear(condition.OnsetDateTime),
		OnsetDateTime:  condition.OnsetDateTime,
	}

	if condition.Meta != nil && condition.Meta.LastUpdated != nil {
		record.LastUpdated = condition.Meta.LastUpdated.Format(constvars.DateLayoutDayMonthYear)
	}

	switch {
	case condition.Recorder != nil && condition.Recorder.Display != "":
		record.LastUpdatedBy = condition.Recorder.Display
	case condition.Asserter != nil:
		record.LastUpdatedBy = condition.Asserter.Display
	}

	if condition.Encounter != nil {
		record.LastUpdatedLocation = condition.Encounter.Display
	}

	return record
}

// BuildEditConditionTabProps carries what the condition form needs to prefill itself.
func BuildEditConditionTabProps(condition *fhir_dto.Condition) map[string]interface{} {
	return map[string]interface{}{
		"conditionUuid":  condition.ID,
		"name":           conditionName(condition.Code),
		"clinicalStatus": condition.ClinicalStatusCode(),
		"onsetDateTime":  condition.OnsetDateTime,
	}
}

func conditionName(code *fhir_dto.CodeableConcept) string {
	if code == nil {
		return ""
	}
	if code.Text != "" {
		return code.Text
	}
	for _, coding := range code.Coding {
		if coding.Display != "" {
			return coding.Display
		}
	}
	return ""
}

// Capitalize upper-cases the first letter only, so "active" becomes "Active".
func Capitalize(value string) string {
	if value == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(first)) + value[size:]
}
