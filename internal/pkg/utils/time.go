package utils

import (
	"chart-service/internal/pkg/constvars"
	"fmt"
	"time"
)

// fhirInstantLayouts lists the FHIR dateTime shapes accepted for issued timestamps,
// most precise first.
var fhirInstantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseFHIRInstant parses an ISO-8601 date or date-time as sent by the FHIR server.
// Timestamps without an offset are read as UTC.
func ParseFHIRInstant(value string) (time.Time, error) {
	for _, layout := range fhirInstantLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported FHIR instant %q", value)
}

// FormatMonthYear renders the short summary date, e.g. "Jan-2023".
// The timestamp keeps its own offset; unparseable input is returned unchanged.
func FormatMonthYear(value string) string {
	return formatFHIRInstant(value, constvars.DateLayoutMonthYear)
}

// FormatDayMonthYear renders the long details date, e.g. "10-Jan-2023".
func FormatDayMonthYear(value string) string {
	return formatFHIRInstant(value, constvars.DateLayoutDayMonthYear)
}

func formatFHIRInstant(value, layout string) string {
	if value == "" {
		return ""
	}
	parsed, err := ParseFHIRInstant(value)
	if err != nil {
		return value
	}
	return parsed.Format(layout)
}
