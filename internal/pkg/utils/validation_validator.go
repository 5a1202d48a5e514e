package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// fhirIDPattern follows the FHIR id datatype.
var fhirIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-\.]{1,64}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("fhir_id", validateFhirID)
	validate.RegisterValidation("fhir_instant", validateFhirInstant)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateFhirID(value string) bool {
	return fhirIDPattern.MatchString(value)
}

func validateFhirID(fl validator.FieldLevel) bool {
	return ValidateFhirID(fl.Field().String())
}

func validateFhirInstant(fl validator.FieldLevel) bool {
	_, err := ParseFHIRInstant(fl.Field().String())
	return err == nil
}
