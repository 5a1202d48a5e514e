package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":             "is required",
	"min":                  "must be at least %s characters long",
	"max":                  "maximum at %s characters long",
	"numeric":              "must be a number",
	"oneof":                "must be one of [%s]",
	"gt":                   "must be greater than %s",
	"gte":                  "must be greater than or equal to %s",
	"lt":                   "must be less than %s",
	"lte":                  "must be less than or equal to %s",
	"uuid":                 "must be a valid UUID",
	"required_without":     "is required when %s is not present",
	"required_without_all": "is required when none of [%s] are present",
	"fhir_id":              "must be a valid FHIR id",
	"fhir_instant":         "must be an ISO-8601 date or date-time",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":                  true,
	"max":                  true,
	"gt":                   true,
	"gte":                  true,
	"lt":                   true,
	"lte":                  true,
	"oneof":                true,
	"required_without":     true,
	"required_without_all": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientResourceNotFound              = "the requested data could not be found"
	ErrClientWorkspaceTabAlreadyOpen       = "this form is already open in your workspace"
	ErrClientWorkspaceTabNotFound          = "the workspace tab is no longer open"
	ErrClientWorkspaceBusy                 = "your workspace is being updated, please try again"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime          = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotUnmarshalJSON      = "cannot convert JSON into struct or other data types"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevMissingRequestID         = "request id missing from context"
	ErrDevObservationNotOwned      = "observation %s does not belong to patient %s"
	ErrDevObservationNotDimension  = "observation %s is neither a weight nor a height reading"
	ErrDevBuildSpreadsheet         = "failed to build dimension spreadsheet"
	ErrDevWorkspaceTabAlreadyOpen  = "workspace already has a tab for component %s"
	ErrDevWorkspaceTabNotFound     = "workspace tab %s not found"
	ErrDevWorkspaceLockNotAcquired = "workspace lock %s not acquired"

	// FHIR server messages
	ErrDevFHIRCreateResource         = "failed to create FHIR %s from FHIR server"
	ErrDevFHIRUpdateResource         = "failed to update FHIR %s from FHIR server"
	ErrDevFHIRGetResource            = "failed to get FHIR %s from FHIR server"
	ErrDevFHIRDeleteResource         = "failed to delete FHIR %s from FHIR server"
	ErrDevFHIRNoDataResource         = "no data found from FHIR %s"
	ErrDevFHIRDecodeResourceResponse = "failed to decode FHIR %s response from FHIR server"
	ErrDevFHIRRateLimiterWait        = "failed waiting on FHIR client rate limiter"

	// Validation messages
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthSubjectMissing        = "token has no subject claim"

	// Minio messages
	ErrDevMinioFailedToCreateObject          = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToGetObjectPresignedURL = "failed to get object URL from minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"
	ErrDevRedisRefresh    = "failed to refresh redis lock expiration"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into rabbitmq queue %s"
	ErrDevRabbitMQConsumeQueue   = "failed to consume rabbitmq queue %s"

	// Server messages
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevDependencyUnavailable  = "%s is unavailable"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
