package constvars

const (
	LoggingRequestIDKey     = "request_id"
	LoggingDataKey          = "data"
	LoggingQueryParamsKey   = "query_params"
	LoggingResponseKey      = "response"
	LoggingRequestKey       = "request"
	LoggingErrorTypeKey     = "error_type"
	LoggingErrorCodeKey     = "error_code"
	LoggingErrorMessageKey  = "error_message"
	LoggingOperationKey     = "operation"
	LoggingDurationKey      = "duration"
	LoggingSuccessKey       = "success"
	LoggingStatusCodeKey    = "status_code"
	LoggingMethodKey        = "method"
	LoggingEndpointKey      = "endpoint"
	LoggingRemoteAddrKey    = "remote_addr"
	LoggingUserAgentKey     = "user_agent"
	LoggingQueryKey         = "query"
	LoggingFhirURLKey       = "fhir_url"
	LoggingPatientIDKey     = "patient_id"
	LoggingConditionIDKey   = "condition_id"
	LoggingObservationIDKey = "observation_id"
	LoggingWorkspaceKey     = "workspace_owner"
	LoggingTabIDKey         = "tab_id"
	LoggingComponentKey     = "component"
	LoggingRedisKey         = "redis_key"
	LoggingQueueNameKey     = "queue_name"
	LoggingBucketNameKey    = "bucket_name"
	LoggingObjectNameKey    = "object_name"
	LoggingCountKey         = "count"
	LoggingCacheHitKey      = "cache_hit"

	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
)
