package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_WORKSPACE_OWNER_KEY      ContextKey = "workspace_owner"
)

const (
	REQUEST_ID_PREFIX = "CHART_SVC_"
)

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderBearerPrefix  = "Bearer "
	AppEnvProduction    = "production"
	AppEnvDevelopment   = "development"
)

const (
	RedisKeyDimensionsFormat       = "dimensions:patient:%s"
	RedisKeyWorkspaceTabsFormat    = "workspace:%s:tabs"
	RedisKeyWorkspaceLockFormat    = "workspace:%s:lock"
	WorkspaceLockExpiration        = 5
	WorkspaceLockMaxAttempts       = 10
	WorkspaceLockRetryIntervalInMs = 50
)

const (
	QueueDimensionsRefresh = "dimensions_refresh"

	RefreshReasonRecorded = "recorded"
	RefreshReasonUpdated  = "updated"
	RefreshReasonDeleted  = "deleted"
)

const (
	WorkspaceComponentConditionsForm = "conditions-form"
	WorkspaceTitleEditConditions     = "Edit Conditions"
)

const (
	DateLayoutMonthYear    = "Jan-2006"
	DateLayoutDayMonthYear = "02-Jan-2006"
)

const (
	ExportSheetName        = "Dimensions"
	ExportObjectNameFormat = "dimensions/%s/%s.xlsx"
	MIMEApplicationXLSX    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
