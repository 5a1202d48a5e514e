package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Dimension messages
	GetDimensionsSuccessMessage    = "get dimensions successfully"
	RecordDimensionsSuccessMessage = "dimensions recorded successfully"
	UpdateDimensionSuccessMessage  = "dimension updated successfully"
	DeleteDimensionSuccessMessage  = "dimension deleted successfully"
	ExportDimensionsSuccessMessage = "dimensions exported successfully"

	// Condition messages
	GetConditionRecordSuccessMessage = "get condition record successfully"
	EditConditionTabSuccessMessage   = "condition form opened successfully"

	// Workspace messages
	OpenWorkspaceTabSuccessMessage  = "workspace tab opened successfully"
	CloseWorkspaceTabSuccessMessage = "workspace tab closed successfully"
	GetWorkspaceTabsSuccessMessage  = "get workspace tabs successfully"
	FindWorkspaceTabSuccessMessage  = "find workspace tab successfully"

	HealthCheckSuccessMessage = "service is healthy"
)
