package requests

type OpenWorkspaceTab struct {
	Component  string                 `json:"component" validate:"required,max=100"`
	Name       string                 `json:"name" validate:"required,max=200"`
	Props      map[string]interface{} `json:"props"`
	InProgress bool                   `json:"in_progress"`
}
