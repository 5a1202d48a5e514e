package models

import "time"

type WorkspaceTab struct {
	ID         string                 `json:"id"`
	Component  string                 `json:"component"`
	Name       string                 `json:"name"`
	Props      map[string]interface{} `json:"props,omitempty"`
	InProgress bool                   `json:"in_progress"`
	OpenedAt   time.Time              `json:"opened_at"`
}

// WorkspaceTabs is the ordered tab list of one workspace owner.
type WorkspaceTabs []WorkspaceTab

// IndexOfComponent returns the position of the tab rendering component, or -1.
func (tabs WorkspaceTabs) IndexOfComponent(component string) int {
	for i, tab := range tabs {
		if tab.Component == component {
			return i
		}
	}
	return -1
}

func (tabs WorkspaceTabs) IndexOfID(tabID string) int {
	for i, tab := range tabs {
		if tab.ID == tabID {
			return i
		}
	}
	return -1
}
