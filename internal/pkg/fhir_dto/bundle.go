package fhir_dto

import "encoding/json"

type FHIRBundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Total        int           `json:"total"`
	Link         []BundleLink  `json:"link,omitempty"`
	Entry        []BundleEntry `json:"entry"`
}

type BundleLink struct {
	Relation string `json:"relation"`
	Url      string `json:"url"`
}

type BundleEntry struct {
	FullUrl  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource"`
}

// NextPageUrl returns the link to the following search page, or "" on the last page.
func (b *FHIRBundle) NextPageUrl() string {
	for _, link := range b.Link {
		if link.Relation == "next" {
			return link.Url
		}
	}
	return ""
}
