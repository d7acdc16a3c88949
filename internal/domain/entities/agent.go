package entities

import "strings"

// AgentDetails describes the calling agent a prompt is built for.
// All fields are required before prompt generation proceeds.
type AgentDetails struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Language string `json:"language"`
	Category string `json:"category"`
}

// IsComplete reports whether every required field is non-blank.
func (a AgentDetails) IsComplete() bool {
	return strings.TrimSpace(a.Name) != "" &&
		strings.TrimSpace(a.Company) != "" &&
		strings.TrimSpace(a.Language) != "" &&
		strings.TrimSpace(a.Category) != ""
}

// MissingFields returns the names of blank required fields.
func (a AgentDetails) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(a.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(a.Company) == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(a.Language) == "" {
		missing = append(missing, "language")
	}
	if strings.TrimSpace(a.Category) == "" {
		missing = append(missing, "category")
	}
	return missing
}
