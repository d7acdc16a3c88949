// Package workflow contains the request and response shapes of the
// workflow HTTP API.
package workflow

// AgentRequest carries the agent profile for the workflow session.
type AgentRequest struct {
	Name     string `json:"name" validate:"required"`
	Company  string `json:"company" validate:"required"`
	Language string `json:"language" validate:"required,transcription_language"`
	Category string `json:"category" validate:"required"`
}

// PrimaryPromptRequest carries the inputs for primary prompt synthesis.
type PrimaryPromptRequest struct {
	Script   string `json:"script" validate:"required"`
	Template string `json:"template" validate:"required"`
}

// RefineRequest carries free-form feedback about the master prompt.
type RefineRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}
