package entities

import (
	"time"

	"github.com/google/uuid"
)

// Refinement records one feedback-driven edit of the master prompt.
// The chain of OldPrompt -> NewPrompt across the append-only list forms a
// linear version history; NewPrompt of record k equals the prompt in effect
// before record k+1.
type Refinement struct {
	ID        uuid.UUID `json:"id"`
	Feedback  string    `json:"feedback"`
	OldPrompt string    `json:"old_prompt"`
	NewPrompt string    `json:"new_prompt"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRefinement creates a refinement record with a short feedback summary.
// Truncation counts runes so multibyte feedback is never cut mid-character.
func NewRefinement(feedback, oldPrompt, newPrompt string) Refinement {
	summary := feedback
	if runes := []rune(summary); len(runes) > 100 {
		summary = string(runes[:100]) + "..."
	}
	return Refinement{
		ID:        uuid.New(),
		Feedback:  feedback,
		OldPrompt: oldPrompt,
		NewPrompt: newPrompt,
		Summary:   "Updated prompt based on: " + summary,
		CreatedAt: time.Now(),
	}
}
