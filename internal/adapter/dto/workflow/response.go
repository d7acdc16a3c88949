package workflow

import (
	"time"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
)

// StatusResponse reports where the workflow session currently stands.
type StatusResponse struct {
	Phase           int                   `json:"phase"`
	PhaseName       string                `json:"phase_name"`
	Agent           entities.AgentDetails `json:"agent"`
	AgentSaved      bool                  `json:"agent_saved"`
	HasPrimary      bool                  `json:"has_primary_prompt"`
	HasMaster       bool                  `json:"has_master_prompt"`
	InsightCount    int                   `json:"insight_count"`
	RefinementCount int                   `json:"refinement_count"`
	Version         int                   `json:"version"`
}

// NewStatusResponse builds a StatusResponse from a state snapshot.
func NewStatusResponse(state entities.WorkflowState) StatusResponse {
	phase := state.CurrentPhase()
	return StatusResponse{
		Phase:           int(phase),
		PhaseName:       phase.String(),
		Agent:           state.Agent,
		AgentSaved:      state.AgentSaved,
		HasPrimary:      state.PrimaryPrompt != "",
		HasMaster:       state.MasterPrompt != "",
		InsightCount:    len(state.Insights),
		RefinementCount: len(state.Refinements),
		Version:         state.Version(),
	}
}

// PromptResponse returns a generated prompt body.
type PromptResponse struct {
	Prompt  string `json:"prompt"`
	Version int    `json:"version,omitempty"`
}

// InsightSummary is the list view of a call insight, without the full
// report and transcript bodies.
type InsightSummary struct {
	Index     int                        `json:"index"`
	Filename  string                     `json:"filename"`
	Scores    entities.PerformanceScores `json:"scores"`
	CreatedAt time.Time                  `json:"created_at"`
}

// NewInsightSummaries converts insights to their list view, keeping order.
func NewInsightSummaries(insights []entities.CallInsight) []InsightSummary {
	out := make([]InsightSummary, 0, len(insights))
	for i, ins := range insights {
		out = append(out, InsightSummary{
			Index:     i,
			Filename:  ins.Filename,
			Scores:    ins.Scores,
			CreatedAt: ins.CreatedAt,
		})
	}
	return out
}

// InsightDetail is the full view of one call insight.
type InsightDetail struct {
	Index      int                        `json:"index"`
	Filename   string                     `json:"filename"`
	Insights   string                     `json:"insights"`
	Transcript string                     `json:"transcript"`
	Scores     entities.PerformanceScores `json:"scores"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// RefinementView is one refinement history entry. Prompt bodies are
// omitted from the list; the current prompt is available via its own
// endpoint.
type RefinementView struct {
	Version   int       `json:"version"`
	Feedback  string    `json:"feedback"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRefinementViews converts the refinement history, oldest first.
// Version k+2 is the prompt version the k-th refinement produced.
func NewRefinementViews(refinements []entities.Refinement) []RefinementView {
	out := make([]RefinementView, 0, len(refinements))
	for i, r := range refinements {
		out = append(out, RefinementView{
			Version:   i + 2,
			Feedback:  r.Feedback,
			Summary:   r.Summary,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
