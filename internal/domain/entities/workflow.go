package entities

// Phase is the current step of the prompt evolution workflow.
type Phase int

const (
	// PhasePrimary collects agent details, script and template to
	// synthesize the primary prompt.
	PhasePrimary Phase = 1
	// PhaseInsights transcribes and analyzes real call recordings.
	PhaseInsights Phase = 2
	// PhaseMaster folds collected insights into the master prompt.
	PhaseMaster Phase = 3
	// PhaseRefine applies targeted feedback edits to the master prompt.
	PhaseRefine Phase = 4
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhasePrimary:
		return "create_primary_prompt"
	case PhaseInsights:
		return "extract_call_insights"
	case PhaseMaster:
		return "generate_master_prompt"
	case PhaseRefine:
		return "refine_master_prompt"
	default:
		return "unknown"
	}
}

// WorkflowState owns everything accumulated during one working session.
// Fields are populated monotonically phase by phase; a single Reset clears
// them all at once. The workflow service guards access with a mutex so the
// batch pipeline can append concurrently-produced results safely.
type WorkflowState struct {
	Agent         AgentDetails  `json:"agent"`
	AgentSaved    bool          `json:"agent_saved"`
	PrimaryPrompt string        `json:"primary_prompt,omitempty"`
	MasterPrompt  string        `json:"master_prompt,omitempty"`
	Insights      []CallInsight `json:"insights"`
	Refinements   []Refinement  `json:"refinements"`
}

// NewWorkflowState returns the initial empty state.
func NewWorkflowState() *WorkflowState {
	return &WorkflowState{}
}

// CurrentPhase derives the phase from what artifacts exist. It is computed
// fresh on every read; nothing stores the phase separately.
func (s WorkflowState) CurrentPhase() Phase {
	switch {
	case s.MasterPrompt != "":
		return PhaseRefine
	case len(s.Insights) > 0:
		return PhaseMaster
	case s.PrimaryPrompt != "":
		return PhaseInsights
	default:
		return PhasePrimary
	}
}

// Version is the master prompt version number: 1 after generation, +1 per
// applied refinement.
func (s WorkflowState) Version() int {
	return len(s.Refinements) + 1
}

// Reset returns the state to its initial empty value. All-or-nothing: the
// caller holds the state lock, so no partial reset is observable.
func (s *WorkflowState) Reset() {
	*s = WorkflowState{}
}
