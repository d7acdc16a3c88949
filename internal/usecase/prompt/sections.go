package prompt

// RequiredSections is the fixed Markdown section set the generative model
// must produce for both primary and master prompts. The list is part of the
// output contract; downstream consumers expect these names verbatim.
// The language placeholder is interpolated with the agent's language.
var RequiredSections = []string{
	"Primary Objective",
	"Objective",
	"Strict Rules",
	"User Details",
	"AI Agent Identity",
	"Name Usage Guideline",
	"Call scheduling rules",
	"Call Script",
	"Strict Interaction Rules (English)",
	"Handling Short Responses & Maintaining Conversation Flow [Interruption Rules]",
	"Standard Objection Handling",
	"Fundamental Guidelines for Responses",
	"Numeric & Language Best Practices",
	"Guidelines for Conversation in %s",
	"Strict Guidelines",
}

// InsightSubsections is the fixed subsection set of the per-call insight
// report.
var InsightSubsections = []string{
	"What Worked Well",
	"What Didn't Work",
	"Missing from Current Prompt",
	"Prompt Improvements Needed",
	"Effective Dialogue Examples",
	"New Objections & Responses",
	"Performance Scores",
	"Key Learnings for AI Agent",
}

// sectionQualifiers are unbolded hints rendered after certain section
// names in the instruction frames.
var sectionQualifiers = map[string]string{
	"Objective":    "(numbered list)",
	"User Details": "(if applicable)",
	"Call Script":  "(main flow)",
}

// ScoreNames are the four 0-10 performance scores the insight report grades.
var ScoreNames = []string{
	"Script Adherence",
	"Persuasiveness",
	"Professionalism",
	"Information Gathering",
}
