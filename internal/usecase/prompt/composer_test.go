package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
)

var testAgent = entities.AgentDetails{
	Name:     "Priya",
	Company:  "Acme Motors",
	Language: "hi",
	Category: "sales",
}

func TestComposePrimaryContainsAgentDetails(t *testing.T) {
	out := ComposePrimary("sample script", "universal template", testAgent)

	for _, want := range []string{"Priya", "Acme Motors", "sales", "sample script", "universal template"} {
		if !strings.Contains(out, want) {
			t.Errorf("primary prompt request missing %q", want)
		}
	}
}

func TestComposePrimaryListsRequiredSections(t *testing.T) {
	out := ComposePrimary("s", "t", testAgent)

	for _, section := range RequiredSections {
		if strings.Contains(section, "%s") {
			section = strings.Replace(section, "%s", testAgent.Language, 1)
		}
		if !strings.Contains(out, section) {
			t.Errorf("section %q not listed in primary request", section)
		}
	}
	if strings.Contains(out, "%s**") {
		t.Error("unfilled language placeholder left in section list")
	}
}

func TestSectionListQualifiers(t *testing.T) {
	out := ComposePrimary("s", "t", testAgent)

	for _, want := range []string{
		"- **Objective** (numbered list)",
		"- **User Details** (if applicable)",
		"- **Call Script** (main flow)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("section list missing %q", want)
		}
	}
	if !strings.Contains(ComposeMasterPrompt("p", []string{"i"}, testAgent), "- **Objective** (numbered list)") {
		t.Error("master frame section list missing qualifier")
	}
}

func TestComposeInsightExtractionEmbedsInputs(t *testing.T) {
	out := ComposeInsightExtraction("[00:00:01] Speaker 1: \"hello\"", "the current prompt")

	if !strings.Contains(out, "the current prompt") {
		t.Error("current prompt not embedded")
	}
	if !strings.Contains(out, `[00:00:01] Speaker 1: "hello"`) {
		t.Error("transcript not embedded")
	}
	for _, sub := range InsightSubsections {
		if !strings.Contains(out, sub) {
			t.Errorf("insight subsection %q not requested", sub)
		}
	}
}

func TestComposeMasterPromptJoinsInsightsInOrder(t *testing.T) {
	insights := []string{"first insight", "second insight", "third insight"}
	out := ComposeMasterPrompt("baseline", insights, testAgent)

	joined := strings.Join(insights, InsightSeparator)
	if !strings.Contains(out, joined) {
		t.Fatalf("insights not joined with separator in order:\n%s", out)
	}
	if !strings.Contains(out, "baseline") {
		t.Error("primary prompt not embedded")
	}
}

func TestComposeRefinementEmbedsFeedback(t *testing.T) {
	out := ComposeRefinement("master text", "agent talks too fast")

	if !strings.Contains(out, "master text") {
		t.Error("master prompt not embedded")
	}
	if !strings.Contains(out, "agent talks too fast") {
		t.Error("feedback not embedded")
	}
}

func TestParseScores(t *testing.T) {
	text := `### Performance Scores:
- Script Adherence: 8/10
- Persuasiveness: 6/10
- Professionalism: 9/10
- Information Gathering: 7/10`

	got := ParseScores(text)
	want := entities.PerformanceScores{ScriptAdherence: 8, Persuasiveness: 6, Professionalism: 9, InformationGathering: 7}
	if got != want {
		t.Errorf("ParseScores = %+v, want %+v", got, want)
	}
}

func TestParseScoresMissingAndBoldVariants(t *testing.T) {
	got := ParseScores("- **Script Adherence:** 10/10\nsome prose without other scores")
	if got.ScriptAdherence != 10 {
		t.Errorf("ScriptAdherence = %d, want 10", got.ScriptAdherence)
	}
	if got.Persuasiveness != -1 || got.Professionalism != -1 || got.InformationGathering != -1 {
		t.Errorf("missing scores should stay -1, got %+v", got)
	}
}

func TestBuildCompletePackage(t *testing.T) {
	state := &entities.WorkflowState{
		Agent:         testAgent,
		AgentSaved:    true,
		PrimaryPrompt: "PRIMARY BODY",
		MasterPrompt:  "MASTER BODY",
	}
	state.Insights = append(state.Insights, entities.NewCallInsight("call1.mp3", "insight one", "transcript", entities.PerformanceScores{}))
	state.Refinements = append(state.Refinements, entities.NewRefinement("too pushy", "old", "new"))

	out := BuildCompletePackage(state, time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC))

	for _, want := range []string{
		"PRIMARY BODY", "MASTER BODY",
		"Call 1: call1.mp3", "insight one",
		"too pushy",
		"**Final Version:** v2",
		"Final Master Prompt (v2)",
		"2026-03-01 10:30:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("package missing %q", want)
		}
	}
}
