package prompt

import (
	"fmt"
	"strings"
	"time"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
)

// BuildCompletePackage renders the full evolution history of a workflow as
// one Markdown document: agent summary, the original primary prompt, every
// call insight report, the refinement history and the final master prompt.
// It is a pure renderer over the state it is given.
func BuildCompletePackage(state *entities.WorkflowState, generatedAt time.Time) string {
	var sb strings.Builder

	sb.WriteString("# AI Calling Agent - Complete Prompt Evolution Package\n\n")
	fmt.Fprintf(&sb, "**Generated:** %s\n\n", generatedAt.Format("2006-01-02 15:04:05"))

	sb.WriteString("## Agent Details\n\n")
	fmt.Fprintf(&sb, "- **Agent Name:** %s\n", state.Agent.Name)
	fmt.Fprintf(&sb, "- **Company:** %s\n", state.Agent.Company)
	fmt.Fprintf(&sb, "- **Language:** %s\n", state.Agent.Language)
	fmt.Fprintf(&sb, "- **Category:** %s\n\n", state.Agent.Category)

	sb.WriteString("## Evolution Summary\n\n")
	fmt.Fprintf(&sb, "- **Calls Analyzed:** %d\n", len(state.Insights))
	fmt.Fprintf(&sb, "- **Refinements Applied:** %d\n", len(state.Refinements))
	fmt.Fprintf(&sb, "- **Final Version:** v%d\n\n", state.Version())

	sb.WriteString("---\n\n")
	sb.WriteString("## Primary Prompt (v1)\n\n")
	sb.WriteString(state.PrimaryPrompt)
	sb.WriteString("\n\n")

	if len(state.Insights) > 0 {
		sb.WriteString("---\n\n")
		sb.WriteString("## Call Analysis Insights\n\n")
		for i, insight := range state.Insights {
			fmt.Fprintf(&sb, "### Call %d: %s\n\n", i+1, insight.Filename)
			sb.WriteString(insight.Insights)
			sb.WriteString("\n\n")
		}
	}

	if len(state.Refinements) > 0 {
		sb.WriteString("---\n\n")
		sb.WriteString("## Refinement History\n\n")
		for i, r := range state.Refinements {
			fmt.Fprintf(&sb, "### Refinement %d (v%d)\n\n", i+1, i+2)
			fmt.Fprintf(&sb, "- **Applied:** %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(&sb, "- **Feedback:** %s\n\n", r.Feedback)
		}
	}

	sb.WriteString("---\n\n")
	fmt.Fprintf(&sb, "## Final Master Prompt (v%d)\n\n", state.Version())
	sb.WriteString(state.MasterPrompt)
	sb.WriteString("\n")

	return sb.String()
}

// BuildInsightsDocument renders all collected call insights as a single
// Markdown document, in collection order.
func BuildInsightsDocument(insights []entities.CallInsight) string {
	var sb strings.Builder

	sb.WriteString("# Call Analysis Insights\n\n")
	fmt.Fprintf(&sb, "**Calls Analyzed:** %d\n\n", len(insights))

	for i, insight := range insights {
		sb.WriteString("---\n\n")
		fmt.Fprintf(&sb, "## Call %d: %s\n\n", i+1, insight.Filename)
		fmt.Fprintf(&sb, "**Analyzed:** %s\n\n", insight.CreatedAt.Format("2006-01-02 15:04:05"))
		sb.WriteString(insight.Insights)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
