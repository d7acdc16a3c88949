// Package prompt builds the instruction text sent to the generative-model
// collaborator. The functions here are template interpolation, not I/O:
// given well-typed input they always succeed. Validating that required
// inputs are non-empty is the caller's responsibility.
package prompt

import (
	"fmt"
	"strings"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
)

// InsightSeparator joins individual call insight texts when folding them
// into the master prompt request.
const InsightSeparator = "\n\n---\n\n"

// ComposePrimary assembles the request that asks the model to synthesize a
// case-specific primary prompt from a sample call script, a universal
// template and the agent details. No placeholder substitution happens
// locally; the frame instructs the collaborator to perform it.
func ComposePrimary(script, template string, agent entities.AgentDetails) string {
	instructions := fmt.Sprintf(`You are an expert AI prompt engineer specializing in creating CASE-SPECIFIC prompts for AI calling agents.
Your task is to analyze a provided script and fill a universal template to create a CUSTOMIZED, ready-to-use PRIMARY prompt for that specific use case.

AGENT DETAILS TO INCORPORATE:
- Agent Name: %s
- Company: %s
- Language: %s
- Category: %s

CRITICAL REQUIREMENTS:
1. The final output MUST be a CASE-SPECIFIC prompt, not a generic template
2. ALL placeholders like [abc], [XYZ], [Vehicle Model], etc. must be filled with actual values from the script
3. The final output MUST be in proper Markdown format with the following sections:
%s
4. Create a COMPLETE, WORKING prompt that can be used immediately for that specific calling scenario
5. Incorporate the agent name "%s" throughout the prompt
6. Set the language appropriately for "%s"
7. Customize for the "%s" use case

ANALYSIS AND EXTRACTION PROCESS:
1. **Extract Key Information** from the script: company name, product/service details, agent role, customer details and identifiers, call purpose, pricing, discounts, offers, objections and responses, call flow steps, specific dialogue examples.
2. **Fill ALL Template Variables** with extracted information: replace every bracketed placeholder with the specific value found in the script.
3. **Customize Content Sections**: update the knowledge base with script-specific information, modify objection handling with the script's actual objections and responses, adapt the call flow to match the script's process, include script-specific dialogue examples.

The output should be a COMPLETE, CASE-SPECIFIC PRIMARY prompt that an AI agent can use immediately.`,
		agent.Name, agent.Company, agent.Language, agent.Category,
		sectionList(agent.Language),
		agent.Name, agent.Language, agent.Category)

	return fmt.Sprintf(`%s

SCRIPT TO ANALYZE:
%s

UNIVERSAL TEMPLATE TO CUSTOMIZE:
%s

TASK: Create a PRIMARY AI calling agent prompt by filling the template with script information and agent details. This will be improved later based on real call insights.

Generate a complete, ready-to-use, case-specific PRIMARY AI calling agent prompt in Markdown format.`,
		instructions, script, template)
}

// ComposeInsightExtraction assembles the analysis request for one call
// transcript against the current prompt, demanding the fixed insight
// report structure.
func ComposeInsightExtraction(transcript, currentPrompt string) string {
	return fmt.Sprintf(`You are an expert call analysis consultant. Analyze this call transcript against the current AI agent prompt and extract SPECIFIC, ACTIONABLE insights that can be used to improve the prompt.

**CURRENT PRIMARY PROMPT:**
%s

**ACTUAL CALL TRANSCRIPT:**
%s

Please provide insights in the following format for easy integration:

## CALL ANALYSIS INSIGHTS

### What Worked Well:
[List specific techniques, phrases, or approaches from the call that were effective]

### What Didn't Work:
[List specific issues, missed opportunities, or ineffective approaches]

### Missing from Current Prompt:
[List specific elements present in the successful call but missing from current prompt]

### Prompt Improvements Needed:
[Specific, actionable recommendations for updating the prompt]

### Effective Dialogue Examples:
[Extract specific dialogue examples that should be added to the prompt]

### New Objections & Responses:
[List any new objections encountered and how they were handled]

### Performance Scores:
- Script Adherence: X/10
- Persuasiveness: X/10
- Professionalism: X/10
- Information Gathering: X/10

### Key Learnings for AI Agent:
[Specific behavioral patterns, timing, or techniques that the AI should learn]

Focus on SPECIFIC, IMPLEMENTABLE insights that can directly improve the AI agent prompt.`,
		currentPrompt, transcript)
}

// ComposeMasterPrompt assembles the supersede-and-enrich request that folds
// all collected insights into the primary prompt. Insights are joined in
// collection order with InsightSeparator.
func ComposeMasterPrompt(primaryPrompt string, insights []string, agent entities.AgentDetails) string {
	combined := strings.Join(insights, InsightSeparator)

	return fmt.Sprintf(`You are an expert AI prompt engineer. Your task is to create a MASTER AI calling agent prompt by improving the PRIMARY prompt using insights from multiple real call recordings.

AGENT DETAILS:
- Agent Name: %s
- Company: %s
- Language: %s
- Category: %s

**PRIMARY PROMPT (BASELINE):**
%s

**INSIGHTS FROM REAL CALLS:**
%s

**YOUR TASK:**
Create a MASTER prompt that:
1. **Keeps the core structure** of the primary prompt with all required sections
2. **Integrates successful techniques** identified from real calls
3. **Adds missing elements** that were found effective in actual calls
4. **Improves objection handling** based on real scenarios encountered
5. **Enhances dialogue examples** with proven effective phrases
6. **Optimizes call flow** based on what actually works
7. **Addresses weaknesses** identified in the analysis

**MASTER PROMPT REQUIREMENTS:**
- Must be MORE comprehensive than the primary prompt
- Must include REAL, tested dialogue examples
- Must have PROVEN objection handling techniques
- Must incorporate SUCCESSFUL persuasion methods
- Must be IMMEDIATELY usable for AI agents
- Must maintain proper Markdown formatting
- Must include ALL required sections in the exact structure:
%s

Generate the FINAL MASTER AI calling agent prompt that represents the evolution from theory (primary prompt) to practice (real call insights).`,
		agent.Name, agent.Company, agent.Language, agent.Category,
		primaryPrompt, combined,
		sectionList(agent.Language))
}

// ComposeRefinement assembles the surgical, structure-preserving edit
// request for the current master prompt based on free-form feedback.
func ComposeRefinement(currentMasterPrompt, feedback string) string {
	return fmt.Sprintf(`You are an expert AI prompt engineer. A user has provided feedback about issues with their current master prompt. Your task is to update the prompt to address their concerns while maintaining the overall structure and quality.

**CURRENT MASTER PROMPT:**
%s

**USER FEEDBACK/ISSUE:**
%s

**YOUR TASK:**
1. Analyze the user's feedback to understand the specific issue
2. Identify which part of the prompt needs modification
3. Make targeted improvements to address the issue
4. Ensure the updated prompt maintains all required sections
5. Keep the overall structure and flow intact
6. Make minimal changes that specifically address the user's concern

**REQUIREMENTS:**
- Keep the same markdown structure with all sections
- Make surgical changes that directly address the feedback
- Maintain the prompt's effectiveness for other scenarios
- Ensure changes are practical and implementable
- Provide a complete, updated prompt

Generate the REFINED master prompt with the requested improvements.`,
		currentMasterPrompt, feedback)
}

// ComposeEvolutionAnalysis assembles the request for a comparison document
// describing how the prompt evolved from the primary to the master version.
func ComposeEvolutionAnalysis(primaryPrompt, masterPrompt string, agent entities.AgentDetails, insightCount, refinementCount int) string {
	return fmt.Sprintf(`Compare these AI agent prompts and provide a detailed analysis of how the prompt evolved from theory to practice:

**AGENT DETAILS:**
- Name: %s
- Company: %s
- Language: %s
- Category: %s

**ORIGINAL PRIMARY PROMPT:**
%s

**EVOLVED MASTER PROMPT:**
%s

**EVOLUTION PROCESS:**
- Insights used: %d real call recordings analyzed
- Refinements made: %d iterative improvements

Please provide analysis in this format:

## PROMPT EVOLUTION ANALYSIS

### Key Improvements Made:
[List specific improvements from primary to master]

### New Elements Added:
[List new elements that weren't in the primary prompt]

### Enhanced Dialogue Examples:
[Compare dialogue examples between versions]

### Improved Objection Handling:
[How objection handling was enhanced]

### Practical Enhancements:
[Real-world improvements based on call insights]

### Behavioral Improvements:
[How the AI agent behavior was refined]

### Refinement Impact:
[How iterative refinements improved the prompt]

### Key Learnings:
[What this evolution teaches us about AI prompt development]`,
		agent.Name, agent.Company, agent.Language, agent.Category,
		primaryPrompt, masterPrompt,
		insightCount, refinementCount)
}

// sectionList renders the required section names as a Markdown bullet list,
// interpolating the agent language into the language-specific section and
// appending qualifier hints where the frame carries them.
func sectionList(language string) string {
	var sb strings.Builder
	for _, s := range RequiredSections {
		qualifier := sectionQualifiers[s]
		if strings.Contains(s, "%s") {
			s = fmt.Sprintf(s, language)
		}
		sb.WriteString("   - **")
		sb.WriteString(s)
		sb.WriteString("**")
		if qualifier != "" {
			sb.WriteString(" ")
			sb.WriteString(qualifier)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
