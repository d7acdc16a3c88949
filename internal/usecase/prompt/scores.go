package prompt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
)

var scorePattern = regexp.MustCompile(`(?i)(` + strings.Join(ScoreNames, "|") + `)\s*:?\**\s*(\d{1,2})\s*/\s*10`)

// ParseScores scans an insight report for the four performance score lines
// and returns whatever it finds. A score the report omits or mangles stays
// at -1; generation still succeeds, the score is just unknown.
func ParseScores(insightText string) entities.PerformanceScores {
	scores := entities.PerformanceScores{
		ScriptAdherence:      -1,
		Persuasiveness:       -1,
		Professionalism:      -1,
		InformationGathering: -1,
	}

	for _, m := range scorePattern.FindAllStringSubmatch(insightText, -1) {
		v, err := strconv.Atoi(m[2])
		if err != nil || v < 0 || v > 10 {
			continue
		}
		switch strings.ToLower(m[1]) {
		case "script adherence":
			scores.ScriptAdherence = v
		case "persuasiveness":
			scores.Persuasiveness = v
		case "professionalism":
			scores.Professionalism = v
		case "information gathering":
			scores.InformationGathering = v
		}
	}
	return scores
}
