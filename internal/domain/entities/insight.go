package entities

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceScores holds the four 0-10 scores the insight report grades
// a call on. A value of -1 means the score could not be parsed.
type PerformanceScores struct {
	ScriptAdherence      int `json:"script_adherence"`
	Persuasiveness       int `json:"persuasiveness"`
	Professionalism      int `json:"professionalism"`
	InformationGathering int `json:"information_gathering"`
}

// CallInsight is the analysis of one transcribed call. Records are
// append-only; they are never mutated or removed except by a full reset.
type CallInsight struct {
	ID         uuid.UUID         `json:"id"`
	Filename   string            `json:"filename"`
	Insights   string            `json:"insights"`
	Transcript string            `json:"transcript"`
	Scores     PerformanceScores `json:"scores"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewCallInsight creates an insight record for one analyzed recording.
func NewCallInsight(filename, insights, transcript string, scores PerformanceScores) CallInsight {
	return CallInsight{
		ID:         uuid.New(),
		Filename:   filename,
		Insights:   insights,
		Transcript: transcript,
		Scores:     scores,
		CreatedAt:  time.Now(),
	}
}
