package transcript

import (
	"fmt"
	"strings"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
)

// NoTranscript is the sentinel rendered when a recording produced no words.
// Downstream prompt composition consumes this string, never an empty one.
const NoTranscript = "No transcription available"

// Segment groups a flat, time-ordered word sequence into speaker turns.
// A turn is a maximal run of consecutive words sharing the same speaker id.
// Words are taken in the order given; no re-sorting is performed.
func Segment(words []entities.Word) []entities.SpeakerTurn {
	if len(words) == 0 {
		return nil
	}

	turns := make([]entities.SpeakerTurn, 0, 4)

	currentSpeaker := words[0].Speaker
	currentStart := words[0].Start
	currentText := []string{words[0].Text}

	for _, w := range words[1:] {
		if w.Speaker != currentSpeaker {
			turns = append(turns, entities.SpeakerTurn{
				SpeakerLabel: speakerLabel(currentSpeaker),
				Start:        currentStart,
				Utterance:    strings.Join(currentText, " "),
			})
			currentSpeaker = w.Speaker
			currentStart = w.Start
			currentText = []string{w.Text}
			continue
		}
		currentText = append(currentText, w.Text)
	}

	// close the open turn
	turns = append(turns, entities.SpeakerTurn{
		SpeakerLabel: speakerLabel(currentSpeaker),
		Start:        currentStart,
		Utterance:    strings.Join(currentText, " "),
	})

	return turns
}

// FormatTurns renders turns as one timestamped, quoted utterance per line:
//
//	[HH:MM:SS] Speaker 1: "..."
//
// An empty turn list yields the NoTranscript sentinel.
func FormatTurns(turns []entities.SpeakerTurn) string {
	if len(turns) == 0 {
		return NoTranscript
	}

	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, fmt.Sprintf("%s %s: %q", FormatTimestamp(t.Start), t.SpeakerLabel, t.Utterance))
	}
	return strings.Join(lines, "\n")
}

// FormatTimestamp renders seconds as [HH:MM:SS], zero-padded, with the
// fractional part truncated rather than rounded.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("[%02d:%02d:%02d]", h, m, s)
}

// speakerLabel converts a zero-based speaker id to the display label.
func speakerLabel(id int) string {
	return fmt.Sprintf("Speaker %d", id+1)
}
