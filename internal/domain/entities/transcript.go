package entities

// Word is a single transcribed word with timing and speaker info,
// as returned by the transcription API. Words arrive time-ordered.
type Word struct {
	Text           string  `json:"word"`
	PunctuatedWord string  `json:"punctuated_word,omitempty"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	Confidence     float64 `json:"confidence,omitempty"`
	Speaker        int     `json:"speaker"`
}

// SpeakerTurn is a maximal run of consecutive words from one speaker.
// Turns partition the word sequence exactly: no gaps, no overlaps,
// original order preserved.
type SpeakerTurn struct {
	SpeakerLabel string  `json:"speaker_label"`
	Start        float64 `json:"start"`
	Utterance    string  `json:"utterance"`
}
