package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
	"github.com/promptops/prompt-evolution/pkg/config"
)

// DeepgramClient is a minimal Deepgram pre-recorded transcription client.
// One call per audio file, synchronous: the response carries the word-level
// result directly.
type DeepgramClient struct {
	apiKey   string
	baseURL  string
	language string
	client   *http.Client
}

// NewDeepgramClient creates a Deepgram client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewDeepgramClient(cfg *config.DeepgramConfig) *DeepgramClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("DEEPGRAM_API_KEY")
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("DEEPGRAM_API_URL")
		if base == "" {
			base = "https://api.deepgram.com"
		}
	}

	language := "hi"
	if cfg != nil && cfg.Language != "" {
		language = cfg.Language
	}

	timeout := 120 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &DeepgramClient{
		apiKey:   apiKey,
		baseURL:  base,
		language: language,
		client:   &http.Client{Timeout: timeout},
	}
}

// IsConfigured reports whether an API key is present.
func (d *DeepgramClient) IsConfigured() bool {
	return d.apiKey != ""
}

// listenResponse mirrors the /v1/listen result shape down to the word list.
type listenResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Words []entities.Word `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe sends raw audio bytes to /v1/listen with punctuation and
// speaker diarization enabled and returns the word list in received order.
// An empty language falls back to the configured default.
func (d *DeepgramClient) Transcribe(ctx context.Context, audio []byte, language string) ([]entities.Word, error) {
	if language == "" {
		language = d.language
	}
	if !config.IsLanguageSupported(language) {
		return nil, fmt.Errorf("unsupported language %q", language)
	}

	q := url.Values{}
	q.Set("punctuate", "true")
	q.Set("diarize", "true")
	q.Set("language", language)
	endpoint := d.baseURL + "/v1/listen?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(audio))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", "audio/mpeg")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("deepgram returned status %d", resp.StatusCode)
	}

	var lr listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}

	if len(lr.Results.Channels) == 0 || len(lr.Results.Channels[0].Alternatives) == 0 {
		return nil, fmt.Errorf("no transcription results in deepgram response")
	}
	return lr.Results.Channels[0].Alternatives[0].Words, nil
}
