package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/promptops/prompt-evolution/pkg/config"
)

// GeminiClient is a minimal client for the Gemini generateContent API.
// Every call is a fresh, fully self-contained prompt; no conversation
// state is kept on either side.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGeminiClient creates a Gemini client using values from the provided
// config. Pass a nil config to fall back to environment variables.
func NewGeminiClient(cfg *config.GeminiConfig) *GeminiClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	model := "gemini-2.5-flash"
	if cfg != nil && cfg.Model != "" {
		model = cfg.Model
	}

	var base string
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	} else {
		base = os.Getenv("GEMINI_API_URL")
		if base == "" {
			base = "https://generativelanguage.googleapis.com"
		}
	}

	timeout := 120 * time.Second
	if cfg != nil && cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: base,
		client:  &http.Client{Timeout: timeout},
	}
}

// IsConfigured reports whether an API key is present.
func (g *GeminiClient) IsConfigured() bool {
	return g.apiKey != ""
}

// generateContentRequest is the request shape for :generateContent
type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateContentResponse is a minimal response shape
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to Gemini and returns the generated text.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var gr generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return "", err
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var text string
	for _, p := range gr.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text, nil
}
