package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/promptops/prompt-evolution/pkg/config"
)

func newGeminiTestClient(serverURL string) *GeminiClient {
	return NewGeminiClient(&config.GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash",
		BaseURL: serverURL,
		Timeout: 5 * time.Second,
	})
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": "Hello, "}, {"text": "world"}},
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newGeminiTestClient(srv.URL)
	out, err := client.Generate(context.Background(), "say hello")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "Hello, world" {
		t.Errorf("got %q, want concatenated parts", out)
	}
	if gotPath != "/v1beta/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 || gotBody.Contents[0].Parts[0].Text != "say hello" {
		t.Errorf("request body = %+v", gotBody)
	}
}

func TestGeminiGenerateErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := newGeminiTestClient(srv.URL)
	if _, err := client.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error on 429 response")
	}
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := newGeminiTestClient(srv.URL)
	if _, err := client.Generate(context.Background(), "p"); err == nil {
		t.Fatal("expected error on empty candidates")
	}
}

func TestGeminiIsConfigured(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	if NewGeminiClient(&config.GeminiConfig{}).IsConfigured() {
		t.Error("client without key reported configured")
	}
	if !NewGeminiClient(&config.GeminiConfig{APIKey: "k"}).IsConfigured() {
		t.Error("client with key reported unconfigured")
	}
}
