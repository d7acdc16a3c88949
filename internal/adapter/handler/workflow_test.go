package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/promptops/prompt-evolution/internal/domain/entities"
	"github.com/promptops/prompt-evolution/internal/usecase/workflow"
	"github.com/promptops/prompt-evolution/pkg/config"
	pkgvalidator "github.com/promptops/prompt-evolution/pkg/validator"
)

type stubGenerator struct{}

func (stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return "generated prompt body", nil
}

func (stubGenerator) IsConfigured() bool { return true }

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string) ([]entities.Word, error) {
	return []entities.Word{{Text: "hello", Speaker: 0}}, nil
}

func (stubTranscriber) IsConfigured() bool { return true }

func newTestServer(t *testing.T) (*echo.Echo, *workflow.Service) {
	t.Helper()

	svc := workflow.NewService(stubGenerator{}, stubTranscriber{}, zap.NewNop())

	e := echo.New()
	e.Validator = pkgvalidator.New()

	cfg := &config.Config{}
	cfg.Server.Environment = "test"

	rt := NewRouter(cfg, NewWorkflow(svc, zap.NewNop()), NewExport(svc, nil, zap.NewNop()))
	rt.Setup(e)
	return e, svc
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func seedSession(t *testing.T, svc *workflow.Service, withMaster bool) {
	t.Helper()
	if err := svc.SaveAgentDetails(entities.AgentDetails{Name: "Priya", Company: "Acme", Language: "hi", Category: "sales"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GeneratePrimaryPrompt(context.Background(), "script", "template"); err != nil {
		t.Fatal(err)
	}
	if !withMaster {
		return
	}
	if _, err := svc.AnalyzeRecordings(context.Background(), []workflow.Recording{{Filename: "a.mp3", Audio: []byte("x")}}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateMasterPrompt(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestHealthCheck(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestSaveAgent(t *testing.T) {
	e, svc := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/agent",
		`{"name":"Priya","company":"Acme","language":"hi","category":"sales"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	snap := svc.Snapshot()
	if !snap.AgentSaved || snap.Agent.Name != "Priya" {
		t.Errorf("agent not saved: %+v", snap.Agent)
	}
}

func TestSaveAgentRejectsUnsupportedLanguage(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/agent",
		`{"name":"Priya","company":"Acme","language":"jp","category":"sales"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSaveAgentRejectsMissingFields(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/agent", `{"name":"Priya"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestWorkflowStatus(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, false)

	rec := doJSON(e, http.MethodGet, "/v1/workflow", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Data struct {
			Phase      int    `json:"phase"`
			PhaseName  string `json:"phase_name"`
			HasPrimary bool   `json:"has_primary_prompt"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Phase != 2 || body.Data.PhaseName != "extract_call_insights" {
		t.Errorf("phase = %d %q", body.Data.Phase, body.Data.PhaseName)
	}
	if !body.Data.HasPrimary {
		t.Error("has_primary_prompt = false")
	}
}

func TestGeneratePrimaryEndpoint(t *testing.T) {
	e, svc := newTestServer(t)
	if err := svc.SaveAgentDetails(entities.AgentDetails{Name: "P", Company: "A", Language: "en", Category: "sales"}); err != nil {
		t.Fatal(err)
	}

	rec := doJSON(e, http.MethodPost, "/v1/prompts/primary", `{"script":"s","template":"t"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "generated prompt body") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGeneratePrimaryRejectsBlankScript(t *testing.T) {
	e, _ := newTestServer(t)
	rec := doJSON(e, http.MethodPost, "/v1/prompts/primary", `{"template":"t"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeCallsMultipart(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"one.mp3", "two.mp3"} {
		fw, err := mw.CreateFormFile("recordings", name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte("fake-audio")); err != nil {
			t.Fatal(err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/calls/analyze", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			Analyzed int `json:"analyzed"`
			Failed   int `json:"failed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Analyzed != 2 || body.Data.Failed != 0 {
		t.Errorf("analyzed=%d failed=%d", body.Data.Analyzed, body.Data.Failed)
	}
	if got := len(svc.Insights()); got != 2 {
		t.Errorf("insights = %d", got)
	}
}

func TestAnalyzeCallsWithoutFiles(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, false)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/calls/analyze", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetInsightBadIndex(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, true)

	if rec := doJSON(e, http.MethodGet, "/v1/calls/insights/0", ""); rec.Code != http.StatusOK {
		t.Errorf("index 0: status = %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/v1/calls/insights/9", ""); rec.Code != http.StatusNotFound {
		t.Errorf("index 9: status = %d, want 404", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/v1/calls/insights/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("index abc: status = %d, want 400", rec.Code)
	}
}

func TestRefineBeforeMaster(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, false)

	rec := doJSON(e, http.MethodPost, "/v1/prompts/refine", `{"feedback":"too formal"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestRefineEndpoint(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, true)

	rec := doJSON(e, http.MethodPost, "/v1/prompts/refine", `{"feedback":"too formal"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := len(svc.Refinements()); got != 1 {
		t.Errorf("refinements = %d", got)
	}

	rec = doJSON(e, http.MethodGet, "/v1/prompts/refinements", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "too formal") {
		t.Errorf("refinement list missing feedback: %s", rec.Body.String())
	}
}

func TestResetEndpoint(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, true)

	rec := doJSON(e, http.MethodPost, "/v1/workflow/reset", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.Phase() != entities.PhasePrimary {
		t.Errorf("phase after reset = %v", svc.Phase())
	}
}

func TestExportMasterDownload(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, true)

	rec := doJSON(e, http.MethodGet, "/v1/export/master", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "master_prompt_v1.md") {
		t.Errorf("disposition = %q", disposition)
	}
	if rec.Body.String() != "generated prompt body" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestExportBeforeArtifactsExist(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{"/v1/export/primary", "/v1/export/master", "/v1/export/insights", "/v1/export/package"} {
		rec := doJSON(e, http.MethodGet, path, "")
		if rec.Code != http.StatusConflict {
			t.Errorf("%s: status = %d, want 409", path, rec.Code)
		}
	}
}

type fakeStore struct {
	published map[string]string
}

func (f *fakeStore) PublishMarkdown(_ context.Context, objectName, content string) (string, error) {
	if f.published == nil {
		f.published = make(map[string]string)
	}
	f.published[objectName] = content
	return "https://storage.example.com/" + objectName, nil
}

func (f *fakeStore) ListArtifacts(_ context.Context, prefix string) ([]string, error) {
	var names []string
	for name := range f.published {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names, nil
}

func TestExportPublishAndList(t *testing.T) {
	svc := workflow.NewService(stubGenerator{}, stubTranscriber{}, zap.NewNop())
	store := &fakeStore{}

	e := echo.New()
	e.Validator = pkgvalidator.New()
	cfg := &config.Config{}
	rt := NewRouter(cfg, NewWorkflow(svc, zap.NewNop()), NewExport(svc, store, zap.NewNop()))
	rt.Setup(e)

	seedSession(t, svc, true)

	rec := doJSON(e, http.MethodGet, "/v1/export/master?publish=true", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("publish status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "https://storage.example.com/exports/") {
		t.Errorf("publish response missing URL: %s", rec.Body.String())
	}
	if len(store.published) != 1 {
		t.Fatalf("published %d objects, want 1", len(store.published))
	}

	rec = doJSON(e, http.MethodGet, "/v1/export/artifacts", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "master_prompt_v1.md") {
		t.Errorf("artifact list missing published object: %s", rec.Body.String())
	}
}

func TestExportArtifactsWithoutStorage(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/export/artifacts", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExportPublishWithoutStorage(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, true)

	rec := doJSON(e, http.MethodGet, "/v1/export/master?publish=true", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExportPackageContainsHistory(t *testing.T) {
	e, svc := newTestServer(t)
	seedSession(t, svc, true)

	rec := doJSON(e, http.MethodGet, "/v1/export/package", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, want := range []string{"Complete Prompt Evolution Package", "Primary Prompt (v1)", "Final Master Prompt"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Errorf("package missing %q", want)
		}
	}
}
