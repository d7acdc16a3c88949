// Package workflow owns the prompt evolution state machine: one in-memory
// session that advances from agent setup through primary prompt synthesis,
// call analysis, master prompt generation and feedback refinements.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/promptops/prompt-evolution/errors"
	"github.com/promptops/prompt-evolution/internal/domain/entities"
	"github.com/promptops/prompt-evolution/internal/usecase/prompt"
	"github.com/promptops/prompt-evolution/internal/usecase/transcript"
	"github.com/promptops/prompt-evolution/pkg/config"
)

// maxConcurrentAnalyses caps how many recordings are transcribed and
// analyzed at once during a batch.
const maxConcurrentAnalyses = 3

// Generator produces text from an instruction prompt.
type Generator interface {
	Generate(ctx context.Context, promptText string) (string, error)
	IsConfigured() bool
}

// Transcriber converts raw audio into diarized words.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, language string) ([]entities.Word, error)
	IsConfigured() bool
}

// Recording is one uploaded audio file queued for analysis.
type Recording struct {
	Filename string
	Audio    []byte
}

// FileResult reports the outcome for one recording in a batch.
type FileResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// BatchResult summarizes an AnalyzeRecordings run.
type BatchResult struct {
	Analyzed int          `json:"analyzed"`
	Failed   int          `json:"failed"`
	Results  []FileResult `json:"results"`
}

// Service is the single owner of the workflow state. All mutation goes
// through it under the mutex; reads hand out copies.
type Service struct {
	mu          sync.RWMutex
	state       *entities.WorkflowState
	generator   Generator
	transcriber Transcriber
	log         *zap.Logger
}

func NewService(generator Generator, transcriber Transcriber, log *zap.Logger) *Service {
	return &Service{
		state:       entities.NewWorkflowState(),
		generator:   generator,
		transcriber: transcriber,
		log:         log,
	}
}

// SaveAgentDetails validates and stores the agent profile. Saving details
// never changes the phase by itself; artifacts do.
func (s *Service) SaveAgentDetails(agent entities.AgentDetails) error {
	if !agent.IsComplete() {
		return apperrors.ErrValidation(strings.Join(agent.MissingFields(), ", "), "must not be blank")
	}
	if !config.IsLanguageSupported(agent.Language) {
		return apperrors.ErrUnsupportedLanguage(agent.Language)
	}

	s.mu.Lock()
	s.state.Agent = agent
	s.state.AgentSaved = true
	s.mu.Unlock()

	s.log.Info("👤 agent details saved",
		zap.String("agent", agent.Name),
		zap.String("company", agent.Company),
		zap.String("language", agent.Language))
	return nil
}

// GeneratePrimaryPrompt synthesizes the case-specific primary prompt from a
// sample script and the universal template. Re-generating replaces the
// stored primary prompt.
func (s *Service) GeneratePrimaryPrompt(ctx context.Context, script, template string) (string, error) {
	if strings.TrimSpace(script) == "" {
		return "", apperrors.ErrValidation("script", "must not be blank")
	}
	if strings.TrimSpace(template) == "" {
		return "", apperrors.ErrValidation("template", "must not be blank")
	}
	if !s.generator.IsConfigured() {
		return "", apperrors.ErrMissingCredential("gemini")
	}

	s.mu.RLock()
	if !s.state.AgentSaved {
		s.mu.RUnlock()
		return "", apperrors.ErrValidation("agent", "agent details must be saved first")
	}
	agent := s.state.Agent
	s.mu.RUnlock()

	request := prompt.ComposePrimary(script, template, agent)
	generated, err := s.generator.Generate(ctx, request)
	if err != nil {
		return "", apperrors.ErrGenerationFailed(err)
	}

	s.mu.Lock()
	s.state.PrimaryPrompt = generated
	s.mu.Unlock()

	s.log.Info("✨ primary prompt generated",
		zap.String("agent", agent.Name),
		zap.Int("length", len(generated)))
	return generated, nil
}

// AnalyzeRecordings runs the transcribe-and-analyze pipeline over a batch
// of recordings. Files are processed concurrently up to
// maxConcurrentAnalyses; one file failing never aborts the others, and
// insights from the successes are recorded in upload order.
func (s *Service) AnalyzeRecordings(ctx context.Context, recordings []Recording) (BatchResult, error) {
	if len(recordings) == 0 {
		return BatchResult{}, apperrors.ErrValidation("recordings", "at least one audio file is required")
	}
	if !s.transcriber.IsConfigured() {
		return BatchResult{}, apperrors.ErrMissingCredential("deepgram")
	}
	if !s.generator.IsConfigured() {
		return BatchResult{}, apperrors.ErrMissingCredential("gemini")
	}

	s.mu.RLock()
	currentPrompt := s.state.MasterPrompt
	if currentPrompt == "" {
		currentPrompt = s.state.PrimaryPrompt
	}
	language := s.state.Agent.Language
	s.mu.RUnlock()

	if currentPrompt == "" {
		return BatchResult{}, apperrors.ErrNoPrimaryPrompt()
	}

	s.log.Info("🎙️ analyzing recordings",
		zap.Int("count", len(recordings)),
		zap.String("language", language))

	type outcome struct {
		insight entities.CallInsight
		err     error
	}
	outcomes := make([]outcome, len(recordings))

	sem := make(chan struct{}, maxConcurrentAnalyses)
	var wg sync.WaitGroup
	for i, rec := range recordings {
		wg.Add(1)
		go func(i int, rec Recording) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			insight, err := s.analyzeOne(ctx, rec, currentPrompt, language)
			outcomes[i] = outcome{insight: insight, err: err}
		}(i, rec)
	}
	wg.Wait()

	// Record successes in upload order regardless of completion order.
	result := BatchResult{Results: make([]FileResult, 0, len(recordings))}
	s.mu.Lock()
	for i, rec := range recordings {
		if outcomes[i].err != nil {
			result.Failed++
			result.Results = append(result.Results, FileResult{
				Filename: rec.Filename,
				Status:   "failed",
				Error:    outcomes[i].err.Error(),
			})
			continue
		}
		s.state.Insights = append(s.state.Insights, outcomes[i].insight)
		result.Analyzed++
		result.Results = append(result.Results, FileResult{Filename: rec.Filename, Status: "analyzed"})
	}
	s.mu.Unlock()

	s.log.Info("📊 batch analysis complete",
		zap.Int("analyzed", result.Analyzed),
		zap.Int("failed", result.Failed))
	return result, nil
}

// analyzeOne handles a single recording: transcribe, segment into speaker
// turns, then extract insights against the current prompt.
func (s *Service) analyzeOne(ctx context.Context, rec Recording, currentPrompt, language string) (entities.CallInsight, error) {
	words, err := s.transcriber.Transcribe(ctx, rec.Audio, language)
	if err != nil {
		s.log.Warn("transcription failed",
			zap.String("file", rec.Filename),
			zap.Error(err))
		return entities.CallInsight{}, apperrors.ErrTranscriptionFailed(fmt.Errorf("transcribe %s: %w", rec.Filename, err))
	}

	formatted := transcript.FormatTurns(transcript.Segment(words))

	request := prompt.ComposeInsightExtraction(formatted, currentPrompt)
	insightText, err := s.generator.Generate(ctx, request)
	if err != nil {
		s.log.Warn("insight extraction failed",
			zap.String("file", rec.Filename),
			zap.Error(err))
		return entities.CallInsight{}, apperrors.ErrGenerationFailed(fmt.Errorf("analyze %s: %w", rec.Filename, err))
	}

	scores := prompt.ParseScores(insightText)
	return entities.NewCallInsight(rec.Filename, insightText, formatted, scores), nil
}

// GenerateMasterPrompt folds every collected insight into the primary
// prompt. Re-generating replaces the master prompt but keeps insights and
// refinement history intact.
func (s *Service) GenerateMasterPrompt(ctx context.Context) (string, error) {
	if !s.generator.IsConfigured() {
		return "", apperrors.ErrMissingCredential("gemini")
	}

	s.mu.RLock()
	primary := s.state.PrimaryPrompt
	agent := s.state.Agent
	insightTexts := make([]string, 0, len(s.state.Insights))
	for _, ins := range s.state.Insights {
		insightTexts = append(insightTexts, ins.Insights)
	}
	s.mu.RUnlock()

	if primary == "" {
		return "", apperrors.ErrNoPrimaryPrompt()
	}
	if len(insightTexts) == 0 {
		return "", apperrors.ErrNoInsights()
	}

	request := prompt.ComposeMasterPrompt(primary, insightTexts, agent)
	generated, err := s.generator.Generate(ctx, request)
	if err != nil {
		return "", apperrors.ErrGenerationFailed(err)
	}

	s.mu.Lock()
	s.state.MasterPrompt = generated
	s.mu.Unlock()

	s.log.Info("🏆 master prompt generated",
		zap.Int("insights_used", len(insightTexts)),
		zap.Int("length", len(generated)))
	return generated, nil
}

// Refine applies one feedback-driven edit to the master prompt, recording
// the before/after pair in the refinement history.
func (s *Service) Refine(ctx context.Context, feedback string) (entities.Refinement, error) {
	if strings.TrimSpace(feedback) == "" {
		return entities.Refinement{}, apperrors.ErrValidation("feedback", "must not be blank")
	}
	if !s.generator.IsConfigured() {
		return entities.Refinement{}, apperrors.ErrMissingCredential("gemini")
	}

	s.mu.RLock()
	current := s.state.MasterPrompt
	s.mu.RUnlock()

	if current == "" {
		return entities.Refinement{}, apperrors.ErrNoMasterPrompt()
	}

	request := prompt.ComposeRefinement(current, feedback)
	generated, err := s.generator.Generate(ctx, request)
	if err != nil {
		return entities.Refinement{}, apperrors.ErrGenerationFailed(err)
	}

	refinement := entities.NewRefinement(feedback, current, generated)

	s.mu.Lock()
	// The prompt may have been replaced while generating; the recorded
	// OldPrompt stays the one the edit was computed from.
	s.state.MasterPrompt = generated
	s.state.Refinements = append(s.state.Refinements, refinement)
	version := s.state.Version()
	s.mu.Unlock()

	s.log.Info("🔧 master prompt refined",
		zap.Int("version", version),
		zap.String("summary", refinement.Summary))
	return refinement, nil
}

// EvolutionAnalysis asks for a comparison document between the primary and
// master prompts. The document is returned, not stored.
func (s *Service) EvolutionAnalysis(ctx context.Context) (string, error) {
	if !s.generator.IsConfigured() {
		return "", apperrors.ErrMissingCredential("gemini")
	}

	s.mu.RLock()
	primary := s.state.PrimaryPrompt
	master := s.state.MasterPrompt
	agent := s.state.Agent
	insightCount := len(s.state.Insights)
	refinementCount := len(s.state.Refinements)
	s.mu.RUnlock()

	if primary == "" {
		return "", apperrors.ErrNoPrimaryPrompt()
	}
	if master == "" {
		return "", apperrors.ErrNoMasterPrompt()
	}

	request := prompt.ComposeEvolutionAnalysis(primary, master, agent, insightCount, refinementCount)
	analysis, err := s.generator.Generate(ctx, request)
	if err != nil {
		return "", apperrors.ErrGenerationFailed(err)
	}
	return analysis, nil
}

// CompletePackage renders the full evolution history as one Markdown
// document. Requires the master prompt to exist.
func (s *Service) CompletePackage() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.MasterPrompt == "" {
		return "", apperrors.ErrNoMasterPrompt()
	}
	return prompt.BuildCompletePackage(s.state, time.Now()), nil
}

// PrimaryPrompt returns the stored primary prompt.
func (s *Service) PrimaryPrompt() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.PrimaryPrompt == "" {
		return "", apperrors.ErrNoPrimaryPrompt()
	}
	return s.state.PrimaryPrompt, nil
}

// MasterPrompt returns the stored master prompt.
func (s *Service) MasterPrompt() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.MasterPrompt == "" {
		return "", apperrors.ErrNoMasterPrompt()
	}
	return s.state.MasterPrompt, nil
}

// Insights returns a copy of the collected insights in upload order.
func (s *Service) Insights() []entities.CallInsight {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.CallInsight, len(s.state.Insights))
	copy(out, s.state.Insights)
	return out
}

// Insight returns one insight by zero-based position.
func (s *Service) Insight(index int) (entities.CallInsight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.state.Insights) {
		return entities.CallInsight{}, apperrors.ErrNotFound("insight")
	}
	return s.state.Insights[index], nil
}

// Refinements returns a copy of the refinement history, oldest first.
func (s *Service) Refinements() []entities.Refinement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Refinement, len(s.state.Refinements))
	copy(out, s.state.Refinements)
	return out
}

// Snapshot returns a copy of the whole state for status reporting.
func (s *Service) Snapshot() entities.WorkflowState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := *s.state
	snap.Insights = make([]entities.CallInsight, len(s.state.Insights))
	copy(snap.Insights, s.state.Insights)
	snap.Refinements = make([]entities.Refinement, len(s.state.Refinements))
	copy(snap.Refinements, s.state.Refinements)
	return snap
}

// Phase reports the current workflow phase, derived from stored artifacts.
func (s *Service) Phase() entities.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentPhase()
}

// Reset discards the entire session in one step.
func (s *Service) Reset() {
	s.mu.Lock()
	s.state.Reset()
	s.mu.Unlock()
	s.log.Info("🔄 workflow reset")
}
