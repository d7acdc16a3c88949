package handler

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/promptops/prompt-evolution/errors"
	dto "github.com/promptops/prompt-evolution/internal/adapter/dto/workflow"
	"github.com/promptops/prompt-evolution/internal/domain/entities"
	"github.com/promptops/prompt-evolution/internal/usecase/workflow"
)

// maxRecordingBytes caps a single uploaded audio file at 100 MB.
const maxRecordingBytes = 100 << 20

// Workflow exposes the prompt evolution workflow over HTTP.
type Workflow struct {
	svc    *workflow.Service
	logger *zap.Logger
}

// NewWorkflow creates a new workflow controller
func NewWorkflow(svc *workflow.Service, logger *zap.Logger) *Workflow {
	return &Workflow{svc: svc, logger: logger}
}

// SaveAgent stores the agent profile for the session
func (h *Workflow) SaveAgent(c echo.Context) error {
	var req dto.AgentRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("agent", err.Error()))
	}

	agent := entities.AgentDetails{
		Name:     req.Name,
		Company:  req.Company,
		Language: req.Language,
		Category: req.Category,
	}
	if err := h.svc.SaveAgentDetails(agent); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.NewStatusResponse(h.svc.Snapshot()))
}

// Status reports the current phase and accumulated artifacts
func (h *Workflow) Status(c echo.Context) error {
	return HandleSuccess(h.logger, c, dto.NewStatusResponse(h.svc.Snapshot()))
}

// Reset discards the whole session
func (h *Workflow) Reset(c echo.Context) error {
	h.svc.Reset()
	return HandleSuccess(h.logger, c, dto.NewStatusResponse(h.svc.Snapshot()))
}

// GeneratePrimary synthesizes the primary prompt from script and template
func (h *Workflow) GeneratePrimary(c echo.Context) error {
	var req dto.PrimaryPromptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("prompt inputs", err.Error()))
	}

	generated, err := h.svc.GeneratePrimaryPrompt(c.Request().Context(), req.Script, req.Template)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.PromptResponse{Prompt: generated, Version: 1})
}

// AnalyzeCalls accepts a multipart batch of audio recordings and runs the
// transcribe-and-analyze pipeline over them
func (h *Workflow) AnalyzeCalls(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	files := form.File["recordings"]
	if len(files) == 0 {
		return HandleError(h.logger, c, errors.ErrValidation("recordings", "at least one audio file is required"))
	}

	recordings := make([]workflow.Recording, 0, len(files))
	for _, fh := range files {
		if fh.Size > maxRecordingBytes {
			return HandleError(h.logger, c, errors.ErrValidation(fh.Filename, "file exceeds the 100MB limit"))
		}
		src, err := fh.Open()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInternal(err))
		}
		audio, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInternal(err))
		}
		recordings = append(recordings, workflow.Recording{Filename: fh.Filename, Audio: audio})
	}

	result, err := h.svc.AnalyzeRecordings(c.Request().Context(), recordings)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, result)
}

// ListInsights returns summaries of all collected insights in upload order
func (h *Workflow) ListInsights(c echo.Context) error {
	return HandleSuccess(h.logger, c, dto.NewInsightSummaries(h.svc.Insights()))
}

// GetInsight returns one insight, full report and transcript included
func (h *Workflow) GetInsight(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("insight index must be an integer"))
	}
	ins, err := h.svc.Insight(index)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.InsightDetail{
		Index:      index,
		Filename:   ins.Filename,
		Insights:   ins.Insights,
		Transcript: ins.Transcript,
		Scores:     ins.Scores,
		CreatedAt:  ins.CreatedAt,
	})
}

// GenerateMaster folds the collected insights into the master prompt
func (h *Workflow) GenerateMaster(c echo.Context) error {
	generated, err := h.svc.GenerateMasterPrompt(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.PromptResponse{Prompt: generated, Version: h.svc.Snapshot().Version()})
}

// Refine applies one feedback-driven edit to the master prompt
func (h *Workflow) Refine(c echo.Context) error {
	var req dto.RefineRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrValidation("feedback", err.Error()))
	}

	ref, err := h.svc.Refine(c.Request().Context(), req.Feedback)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, dto.PromptResponse{Prompt: ref.NewPrompt, Version: h.svc.Snapshot().Version()})
}

// ListRefinements returns the refinement history, oldest first
func (h *Workflow) ListRefinements(c echo.Context) error {
	return HandleSuccess(h.logger, c, dto.NewRefinementViews(h.svc.Refinements()))
}

// EvolutionAnalysis generates a comparison of the primary and master prompts
func (h *Workflow) EvolutionAnalysis(c echo.Context) error {
	analysis, err := h.svc.EvolutionAnalysis(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"analysis": analysis})
}
