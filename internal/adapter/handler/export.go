package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/promptops/prompt-evolution/errors"
	"github.com/promptops/prompt-evolution/internal/usecase/prompt"
	"github.com/promptops/prompt-evolution/internal/usecase/workflow"
)

// ArtifactPublisher pushes exported artifacts to object storage and lists
// what has been published.
type ArtifactPublisher interface {
	PublishMarkdown(ctx context.Context, objectName, content string) (string, error)
	ListArtifacts(ctx context.Context, prefix string) ([]string, error)
}

// Export serves the workflow artifacts as downloadable Markdown files.
// When an ArtifactPublisher is configured, ?publish=true uploads the
// artifact instead and returns its URL.
type Export struct {
	svc    *workflow.Service
	store  ArtifactPublisher // nil when storage is disabled
	logger *zap.Logger
}

// NewExport creates a new export controller
func NewExport(svc *workflow.Service, store ArtifactPublisher, logger *zap.Logger) *Export {
	return &Export{svc: svc, store: store, logger: logger}
}

// Primary exports the primary prompt
func (h *Export) Primary(c echo.Context) error {
	content, err := h.svc.PrimaryPrompt()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.deliver(c, "primary_prompt.md", content)
}

// Master exports the current master prompt
func (h *Export) Master(c echo.Context) error {
	content, err := h.svc.MasterPrompt()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.deliver(c, fmt.Sprintf("master_prompt_v%d.md", h.svc.Snapshot().Version()), content)
}

// Insights exports all collected call insights as one document
func (h *Export) Insights(c echo.Context) error {
	insights := h.svc.Insights()
	if len(insights) == 0 {
		return HandleError(h.logger, c, errors.ErrNoInsights())
	}
	return h.deliver(c, "call_insights.md", prompt.BuildInsightsDocument(insights))
}

// Package exports the complete evolution package
func (h *Export) Package(c echo.Context) error {
	content, err := h.svc.CompletePackage()
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.deliver(c, "complete_prompt_package.md", content)
}

// Artifacts lists previously published artifacts
func (h *Export) Artifacts(c echo.Context) error {
	if h.store == nil {
		return HandleError(h.logger, c, errors.ErrValidation("storage", "artifact storage is not enabled"))
	}
	objects, err := h.store.ListArtifacts(c.Request().Context(), "exports/")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list", err))
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"artifacts": objects})
}

// deliver either publishes the artifact to storage or streams it as a
// file download, depending on the publish query parameter.
func (h *Export) deliver(c echo.Context, filename, content string) error {
	if c.QueryParam("publish") == "true" {
		if h.store == nil {
			return HandleError(h.logger, c, errors.ErrValidation("publish", "artifact storage is not enabled"))
		}
		objectName := fmt.Sprintf("exports/%s/%s", time.Now().UTC().Format("20060102-150405"), filename)
		url, err := h.store.PublishMarkdown(c.Request().Context(), objectName, content)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrStorageFailed("publish", err))
		}
		h.logger.Info("📦 artifact published",
			zap.String("object", objectName),
			zap.Int("bytes", len(content)))
		return HandleSuccess(h.logger, c, map[string]string{"object": objectName, "url": url})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(content))
}
