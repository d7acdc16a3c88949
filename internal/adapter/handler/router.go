package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/promptops/prompt-evolution/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	workflowHandler *Workflow
	exportHandler   *Export
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, workflowHandler *Workflow, exportHandler *Export) *Router {
	return &Router{
		cfg:             cfg,
		workflowHandler: workflowHandler,
		exportHandler:   exportHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupWorkflowRoutes(v1)
	rt.setupExportRoutes(v1)
}

// setupWorkflowRoutes configures the prompt evolution routes
func (rt *Router) setupWorkflowRoutes(g *echo.Group) {
	g.POST("/agent", rt.workflowHandler.SaveAgent)

	g.GET("/workflow", rt.workflowHandler.Status)
	g.POST("/workflow/reset", rt.workflowHandler.Reset)

	prompts := g.Group("/prompts")
	prompts.POST("/primary", rt.workflowHandler.GeneratePrimary)
	prompts.POST("/master", rt.workflowHandler.GenerateMaster)
	prompts.POST("/refine", rt.workflowHandler.Refine)
	prompts.GET("/refinements", rt.workflowHandler.ListRefinements)

	calls := g.Group("/calls")
	calls.POST("/analyze", rt.workflowHandler.AnalyzeCalls)
	calls.GET("/insights", rt.workflowHandler.ListInsights)
	calls.GET("/insights/:index", rt.workflowHandler.GetInsight)

	g.POST("/analysis/evolution", rt.workflowHandler.EvolutionAnalysis)
}

// setupExportRoutes configures the artifact download routes
func (rt *Router) setupExportRoutes(g *echo.Group) {
	export := g.Group("/export")
	export.GET("/primary", rt.exportHandler.Primary)
	export.GET("/master", rt.exportHandler.Master)
	export.GET("/insights", rt.exportHandler.Insights)
	export.GET("/package", rt.exportHandler.Package)
	export.GET("/artifacts", rt.exportHandler.Artifacts)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
