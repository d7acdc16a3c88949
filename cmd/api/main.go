package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/promptops/prompt-evolution/internal/adapter/handler"
	"github.com/promptops/prompt-evolution/internal/infrastructure/storage"
	"github.com/promptops/prompt-evolution/internal/usecase/workflow"
	pkgai "github.com/promptops/prompt-evolution/pkg/ai"
	"github.com/promptops/prompt-evolution/pkg/config"
	pkgvalidator "github.com/promptops/prompt-evolution/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize AI clients
	log.Println("🤖 Initializing AI clients...")
	geminiClient := pkgai.NewGeminiClient(&cfg.Gemini)
	deepgramClient := pkgai.NewDeepgramClient(&cfg.Deepgram)
	if !geminiClient.IsConfigured() {
		log.Println("⚠️  Gemini API key not set; prompt generation will be unavailable")
	}
	if !deepgramClient.IsConfigured() {
		log.Println("⚠️  Deepgram API key not set; call analysis will be unavailable")
	}

	// Initialize artifact storage (optional)
	var artifactStore handler.ArtifactPublisher
	if cfg.Storage.Enabled {
		log.Println("📦 Connecting to artifact storage...")
		store, err := storage.NewArtifactStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize artifact storage: %v", err)
		}
		artifactStore = store
		log.Printf("✅ Artifact storage connected: %s/%s", cfg.Storage.Endpoint, cfg.Storage.BucketName)
	} else {
		log.Println("📦 Artifact storage disabled; exports are download-only")
	}

	// Initialize workflow service
	log.Println("✨ Initializing workflow service...")
	workflowService := workflow.NewService(geminiClient, deepgramClient, logger)

	// Initialize handlers
	workflowHandler := handler.NewWorkflow(workflowService, logger)
	exportHandler := handler.NewExport(workflowService, artifactStore, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, workflowHandler, exportHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("👋 Server stopped")
}
