package main

import (
	"context"
	"log"

	"termsheet-backend/config"
	"termsheet-backend/export"
	"termsheet-backend/handlers"
	"termsheet-backend/llm"
	"termsheet-backend/service"
	"termsheet-backend/storage"
	"termsheet-backend/templates"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Initialize artifact storage
	artifactStorage, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Storage initialized")

	// Initialize model service client
	llmClient, err := initLLM(cfg)
	if err != nil {
		log.Fatal("Failed to initialize LLM client:", err)
	}

	// Initialize template store
	store := templates.NewStore()
	if err := store.LoadDir(cfg.TemplatesDir); err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	// Initialize services
	pipeline := service.NewPipelineService(
		service.WithIntentService(service.NewIntentService(llmClient)),
		service.WithTemplateService(service.NewTemplateService(store)),
		service.WithRefinementService(service.NewRefinementService(llmClient)),
		service.WithValidationService(service.NewValidationService(llmClient)),
		service.WithArtifactStorage(artifactStorage),
		service.WithExporter(export.NewHTMLExporter()),
	)

	// Initialize handlers
	termSheetHandler := handlers.NewTermSheetHandler(pipeline, artifactStorage)

	// Setup Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		api.POST("/termsheets", termSheetHandler.CreateTermSheet)
		api.GET("/runs/:id", termSheetHandler.GetRun)
		api.GET("/runs/:id/artifacts/:name", termSheetHandler.DownloadArtifact)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initLLM(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		client, err := llm.NewOpenAIClient(llm.Settings{
			Model:   cfg.LLMModel,
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBase,
		})
		if err != nil {
			return nil, err
		}
		log.Println("OpenAI client initialized")
		return client, nil
	default:
		client, err := llm.NewGeminiClient(context.Background(), llm.Settings{
			Model:  cfg.LLMModel,
			APIKey: cfg.GeminiAPIKey,
		})
		if err != nil {
			return nil, err
		}
		log.Println("Gemini client initialized")
		return client, nil
	}
}
