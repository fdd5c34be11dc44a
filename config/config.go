// Package config loads the explicit configuration object passed into the
// pipeline wiring at construction. Environment variables (with optional
// .env file support) are read exactly once, here.
package config

import (
	"log"
	"os"

	"termsheet-backend/storage"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration
type Config struct {
	Port string

	// Model service
	LLMProvider  string // "gemini" or "openai"
	LLMModel     string
	GeminiAPIKey string
	OpenAIAPIKey string
	OpenAIBase   string

	// Template store
	TemplatesDir string

	// Artifact storage
	Storage storage.Config
}

// Load reads configuration from the environment, loading a .env file first
// when one is present
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
		LLMModel:     os.Getenv("LLM_MODEL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIBase:   os.Getenv("OPENAI_BASE_URL"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./templates"),
		Storage: storage.Config{
			Type:         storage.Type(getEnv("STORAGE_TYPE", "local")),
			LocalPath:    getEnv("STORAGE_LOCAL_PATH", "./output"),
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	return cfg
}

// getEnv returns the variable's value or a default when unset
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
