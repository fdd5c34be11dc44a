package llm

import "context"

// Client is the single capability the pipeline needs from a language model
// service: plain text completion at a given temperature.
type Client interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Settings holds provider-level configuration for concrete clients
type Settings struct {
	Provider string // "gemini" or "openai"
	Model    string
	APIKey   string
	BaseURL  string // optional, openai-compatible endpoints
}
