package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-pro"

// GeminiClient implements Client using the Google generative AI SDK
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini-backed client
func NewGeminiClient(ctx context.Context, cfg Settings) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key missing")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

// Complete sends a prompt and returns the concatenated candidate text
func (c *GeminiClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(float32(temperature))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				builder.WriteString(string(text))
			}
		}
	}

	result := builder.String()
	if result == "" {
		return "", errors.New("gemini returned empty content")
	}

	return result, nil
}

// Close releases the underlying SDK client
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
