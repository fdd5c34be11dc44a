package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"termsheet-backend/llm"
	"termsheet-backend/models"
)

// refinementTemperature keeps prose polishing close to the source text
const refinementTemperature = 0.2

// headerMaxLen is the longest line the fallback formatter promotes to a header
const headerMaxLen = 50

// RefinementService polishes draft term-sheet prose through the model
// service, with a deterministic formatting fallback when refinement is a
// no-op.
type RefinementService struct {
	llm llm.Client
}

// NewRefinementService creates a new refinement service
func NewRefinementService(client llm.Client) *RefinementService {
	return &RefinementService{llm: client}
}

// Refine sends the draft and the flattened intent to the model service and
// returns the trimmed result
func (s *RefinementService) Refine(ctx context.Context, draft string, intent models.Intent) (string, error) {
	if s.llm == nil {
		return "", ErrLLMClientNotSet
	}

	prompt := fmt.Sprintf(`You are an expert legal document editor specializing in term sheets for startup financing.

I will provide you with a draft term sheet and the original structured intent. Your task is to:

1. Ensure all terms from the intent are properly reflected in the document
2. Improve the language for clarity and professionalism
3. Add appropriate section headers and formatting
4. Ensure the document follows standard term sheet conventions
5. Make sure the document is complete and coherent

Original intent: %s

Draft term sheet:
%s

Please provide the refined term sheet:`, flattenIntent(intent), draft)

	response, err := s.llm.Complete(ctx, prompt, refinementTemperature)
	if err != nil {
		return "", fmt.Errorf("refinement failed: %w", err)
	}

	return strings.TrimSpace(response), nil
}

// Process refines the draft; an empty or identical result falls back to the
// deterministic header formatter
func (s *RefinementService) Process(ctx context.Context, draft string, intent models.Intent) (string, error) {
	refined, err := s.Refine(ctx, draft, intent)
	if err != nil {
		return "", err
	}

	if refined == "" || refined == draft {
		return addHeadersAndFormatting(draft), nil
	}

	return refined, nil
}

// flattenIntent renders the intent as "key: value, ..." with sorted keys
// so prompts are deterministic
func flattenIntent(intent models.Intent) string {
	keys := make([]string, 0, len(intent))
	for k := range intent {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s: %v", k, intent[k]))
	}
	return strings.Join(pairs, ", ")
}

// addHeadersAndFormatting promotes short lines without sentence punctuation
// to upper-cased headers with an "=" underline; everything else passes
// through unchanged
func addHeadersAndFormatting(content string) string {
	lines := strings.Split(content, "\n")
	formatted := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			formatted = append(formatted, line)
			continue
		}

		last := line[len(line)-1]
		if len(line) < headerMaxLen && last != '.' && last != ':' && last != ',' && last != ';' {
			formatted = append(formatted, strings.ToUpper(line))
			formatted = append(formatted, strings.Repeat("=", len(line)))
		} else {
			formatted = append(formatted, line)
		}
	}

	return strings.Join(formatted, "\n")
}
