package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"termsheet-backend/llm"
	"termsheet-backend/models"
)

// extractionTemperature is used for the model-backed extraction fallback
const extractionTemperature = 0.1

// minRuleBasedFields is the threshold below which a rule-based result is
// considered "mostly empty" and replaced wholesale by the model path
const minRuleBasedFields = 2

var ErrLLMClientNotSet = errors.New("llm client not set")

var (
	typePatterns = []*regexp.Regexp{
		regexp.MustCompile(`series\s+([a-c])`),
		regexp.MustCompile(`(safe)`),
		regexp.MustCompile(`(convertible\s+note)`),
	}
	amountPattern       = regexp.MustCompile(`\$(\d+(?:\.\d+)?)\s*([KMB])`)
	discountPattern     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*discount`)
	liqPrefPattern      = regexp.MustCompile(`(\d+(?:\.\d+)?)x\s+(?:non-participating\s+)?liquidation\s+preference`)
	valuationCapPattern = regexp.MustCompile(`(?i)\$(\d+(?:\.\d+)?)\s*([KMB])\s+valuation\s+cap`)
	boardSeatsPattern   = regexp.MustCompile(`(\d+)\s+board\s+seats?`)
	proRataPattern      = regexp.MustCompile(`(?i)pro\s+rata`)
)

// IntentService extracts structured deal terms from natural-language
// prompts, trying regex rules first and falling back to the model service
// when the rules come up mostly empty.
type IntentService struct {
	llm llm.Client
}

// NewIntentService creates a new intent service
func NewIntentService(client llm.Client) *IntentService {
	return &IntentService{llm: client}
}

// Parse extracts a structured intent from the prompt. The rule-based result
// is used as-is when it has at least two populated fields; otherwise the
// model-backed extractor fully replaces it (no merging).
func (s *IntentService) Parse(ctx context.Context, prompt string) (models.Intent, error) {
	intent := s.ruleBasedParse(prompt)

	if len(intent) < minRuleBasedFields {
		return s.modelBasedParse(ctx, prompt)
	}

	return intent, nil
}

// ruleBasedParse applies the extraction sub-rules independently; a field
// that does not match is left unset, never false or zero.
func (s *IntentService) ruleBasedParse(prompt string) models.Intent {
	intent := models.Intent{}
	lower := strings.ToLower(prompt)

	for _, pattern := range typePatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			intent[models.FieldType] = m[1]
			break
		}
	}

	// Accepts "$5M" and the split form "$5 M", normalized to "$5M"
	if m := amountPattern.FindStringSubmatch(prompt); m != nil {
		intent[models.FieldAmount] = "$" + m[1] + m[2]
	}

	if m := discountPattern.FindStringSubmatch(prompt); m != nil {
		intent[models.FieldDiscount] = m[1] + "%"
	}

	if m := liqPrefPattern.FindStringSubmatch(lower); m != nil {
		intent[models.FieldLiquidationPreference] = m[1] + "x"
		// Global scan, not scoped to the matched clause
		intent[models.FieldParticipation] = !strings.Contains(lower, "non-participating")
	}

	if m := valuationCapPattern.FindStringSubmatch(prompt); m != nil {
		intent[models.FieldValuationCap] = "$" + m[1] + strings.ToUpper(m[2])
	}

	if m := boardSeatsPattern.FindStringSubmatch(lower); m != nil {
		if seats, err := strconv.Atoi(m[1]); err == nil {
			intent[models.FieldBoardSeats] = seats
		}
	}

	if proRataPattern.MatchString(prompt) {
		intent[models.FieldProRata] = true
	}

	return intent
}

// modelBasedParse asks the model service to emit the intent as JSON.
// A malformed response degrades to a minimal default intent, never an error.
func (s *IntentService) modelBasedParse(ctx context.Context, prompt string) (models.Intent, error) {
	if s.llm == nil {
		return nil, ErrLLMClientNotSet
	}

	extractionPrompt := fmt.Sprintf(`Extract structured information from the following prompt about a term sheet:

%s

Extract the following information in JSON format:
- type: The type of investment (e.g., Series A, Series B, SAFE, Convertible Note)
- amount: The investment amount (e.g., $5M, $10M)
- discount: Any discount mentioned (e.g., 20%%)
- liquidation_preference: Liquidation preference multiple (e.g., 1x, 2x)
- participation: Whether there's participation (true/false)
- valuation_cap: Any valuation cap mentioned (e.g., $20M)
- board_seats: Number of board seats for investors
- pro_rata: Whether pro rata rights are included (true/false)

Return ONLY the JSON object without any additional text.`, prompt)

	response, err := s.llm.Complete(ctx, extractionPrompt, extractionTemperature)
	if err != nil {
		return nil, fmt.Errorf("model-backed extraction failed: %w", err)
	}

	intent := models.Intent{}
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &intent); err != nil {
		log.Printf("Warning: Failed to parse intent JSON from model: %v", err)
		return models.Intent{models.FieldType: models.DefaultFinancingType}, nil
	}

	return intent, nil
}

// stripCodeFence removes a surrounding markdown code fence, which models
// frequently wrap JSON output in
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
