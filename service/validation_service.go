package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"termsheet-backend/llm"
	"termsheet-backend/models"
)

// validationTemperature is 0 for a deterministic preference when flagging clauses
const validationTemperature = 0.0

// maxStandardLiqPref is the multiple above which a liquidation preference
// is flagged (strictly greater than; 1.5x itself passes)
const maxStandardLiqPref = 1.5

var (
	uncappedIndemnityPattern = regexp.MustCompile(`(?is)indemnify.*without limitation|unlimited indemnity|uncapped indemnity`)
	liqMultiplePattern       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[xX]\s*(?:participating|liquidation)`)
	fullRatchetPattern       = regexp.MustCompile(`(?i)full.?ratchet`)
	extendedVestingPattern   = regexp.MustCompile(`(?i)vesting.{1,50}(5|6|7|8|9|10)\s+years`)
)

// ValidationService flags high-risk clauses in a term sheet, combining
// rule-based checks with model-backed review.
type ValidationService struct {
	llm llm.Client
}

// NewValidationService creates a new validation service
func NewValidationService(client llm.Client) *ValidationService {
	return &ValidationService{llm: client}
}

// Validate returns rule-based issues first, then model-backed issues whose
// clause has not already been seen
func (s *ValidationService) Validate(ctx context.Context, termSheet string) ([]models.Issue, error) {
	issues := s.ruleBasedValidate(termSheet)

	modelIssues, err := s.modelBasedValidate(ctx, termSheet)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(issues))
	for _, issue := range issues {
		seen[issue.Clause] = true
	}
	for _, issue := range modelIssues {
		if !seen[issue.Clause] {
			issues = append(issues, issue)
			seen[issue.Clause] = true
		}
	}

	return issues, nil
}

// ruleBasedValidate applies the fixed clause checks. Rules are independent
// and non-exclusive; one document can trigger all of them.
func (s *ValidationService) ruleBasedValidate(termSheet string) []models.Issue {
	issues := make([]models.Issue, 0)

	if uncappedIndemnityPattern.MatchString(termSheet) {
		issues = append(issues, models.Issue{
			Clause:     "Uncapped Indemnity",
			Issue:      "The term sheet contains uncapped indemnity provisions, which create unlimited liability.",
			Suggestion: "Add a cap on indemnity obligations, typically tied to the investment amount.",
		})
	}

	if m := liqMultiplePattern.FindStringSubmatch(termSheet); m != nil {
		if multiple, err := strconv.ParseFloat(m[1], 64); err == nil && multiple > maxStandardLiqPref {
			issues = append(issues, models.Issue{
				Clause:     fmt.Sprintf("%sx Liquidation Preference", m[1]),
				Issue:      fmt.Sprintf("A %sx liquidation preference is higher than the standard 1x preference.", m[1]),
				Suggestion: "Consider negotiating down to a 1x non-participating liquidation preference, which is industry standard.",
			})
		}
	}

	if fullRatchetPattern.MatchString(termSheet) {
		issues = append(issues, models.Issue{
			Clause:     "Full-Ratchet Anti-dilution",
			Issue:      "Full-ratchet anti-dilution provisions are aggressive and can severely impact common shareholders.",
			Suggestion: "Consider a more balanced weighted average anti-dilution provision.",
		})
	}

	if extendedVestingPattern.MatchString(termSheet) {
		issues = append(issues, models.Issue{
			Clause:     "Extended Vesting Schedule",
			Issue:      "The vesting schedule appears to be longer than the industry standard of 4 years.",
			Suggestion: "Consider a standard 4-year vesting schedule with a 1-year cliff.",
		})
	}

	return issues
}

// modelBasedValidate asks the model service to enumerate additional risky
// clauses as JSON. A response that fails to parse yields an empty list, not
// an error, so rule-based issues are never lost.
func (s *ValidationService) modelBasedValidate(ctx context.Context, termSheet string) ([]models.Issue, error) {
	if s.llm == nil {
		return nil, ErrLLMClientNotSet
	}

	prompt := fmt.Sprintf(`You are an expert legal advisor specializing in venture capital term sheets.

Review the following term sheet and identify any high-risk clauses or issues that should be flagged.
Focus on identifying the following types of problematic clauses:

1. Uncapped indemnity clauses
2. Unilateral control provisions
3. Unusual or excessive liquidation preferences
4. Aggressive anti-dilution provisions
5. Unreasonable vesting terms
6. Problematic transfer restrictions
7. Unusual or one-sided termination rights
8. Any terms that deviate significantly from industry standards

For each issue identified, provide:
1. The specific clause or text that is problematic
2. Why it's problematic
3. A suggested improvement or alternative

Term sheet to review:
%s

Format your response as a JSON array of objects, each with "clause", "issue", and "suggestion" fields.
If no issues are found, return an empty array.`, termSheet)

	response, err := s.llm.Complete(ctx, prompt, validationTemperature)
	if err != nil {
		return nil, fmt.Errorf("model-backed validation failed: %w", err)
	}

	var issues []models.Issue
	if err := json.Unmarshal([]byte(stripCodeFence(response)), &issues); err != nil {
		log.Printf("Warning: Failed to parse validation JSON from model: %v", err)
		return []models.Issue{}, nil
	}

	return issues, nil
}

// FormatIssuesReport renders the issues as a markdown report
func (s *ValidationService) FormatIssuesReport(issues []models.Issue) string {
	if len(issues) == 0 {
		return "No issues found. The term sheet appears to follow standard practices."
	}

	var builder strings.Builder
	builder.WriteString("# Term Sheet Validation Report\n\n")
	builder.WriteString(fmt.Sprintf("**%d issues identified:**\n\n", len(issues)))

	for i, issue := range issues {
		builder.WriteString(fmt.Sprintf("## Issue %d: %s\n\n", i+1, issue.Clause))
		builder.WriteString(fmt.Sprintf("**Problem:** %s\n\n", issue.Issue))
		builder.WriteString(fmt.Sprintf("**Suggestion:** %s\n\n", issue.Suggestion))
		builder.WriteString("---\n\n")
	}

	return builder.String()
}

// Process validates the term sheet and renders the report
func (s *ValidationService) Process(ctx context.Context, termSheet string) ([]models.Issue, string, error) {
	issues, err := s.Validate(ctx, termSheet)
	if err != nil {
		return nil, "", err
	}
	return issues, s.FormatIssuesReport(issues), nil
}
