package service

import (
	"context"
	"errors"
	"testing"

	"termsheet-backend/llm"
	"termsheet-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const riskyTermSheet = `
TERM SHEET FOR SERIES A PREFERRED STOCK FINANCING OF
EXAMPLE COMPANY, INC.

Amount of Financing: $5M
Valuation: $20M pre-money
Liquidation Preference: 2x participating
Anti-dilution: Full-ratchet

Indemnification: The Company shall indemnify the Investors
without limitation for any losses arising from breaches of
representations and warranties.

Vesting: 5-year vesting schedule, 5 years for all employees with no cliff.
`

func TestRuleBasedValidateAllRules(t *testing.T) {
	svc := NewValidationService(nil)

	issues := svc.ruleBasedValidate(riskyTermSheet)

	require.Len(t, issues, 4)
	clauses := []string{issues[0].Clause, issues[1].Clause, issues[2].Clause, issues[3].Clause}
	assert.Equal(t, []string{
		"Uncapped Indemnity",
		"2x Liquidation Preference",
		"Full-Ratchet Anti-dilution",
		"Extended Vesting Schedule",
	}, clauses)
}

func TestRuleBasedValidateCleanDocument(t *testing.T) {
	svc := NewValidationService(nil)

	issues := svc.ruleBasedValidate("Amount of Financing: $5M\nLiquidation Preference: 1x non-participating\n")

	assert.Empty(t, issues)
}

func TestLiquidationPreferenceBoundary(t *testing.T) {
	svc := NewValidationService(nil)

	// Exactly 1.5x passes: strict greater-than, not >=
	assert.Empty(t, svc.ruleBasedValidate("Liquidation Preference: 1.5x participating"))

	issues := svc.ruleBasedValidate("Liquidation Preference: 1.6x participating")
	require.Len(t, issues, 1)
	assert.Equal(t, "1.6x Liquidation Preference", issues[0].Clause)
	assert.Contains(t, issues[0].Issue, "1.6x liquidation preference")
}

func TestValidateMergeDeduplicatesByClause(t *testing.T) {
	// Rules yield [Uncapped Indemnity, Full-Ratchet Anti-dilution]; the model
	// repeats the first and adds one new clause
	mock := &llm.Mock{Response: `[
		{"clause": "Uncapped Indemnity", "issue": "dup", "suggestion": "dup"},
		{"clause": "Drag-Along Rights", "issue": "One-sided drag-along.", "suggestion": "Add a minimum price threshold."}
	]`}
	svc := NewValidationService(mock)
	doc := "The Company shall indemnify the Investors without limitation. Anti-dilution: full-ratchet."

	issues, err := svc.Validate(context.Background(), doc)

	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Equal(t, "Uncapped Indemnity", issues[0].Clause)
	assert.Equal(t, "Full-Ratchet Anti-dilution", issues[1].Clause)
	assert.Equal(t, "Drag-Along Rights", issues[2].Clause)
	// The rule-based wording wins over the model duplicate
	assert.NotEqual(t, "dup", issues[0].Issue)
}

func TestValidateModelOutputFenced(t *testing.T) {
	mock := &llm.Mock{Response: "```json\n[{\"clause\": \"Board Control\", \"issue\": \"x\", \"suggestion\": \"y\"}]\n```"}
	svc := NewValidationService(mock)

	issues, err := svc.Validate(context.Background(), "A perfectly ordinary document.")

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Board Control", issues[0].Clause)
}

func TestValidateModelParseFailureKeepsRuleIssues(t *testing.T) {
	mock := &llm.Mock{Response: "Sorry, here are my thoughts in prose."}
	svc := NewValidationService(mock)

	issues, err := svc.Validate(context.Background(), "Anti-dilution: full ratchet applies.")

	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Full-Ratchet Anti-dilution", issues[0].Clause)
}

func TestValidatePropagatesTransportError(t *testing.T) {
	mock := &llm.Mock{Err: errors.New("service unavailable")}
	svc := NewValidationService(mock)

	_, err := svc.Validate(context.Background(), "any document")

	require.Error(t, err)
}

func TestFormatIssuesReportEmpty(t *testing.T) {
	svc := NewValidationService(nil)

	report := svc.FormatIssuesReport(nil)

	assert.Equal(t, "No issues found. The term sheet appears to follow standard practices.", report)
	assert.Equal(t, report, svc.FormatIssuesReport([]models.Issue{}))
}

func TestFormatIssuesReportNumbersIssues(t *testing.T) {
	svc := NewValidationService(nil)
	issues := []models.Issue{
		{Clause: "Uncapped Indemnity", Issue: "Unlimited liability.", Suggestion: "Cap it."},
		{Clause: "Extended Vesting Schedule", Issue: "Too long.", Suggestion: "Four years."},
	}

	report := svc.FormatIssuesReport(issues)

	assert.Contains(t, report, "# Term Sheet Validation Report")
	assert.Contains(t, report, "**2 issues identified:**")
	assert.Contains(t, report, "## Issue 1: Uncapped Indemnity")
	assert.Contains(t, report, "## Issue 2: Extended Vesting Schedule")
	assert.Contains(t, report, "**Problem:** Unlimited liability.")
	assert.Contains(t, report, "**Suggestion:** Cap it.")
	assert.Contains(t, report, "---")
}
