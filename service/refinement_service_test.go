package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"termsheet-backend/llm"
	"termsheet-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessReturnsRefinedText(t *testing.T) {
	mock := &llm.Mock{Response: "  # REFINED TERM SHEET\n\nBetter prose.  "}
	svc := NewRefinementService(mock)

	refined, err := svc.Process(context.Background(), "draft text", models.Intent{"type": "safe"})

	require.NoError(t, err)
	assert.Equal(t, "# REFINED TERM SHEET\n\nBetter prose.", refined)
}

func TestProcessNoOpFallsBackToFormatter(t *testing.T) {
	draft := "Term Sheet\nThe company shall indemnify the investors for all losses without limitation.\nAmount of Financing"
	mock := &llm.Mock{Response: draft}
	svc := NewRefinementService(mock)

	refined, err := svc.Process(context.Background(), draft, models.Intent{})

	require.NoError(t, err)
	lines := strings.Split(refined, "\n")
	// Short lines without sentence punctuation become underlined headers
	assert.Equal(t, "TERM SHEET", lines[0])
	assert.Equal(t, strings.Repeat("=", len("Term Sheet")), lines[1])
	// Long sentence lines pass through unchanged
	assert.Contains(t, refined, "The company shall indemnify the investors for all losses without limitation.")
	assert.Contains(t, refined, "AMOUNT OF FINANCING")
}

func TestProcessEmptyResponseFallsBack(t *testing.T) {
	mock := &llm.Mock{Response: ""}
	svc := NewRefinementService(mock)

	refined, err := svc.Process(context.Background(), "Closing Conditions", models.Intent{})

	require.NoError(t, err)
	assert.Equal(t, "CLOSING CONDITIONS\n"+strings.Repeat("=", len("Closing Conditions")), refined)
}

func TestProcessPropagatesTransportError(t *testing.T) {
	mock := &llm.Mock{Err: errors.New("connection reset")}
	svc := NewRefinementService(mock)

	_, err := svc.Process(context.Background(), "draft", models.Intent{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAddHeadersAndFormattingPunctuatedLines(t *testing.T) {
	content := "The amount of financing is $5M.\nKey terms include:\nFirst closing,\nSecond closing;"

	formatted := addHeadersAndFormatting(content)

	// Lines ending in sentence punctuation are never promoted
	assert.Equal(t, content, formatted)
}

func TestFlattenIntentSortedAndStable(t *testing.T) {
	intent := models.Intent{
		"type":        "safe",
		"amount":      "$1M",
		"board_seats": 1,
	}

	assert.Equal(t, "amount: $1M, board_seats: 1, type: safe", flattenIntent(intent))
}
