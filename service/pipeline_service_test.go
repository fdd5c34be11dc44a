package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"termsheet-backend/export"
	"termsheet-backend/llm"
	"termsheet-backend/models"
	"termsheet-backend/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipelineMock answers the refinement and validation prompts distinctly
func pipelineMock(t *testing.T, refined, validation string) *llm.Mock {
	t.Helper()
	return &llm.Mock{
		Respond: func(prompt string, temperature float64) (string, error) {
			switch {
			case strings.Contains(prompt, "legal document editor"):
				assert.Equal(t, 0.2, temperature)
				return refined, nil
			case strings.Contains(prompt, "legal advisor"):
				assert.Equal(t, 0.0, temperature)
				return validation, nil
			default:
				t.Fatalf("unexpected model prompt: %.80s", prompt)
				return "", nil
			}
		},
	}
}

func newTestPipeline(t *testing.T, mock *llm.Mock) (*PipelineService, storage.Storage) {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	pipeline := NewPipelineService(
		WithIntentService(NewIntentService(mock)),
		WithTemplateService(NewTemplateService(nil)),
		WithRefinementService(NewRefinementService(mock)),
		WithValidationService(NewValidationService(mock)),
		WithArtifactStorage(store),
		WithExporter(export.NewHTMLExporter()),
	)
	return pipeline, store
}

func TestRunFullPipeline(t *testing.T) {
	mock := pipelineMock(t, "# TERM SHEET\n\n**Amount:** $5M with a 2x participating preference.", "[]")
	pipeline, store := newTestPipeline(t, mock)

	run, err := pipeline.Run(context.Background(), RunRequest{
		Prompt: "Draft a $5M series a term sheet with a 20% discount",
	})

	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Equal(t, "a", run.Intent[models.FieldType])
	assert.Contains(t, run.TermSheet, "2x participating")

	// The refined sheet carries a 2x preference, so validation flags it
	require.Len(t, run.Issues, 1)
	assert.Equal(t, "2x Liquidation Preference", run.Issues[0].Clause)
	assert.Contains(t, run.ValidationReport, "## Issue 1: 2x Liquidation Preference")

	for _, step := range run.Steps {
		assert.Equal(t, "completed", step.Status, step.Name)
	}

	// All three artifacts are persisted
	names := make([]string, 0, len(run.Artifacts))
	for _, artifact := range run.Artifacts {
		names = append(names, artifact.Name)
	}
	assert.Equal(t, []string{ArtifactTermSheet, ArtifactValidationReport, ArtifactExportedDocument}, names)

	reader, err := store.Open(context.Background(), run.Artifacts[0].StoragePath)
	require.NoError(t, err)
	defer reader.Close()
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, run.TermSheet, string(data))
}

func TestRunSkipFlags(t *testing.T) {
	mock := pipelineMock(t, "Refined sheet body.", "[]")
	pipeline, _ := newTestPipeline(t, mock)

	run, err := pipeline.Run(context.Background(), RunRequest{
		Prompt:         "Draft a $5M series a term sheet",
		SkipValidation: true,
		SkipExport:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
	assert.Empty(t, run.Issues)
	assert.Empty(t, run.ValidationReport)

	statuses := map[string]string{}
	for _, step := range run.Steps {
		statuses[step.Name] = step.Status
	}
	assert.Equal(t, "skipped", statuses[models.StepValidating])
	assert.Equal(t, "skipped", statuses[models.StepExporting])

	// Only the term-sheet text is persisted
	require.Len(t, run.Artifacts, 1)
	assert.Equal(t, ArtifactTermSheet, run.Artifacts[0].Name)
}

func TestRunRefinementNoOpUsesFormatter(t *testing.T) {
	// The model echoing an empty refinement triggers the deterministic
	// header formatter on the template draft
	mock := &llm.Mock{
		Respond: func(prompt string, temperature float64) (string, error) {
			if strings.Contains(prompt, "legal advisor") {
				return "[]", nil
			}
			return "", nil
		},
	}
	pipeline, _ := newTestPipeline(t, mock)

	run, err := pipeline.Run(context.Background(), RunRequest{
		Prompt:     "Draft a $5M series a term sheet",
		SkipExport: true,
	})

	require.NoError(t, err)
	assert.Contains(t, run.TermSheet, "=")
	assert.Equal(t, models.RunStatusCompleted, run.Status)
}

func TestRunModelFailureMarksRunFailed(t *testing.T) {
	mock := &llm.Mock{Err: assert.AnError}
	pipeline, _ := newTestPipeline(t, mock)

	run, err := pipeline.Run(context.Background(), RunRequest{
		Prompt: "Draft a $5M series a term sheet",
	})

	require.Error(t, err)
	require.NotNil(t, run)
	assert.Equal(t, models.RunStatusFailed, run.Status)
	require.NotNil(t, run.ErrorMessage)

	statuses := map[string]string{}
	for _, step := range run.Steps {
		statuses[step.Name] = step.Status
	}
	assert.Equal(t, "failed", statuses[models.StepRefiningContent])

	// Failed runs are registered in their terminal state
	stored, getErr := pipeline.GetRun(run.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.RunStatusFailed, stored.Status)
}

func TestGetRun(t *testing.T) {
	mock := pipelineMock(t, "Refined.", "[]")
	pipeline, _ := newTestPipeline(t, mock)

	run, err := pipeline.Run(context.Background(), RunRequest{
		Prompt:         "Draft a $5M series a term sheet",
		SkipValidation: true,
		SkipExport:     true,
	})
	require.NoError(t, err)

	found, err := pipeline.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, found.ID)

	_, err = pipeline.GetRun(uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRunWithoutServicesFails(t *testing.T) {
	pipeline := NewPipelineService()

	_, err := pipeline.Run(context.Background(), RunRequest{Prompt: "x"})

	assert.ErrorIs(t, err, ErrIntentServiceNotSet)
}
