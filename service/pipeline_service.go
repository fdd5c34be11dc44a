package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"termsheet-backend/models"
	"termsheet-backend/storage"

	"github.com/google/uuid"
)

// Artifact filenames written once per run
const (
	ArtifactTermSheet        = "term_sheet.txt"
	ArtifactValidationReport = "validation_report.md"
	ArtifactExportedDocument = "term_sheet.html"
)

var (
	ErrIntentServiceNotSet     = errors.New("intent service not set")
	ErrTemplateServiceNotSet   = errors.New("template service not set")
	ErrRefinementServiceNotSet = errors.New("refinement service not set")
	ErrValidationServiceNotSet = errors.New("validation service not set")
	ErrRunNotFound             = errors.New("generation run not found")
)

// Exporter converts refined term-sheet text (markdown convention) into a
// document artifact
type Exporter interface {
	Export(content string) ([]byte, error)
}

// PipelineService sequences intent parsing, template population,
// refinement and validation, and persists the run's artifacts.
type PipelineService struct {
	intent     *IntentService
	template   *TemplateService
	refinement *RefinementService
	validation *ValidationService
	storage    storage.Storage
	exporter   Exporter

	mu   sync.RWMutex
	runs map[uuid.UUID]*models.GenerationRun
}

// PipelineServiceOption is a functional option for PipelineService
type PipelineServiceOption func(*PipelineService)

// WithIntentService sets the intent service
func WithIntentService(svc *IntentService) PipelineServiceOption {
	return func(s *PipelineService) {
		s.intent = svc
	}
}

// WithTemplateService sets the template service
func WithTemplateService(svc *TemplateService) PipelineServiceOption {
	return func(s *PipelineService) {
		s.template = svc
	}
}

// WithRefinementService sets the refinement service
func WithRefinementService(svc *RefinementService) PipelineServiceOption {
	return func(s *PipelineService) {
		s.refinement = svc
	}
}

// WithValidationService sets the validation service
func WithValidationService(svc *ValidationService) PipelineServiceOption {
	return func(s *PipelineService) {
		s.validation = svc
	}
}

// WithArtifactStorage sets the artifact storage backend
func WithArtifactStorage(store storage.Storage) PipelineServiceOption {
	return func(s *PipelineService) {
		s.storage = store
	}
}

// WithExporter sets the document exporter
func WithExporter(exporter Exporter) PipelineServiceOption {
	return func(s *PipelineService) {
		s.exporter = exporter
	}
}

// NewPipelineService creates a new pipeline service
func NewPipelineService(opts ...PipelineServiceOption) *PipelineService {
	s := &PipelineService{
		runs: make(map[uuid.UUID]*models.GenerationRun),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunRequest represents a request to run the drafting pipeline
type RunRequest struct {
	Prompt         string
	SkipValidation bool
	SkipExport     bool
}

// Run executes the four pipeline stages sequentially. Stage-local failures
// (template lookup, model JSON parsing, refinement no-op) degrade to
// deterministic fallbacks inside each service; only model-service
// transport failures surface here.
func (s *PipelineService) Run(ctx context.Context, req RunRequest) (*models.GenerationRun, error) {
	if s.intent == nil {
		return nil, ErrIntentServiceNotSet
	}
	if s.template == nil {
		return nil, ErrTemplateServiceNotSet
	}
	if s.refinement == nil {
		return nil, ErrRefinementServiceNotSet
	}
	if !req.SkipValidation && s.validation == nil {
		return nil, ErrValidationServiceNotSet
	}

	run := &models.GenerationRun{
		ID:        uuid.New(),
		Prompt:    req.Prompt,
		Status:    models.RunStatusInProgress,
		Steps:     initializeSteps(req),
		CreatedAt: time.Now().UTC(),
	}

	// 1. Parse intent
	run.SetStepStatus(models.StepParsingIntent, "in_progress")
	log.Printf("[1/4] Parsing intent from prompt: %q", req.Prompt)
	intent, err := s.intent.Parse(ctx, req.Prompt)
	if err != nil {
		s.markRunFailed(run, models.StepParsingIntent, err)
		return run, fmt.Errorf("intent parsing failed: %w", err)
	}
	run.Intent = intent
	run.SetStepStatus(models.StepParsingIntent, "completed")

	// 2. Select and populate template
	run.SetStepStatus(models.StepPopulatingTemplate, "in_progress")
	log.Printf("[2/4] Selecting and populating template")
	draft := s.template.Process(intent)
	run.SetStepStatus(models.StepPopulatingTemplate, "completed")

	// 3. Refine content
	run.SetStepStatus(models.StepRefiningContent, "in_progress")
	log.Printf("[3/4] Refining content")
	refined, err := s.refinement.Process(ctx, draft, intent)
	if err != nil {
		s.markRunFailed(run, models.StepRefiningContent, err)
		return run, fmt.Errorf("refinement failed: %w", err)
	}
	run.TermSheet = refined
	run.SetStepStatus(models.StepRefiningContent, "completed")

	// 4. Validate
	if req.SkipValidation {
		log.Printf("[4/4] Validation skipped")
	} else {
		run.SetStepStatus(models.StepValidating, "in_progress")
		log.Printf("[4/4] Validating term sheet")
		issues, report, err := s.validation.Process(ctx, refined)
		if err != nil {
			s.markRunFailed(run, models.StepValidating, err)
			return run, fmt.Errorf("validation failed: %w", err)
		}
		run.Issues = issues
		run.ValidationReport = report
		run.SetStepStatus(models.StepValidating, "completed")
		if len(issues) > 0 {
			log.Printf("Found %d potential issues in the term sheet", len(issues))
		} else {
			log.Printf("No issues found in the term sheet")
		}
	}

	// Persist artifacts
	if err := s.saveArtifacts(ctx, run, req); err != nil {
		s.markRunFailed(run, models.StepExporting, err)
		return run, err
	}

	now := time.Now().UTC()
	run.Status = models.RunStatusCompleted
	run.CompletedAt = &now
	run.CurrentStep = nil
	s.storeRun(run)

	return run, nil
}

// GetRun returns a previously executed run by ID
func (s *PipelineService) GetRun(id uuid.UUID) (*models.GenerationRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// initializeSteps builds the step list for a run
func initializeSteps(req RunRequest) models.RunSteps {
	steps := models.RunSteps{
		{Name: models.StepParsingIntent, Status: "pending"},
		{Name: models.StepPopulatingTemplate, Status: "pending"},
		{Name: models.StepRefiningContent, Status: "pending"},
	}

	validationStatus := "pending"
	if req.SkipValidation {
		validationStatus = "skipped"
	}
	steps = append(steps, models.RunStep{Name: models.StepValidating, Status: validationStatus})

	exportStatus := "pending"
	if req.SkipExport {
		exportStatus = "skipped"
	}
	steps = append(steps, models.RunStep{Name: models.StepExporting, Status: exportStatus})

	return steps
}

// saveArtifacts writes the run outputs to storage: the term-sheet text,
// the validation report when validation ran, and the exported document
// unless export was skipped
func (s *PipelineService) saveArtifacts(ctx context.Context, run *models.GenerationRun, req RunRequest) error {
	if s.storage == nil {
		run.SetStepStatus(models.StepExporting, "skipped")
		return nil
	}

	if err := s.saveArtifact(ctx, run, ArtifactTermSheet, []byte(run.TermSheet)); err != nil {
		return err
	}

	if run.ValidationReport != "" {
		if err := s.saveArtifact(ctx, run, ArtifactValidationReport, []byte(run.ValidationReport)); err != nil {
			return err
		}
	}

	if req.SkipExport || s.exporter == nil {
		return nil
	}

	run.SetStepStatus(models.StepExporting, "in_progress")
	document, err := s.exporter.Export(run.TermSheet)
	if err != nil {
		return fmt.Errorf("failed to export document: %w", err)
	}
	if err := s.saveArtifact(ctx, run, ArtifactExportedDocument, document); err != nil {
		return err
	}
	run.SetStepStatus(models.StepExporting, "completed")

	return nil
}

// saveArtifact writes one named artifact and records it on the run
func (s *PipelineService) saveArtifact(ctx context.Context, run *models.GenerationRun, name string, data []byte) error {
	path, err := s.storage.Save(ctx, run.ID, name, strings.NewReader(string(data)))
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", name, err)
	}

	run.Artifacts = append(run.Artifacts, models.Artifact{
		Name:        name,
		ContentType: storage.ContentTypeFor(name),
		StoragePath: path,
		Size:        int64(len(data)),
	})
	log.Printf("Artifact %s saved to %s", name, path)

	return nil
}

// markRunFailed records a stage failure on the run and registers it
func (s *PipelineService) markRunFailed(run *models.GenerationRun, step string, err error) {
	run.SetStepStatus(step, "failed")
	run.Status = models.RunStatusFailed
	message := err.Error()
	run.ErrorMessage = &message
	now := time.Now().UTC()
	run.CompletedAt = &now
	s.storeRun(run)
}

// storeRun registers the run for status lookups. Runs are registered only
// in a terminal state, so GetRun never returns a run that is still being
// mutated by Run.
func (s *PipelineService) storeRun(run *models.GenerationRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
}
