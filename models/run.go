package models

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the status of a pipeline run
type RunStatus string

const (
	RunStatusPending    RunStatus = "pending"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// Pipeline step names
const (
	StepParsingIntent      = "Parsing Intent"
	StepPopulatingTemplate = "Populating Template"
	StepRefiningContent    = "Refining Content"
	StepValidating         = "Validating Term Sheet"
	StepExporting          = "Exporting Document"
)

// RunStep represents a step in the pipeline run
type RunStep struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "pending", "in_progress", "completed", "failed", "skipped"
}

// RunSteps represents the ordered steps of a run
type RunSteps []RunStep

// Artifact represents a persisted output of a pipeline run
type Artifact struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	StoragePath string `json:"storage_path"`
	Size        int64  `json:"size"`
}

// GenerationRun represents one execution of the drafting pipeline
type GenerationRun struct {
	ID               uuid.UUID  `json:"id"`
	Prompt           string     `json:"prompt"`
	Status           RunStatus  `json:"status"`
	CurrentStep      *string    `json:"current_step,omitempty"`
	Steps            RunSteps   `json:"steps"`
	Intent           Intent     `json:"intent,omitempty"`
	TermSheet        string     `json:"term_sheet,omitempty"`
	Issues           []Issue    `json:"issues,omitempty"`
	ValidationReport string     `json:"validation_report,omitempty"`
	Artifacts        []Artifact `json:"artifacts,omitempty"`
	ErrorMessage     *string    `json:"error_message,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

// SetStepStatus updates the named step and tracks the current step
func (r *GenerationRun) SetStepStatus(name, status string) {
	for i := range r.Steps {
		if r.Steps[i].Name == name {
			r.Steps[i].Status = status
			if status == "in_progress" {
				r.CurrentStep = &r.Steps[i].Name
			}
			break
		}
	}
}
