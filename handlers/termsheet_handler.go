package handlers

import (
	"errors"
	"net/http"

	"termsheet-backend/models"
	"termsheet-backend/service"
	"termsheet-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TermSheetHandler handles HTTP requests for term-sheet generation runs
type TermSheetHandler struct {
	pipeline *service.PipelineService
	storage  storage.Storage
}

// NewTermSheetHandler creates a new term-sheet handler
func NewTermSheetHandler(pipeline *service.PipelineService, store storage.Storage) *TermSheetHandler {
	return &TermSheetHandler{
		pipeline: pipeline,
		storage:  store,
	}
}

// CreateTermSheetRequest represents the request body for generating a term sheet
type CreateTermSheetRequest struct {
	Prompt         string `json:"prompt" binding:"required"`
	SkipValidation bool   `json:"skip_validation"`
	SkipExport     bool   `json:"skip_export"`
}

// CreateTermSheet handles POST /api/termsheets
func (h *TermSheetHandler) CreateTermSheet(c *gin.Context) {
	var req CreateTermSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	run, err := h.pipeline.Run(c.Request.Context(), service.RunRequest{
		Prompt:         req.Prompt,
		SkipValidation: req.SkipValidation,
		SkipExport:     req.SkipExport,
	})
	if err != nil {
		status := http.StatusInternalServerError
		payload := gin.H{
			"success": false,
			"error": gin.H{
				"code":    "GENERATION_FAILED",
				"message": err.Error(),
			},
		}
		if run != nil {
			payload["data"] = run
		}
		c.JSON(status, payload)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    run,
	})
}

// GetRun handles GET /api/runs/:id
func (h *TermSheetHandler) GetRun(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_RUN_ID",
				"message": "Invalid run id format",
			},
		})
		return
	}

	run, err := h.pipeline.GetRun(runID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RUN_NOT_FOUND",
				"message": "Generation run not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    run,
	})
}

// DownloadArtifact handles GET /api/runs/:id/artifacts/:name
func (h *TermSheetHandler) DownloadArtifact(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_RUN_ID",
				"message": "Invalid run id format",
			},
		})
		return
	}

	run, err := h.pipeline.GetRun(runID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RUN_NOT_FOUND",
				"message": "Generation run not found",
			},
		})
		return
	}

	artifact, err := findArtifact(run, c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARTIFACT_NOT_FOUND",
				"message": err.Error(),
			},
		})
		return
	}

	reader, err := h.storage.Open(c.Request.Context(), artifact.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": err.Error(),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename="+artifact.Name)
	c.DataFromReader(http.StatusOK, artifact.Size, artifact.ContentType, reader, nil)
}

// findArtifact looks up a run artifact by name
func findArtifact(run *models.GenerationRun, name string) (*models.Artifact, error) {
	for i := range run.Artifacts {
		if run.Artifacts[i].Name == name {
			return &run.Artifacts[i], nil
		}
	}
	return nil, errors.New("artifact not found on this run")
}
