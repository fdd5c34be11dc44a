package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage persists pipeline run artifacts (term-sheet text, validation
// report, exported document), keyed by run ID.
type Storage interface {
	// Save stores an artifact for a run and returns the storage path
	Save(ctx context.Context, runID uuid.UUID, name string, data io.Reader) (string, error)

	// Open retrieves an artifact by storage path
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes an artifact by storage path
	Delete(ctx context.Context, storagePath string) error
}

// Type represents the storage backend type
type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

// Config holds configuration for storage
type Config struct {
	Type         Type
	LocalPath    string // for local storage
	S3Bucket     string // for S3 storage
	S3Region     string // for S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// New creates a storage instance based on configuration
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		path := cfg.LocalPath
		if path == "" {
			path = "./output"
		}
		return NewLocalStorage(path)
	case TypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("s3 bucket is required for s3 storage")
		}
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// artifactPath generates the storage path for a run artifact, sharded by
// the run ID prefix
func artifactPath(runID uuid.UUID, name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	return fmt.Sprintf("%s/%s/%s", runID.String()[:2], runID.String(), name)
}

// ContentTypeFor determines the content type from an artifact name
func ContentTypeFor(name string) string {
	switch filepath.Ext(name) {
	case ".txt":
		return "text/plain"
	case ".md":
		return "text/markdown"
	case ".html":
		return "text/html"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
