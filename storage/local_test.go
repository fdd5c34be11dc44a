package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	runID := uuid.New()

	path, err := store.Save(context.Background(), runID, "term_sheet.txt", strings.NewReader("TERM SHEET"))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%s/%s/term_sheet.txt", runID.String()[:2], runID.String()), path)

	reader, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "TERM SHEET", string(data))

	require.NoError(t, store.Delete(context.Background(), path))
	_, err = store.Open(context.Background(), path)
	assert.Error(t, err)
}

func TestLocalStorageDeleteMissingIsNoError(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "ab/missing/artifact.txt"))
}

func TestLocalStorageCreatesBasePath(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "output")

	_, err := NewLocalStorage(base)

	require.NoError(t, err)
	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFactory(t *testing.T) {
	store, err := New(Config{Type: TypeLocal, LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	// Empty type defaults to local
	store, err = New(Config{LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, store)

	_, err = New(Config{Type: TypeS3})
	assert.Error(t, err, "s3 requires a bucket")

	_, err = New(Config{Type: "ftp"})
	assert.Error(t, err)
}

func TestArtifactPathSanitizesName(t *testing.T) {
	runID := uuid.MustParse("3f2c9a10-0000-4000-8000-000000000000")

	path := artifactPath(runID, "my report/v1 final.md")

	assert.Equal(t, "3f/3f2c9a10-0000-4000-8000-000000000000/my_report_v1_final.md", path)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "text/plain", ContentTypeFor("term_sheet.txt"))
	assert.Equal(t, "text/markdown", ContentTypeFor("validation_report.md"))
	assert.Equal(t, "text/html", ContentTypeFor("term_sheet.html"))
	assert.Equal(t, "application/json", ContentTypeFor("run.json"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("archive.bin"))
}
