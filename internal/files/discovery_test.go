package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genwell/internal/errors"
)

func writeFileAt(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	require.NoError(t, os.Chtimes(path, modTime, modTime))
	return path
}

func TestFindDatasetFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	older := writeFileAt(t, dir, "wave1.csv", now.Add(-2*time.Hour))
	newer := writeFileAt(t, dir, "wave2.xlsx", now.Add(-1*time.Hour))
	writeFileAt(t, dir, "notes.txt", now)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0755))

	files, err := FindDatasetFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2, "only csv and xlsx files count")

	assert.Equal(t, newer, files[0].Path, "newest first")
	assert.Equal(t, older, files[1].Path)
}

func TestLatestDataset(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeFileAt(t, dir, "old.csv", now.Add(-time.Hour))
	latest := writeFileAt(t, dir, "new.csv", now)

	file, err := LatestDataset(dir)
	require.NoError(t, err)
	assert.Equal(t, latest, file.Path)
}

func TestLatestDataset_EmptyDirectory(t *testing.T) {
	_, err := LatestDataset(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}

func TestFindDatasetFiles_MissingDirectory(t *testing.T) {
	_, err := FindDatasetFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}
