package filestore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveContentAndRemove(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	relPath, err := store.SaveContent("report.tex", "reports", []byte(`\documentclass{article}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(relPath, "reports"+string(filepath.Separator)))

	data, err := os.ReadFile(store.FullPath(relPath))
	require.NoError(t, err)
	assert.Equal(t, `\documentclass{article}`, string(data))

	require.NoError(t, store.Remove(relPath))
	_, err = os.Stat(store.FullPath(relPath))
	assert.True(t, os.IsNotExist(err))

	// Removing twice or removing nothing is not an error
	assert.NoError(t, store.Remove(relPath))
	assert.NoError(t, store.Remove(""))
}

func TestSaveUploadNilHeader(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	relPath, err := store.SaveUpload(nil, "results")
	assert.NoError(t, err)
	assert.Empty(t, relPath)
}

func TestUniqueName(t *testing.T) {
	a := uniqueName("exam results.csv")
	b := uniqueName("exam results.csv")

	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "exam_results_"))
	assert.True(t, strings.HasSuffix(a, ".csv"))
}
