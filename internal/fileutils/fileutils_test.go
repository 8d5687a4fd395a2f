package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-analyzer/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "missing.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nope")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, fileutils.EnsureDirectoryExists(nested))
	assert.True(t, fileutils.DirectoryExists(nested))
	require.NoError(t, fileutils.EnsureDirectoryExists(nested))
}

func TestDeriveOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		ext      string
		expected string
	}{
		{input: "statement.csv", ext: ".json", expected: "statement.json"},
		{input: "dir/aug.2025.CSV", ext: ".json", expected: "dir/aug.2025.json"},
		{input: "records.json", ext: ".csv", expected: "records.csv"},
		{input: "noext", ext: ".json", expected: "noext.json"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, fileutils.DeriveOutputPath(tt.input, tt.ext))
		})
	}
}

func TestWriteFileAndCreateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "data.json")

	require.NoError(t, fileutils.WriteFile(path, []byte("[]"), 0644))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	f, err := fileutils.CreateFile(filepath.Join(dir, "other", "x.csv"))
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, fileutils.FileExists(filepath.Join(dir, "other", "x.csv")))
}
