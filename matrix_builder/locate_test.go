package matrix_builder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestLocateInput(t *testing.T) {
	t.Run("exactly one match is returned", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "run42_Proteins.txt")
		touch(t, dir, "notes.md")

		path, err := LocateInput(dir, "*Proteins.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "run42_Proteins.txt"), path)
	})

	t.Run("zero matches is an error naming the pattern", func(t *testing.T) {
		dir := t.TempDir()
		_, err := LocateInput(dir, "*Proteins.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "*Proteins.txt")
		assert.Contains(t, err.Error(), "no file matching")
	})

	t.Run("multiple matches is an error naming the count", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "run1_Proteins.txt")
		touch(t, dir, "run2_Proteins.txt")

		_, err := LocateInput(dir, "*Proteins.txt")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 files match")
		assert.Contains(t, err.Error(), "expected exactly one")
	})
}
