package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkipDir(t *testing.T) {
	assert.True(t, ShouldSkipDir(".git"))
	assert.True(t, ShouldSkipDir(".hidden"))
	assert.True(t, ShouldSkipDir("target"))
	assert.True(t, ShouldSkipDir("node_modules"))
	assert.True(t, ShouldSkipDir("__pycache__"))
	assert.False(t, ShouldSkipDir("src"))
	assert.False(t, ShouldSkipDir("internal"))
}

func TestHasExtension(t *testing.T) {
	exts := []string{"rs", "ts", "py"}
	assert.True(t, HasExtension("main.rs", exts))
	assert.True(t, HasExtension("/path/to/APP.PY", exts))
	assert.False(t, HasExtension("notes.txt", exts))
	assert.False(t, HasExtension("Makefile", exts))
}

func TestWalkSourceFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.rs"), []byte("fn main() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.py"), []byte("pass"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(""), 0o644))

	rsFiles := WalkSourceFiles(dir, []string{"rs"})
	require.Len(t, rsFiles, 1)
	assert.True(t, filepath.Base(rsFiles[0]) == "test.rs")

	multi := WalkSourceFiles(dir, []string{"rs", "py"})
	assert.Len(t, multi, 2)

	assert.Empty(t, WalkSourceFiles(dir, []string{"go"}))
}

func TestWalkSourceFilesSkipsDirs(t *testing.T) {
	dir := t.TempDir()
	targetDir := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(targetDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(targetDir, "ignored.rs"), []byte("x"), 0o644))

	hiddenDir := filepath.Join(dir, ".hidden")
	require.NoError(t, os.Mkdir(hiddenDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(hiddenDir, "secret.rs"), []byte("x"), 0o644))

	srcDir := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "main.rs"), []byte("x"), 0o644))

	files := WalkSourceFiles(dir, []string{"rs"})
	require.Len(t, files, 1)
	assert.Equal(t, "main.rs", filepath.Base(files[0]))
}

func TestWalkDirs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "inner"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))

	dirs := WalkDirs(dir)
	assert.Contains(t, dirs, dir)
	assert.Contains(t, dirs, filepath.Join(dir, "src"))
	assert.Contains(t, dirs, filepath.Join(dir, "src", "inner"))
	assert.NotContains(t, dirs, filepath.Join(dir, "node_modules"))
}
