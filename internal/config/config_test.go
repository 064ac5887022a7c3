package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-code-reviewer-go/prompts"
)

func TestNewDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.RootPath)
	assert.Equal(t, "gemini", cfg.Backend)
	assert.Equal(t, prompts.TypeDefault, cfg.PromptType)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.Contains(t, cfg.Extensions, "go")
	assert.Contains(t, cfg.Extensions, "rs")
	assert.Empty(t, cfg.LogFile)
}

func TestNewMissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "no-such-dir"))
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestNewPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o644))

	_, err := New(file)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestWithExtensionsNormalizes(t *testing.T) {
	cfg, err := New(t.TempDir(), WithExtensions([]string{".Go", "RS", " py "}))
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rs", "py"}, cfg.Extensions)
}

func TestNewEmptyExtensions(t *testing.T) {
	_, err := New(t.TempDir(), WithExtensions(nil))
	assert.ErrorIs(t, err, ErrNoExtensions)
}

func TestCustomTemplateRequired(t *testing.T) {
	_, err := New(t.TempDir(), WithPromptType(prompts.TypeCustom))
	assert.ErrorIs(t, err, ErrMissingTemplate)
}

func TestCustomTemplateValidated(t *testing.T) {
	_, err := New(t.TempDir(), WithCustomTemplate("レビュー対象: {file_name}\n{unknown_token}"))
	assert.ErrorIs(t, err, prompts.ErrInvalidTemplate)
}

func TestCustomTemplateAccepted(t *testing.T) {
	cfg, err := New(t.TempDir(), WithCustomTemplate("{file_name} をレビューしてください:\n{content}"))
	require.NoError(t, err)
	assert.Equal(t, prompts.TypeCustom, cfg.PromptType)

	tmpl, err := cfg.Template()
	require.NoError(t, err)
	assert.Contains(t, tmpl, "{content}")
}

func TestTemplateForBuiltinType(t *testing.T) {
	cfg, err := New(t.TempDir(), WithPromptType(prompts.TypeSecurity))
	require.NoError(t, err)

	tmpl, err := cfg.Template()
	require.NoError(t, err)
	assert.NotEmpty(t, tmpl)
}

func TestNewInvalidDebounce(t *testing.T) {
	_, err := New(t.TempDir(), WithDebounce(-1*time.Second))
	assert.Error(t, err)
}
