package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultName(t *testing.T) {
	assert.Equal(t, "gemini", DefaultName())
	assert.Contains(t, Names(), "claude")
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), "chatgpt", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chatgpt")
}

func TestNewGeminiRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := NewGemini(context.Background(), "gemini-2.5-flash")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClaudeMissingBinary(t *testing.T) {
	c := &Claude{bin: "definitely-not-an-installed-command-xyz"}
	_, err := c.Invoke(context.Background(), "レビューしてください")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClaudeName(t *testing.T) {
	assert.Equal(t, "claude", NewClaude("").Name())
}
