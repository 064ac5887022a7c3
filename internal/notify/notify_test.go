package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-code-reviewer-go/internal/review"
)

func TestSlackPostResult(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewSlackClient(srv.URL)
	result := review.NewResult("/src/auth.rs", "⚠ 警告: 責務が混在しています")

	require.NoError(t, c.PostResult(result))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload["text"], "auth.rs")
	assert.Contains(t, payload, "blocks")
}

func TestSlackPostResultNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewSlackClient(srv.URL)
	err := c.PostResult(review.NewResult("a.go", "問題ありません"))
	assert.Error(t, err)
}

func TestBacklogPostComment(t *testing.T) {
	var path string
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	t.Setenv("BACKLOG_API_KEY", "test-key")
	t.Setenv("BACKLOG_SPACE_URL", srv.URL)

	c, err := NewBacklogClient()
	require.NoError(t, err)

	result := review.NewResult("main.go", "💡 提案: 命名を見直してください")
	require.NoError(t, c.PostResult(context.Background(), "PROJECT-123", result))

	assert.Equal(t, "/api/v2/issues/PROJECT-123/comments", path)

	var comment map[string]string
	require.NoError(t, json.Unmarshal(body, &comment))
	assert.Contains(t, comment["content"], "main.go")
}

func TestBacklogClientRequiresEnv(t *testing.T) {
	t.Setenv("BACKLOG_API_KEY", "")
	t.Setenv("BACKLOG_SPACE_URL", "")

	_, err := NewBacklogClient()
	assert.Error(t, err)
}
