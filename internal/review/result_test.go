package review

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-code-reviewer-go/internal/classifier"
)

func TestNewResultClassifies(t *testing.T) {
	r := NewResult("/src/auth.rs", "⚠ 警告: 責務が混在しています")

	assert.Equal(t, "/src/auth.rs", r.FilePath)
	assert.Equal(t, "auth.rs", r.FileName)
	assert.True(t, r.HasIssues)
	assert.Equal(t, classifier.SeverityWarning, r.Severity)
	assert.False(t, r.Timestamp.IsZero())
	assert.False(t, r.IsPassed())
	assert.False(t, r.IsCritical())
}

func TestNewResultClean(t *testing.T) {
	r := NewResult("main.go", "✓ 問題ありません")

	assert.False(t, r.HasIssues)
	assert.Equal(t, classifier.SeverityOK, r.Severity)
	assert.True(t, r.IsPassed())
}

func TestNewErrorResult(t *testing.T) {
	r := NewErrorResult("broken.py", errors.New("バックエンドが利用できません"))

	assert.True(t, r.HasIssues)
	assert.Equal(t, classifier.SeverityError, r.Severity)
	assert.True(t, r.IsCritical())
	assert.Contains(t, r.Review, "バックエンドが利用できません")
}

func TestResultJSONShape(t *testing.T) {
	r := NewResult("a.go", "💡 提案: 命名を見直してください")
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "path")
	assert.Contains(t, m, "name")
	assert.Contains(t, m, "review")
	assert.Contains(t, m, "timestamp")
	assert.Contains(t, m, "has_issues")
	assert.Contains(t, m, "severity")
	assert.NotContains(t, m, "reviewed_content", "空のときは省略される")

	data, err = json.Marshal(r.WithContent("diff --git a/a.go b/a.go"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, m, "reviewed_content")
}

func TestSummary(t *testing.T) {
	var s Summary
	s.Add(NewResult("a.go", "✓ 問題ありません"))
	s.Add(NewResult("b.go", "⚠ 警告があります"))
	s.Add(NewResult("c.go", "🚨 重大な問題があります"))
	s.Add(NewResult("d.go", "💡 提案があります"))

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Passed)
	assert.Equal(t, 1, s.Warnings)
	assert.Equal(t, 1, s.Errors)
	assert.False(t, s.AllPassed())
	assert.Contains(t, s.String(), "全4件")

	var clean Summary
	clean.Add(NewResult("a.go", "問題ありません"))
	assert.True(t, clean.AllPassed())
}
