package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		severity  Severity
		hasIssues bool
	}{
		{"empty", "", SeverityOK, false},
		{"no markers", "問題なし。良いコードです。", SeverityOK, false},
		{"critical english", "CRITICAL: null pointer dereference", SeverityError, true},
		{"fatal", "Fatal flaw in the locking order", SeverityError, true},
		{"critical japanese", "🚨 重大な問題があります", SeverityError, true},
		{"warning english", "Warning: unused variable", SeverityWarning, true},
		{"warning japanese", "警告: 責務が混在しています", SeverityWarning, true},
		{"warning emoji", "⚠ 関数が長すぎます", SeverityWarning, true},
		{"info", "info: consider renaming", SeverityInfo, false},
		{"suggestion japanese", "💡 提案: 関数を分割してください", SeverityInfo, false},
		{"suggestion english", "suggestion: extract a helper", SeverityInfo, false},
		{"case insensitive", "wArNiNg here", SeverityWarning, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasIssues, severity := Classify(tt.text)
			assert.Equal(t, tt.severity, severity)
			assert.Equal(t, tt.hasIssues, hasIssues)
		})
	}
}

// critical と warning の両方を含むテキストは critical が優先される。
func TestClassifyMarkerPrecedence(t *testing.T) {
	hasIssues, severity := Classify("warning: minor issue / critical: data loss")
	assert.Equal(t, SeverityError, severity)
	assert.True(t, hasIssues)
}

// 同じテキストに対する分類は常に同一の結果になる。
func TestClassifyDeterminism(t *testing.T) {
	texts := []string{"", "警告: x", "🚨", "ただのコメント", "💡 提案"}
	for _, text := range texts {
		h1, s1 := Classify(text)
		h2, s2 := Classify(text)
		assert.Equal(t, s1, s2)
		assert.Equal(t, h1, h2)
	}
}

func TestHasIssues(t *testing.T) {
	assert.False(t, HasIssues(SeverityOK))
	assert.False(t, HasIssues(SeverityInfo))
	assert.True(t, HasIssues(SeverityWarning))
	assert.True(t, HasIssues(SeverityError))
}
