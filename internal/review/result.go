package review

import (
	"fmt"
	"path/filepath"
	"time"

	"ai-code-reviewer-go/internal/classifier"
)

// Result は1ファイルに対するレビューの結果です。
// JSONLログやSlack通知など、すべての出力面でこの構造体を共有します。
type Result struct {
	// FilePath はレビュー対象ファイルの絶対または相対パスです。
	FilePath string `json:"path"`
	// FileName はパスの末尾要素です。
	FileName string `json:"name"`
	// Review はAIバックエンドが返したレビュー本文です。
	Review string `json:"review"`
	// Timestamp はレビュー完了時刻です。
	Timestamp time.Time `json:"timestamp"`
	// HasIssues は警告またはエラー相当の指摘が含まれるかを示します。
	HasIssues bool `json:"has_issues"`
	// Severity は指摘の深刻度です。
	Severity classifier.Severity `json:"severity"`
	// ReviewedContent はレビューに使用した入力（差分またはファイル全体）です。
	ReviewedContent string `json:"reviewed_content,omitempty"`
}

// NewResult はレビュー本文を分類し、タイムスタンプを付与した Result を生成します。
func NewResult(path, reviewText string) Result {
	hasIssues, severity := classifier.Classify(reviewText)
	return Result{
		FilePath:  path,
		FileName:  filepath.Base(path),
		Review:    reviewText,
		Timestamp: time.Now(),
		HasIssues: hasIssues,
		Severity:  severity,
	}
}

// NewErrorResult はレビュー実行自体の失敗をエラー深刻度の Result として合成します。
// 監視セッションではエラーを呼び出し元へ返せないため、この形でオブザーバへ届けます。
func NewErrorResult(path string, err error) Result {
	return Result{
		FilePath:  path,
		FileName:  filepath.Base(path),
		Review:    fmt.Sprintf("レビューの実行に失敗しました: %v", err),
		Timestamp: time.Now(),
		HasIssues: true,
		Severity:  classifier.SeverityError,
	}
}

// WithContent はレビューに使用した入力を記録した複製を返します。
func (r Result) WithContent(content string) Result {
	r.ReviewedContent = content
	return r
}

// IsPassed は指摘なし（OKまたは情報のみ）かどうかを返します。
func (r Result) IsPassed() bool {
	return !r.HasIssues
}

// IsCritical はエラー深刻度かどうかを返します。
func (r Result) IsCritical() bool {
	return r.Severity == classifier.SeverityError
}

// Summary は複数ファイルのレビュー結果を集計します。scan コマンドが使用します。
type Summary struct {
	Total    int
	Passed   int
	Warnings int
	Errors   int
}

// Add は結果を1件集計に加えます。
func (s *Summary) Add(r Result) {
	s.Total++
	switch {
	case r.Severity == classifier.SeverityError:
		s.Errors++
	case r.Severity == classifier.SeverityWarning:
		s.Warnings++
	default:
		s.Passed++
	}
}

// AllPassed は警告もエラーも無かったかどうかを返します。
func (s *Summary) AllPassed() bool {
	return s.Warnings == 0 && s.Errors == 0
}

// String はスキャン結果のサマリーを日本語1行で返します。
func (s *Summary) String() string {
	return fmt.Sprintf("レビュー完了: 全%d件（合格 %d / 警告 %d / エラー %d）",
		s.Total, s.Passed, s.Warnings, s.Errors)
}
