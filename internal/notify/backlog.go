package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"ai-code-reviewer-go/internal/review"
)

// BacklogClient はBacklog APIとの通信を管理します。
type BacklogClient struct {
	baseURL    string // 例: https://your-space.backlog.jp/api/v2
	apiKey     string
	httpClient *http.Client
}

// NewBacklogClient は環境変数からBacklogClientを初期化します。
// BACKLOG_API_KEY と BACKLOG_SPACE_URL の両方が必要です。
func NewBacklogClient() (*BacklogClient, error) {
	apiKey := os.Getenv("BACKLOG_API_KEY")
	spaceURL := os.Getenv("BACKLOG_SPACE_URL")

	if apiKey == "" || spaceURL == "" {
		return nil, fmt.Errorf("Backlog連携には環境変数 BACKLOG_API_KEY と BACKLOG_SPACE_URL の設定が必要です")
	}

	return &BacklogClient{
		baseURL: fmt.Sprintf("%s/api/v2", spaceURL),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// PostResult はレビュー結果を指定された課題IDのコメントとして投稿します。
// issueID は課題キー (例: PROJECT-123) または課題ID (数値) のどちらでも可。
func (c *BacklogClient) PostResult(ctx context.Context, issueID string, r review.Result) error {
	content := fmt.Sprintf("## AIコードレビュー結果: %s\n\n深刻度: %s\n\n%s", r.FileName, r.Severity, r.Review)
	return c.PostComment(ctx, issueID, content)
}

// PostComment は指定された課題IDにコメントを投稿します。
func (c *BacklogClient) PostComment(ctx context.Context, issueID string, content string) error {
	endpoint := fmt.Sprintf("/issues/%s/comments?apiKey=%s", issueID, c.apiKey)
	fullURL := c.baseURL + endpoint

	commentData := map[string]string{
		"content": content,
	}
	jsonBody, err := json.Marshal(commentData)
	if err != nil {
		return fmt.Errorf("コメントデータの変換に失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("Backlogリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("Backlogへの投稿に失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Backlog APIがステータスコード %d を返しました (課題 %s)", resp.StatusCode, issueID)
	}

	return nil
}
