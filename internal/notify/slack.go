// Package notify はレビュー結果の外部通知（Slack・Backlog）を提供します。
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"ai-code-reviewer-go/internal/classifier"
	"ai-code-reviewer-go/internal/review"
)

// SlackClient は Incoming Webhook 経由でレビュー結果をSlackへ投稿するクライアントです。
type SlackClient struct {
	WebhookURL string
	httpClient *http.Client
}

// NewSlackClient は SlackClient の新しいインスタンスを作成します。
func NewSlackClient(webhookURL string) *SlackClient {
	return &SlackClient{
		WebhookURL: webhookURL,
		httpClient: &http.Client{
			// ネットワークのハングアップを防ぐため、10秒のタイムアウトを設定
			Timeout: 10 * time.Second,
		},
	}
}

// severityIcon は通知テキストに使う深刻度アイコンを返します。
func severityIcon(s classifier.Severity) string {
	switch s {
	case classifier.SeverityError:
		return "🚨"
	case classifier.SeverityWarning:
		return "⚠"
	case classifier.SeverityInfo:
		return "💡"
	default:
		return "✅"
	}
}

// PostResult は1件のレビュー結果を Slack チャンネルに投稿します。
func (c *SlackClient) PostResult(r review.Result) error {
	// 1. 通知用の代替テキストを構築
	notificationText := fmt.Sprintf(
		"%s AI レビュー完了: `%s` (severity: %s)",
		severityIcon(r.Severity),
		r.FileName,
		r.Severity,
	)

	// 2. Block Kitコンポーネントの構築
	headerBlock := slack.NewHeaderBlock(
		slack.NewTextBlockObject("plain_text", "🤖 AI Code Review Result:", true, false),
	)

	fileBlock := slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*ファイル:* `%s`\n*深刻度:* %s %s", r.FilePath, severityIcon(r.Severity), r.Severity), false, false),
		nil,
		nil,
	)

	reviewBlock := slack.NewSectionBlock(
		slack.NewTextBlockObject("mrkdwn", r.Review, false, false),
		nil, // Fields (列) は使用しない
		nil, // Accessory (ボタンなど) は使用しない
	)

	blocks := []slack.Block{headerBlock, fileBlock, reviewBlock}

	// 3. Webhook用のペイロードを構築
	msg := slack.WebhookMessage{
		Text: notificationText,
		Blocks: &slack.Blocks{
			BlockSet: blocks,
		},
	}

	// 4. JSONペイロードに変換
	jsonPayload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("Slackペイロードの変換に失敗しました: %w", err)
	}

	// 5. HTTPリクエスト処理
	resp, err := c.httpClient.Post(c.WebhookURL, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("Slackへの投稿に失敗しました: %w", err)
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("Slack APIレスポンスのクローズに失敗しました", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack APIが異常ステータスを返しました: %s", resp.Status)
	}

	return nil
}
