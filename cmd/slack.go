package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ai-code-reviewer-go/internal/builder"
	"ai-code-reviewer-go/internal/notify"
	"ai-code-reviewer-go/internal/review"
)

// slackCmd 固有のフラグ変数を定義
var (
	slackWebhookURL string
	noPostSlack     bool
)

// slackCmd は、監視レビューの結果を Slack にメッセージとして投稿するコマンドです。
var slackCmd = &cobra.Command{
	Use:   "slack",
	Short: "ファイル監視レビューを実行し、その結果をSlackの指定されたチャンネルに投稿します。",
	Long:  `このコマンドは watch と同様にファイル変更を監視しますが、レビュー結果を標準出力に加えて Slack Incoming Webhook へ投稿します。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Webhook URL の確認
		if !noPostSlack && slackWebhookURL == "" {
			return fmt.Errorf("--slack-webhook-url フラグまたは SLACK_WEBHOOK_URL 環境変数の設定が必須です")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine, err := builder.BuildEngine(ctx, ReviewConfig)
		if err != nil {
			return err
		}

		// 2. オブザーバの登録: 標準出力 + Slack投稿
		var slackClient *notify.SlackClient
		if !noPostSlack {
			slackClient = notify.NewSlackClient(slackWebhookURL)
		}
		engine.OnReview(func(r review.Result) {
			printResult(r)
			if slackClient == nil {
				return
			}
			if err := slackClient.PostResult(r); err != nil {
				slog.Error("Slack へのレビュー結果投稿に失敗しました。", "file", r.FileName, "error", err)
				return
			}
			slog.Info("レビュー結果を Slack に投稿しました。", "file", r.FileName)
		})

		if err := engine.Start(); err != nil {
			return err
		}
		defer engine.Stop()

		fmt.Printf("👀 %s を監視しています。レビュー結果は Slack に投稿されます (Ctrl+C で終了)...\n", ReviewConfig.RootPath)

		<-ctx.Done()
		slog.Info("終了シグナルを受信しました。監視を停止します。")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(slackCmd)

	// Slack 固有のフラグ
	slackCmd.Flags().StringVar(
		&slackWebhookURL,
		"slack-webhook-url",
		os.Getenv("SLACK_WEBHOOK_URL"),
		"レビュー結果を投稿する Slack Webhook URL。",
	)
	slackCmd.Flags().BoolVar(&noPostSlack, "no-post", false, "投稿をスキップし、結果を標準出力する")
}
