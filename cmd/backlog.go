package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"ai-code-reviewer-go/internal/builder"
	"ai-code-reviewer-go/internal/notify"
)

// backlogCmd 固有のフラグ変数のみを定義
var (
	backlogIssueID string
	noPostBacklog  bool
)

// backlogCmd は、レビュー結果を Backlog にコメントとして投稿するコマンドです。
var backlogCmd = &cobra.Command{
	Use:   "backlog <file>",
	Short: "単一ファイルのコードレビューを実行し、その結果をBacklogにコメントとして投稿します。",
	Long:  `このコマンドは、指定されたファイルをAIでレビューし、その結果をBacklogの指定された課題にコメントとして自動で投稿します。環境変数 BACKLOG_API_KEY と BACKLOG_SPACE_URL の設定が必要です。`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBacklogCommand,
}

func init() {
	RootCmd.AddCommand(backlogCmd)

	// Backlog 固有のフラグのみをここで定義する
	backlogCmd.Flags().StringVar(&backlogIssueID, "issue-id", "", "コメントを投稿するBacklog課題ID（例: PROJECT-123）")
	backlogCmd.Flags().BoolVar(&noPostBacklog, "no-post", false, "投稿をスキップし、結果を標準出力する")
}

// runBacklogCommand はコマンドの主要な実行ロジックを含みます。
func runBacklogCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. レビューを実行
	engine, err := builder.BuildEngine(ctx, ReviewConfig)
	if err != nil {
		return err
	}

	result, err := engine.ReviewFile(ctx, args[0])
	if err != nil {
		return err
	}

	// 2. no-post フラグによる出力分岐
	if noPostBacklog {
		printResult(result)
		return nil
	}

	if backlogIssueID == "" {
		return fmt.Errorf("--issue-id フラグが指定されていません。Backlogに投稿するには必須です。")
	}

	// 3. Backlog投稿を実行
	backlogClient, err := notify.NewBacklogClient()
	if err != nil {
		return err
	}

	fmt.Printf("📤 Backlog 課題 ID: %s にレビュー結果を投稿します...\n", backlogIssueID)
	if err := backlogClient.PostResult(ctx, backlogIssueID, result); err != nil {
		// 投稿に失敗した場合、エラーログを出力し、レビュー結果をコンソールに出力
		slog.Error("Backlog へのコメント投稿に失敗しました。", "issue_id", backlogIssueID, "error", err)
		printResult(result)
		return fmt.Errorf("Backlog課題 %s へのコメント投稿に失敗しました。詳細は上記レビュー結果を確認してください。", backlogIssueID)
	}

	fmt.Printf("✅ レビュー結果を Backlog 課題 ID: %s に投稿しました。\n", backlogIssueID)
	return nil
}
