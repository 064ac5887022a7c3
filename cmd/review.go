package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ai-code-reviewer-go/internal/builder"
	"ai-code-reviewer-go/internal/review"
)

// reviewCmd は、指定された1ファイルをAIでレビューし、結果を標準出力に出力するコマンドです。
var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "単一ファイルのコードレビューを実行し、その結果を標準出力に出力します。",
	Long:  `このコマンドは、指定されたファイルのgit差分（取得できない場合はファイル全体）をAIでレビューし、その結果を標準出力に直接表示します。外部サービスとの連携は行いません。`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := builder.BuildEngine(cmd.Context(), ReviewConfig)
		if err != nil {
			return err
		}

		result, err := engine.ReviewFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printResult(result)
		return nil
	},
}

// printResult はレビュー結果を標準出力に整形して出力します。
// NOTE: このセクションは標準出力に結果を出すというコア機能のため、fmt.Println を維持
func printResult(r review.Result) {
	fmt.Printf("\n--- AI レビュー結果: %s (severity: %s) ---\n", r.FileName, r.Severity)
	fmt.Println(r.Review)
	fmt.Println("------------------------------")
}

func init() {
	RootCmd.AddCommand(reviewCmd)
}
