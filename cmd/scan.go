package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"ai-code-reviewer-go/internal/builder"
	"ai-code-reviewer-go/internal/fsutil"
	"ai-code-reviewer-go/internal/review"
)

var failOnIssues bool

// scanCmd は、ルートディレクトリ以下の全ソースファイルを一括レビューするコマンドです。
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "ルートディレクトリ以下のソースファイルをすべてレビューし、サマリーを出力します。",
	Long:  `このコマンドは、--path で指定されたディレクトリを再帰的に走査し、認識対象の拡張子を持つ全ファイルをAIでレビューします。CIでの一括チェックを想定しています。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := builder.BuildEngine(cmd.Context(), ReviewConfig)
		if err != nil {
			return err
		}

		files := fsutil.WalkSourceFiles(ReviewConfig.RootPath, ReviewConfig.Extensions)
		if len(files) == 0 {
			slog.Info("レビュー対象のファイルが見つかりませんでした。", "path", ReviewConfig.RootPath)
			return nil
		}
		slog.Info("一括レビューを開始します。", "path", ReviewConfig.RootPath, "files", len(files))

		var summary review.Summary
		for _, file := range files {
			result, err := engine.ReviewFile(cmd.Context(), file)
			if err != nil {
				slog.Warn("ファイルのレビューに失敗しました。", "file", file, "error", err)
				summary.Add(review.NewErrorResult(file, err))
				continue
			}
			summary.Add(result)
			if result.HasIssues {
				printResult(result)
			}
		}

		fmt.Println(summary.String())

		if failOnIssues && !summary.AllPassed() {
			return fmt.Errorf("警告またはエラー相当の指摘が検出されました（警告 %d / エラー %d）", summary.Warnings, summary.Errors)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "指摘が1件でもあれば終了コード1で終了する (CI向け)")
}
