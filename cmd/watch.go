package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ai-code-reviewer-go/internal/builder"
	"ai-code-reviewer-go/internal/review"
)

// watchCmd は、ファイル変更を監視して継続的にレビューを実行するコマンドです。
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "ファイル変更を監視し、保存のたびにコードレビューを実行します。",
	Long:  `このコマンドは、--path で指定されたディレクトリを再帰的に監視し、認識対象ファイルの作成・変更を検知するたびにAIレビューを実行して結果を標準出力に表示します。Ctrl+C で停止します。`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine, err := builder.BuildEngine(ctx, ReviewConfig)
		if err != nil {
			return err
		}

		engine.OnReview(func(r review.Result) {
			printResult(r)
		})

		if err := engine.Start(); err != nil {
			return err
		}
		defer engine.Stop()

		fmt.Printf("👀 %s を監視しています。ファイルを保存するとレビューが実行されます (Ctrl+C で終了)...\n", ReviewConfig.RootPath)

		<-ctx.Done()
		slog.Info("終了シグナルを受信しました。監視を停止します。")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
