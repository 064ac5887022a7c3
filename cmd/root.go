package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ai-code-reviewer-go/internal/config"
	"ai-code-reviewer-go/prompts"
)

// 全サブコマンドで共有する永続フラグです。
var (
	rootPath         string
	backendName      string
	modelName        string
	promptType       string
	customPromptFile string
	extensions       []string
	logFile          string
	debounceMs       int
	verbose          bool
)

// ReviewConfig は PersistentPreRunE で構築され、各サブコマンドが参照します。
var ReviewConfig config.Config

// RootCmd はアプリケーションのベースコマンド（"ai-code-reviewer" 本体）です。
var RootCmd = &cobra.Command{
	Use:   "ai-code-reviewer",
	Short: "AIを使ってソースコードの変更を自動レビューするCLIツール",
	Long: `このツールは、ファイルの変更（git差分またはファイル全体）をAIバックエンドに渡してコードレビューを行います。

利用可能なサブコマンド:
  review   (単一ファイルのレビュー)
  scan     (ディレクトリ全体の一括レビュー)
  watch    (ファイル監視による継続レビュー)
  slack    (監視レビュー + Slack投稿)
  backlog  (単一ファイルのレビュー + Backlogコメント投稿)
  gcs-save (単一ファイルのレビュー + GCS保存)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		return buildConfig()
	},
	// ベースコマンド自体は処理を持たず、サブコマンドへ処理を委譲します。
	Run: func(cmd *cobra.Command, args []string) {
		// 引数なしで実行された場合などにヘルプを表示
		cmd.Help()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&rootPath, "path", "p", ".", "レビュー・監視対象のルートディレクトリ")
	RootCmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "gemini", "使用するAIバックエンド (gemini / claude)")
	RootCmd.PersistentFlags().StringVarP(&modelName, "model", "m", "", "バックエンドに渡すモデル名 (省略時はバックエンドのデフォルト)")
	RootCmd.PersistentFlags().StringVar(&promptType, "prompt", string(prompts.TypeDefault), "レビュープロンプトの種別 (default / quick / security / architecture)")
	RootCmd.PersistentFlags().StringVar(&customPromptFile, "custom-prompt-file", "", "カスタムプロンプトテンプレートのファイルパス (指定時は --prompt より優先)")
	RootCmd.PersistentFlags().StringSliceVarP(&extensions, "extensions", "e", nil, "認識対象の拡張子 (例: go,rs,py。省略時はデフォルトセット)")
	RootCmd.PersistentFlags().StringVarP(&logFile, "log-file", "l", "", "レビュー結果を追記するJSONLログファイル")
	RootCmd.PersistentFlags().IntVar(&debounceMs, "debounce-ms", 500, "同一ファイルの連続イベントを抑制する間隔 (ミリ秒)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを有効にする")
}

// setupLogger は --verbose に応じたログレベルで slog を初期化します。
func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// buildConfig はフラグから検証済みの設定を構築します。
func buildConfig() error {
	opts := []config.Option{
		config.WithBackend(backendName),
		config.WithPromptType(prompts.Type(promptType)),
		config.WithDebounce(time.Duration(debounceMs) * time.Millisecond),
	}
	if modelName != "" {
		opts = append(opts, config.WithModel(modelName))
	}
	if len(extensions) > 0 {
		opts = append(opts, config.WithExtensions(extensions))
	}
	if logFile != "" {
		opts = append(opts, config.WithLogFile(logFile))
	}
	if customPromptFile != "" {
		data, err := os.ReadFile(customPromptFile)
		if err != nil {
			return fmt.Errorf("カスタムプロンプトファイルの読み込みに失敗しました: %w", err)
		}
		opts = append(opts, config.WithCustomTemplate(string(data)))
	}

	cfg, err := config.New(rootPath, opts...)
	if err != nil {
		return err
	}
	ReviewConfig = cfg
	return nil
}

// Execute はルートコマンドを実行し、アプリケーションを起動します。
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// エラー発生時にエラーメッセージを出力し、終了コード1で終了
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
