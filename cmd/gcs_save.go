package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-remote-io/pkg/factory"
	textbuilder "github.com/shouni/go-text-format/pkg/builder"

	"ai-code-reviewer-go/internal/builder"
	"ai-code-reviewer-go/internal/review"
)

// GcsSaveFlags は gcs-save コマンド固有のフラグを保持します。
type GcsSaveFlags struct {
	GCSURI      string // --gcs-uri 宛先 GCS URI (例: gs://bucket/path/to/result.md)
	ContentType string // --content-type GCSに保存する際のMIMEタイプ
	AsHTML      bool   // --html レビュー結果をスタイル付きHTMLに変換して保存する
}

var gcsSaveFlags GcsSaveFlags

// gcsSaveCmd は 'gcs-save' サブコマンドを定義します。
var gcsSaveCmd = &cobra.Command{
	Use:   "gcs-save <file>",
	Short: "AIレビューを実行し、その結果を指定されたGCS URIに保存します。",
	Long: `このコマンドは、指定されたファイルをAIでレビューし、その結果を go-remote-io を利用してGCSにアップロードします。
宛先 URI は '--gcs-uri' フラグで指定する必要があり、'gs://bucket-name/object-path' の形式である必要があります。`,
	Args: cobra.ExactArgs(1),
	RunE: runGcsSave,
}

func init() {
	RootCmd.AddCommand(gcsSaveCmd)

	// フラグの初期化
	gcsSaveCmd.Flags().StringVarP(&gcsSaveFlags.ContentType, "content-type", "t", "text/markdown; charset=utf-8", "GCSに保存する際のMIMEタイプ")
	gcsSaveCmd.Flags().StringVarP(&gcsSaveFlags.GCSURI, "gcs-uri", "s", "gs://ai-code-reviewer-go/ReviewResult/result.md", "GCSへ保存する際の宛先URI (例: gs://bucket/path/to/result.md)")
	gcsSaveCmd.Flags().BoolVar(&gcsSaveFlags.AsHTML, "html", false, "レビュー結果をスタイル付きHTMLに変換して保存する")
}

// runGcsSave は gcs-save コマンドの実行ロジックです。
func runGcsSave(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	gcsURI := gcsSaveFlags.GCSURI

	bucketName, objectPath, err := validateGcsURI(gcsURI)
	if err != nil {
		return err
	}

	// 1. AIレビューを実行し、結果を受け取る
	engine, err := builder.BuildEngine(ctx, ReviewConfig)
	if err != nil {
		return err
	}

	result, err := engine.ReviewFile(ctx, args[0])
	if err != nil {
		return fmt.Errorf("レビューの実行に失敗しました: %w", err)
	}

	// 2. ClientFactory の取得
	clientFactory, err := factory.NewClientFactory(ctx)
	if err != nil {
		return err
	}

	// 3. GCSOutputWriter の取得
	writer, err := clientFactory.NewOutputWriter()
	if err != nil {
		return fmt.Errorf("GCSOutputWriterの取得に失敗しました: %w", err)
	}

	// 4. レビュー結果をMarkdownに整形し、io.Reader に変換
	markdown := formatResultMarkdown(result)
	var contentReader io.Reader = strings.NewReader(markdown)
	contentType := gcsSaveFlags.ContentType

	// --html 指定時はスタイル付きHTMLに変換してから保存する
	if gcsSaveFlags.AsHTML {
		title := fmt.Sprintf("AIコードレビュー結果: %s", result.FileName)
		htmlBuffer, err := convertMarkdownToHTML(ctx, title, markdown)
		if err != nil {
			return fmt.Errorf("レビュー結果のHTML変換に失敗しました: %w", err)
		}
		contentReader = htmlBuffer
		contentType = "text/html; charset=utf-8"
	}

	// 5. GCSへの書き込み実行 (io.Reader を渡す)
	slog.Info("レビュー結果をGCSへアップロード中",
		"uri", gcsURI,
		"bucket", bucketName,
		"object", objectPath,
		"content_type", contentType)

	if err := writer.WriteToGCS(ctx, bucketName, objectPath, contentReader, contentType); err != nil {
		return fmt.Errorf("GCSへの書き込みに失敗しました (URI: %s): %w", gcsURI, err)
	}

	slog.Info("GCSへのアップロードが完了しました", "uri", gcsURI)
	return nil
}

// formatResultMarkdown はGCSへ保存するMarkdownドキュメントを組み立てます。
func formatResultMarkdown(r review.Result) string {
	return fmt.Sprintf(
		"# AIコードレビュー結果: %s\n\n**対象ファイル:** `%s`\n**深刻度:** %s\n**実行時刻:** %s\n\n---\n\n%s\n",
		r.FileName,
		r.FilePath,
		r.Severity,
		r.Timestamp.Format("2006-01-02 15:04:05"),
		r.Review,
	)
}

// convertMarkdownToHTML はMarkdown形式の入力データを受け取り、HTML形式のデータに変換します。
func convertMarkdownToHTML(ctx context.Context, title string, markdown string) (*bytes.Buffer, error) {
	htmlBuilder, err := textbuilder.NewBuilder()
	if err != nil {
		return nil, err
	}

	mk2html, err := htmlBuilder.BuildMarkdownToHtmlRunner()
	if err != nil {
		return nil, err
	}

	return mk2html.ConvertMarkdownToHtml(ctx, title, []byte(markdown))
}

// validateGcsURI は GCS URIの検証と解析を行うヘルパー関数です。
func validateGcsURI(gcsURI string) (bucketName, objectPath string, err error) {
	if !strings.HasPrefix(gcsURI, "gs://") {
		return "", "", fmt.Errorf("無効なGCS URIです。'gs://' で始まる必要があります: %s", gcsURI)
	}
	pathWithoutScheme := gcsURI[5:]
	parts := strings.SplitN(pathWithoutScheme, "/", 2)

	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("無効なGCS URIフォーマットです。バケット名とオブジェクトパスが不足しています: %s", gcsURI)
	}
	return parts[0], parts[1], nil
}
