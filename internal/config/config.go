package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ai-code-reviewer-go/internal/backend"
	"ai-code-reviewer-go/internal/fsutil"
	"ai-code-reviewer-go/prompts"
)

// デフォルトのデバウンス間隔。エディタ保存時の連続書き込みイベントを1回にまとめます。
const DefaultDebounce = 500 * time.Millisecond

// 設定エラーの分類です。errors.Is で判別できます。
var (
	// ErrPathNotFound は監視対象のルートパスが存在しない場合のエラーです。
	ErrPathNotFound = errors.New("指定されたパスは存在しません")
	// ErrNotADirectory はルートパスがディレクトリでない場合のエラーです。
	ErrNotADirectory = errors.New("指定されたパスはディレクトリではありません")
	// ErrMissingTemplate はカスタムプロンプト種別なのにテンプレートが未指定の場合のエラーです。
	ErrMissingTemplate = errors.New("カスタムプロンプトにはテンプレートの指定が必須です")
	// ErrNoExtensions は認識対象の拡張子が空の場合のエラーです。
	ErrNoExtensions = errors.New("認識対象の拡張子が1つも指定されていません")
)

// Config はAIコードレビューに必要なすべての設定を含む不変の構造体です。
// New で検証済みの状態で生成され、以後変更されません。
type Config struct {
	// RootPath は監視・レビュー対象のルートディレクトリです。
	RootPath string
	// Backend は使用するAIバックエンドの識別名です。
	Backend string
	// Model はバックエンドに渡すモデル名です。
	Model string
	// PromptType はレビュープロンプトの種別です。
	PromptType prompts.Type
	// CustomTemplate は PromptType が custom のときに使用するテンプレートです。
	CustomTemplate string
	// Extensions は認識対象の拡張子セット（ドットなし・小文字）です。
	Extensions []string
	// LogFile はレビュー結果を追記するログファイルのパスです。空なら記録しません。
	LogFile string
	// Debounce は同一パスの連続イベントを抑制する間隔です。
	Debounce time.Duration
}

// Option は Config の初期化オプションを設定するための関数です。
type Option func(*Config)

// WithBackend は使用するAIバックエンドを設定します。
func WithBackend(name string) Option {
	return func(c *Config) { c.Backend = name }
}

// WithModel はバックエンドに渡すモデル名を設定します。
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithPromptType はレビュープロンプトの種別を設定します。
func WithPromptType(t prompts.Type) Option {
	return func(c *Config) { c.PromptType = t }
}

// WithCustomTemplate はカスタムテンプレートを設定し、種別を custom に切り替えます。
func WithCustomTemplate(template string) Option {
	return func(c *Config) {
		c.PromptType = prompts.TypeCustom
		c.CustomTemplate = template
	}
}

// WithExtensions は認識対象の拡張子を設定します。
// 先頭のドットは取り除かれ、小文字に正規化されます。
func WithExtensions(exts []string) Option {
	return func(c *Config) {
		normalized := make([]string, 0, len(exts))
		for _, e := range exts {
			e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
			if e != "" {
				normalized = append(normalized, e)
			}
		}
		c.Extensions = normalized
	}
}

// WithLogFile はレビュー結果の追記先ログファイルを設定します。
func WithLogFile(path string) Option {
	return func(c *Config) { c.LogFile = path }
}

// WithDebounce はデバウンス間隔を設定します。
func WithDebounce(d time.Duration) Option {
	return func(c *Config) { c.Debounce = d }
}

// New は検証済みの Config を生成します。
// ルートパスの存在、拡張子セットの非空、カスタムテンプレートの妥当性を
// この時点で確認するため、エンジンの起動後に設定エラーが発覚することはありません。
func New(rootPath string, opts ...Option) (Config, error) {
	cfg := Config{
		RootPath:   rootPath,
		Backend:    backend.DefaultName(),
		PromptType: prompts.TypeDefault,
		Extensions: append([]string(nil), fsutil.SourceExtensions...),
		Debounce:   DefaultDebounce,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	info, err := os.Stat(c.RootPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, c.RootPath)
	}
	if err != nil {
		return fmt.Errorf("パス '%s' の情報取得に失敗しました: %w", c.RootPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, c.RootPath)
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}

	if c.PromptType == prompts.TypeCustom {
		if strings.TrimSpace(c.CustomTemplate) == "" {
			return ErrMissingTemplate
		}
		if err := prompts.ValidateTemplate(c.CustomTemplate); err != nil {
			return err
		}
	} else if _, err := prompts.TemplateFor(c.PromptType); err != nil {
		return err
	}

	if c.Debounce <= 0 {
		return fmt.Errorf("デバウンス間隔は正の値である必要があります: %v", c.Debounce)
	}

	return nil
}

// Template はプロンプト種別に応じたテンプレート文字列を返します。
func (c Config) Template() (string, error) {
	if c.PromptType == prompts.TypeCustom {
		return c.CustomTemplate, nil
	}
	return prompts.TemplateFor(c.PromptType)
}
