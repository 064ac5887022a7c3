package backend

import (
	"context"
	"errors"
	"fmt"
)

// Reviewer は、AIバックエンドとの通信機能の抽象化を提供し、DIで使用されます。
// 実装は完成されたプロンプトを受け取り、レビューテキストのみを返します。
// リトライポリシーは呼び出し側の責務であり、このインターフェースの実装は
// 自動リトライを行いません（内包するクライアントライブラリ自身のリトライは除く）。
type Reviewer interface {
	// Invoke は完成されたプロンプトを基にAIにレビューを依頼します。
	Invoke(ctx context.Context, prompt string) (string, error)
	// Name はバックエンドの識別名を返します。
	Name() string
}

// バックエンド呼び出しのエラー分類です。errors.Is で判別できます。
var (
	// ErrUnavailable はバックエンドに到達できない場合のエラーです。
	ErrUnavailable = errors.New("バックエンドを利用できません")
	// ErrTimeout は呼び出しが時間内に完了しなかった場合のエラーです。
	ErrTimeout = errors.New("バックエンドの呼び出しがタイムアウトしました")
	// ErrNonZeroExit は外部コマンド型バックエンドが異常終了した場合のエラーです。
	ErrNonZeroExit = errors.New("バックエンドのコマンドが異常終了しました")
	// ErrMalformedOutput はバックエンドの出力が解釈できない場合のエラーです。
	ErrMalformedOutput = errors.New("バックエンドの出力が不正です")
)

// 登録済みバックエンドの識別名です。先頭の gemini がデフォルトになります。
var registered = []string{"gemini", "claude"}

// DefaultName はデフォルトで選択されるバックエンド名（先頭の登録名）を返します。
func DefaultName() string {
	return registered[0]
}

// Names は選択可能なバックエンド名の一覧を返します。
func Names() []string {
	return append([]string(nil), registered...)
}

// New は名前からバックエンドを構築します。
// エンジンは新しいバックエンドの追加から独立しているため、
// ここに実装を追加するだけで選択肢を拡張できます。
func New(ctx context.Context, name, model string) (Reviewer, error) {
	switch name {
	case "gemini", "google":
		return NewGemini(ctx, model)
	case "claude":
		return NewClaude(model), nil
	default:
		return nil, fmt.Errorf("無効なバックエンドが指定されました: '%s'。gemini または claude を選択してください", name)
	}
}
