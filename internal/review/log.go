package review

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Log はレビュー結果をJSONL形式（1行1レコード）で追記するロガーです。
// 複数ゴルーチンからの Append を直列化するため、内部でミューテックスを保持します。
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog は指定パスへ追記するレビューログを生成します。
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append は結果を1行のJSONとしてログファイル末尾に追記します。
// ファイルが存在しない場合は作成します。
func (l *Log) Append(r Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("レビュー結果のJSON変換に失敗しました: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("レビューログ '%s' を開けませんでした: %w", l.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("レビューログへの書き込みに失敗しました: %w", err)
	}
	return nil
}
