// Package review はAIコードレビューの中核となるエンジンを提供します。
// 単発レビュー（ReviewFile）と継続監視（Start/Stop）の両方を同じ経路で処理し、
// 結果の分類・JSONLログ・オブザーバ通知までを担います。
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"ai-code-reviewer-go/internal/backend"
	"ai-code-reviewer-go/internal/config"
	"ai-code-reviewer-go/internal/gitdiff"
	"ai-code-reviewer-go/internal/watcher"
	"ai-code-reviewer-go/prompts"
)

// git diffが得られない場合にファイル全体レビューへ切り替える際の注記です。
const fullFileNote = "（注: git diffが取得できないため、ファイル全体を表示しています。変更点ではなくファイル全体をレビューしてください）"

var (
	// ErrStopped は停止済みエンジンへのレビュー要求に対するエラーです。
	ErrStopped = errors.New("レビューエンジンは停止しています")
	// ErrContentUnavailable はレビュー対象の内容を取得できない場合のエラーです。
	// パスが存在しない、読み取り権限がない、差分もファイル本体も空、のいずれも含みます。
	ErrContentUnavailable = errors.New("レビュー対象の内容を取得できませんでした")
	// ErrWatchStartFailed はファイル監視の開始に失敗した場合のエラーです。
	ErrWatchStartFailed = errors.New("ファイル監視の開始に失敗しました")
)

// Observer はレビュー結果を受け取るコールバックです。
// 監視中は1件のレビュー完了（または失敗の合成結果）ごとに呼び出されます。
type Observer func(Result)

// Engine はAIコードレビューのオーケストレーションを行います。
// バックエンドと差分プロバイダはインターフェース経由で注入されるため、
// テストではスタブに差し替えられます。
type Engine struct {
	cfg      config.Config
	reviewer backend.Reviewer
	differ   gitdiff.Provider
	template string
	log      *Log

	// バックエンド呼び出しを直列化するゲートです。
	backendMu sync.Mutex

	observerMu sync.RWMutex
	observer   Observer

	stateMu sync.Mutex
	stopped bool
	session *watcher.Session
}

// NewEngine は検証済みの設定と依存からエンジンを組み立てます。
// プロンプトテンプレートはこの時点で解決します。
func NewEngine(cfg config.Config, reviewer backend.Reviewer, differ gitdiff.Provider) (*Engine, error) {
	template, err := cfg.Template()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		reviewer: reviewer,
		differ:   differ,
		template: template,
	}
	if cfg.LogFile != "" {
		e.log = NewLog(cfg.LogFile)
	}
	return e, nil
}

// OnReview はレビュー結果の通知先を登録します。後から登録したものが有効になります。
// nil を渡すと通知を解除します。
func (e *Engine) OnReview(fn Observer) {
	e.observerMu.Lock()
	e.observer = fn
	e.observerMu.Unlock()
}

// ReviewFile は1ファイルをレビューし、分類済みの結果を返します。
// git差分が取得できればそれを、できなければファイル全体をレビュー対象とします。
// 成功した結果はログファイルが設定されていれば追記されます。
func (e *Engine) ReviewFile(ctx context.Context, path string) (Result, error) {
	e.stateMu.Lock()
	stopped := e.stopped
	e.stateMu.Unlock()
	if stopped {
		return Result{}, ErrStopped
	}

	content, diff, err := e.loadContent(path)
	if err != nil {
		return Result{}, err
	}

	prompt := prompts.Render(e.template, filepath.Base(path), content, diff)

	slog.Debug("レビューを開始します", "file", path, "backend", e.reviewer.Name())
	e.backendMu.Lock()
	text, err := e.reviewer.Invoke(ctx, prompt)
	e.backendMu.Unlock()
	if err != nil {
		return Result{}, fmt.Errorf("'%s' のレビューに失敗しました: %w", path, err)
	}

	result := NewResult(path, text).WithContent(content)
	slog.Info("レビューが完了しました", "file", result.FileName, "severity", result.Severity, "has_issues", result.HasIssues)

	if e.log != nil {
		if err := e.log.Append(result); err != nil {
			slog.Warn("レビューログの記録に失敗しました", "error", err)
		}
	}
	return result, nil
}

// loadContent はレビュー対象の内容を決定します。
// 差分が得られた場合は (差分, 差分) を、得られない場合は注記付きのファイル全体と
// 空の差分を返します。どちらも空の場合は ErrContentUnavailable です。
func (e *Engine) loadContent(path string) (content, diff string, err error) {
	if d, ok := e.differ.Diff(path); ok && strings.TrimSpace(d) != "" {
		return d, d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// 存在しないパスや読み取り権限のないファイルも「内容を取得できない」に分類する
		return "", "", fmt.Errorf("%w: ファイル '%s' を読み込めませんでした: %v", ErrContentUnavailable, path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", "", fmt.Errorf("%w: %s", ErrContentUnavailable, path)
	}
	return fullFileNote + "\n\n" + string(data), "", nil
}

// Start はファイル監視を開始し、変更のたびにレビューを実行します。
// 停止後の再開始も可能です。すでに実行中の場合は何もしません。
func (e *Engine) Start() error {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	if e.session != nil && e.session.IsRunning() {
		return nil
	}

	session := watcher.NewSession(e.cfg.RootPath, e.cfg.Extensions, e.cfg.Debounce, e.handleChange)
	if err := session.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrWatchStartFailed, err)
	}

	e.session = session
	e.stopped = false
	return nil
}

// Stop は監視を停止します。停止済みの場合は何もしません（冪等）。
// 停止後も Start で監視を再開できます。
func (e *Engine) Stop() {
	e.stateMu.Lock()
	session := e.session
	e.session = nil
	e.stopped = true
	e.stateMu.Unlock()

	if session != nil {
		session.Stop()
	}
}

// IsWatching は監視セッションが実行中かどうかを返します。
func (e *Engine) IsWatching() bool {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	return e.session != nil && e.session.IsRunning()
}

// handleChange は監視ワーカーから呼び出され、1件の変更をレビューします。
// レビューの失敗はエラー深刻度の合成結果としてオブザーバへ届けます。
func (e *Engine) handleChange(path string) {
	result, err := e.ReviewFile(context.Background(), path)
	if err != nil {
		if errors.Is(err, ErrStopped) {
			return
		}
		slog.Warn("監視中のレビューに失敗しました", "file", path, "error", err)
		result = NewErrorResult(path, err)
		if e.log != nil {
			if logErr := e.log.Append(result); logErr != nil {
				slog.Warn("レビューログの記録に失敗しました", "error", logErr)
			}
		}
	}
	e.notify(result)
}

func (e *Engine) notify(result Result) {
	e.observerMu.RLock()
	fn := e.observer
	e.observerMu.RUnlock()
	if fn != nil {
		fn(result)
	}
}
