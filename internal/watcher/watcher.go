// Package watcher はfsnotifyによるファイルシステム監視セッションを提供します。
// 変更イベントを拡張子フィルタとデバウンスにかけ、生き残ったパスだけを
// ハンドラへ直列に引き渡します。
package watcher

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ai-code-reviewer-go/internal/fsutil"
)

// Handler はデバウンスを通過した変更パスを受け取るコールバックです。
// 単一のワーカーゴルーチンから直列に呼び出されます。
type Handler func(path string)

// Session は1つの監視サッションを表します。Start で開始し、Stop で停止します。
type Session struct {
	root     string
	exts     []string
	debounce time.Duration
	handler  Handler

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	lastSeen map[string]time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewSession は監視セッションを生成します。まだ監視は開始しません。
func NewSession(root string, exts []string, debounce time.Duration, handler Handler) *Session {
	return &Session{
		root:     root,
		exts:     exts,
		debounce: debounce,
		handler:  handler,
	}
}

// Start は監視を開始します。ルート以下のディレクトリを再帰的に登録し、
// イベント処理ループをバックグラウンドで起動します。
// すでに実行中の場合はエラーを返します。
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("監視セッションはすでに実行中です")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ファイルウォッチャーの作成に失敗しました: %w", err)
	}

	for _, dir := range fsutil.WalkDirs(s.root) {
		if err := w.Add(dir); err != nil {
			w.Close()
			return fmt.Errorf("ディレクトリ '%s' の監視登録に失敗しました: %w", dir, err)
		}
	}

	s.watcher = w
	s.lastSeen = make(map[string]time.Time)
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.running = true

	go s.run(w, s.stopCh, s.doneCh)

	slog.Info("ファイル監視を開始しました", "path", s.root, "debounce", s.debounce)
	return nil
}

// Stop は監視を停止し、イベントループの終了を待ちます。
// 停止済みの場合は何もしません（冪等）。
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.watcher.Close()
	done := s.doneCh
	s.mu.Unlock()

	<-done
	slog.Info("ファイル監視を停止しました", "path", s.root)
}

// IsRunning は監視が実行中かどうかを返します。
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Session) run(w *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	for {
		select {
		case <-stopCh:
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			s.handleEvent(w, event)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("ファイル監視エラー", "error", err)
		}
	}
}

func (s *Session) handleEvent(w *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	// 新しく作られたディレクトリは監視対象に追加します。
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !fsutil.ShouldSkipDir(info.Name()) {
				if err := w.Add(event.Name); err != nil {
					slog.Warn("新規ディレクトリの監視登録に失敗しました", "path", event.Name, "error", err)
				}
			}
			return
		}
	}

	if !fsutil.HasExtension(event.Name, s.exts) {
		return
	}
	if !s.accept(event.Name) {
		slog.Debug("デバウンスによりイベントを抑制しました", "path", event.Name)
		return
	}

	slog.Debug("ファイル変更を検知しました", "path", event.Name, "op", event.Op.String())
	s.handler(event.Name)
}

// accept はデバウンス判定を行います。前回の受理からデバウンス間隔が経過していれば
// 受理時刻を記録して true を返します（リーディングエッジ方式）。
func (s *Session) accept(path string) bool {
	now := time.Now()
	if last, ok := s.lastSeen[path]; ok && now.Sub(last) < s.debounce {
		return false
	}
	s.lastSeen[path] = now
	return true
}
