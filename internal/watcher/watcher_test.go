package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector はハンドラへ届いたパスをスレッドセーフに蓄積します。
type collector struct {
	mu    sync.Mutex
	paths []string
}

func (c *collector) handle(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = append(c.paths, path)
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}

func TestAcceptDebounce(t *testing.T) {
	s := NewSession(t.TempDir(), []string{"go"}, 100*time.Millisecond, func(string) {})
	s.lastSeen = make(map[string]time.Time)

	assert.True(t, s.accept("/tmp/a.go"), "最初のイベントは受理される")
	assert.False(t, s.accept("/tmp/a.go"), "間隔内の再イベントは抑制される")
	assert.True(t, s.accept("/tmp/b.go"), "別パスは独立して受理される")

	time.Sleep(120 * time.Millisecond)
	assert.True(t, s.accept("/tmp/a.go"), "間隔経過後は再び受理される")
}

func TestStartStopLifecycle(t *testing.T) {
	s := NewSession(t.TempDir(), []string{"go"}, 10*time.Millisecond, func(string) {})

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	assert.Error(t, s.Start(), "二重起動はエラーになる")

	s.Stop()
	assert.False(t, s.IsRunning())
	s.Stop() // 冪等

	// 停止後の再起動を確認します。
	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	s.Stop()
}

func TestWatchDeliversMatchingFiles(t *testing.T) {
	root := t.TempDir()
	c := &collector{}
	s := NewSession(root, []string{"go"}, 10*time.Millisecond, c.handle)

	require.NoError(t, s.Start())
	defer s.Stop()

	target := filepath.Join(root, "main.go")
	ignored := filepath.Join(root, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("package main\n"), 0o644))
	require.NoError(t, os.WriteFile(ignored, []byte("memo\n"), 0o644))

	require.Eventually(t, func() bool {
		for _, p := range c.snapshot() {
			if p == target {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond, "対象拡張子の変更が届くこと")

	for _, p := range c.snapshot() {
		assert.NotEqual(t, ignored, p, "対象外の拡張子は届かないこと")
	}
}
