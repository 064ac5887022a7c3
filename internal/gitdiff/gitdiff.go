package gitdiff

import (
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Provider はバージョン管理の差分取得機能の抽象化を提供します。
// 差分が得られない場合は ok=false を返し、致命的なエラーにはしません。
// 呼び出し側はファイル全体のレビューへフォールバックします。
type Provider interface {
	// Diff は指定されたファイルの差分テキストを返します。
	// 未追跡ファイルやリポジトリ外のパスでは ok=false を返します。
	Diff(path string) (diff string, ok bool)
}

// CLI は git コマンドで差分を取得する Provider の実装です。
// リポジトリの検出には go-git を使用し、差分テキストの生成は
// git CLI に委譲します。
type CLI struct{}

// NewCLI は CLI プロバイダを初期化します。
func NewCLI() *CLI { return &CLI{} }

// Diff は未ステージの差分を優先して取得し、なければステージ済みの差分を返します。
// エディタ保存直後の変更（未ステージ）をレビュー対象とするためです。
// パスは絶対パスに解決した上でワークツリーのルートから実行するため、
// 相対パス（監視イベントのパスなど）でも正しく動作します。
func (c *CLI) Diff(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	root, err := Root(filepath.Dir(abs))
	if err != nil {
		return "", false
	}

	if diff := runGitDiff(root, "diff", "--", abs); diff != "" {
		return diff, true
	}
	if diff := runGitDiff(root, "diff", "--cached", "--", abs); diff != "" {
		return diff, true
	}
	return "", false
}

// Root は path を含むリポジトリのワークツリーのルートを返します。
// リポジトリ外のパスに対してはエラーを返します。
func Root(path string) (string, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

func runGitDiff(dir string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		slog.Debug("git diffの実行に失敗しました。", "dir", dir, "error", err)
		return ""
	}
	return strings.TrimSpace(string(out))
}
