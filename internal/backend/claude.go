package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// claudeBinary はClaude CLIのコマンド名です。
const claudeBinary = "claude"

// Claude は Claude CLI をサブプロセスとして起動し、
// Reviewer インターフェースを実装する具体的な構造体です。
// CLIはプロンプトを標準入力から受け取り、レビューテキストを標準出力へ返します。
type Claude struct {
	bin       string
	modelName string
}

// NewClaude はClaudeバックエンドを初期化します。
// CLIの存在確認は Invoke 時に行うため、初期化は失敗しません。
func NewClaude(modelName string) *Claude {
	return &Claude{bin: claudeBinary, modelName: modelName}
}

// Name は Reviewer インターフェースを満たします。
func (c *Claude) Name() string { return "claude" }

// Invoke は Reviewer インターフェースを満たします。
// コマンドが見つからない場合は ErrUnavailable、異常終了した場合は
// ErrNonZeroExit、出力が空の場合は ErrMalformedOutput を返します。
func (c *Claude) Invoke(ctx context.Context, prompt string) (string, error) {
	if _, err := exec.LookPath(c.bin); err != nil {
		return "", fmt.Errorf("Claude CLI ('%s') が見つかりません: %w", c.bin, ErrUnavailable)
	}

	args := []string{"-p"}
	if c.modelName != "" {
		args = append(args, "--model", c.modelName)
	}

	cmd := exec.CommandContext(ctx, c.bin, args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("Claude CLIの実行 (model: %s): %w", c.modelName, ErrTimeout)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("Claude CLIが終了コード %d で失敗しました (stderr: %s): %w",
				exitErr.ExitCode(), strings.TrimSpace(stderr.String()), ErrNonZeroExit)
		}
		return "", fmt.Errorf("Claude CLIの起動に失敗しました (cause: %v): %w", err, ErrUnavailable)
	}

	review := strings.TrimSpace(stdout.String())
	if review == "" {
		return "", fmt.Errorf("Claude CLIの出力が空です: %w", ErrMalformedOutput)
	}

	return review, nil
}
