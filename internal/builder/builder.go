package builder

import (
	"context"
	"fmt"
	"log/slog"

	"ai-code-reviewer-go/internal/backend"
	"ai-code-reviewer-go/internal/config"
	"ai-code-reviewer-go/internal/gitdiff"
	"ai-code-reviewer-go/internal/review"
)

// BuildEngine は、必要な依存関係をすべて構築し、
// 実行可能な ReviewEngine のインスタンスを返します。
func BuildEngine(ctx context.Context, cfg config.Config) (*review.Engine, error) {
	// 1. AIバックエンドの構築
	reviewer, err := backend.New(ctx, cfg.Backend, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("AIバックエンドの構築に失敗しました: %w", err)
	}
	slog.Debug("AIバックエンドを構築しました。",
		slog.String("backend", reviewer.Name()),
		slog.String("model", cfg.Model),
	)

	// 2. 差分プロバイダの構築
	differ := gitdiff.NewCLI()
	slog.Debug("差分プロバイダを構築しました。")

	// 3. 依存関係を注入して Engine を組み立てる
	engine, err := review.NewEngine(cfg, reviewer, differ)
	if err != nil {
		return nil, fmt.Errorf("レビューエンジンの構築に失敗しました: %w", err)
	}

	slog.Debug("レビューエンジンの構築が完了しました。")
	return engine, nil
}
