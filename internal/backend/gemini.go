package backend

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
)

const (
	// コードレビューの一貫性を優先するため、低い温度に設定
	defaultGeminiTemperature = float32(0.2)
	// 一時的なネットワークエラーやAPIのレート制限に対応するためのリトライ回数
	defaultGeminiMaxRetries = uint64(3)
)

// Gemini は go-ai-client の gemini.Client をラップし、
// Reviewer インターフェースを実装する具体的な構造体です。
type Gemini struct {
	client    *gemini.Client
	modelName string
}

// NewGemini はGeminiバックエンドを初期化します。
// 温度 0.2 を明示的に指定するため、gemini.NewClientFromEnv ではなく gemini.NewClient を直接利用します。
// APIキーは環境変数から取得し、リトライ回数はデフォルトの3回を設定します。
func NewGemini(ctx context.Context, modelName string) (*Gemini, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY または GOOGLE_API_KEY 環境変数が設定されていません: %w", ErrUnavailable)
	}

	temperature := defaultGeminiTemperature
	maxRetries := defaultGeminiMaxRetries

	cfg := gemini.Config{
		APIKey:      apiKey,
		Temperature: &temperature,
		MaxRetries:  maxRetries,
	}

	gClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました (cause: %v): %w", err, ErrUnavailable)
	}

	return &Gemini{
		client:    gClient,
		modelName: modelName,
	}, nil
}

// Name は Reviewer インターフェースを満たします。
func (g *Gemini) Name() string { return "gemini" }

// Invoke は Reviewer インターフェースを満たします。
func (g *Gemini) Invoke(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.GenerateContent(ctx, prompt, g.modelName)
	if err != nil {
		// クライアント内蔵のリトライ上限到達などのエラーを含む
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("Gemini API呼び出し (model: %s): %w", g.modelName, ErrTimeout)
		}
		return "", fmt.Errorf("Gemini API呼び出しに失敗しました (model: %s, cause: %v): %w", g.modelName, err, ErrUnavailable)
	}

	if resp.Text == "" {
		return "", fmt.Errorf("Gemini APIのレスポンスが空です (model: %s): %w", g.modelName, ErrMalformedOutput)
	}

	return resp.Text, nil
}
