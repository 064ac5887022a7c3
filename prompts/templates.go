package prompts

import (
	_ "embed"
	"fmt"
)

// --- テンプレートのリソース定義 (go:embed) ---

// DefaultTemplate は標準レビュー用のプロンプトテンプレートを保持します。
//
//go:embed review_default.md
var DefaultTemplate string

// QuickTemplate は簡易レビュー用のプロンプトテンプレートを保持します。
//
//go:embed review_quick.md
var QuickTemplate string

// SecurityTemplate はセキュリティレビュー用のプロンプトテンプレートを保持します。
//
//go:embed review_security.md
var SecurityTemplate string

// ArchitectureTemplate はアーキテクチャレビュー用のプロンプトテンプレートを保持します。
//
//go:embed review_architecture.md
var ArchitectureTemplate string

// Type はレビュープロンプトの種別を表します。
type Type string

const (
	TypeDefault      Type = "default"
	TypeQuick        Type = "quick"
	TypeSecurity     Type = "security"
	TypeArchitecture Type = "architecture"
	// TypeCustom は利用者が独自に与えたテンプレートを使用します。
	TypeCustom Type = "custom"
)

// TemplateFor は、プロンプト種別に基づいて組み込みテンプレートの内容を返します。
// TypeCustom には組み込みテンプレートがないため、エラーを返します。
func TemplateFor(t Type) (string, error) {
	switch t {
	case TypeDefault:
		return DefaultTemplate, nil
	case TypeQuick:
		return QuickTemplate, nil
	case TypeSecurity:
		return SecurityTemplate, nil
	case TypeArchitecture:
		return ArchitectureTemplate, nil
	case TypeCustom:
		return "", fmt.Errorf("カスタムプロンプトにはテンプレートの指定が必要です")
	default:
		return "", fmt.Errorf("無効なプロンプト種別が指定されました: '%s'。default / quick / security / architecture / custom から選択してください", t)
	}
}
