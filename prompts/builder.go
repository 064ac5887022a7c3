package prompts

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidTemplate は、テンプレートが認識できないプレースホルダを参照している場合のエラーです。
var ErrInvalidTemplate = errors.New("テンプレートに認識できないプレースホルダが含まれています")

// Render が置換の対象とするプレースホルダトークンです。
var knownPlaceholders = []string{"file_name", "content", "diff"}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Render はテンプレートにファイル名・レビュー対象の内容・差分を埋め込み、
// AIへ送る最終的なプロンプト文字列を完成させます。
// 置換対象は {file_name} / {content} / {diff} の完全一致のみで、
// それ以外の {...} トークンはそのまま残します。副作用はありません。
func Render(template, fileName, content, diff string) string {
	r := strings.NewReplacer(
		"{file_name}", fileName,
		"{content}", content,
		"{diff}", diff,
	)
	return r.Replace(template)
}

// ValidateTemplate はカスタムテンプレートを設定時に検証します。
// 認識できない {ident} 形式のプレースホルダを参照している場合、
// ErrInvalidTemplate を返します。
func ValidateTemplate(template string) error {
	for _, m := range placeholderPattern.FindAllStringSubmatch(template, -1) {
		token := m[1]
		known := false
		for _, p := range knownPlaceholders {
			if token == p {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("%w: {%s}", ErrInvalidTemplate, token)
		}
	}
	return nil
}
