package classifier

import "strings"

// Severity はレビュー結果の深刻度を表します。
type Severity string

const (
	SeverityOK      Severity = "ok"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// rule は深刻度の判定ルールです。markers のいずれかがテキストに含まれると
// その深刻度に分類されます。
type rule struct {
	severity Severity
	markers  []string
}

// ルールは上から順に評価され、最初にマッチしたものが採用されます。
// critical が warning より先に評価されるため、両方を含むテキストは Error になります。
var rules = []rule{
	{SeverityError, []string{"critical", "fatal", "重大", "🚨"}},
	{SeverityWarning, []string{"warning", "警告", "⚠"}},
	{SeverityInfo, []string{"info", "提案", "suggestion", "💡"}},
}

// Classify はレビューテキストを走査し、問題の有無と深刻度を返します。
// マーカーの照合は大文字小文字を区別せず、どのマーカーにも一致しない場合
// （空文字列を含む）は SeverityOK を返します。同じテキストは常に同じ結果になります。
func Classify(text string) (hasIssues bool, severity Severity) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, m := range r.markers {
			if strings.Contains(lower, m) {
				return HasIssues(r.severity), r.severity
			}
		}
	}
	return false, SeverityOK
}

// HasIssues は深刻度が Warning または Error のときに true を返します。
func HasIssues(s Severity) bool {
	return s == SeverityWarning || s == SeverityError
}
