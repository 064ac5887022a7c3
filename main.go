package main

import (
	"ai-code-reviewer-go/cmd" // 🚀 CLIのエントリポイント
)

// main はプログラムのエントリポイントです。
func main() {
	// 全ての CLI ロジックを cmd パッケージに委譲します。
	cmd.Execute()
}
