package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceExtensions は監視対象となるデフォルトの拡張子セットです（ドットなし）。
var SourceExtensions = []string{"rs", "ts", "tsx", "js", "jsx", "py", "go", "java", "cpp", "c", "h"}

// ビルド成果物や依存ディレクトリは走査・監視の対象外とします。
var skipDirs = []string{"target", "node_modules", "__pycache__", "vendor"}

// ShouldSkipDir は走査時にスキップすべきディレクトリ名かどうかを判定します。
// 隠しディレクトリ（'.' 始まり）と skipDirs に含まれる名前をスキップします。
func ShouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, d := range skipDirs {
		if name == d {
			return true
		}
	}
	return false
}

// Ext はパスから拡張子をドットなし・小文字で返します。拡張子がなければ空文字列です。
func Ext(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// HasExtension は path の拡張子が exts に含まれるかを判定します。
func HasExtension(path string, exts []string) bool {
	ext := Ext(path)
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// WalkSourceFiles は dir 以下を再帰的に走査し、exts にマッチするソースファイルの
// パス一覧を返します。隠しディレクトリや target/node_modules などはスキップします。
func WalkSourceFiles(dir string, exts []string) []string {
	var files []string
	walkSourceFiles(dir, exts, &files)
	return files
}

func walkSourceFiles(dir string, exts []string, files *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if !ShouldSkipDir(entry.Name()) {
				walkSourceFiles(path, exts, files)
			}
			continue
		}
		if HasExtension(path, exts) {
			*files = append(*files, path)
		}
	}
}

// WalkDirs は dir 自身とスキップ対象でないサブディレクトリをすべて返します。
// ファイル監視の登録対象を列挙するために使用します。
func WalkDirs(dir string) []string {
	dirs := []string{dir}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return dirs
	}
	for _, entry := range entries {
		if entry.IsDir() && !ShouldSkipDir(entry.Name()) {
			dirs = append(dirs, WalkDirs(filepath.Join(dir, entry.Name()))...)
		}
	}
	return dirs
}
