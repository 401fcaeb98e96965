package session

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainText is reported for names no lexer claims.
const PlainText = "plaintext"

// DetectLanguage derives a display language from a file name using chroma's
// filename globs, e.g. "main.go" -> "go", "app.tsx" -> "typescript".
func DetectLanguage(name string) string {
	lexer := lexers.Match(name)
	if lexer == nil {
		return PlainText
	}
	cfg := lexer.Config()
	if cfg == nil || cfg.Name == "" {
		return PlainText
	}
	lang := strings.ToLower(cfg.Name)
	if lang == "plaintext" || lang == "plain text" || lang == "text only" {
		return PlainText
	}
	return lang
}
