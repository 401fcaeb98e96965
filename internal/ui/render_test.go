package ui

import (
	"strings"
	"testing"
)

func TestHighlightCode_KeepsText(t *testing.T) {
	code := "func main() {\n\tprintln(\"hi\")\n}"
	out := stripANSI(HighlightCode(code, "go"))

	if !strings.Contains(out, "func main()") || !strings.Contains(out, "println") {
		t.Errorf("highlighted code lost text: %q", out)
	}
}

func TestHighlightCode_UnknownLanguage(t *testing.T) {
	out := stripANSI(HighlightCode("just words", "no-such-language"))
	if !strings.Contains(out, "just words") {
		t.Errorf("fallback lexer lost text: %q", out)
	}
}

func TestRenderMarkdown(t *testing.T) {
	content := strings.Join([]string{
		"# Title",
		"Some **bold** and `code` text.",
		"- first item",
		"1. numbered",
		"```python",
		"print('x')",
		"```",
	}, "\n")

	out := stripANSI(RenderMarkdown(content, 60, "go"))

	for _, want := range []string{"Title", "bold", "code", "• first item", "1. numbered", "print('x')"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderMarkdown missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**") || strings.Contains(out, "```") {
		t.Errorf("markdown syntax should be consumed:\n%s", out)
	}
}

func TestRenderMarkdown_UnterminatedFence(t *testing.T) {
	out := stripANSI(RenderMarkdown("```\nx := 1", 40, "go"))
	if !strings.Contains(out, "x := 1") {
		t.Errorf("unterminated fence lost code: %q", out)
	}
}

func TestRenderInlineMarkdown_NoBoldInsideCode(t *testing.T) {
	out := stripANSI(renderInlineMarkdown("`a **b** c`"))
	if !strings.Contains(out, "a **b** c") {
		t.Errorf("bold applied inside a code span: %q", out)
	}
}

func TestWrapText(t *testing.T) {
	wrapped := wrapText("one two three four five", 10)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if wrapText("keep", 0) != "keep" {
		t.Error("zero width should not wrap")
	}
}

func TestRenderEmptyState(t *testing.T) {
	out := stripANSI(RenderEmptyState(60, 10))
	if !strings.Contains(out, "No files open") || !strings.Contains(out, "ctrl+t") {
		t.Errorf("empty state missing hints:\n%s", out)
	}
}
