package ui

import (
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// noMark means no selection anchor is set.
const noMark = -1

// Editor is the text surface of one tab. It wraps a textarea and adds a
// mark-based selection: the mark is dropped with SetMark and the selection
// runs from the mark to the cursor.
//
// The textarea turns tabs into four spaces and every \r into a line break.
// Editor keeps the loaded text so that Value gives back the same bytes for
// an untouched buffer, the original form of every untouched line, and the
// loaded line endings.
type Editor struct {
	ta   textarea.Model
	mark int

	loaded string            // text as loaded or last saved
	shown  string            // what the textarea made of loaded
	crlf   bool              // loaded text used \r\n line endings
	lines  map[string]string // textarea form of a loaded line -> the line as loaded
}

// NewEditor creates an empty, unfocused editor
func NewEditor() *Editor {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "Start typing..."
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	applyEditorStyles(&ta)

	return &Editor{ta: ta, mark: noMark}
}

func applyEditorStyles(ta *textarea.Model) {
	styles := ta.Styles()

	text := lipgloss.NewStyle().Foreground(ColorText)
	lineNumber := lipgloss.NewStyle().Foreground(ColorTextMuted)

	for _, state := range []*textarea.StyleState{&styles.Focused, &styles.Blurred} {
		state.Base = lipgloss.NewStyle()
		state.Text = text
		state.CursorLine = text
		state.Placeholder = lineNumber.Italic(true)
		state.Prompt = text
		state.LineNumber = lineNumber
		state.EndOfBuffer = lineNumber
	}
	styles.Focused.CursorLineNumber = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	styles.Blurred.CursorLineNumber = lineNumber

	ta.SetStyles(styles)
}

// RefreshStyles re-applies theme colors after a theme change.
func (e *Editor) RefreshStyles() {
	applyEditorStyles(&e.ta)
}

// Value returns the full buffer text in the loaded file's form.
func (e *Editor) Value() string {
	v := e.ta.Value()
	if v == e.shown {
		return e.loaded
	}
	lines := strings.Split(v, "\n")
	for i, line := range lines {
		if orig, ok := e.lines[line]; ok {
			lines[i] = orig
		}
	}
	sep := "\n"
	if e.crlf {
		sep = "\r\n"
	}
	return strings.Join(lines, sep)
}

// SetValue loads text as the buffer's clean contents and clears the
// selection.
func (e *Editor) SetValue(text string) {
	e.ta.SetValue(strings.ReplaceAll(text, "\r\n", "\n"))
	e.mark = noMark
	e.MarkSaved(text)
}

// Replace swaps the whole buffer as an edit. The loaded contents and line
// endings stay the reference for Value.
func (e *Editor) Replace(text string) {
	e.ta.SetValue(strings.ReplaceAll(text, "\r\n", "\n"))
	e.mark = noMark
}

// MarkSaved records text, which must equal Value, as the buffer's on-disk
// contents.
func (e *Editor) MarkSaved(text string) {
	e.loaded = text
	e.shown = e.ta.Value()
	if strings.Contains(text, "\n") {
		e.crlf = strings.Contains(text, "\r\n")
	}
	e.lines = loadedLines(text)
}

// TabsExpanded reports whether saving now would write spaces where the
// loaded text had tabs. Only edited lines lose their tabs.
func (e *Editor) TabsExpanded() bool {
	if !strings.Contains(e.loaded, "\t") {
		return false
	}
	v := e.ta.Value()
	if v == e.shown {
		return false
	}
	for _, line := range strings.Split(v, "\n") {
		if _, ok := e.lines[line]; !ok && strings.Contains(line, expandedTab) {
			return true
		}
	}
	return false
}

// expandedTab is what the textarea puts in place of a tab.
const expandedTab = "    "

// loadedLines maps the textarea form of each tab-bearing line of text back
// to the line itself. Forms that several different lines share are left
// out, since they cannot be mapped back.
func loadedLines(text string) map[string]string {
	table := make(map[string]string)
	ambiguous := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		form := strings.ReplaceAll(line, "\t", expandedTab)
		if form == line {
			ambiguous[form] = true
			continue
		}
		if prev, ok := table[form]; ok && prev != line {
			ambiguous[form] = true
		}
		table[form] = line
	}
	for form := range ambiguous {
		delete(table, form)
	}
	return table
}

// SetSize sets the editor dimensions
func (e *Editor) SetSize(width, height int) {
	e.ta.SetWidth(width)
	e.ta.SetHeight(height)
}

// Focus focuses the editor
func (e *Editor) Focus() tea.Cmd {
	return e.ta.Focus()
}

// Blur removes focus
func (e *Editor) Blur() {
	e.ta.Blur()
}

// Focused reports whether the editor has focus
func (e *Editor) Focused() bool {
	return e.ta.Focused()
}

// SetMark anchors the selection at the cursor.
func (e *Editor) SetMark() {
	e.mark = e.CursorOffset()
}

// ClearMark drops the selection.
func (e *Editor) ClearMark() {
	e.mark = noMark
}

// HasMark reports whether a selection anchor is set.
func (e *Editor) HasMark() bool {
	return e.mark != noMark
}

// CursorOffset is the cursor position in runes from the start of the buffer.
func (e *Editor) CursorOffset() int {
	lines := strings.Split(e.ta.Value(), "\n")
	row := e.ta.Line()

	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += len([]rune(lines[i])) + 1
	}
	li := e.ta.LineInfo()
	return offset + li.StartColumn + li.ColumnOffset
}

// Selection returns the text between the mark and the cursor, or "" when
// no mark is set.
func (e *Editor) Selection() string {
	if e.mark == noMark {
		return ""
	}
	runes := []rune(e.ta.Value())
	start, end := e.mark, e.CursorOffset()
	if start > end {
		start, end = end, start
	}
	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	return string(runes[start:end])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Update forwards input to the textarea and reports whether the buffer
// text changed.
func (e *Editor) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := e.ta.Value()
	var cmd tea.Cmd
	e.ta, cmd = e.ta.Update(msg)
	changed := e.ta.Value() != before
	if changed && e.mark > len([]rune(e.ta.Value())) {
		e.mark = noMark
	}
	return changed, cmd
}

// View renders the textarea
func (e *Editor) View() string {
	return e.ta.View()
}
