package ui

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType is the severity of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

func (t FlashType) icon() string {
	switch t {
	case FlashSuccess:
		return "✓"
	case FlashWarning:
		return "⚠"
	case FlashError:
		return "✕"
	default:
		return "ℹ"
	}
}

func (t FlashType) style() lipgloss.Style {
	switch t {
	case FlashSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	case FlashWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	case FlashError:
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorInfo)
	}
}

// FlashMessage is a transient notification shown in place of the bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg drives flash expiry.
type FlashTickMsg time.Time

// FlashTick returns a command that checks flash expiry after a short delay
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom bar: key hints on the left, editor status on
// the right, or a flash message over everything.
type Footer struct {
	width        int
	bindings     []KeyBinding
	flashMessage *FlashMessage

	hasTab     bool
	panelOpen  bool
	selecting  bool
	language   string
	openFiles  int
	activities []string
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "ctrl+s", Desc: "save"},
			{Key: "ctrl+w", Desc: "close"},
			{Key: "ctrl+g", Desc: "generate"},
			{Key: "ctrl+d", Desc: "debug"},
			{Key: "ctrl+e", Desc: "explain"},
			{Key: "f1", Desc: "help"},
			{Key: "ctrl+q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasTab, panelOpen, selecting bool) {
	f.hasTab = hasTab
	f.panelOpen = panelOpen
	f.selecting = selecting
}

// SetStatus sets the right-hand editor status: the active tab's language
// and the number of open files.
func (f *Footer) SetStatus(language string, openFiles int) {
	f.language = language
	f.openFiles = openFiles
}

// SetActivities sets the loading messages for in-flight actions.
func (f *Footer) SetActivities(activities []string) {
	f.activities = activities
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// FlashText returns the current flash text, or "" when none is showing.
func (f *Footer) FlashText() string {
	if f.flashMessage == nil {
		return ""
	}
	return f.flashMessage.Text
}

// ClearIfExpired clears an expired flash and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// OpenFilesText is the open-file counter shown in the footer.
func OpenFilesText(n int) string {
	if n == 1 {
		return "1 file open"
	}
	return fmt.Sprintf("%d files open", n)
}

func (f *Footer) visibleBindings() []KeyBinding {
	switch {
	case f.selecting:
		return []KeyBinding{
			{Key: "ctrl+e", Desc: "explain selection"},
			{Key: "esc", Desc: "clear selection"},
		}
	case !f.hasTab:
		return []KeyBinding{
			{Key: "ctrl+t", Desc: "new tab"},
			{Key: "ctrl+o", Desc: "open"},
			{Key: "f1", Desc: "help"},
			{Key: "ctrl+q", Desc: "quit"},
		}
	}
	bindings := f.bindings
	if f.panelOpen {
		bindings = append([]KeyBinding{{Key: "ctrl+b", Desc: "hide panel"}, {Key: "ctrl+y", Desc: "copy"}}, bindings...)
	}
	return bindings
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		style := f.flashMessage.Type.style()
		text := style.Render(f.flashMessage.Type.icon() + " " + f.flashMessage.Text)
		if f.width > 0 {
			text = ansi.Truncate(text, f.width-2, "…")
		}
		return FooterStyle.Width(f.width).Render(text)
	}

	var parts []string
	for _, b := range f.visibleBindings() {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}
	sep := "  " + lipgloss.NewStyle().Foreground(ColorBorder).Render("|") + "  "
	left := strings.Join(parts, sep)

	var status []string
	status = append(status, f.activities...)
	if f.hasTab && f.language != "" {
		status = append(status, f.language)
	}
	status = append(status, OpenFilesText(f.openFiles))
	right := FooterInfoStyle.Render(strings.Join(status, " · "))

	if f.width <= 0 {
		return FooterStyle.Render(left + "  " + right)
	}

	// Footer padding takes one cell on each side.
	inner := f.width - 2
	rightWidth := lipgloss.Width(right)
	if lipgloss.Width(left)+rightWidth+2 > inner {
		left = ansi.Truncate(left, max(0, inner-rightWidth-2), "…")
	}
	gap := inner - lipgloss.Width(left) - rightWidth
	if gap < 1 {
		gap = 1
	}
	return FooterStyle.Width(f.width).Render(left + strings.Repeat(" ", gap) + right)
}
