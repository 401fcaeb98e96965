package ui

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/scribe/internal/logger"
)

// SidePanel shows Debug and Explain results next to the editor.
type SidePanel struct {
	viewport viewport.Model
	title    string
	body     string
	lang     string
	visible  bool
	width    int
	height   int
}

// NewSidePanel creates a hidden, empty side panel
func NewSidePanel() *SidePanel {
	return &SidePanel{viewport: viewport.New()}
}

// Show replaces the panel content and makes it visible. lang highlights
// code fences that do not name a language.
func (p *SidePanel) Show(title, body, lang string) {
	p.title = title
	p.body = body
	p.lang = lang
	p.visible = true
	p.refresh()
	p.viewport.GotoTop()
	logger.WithComponent("ui").Debug("side panel shown", "title", title, "bytes", len(body))
}

// Hide hides the panel but keeps its content
func (p *SidePanel) Hide() {
	p.visible = false
}

// Toggle flips visibility. An empty panel stays hidden.
func (p *SidePanel) Toggle() {
	if p.body == "" {
		p.visible = false
		return
	}
	p.visible = !p.visible
}

// Visible reports whether the panel is shown
func (p *SidePanel) Visible() bool {
	return p.visible
}

// HasContent reports whether the panel holds a result
func (p *SidePanel) HasContent() bool {
	return p.body != ""
}

// Title returns the panel heading
func (p *SidePanel) Title() string {
	return p.title
}

// Text returns the raw panel body, as produced by the model
func (p *SidePanel) Text() string {
	return p.body
}

// SetSize sets the outer dimensions, borders included
func (p *SidePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.viewport.SetWidth(max(0, width-BorderSize))
	p.viewport.SetHeight(max(0, height-BorderSize-TitleHeight))
	p.refresh()
}

// RefreshStyles re-renders the body after a theme change
func (p *SidePanel) RefreshStyles() {
	p.refresh()
}

func (p *SidePanel) refresh() {
	if p.body == "" {
		p.viewport.SetContent("")
		return
	}
	p.viewport.SetContent(RenderMarkdown(p.body, p.viewport.Width(), p.lang))
}

// Update handles scrolling
func (p *SidePanel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return cmd
}

// ScrollUp scrolls the panel up by n lines
func (p *SidePanel) ScrollUp(n int) {
	p.viewport.ScrollUp(n)
}

// ScrollDown scrolls the panel down by n lines
func (p *SidePanel) ScrollDown(n int) {
	p.viewport.ScrollDown(n)
}

// View renders the panel
func (p *SidePanel) View() string {
	if !p.visible {
		return ""
	}
	title := PanelTitleStyle.Render(p.title)
	content := lipgloss.JoinVertical(lipgloss.Left, title, p.viewport.View())
	return PanelStyle.Width(p.width).Height(p.height).Render(content)
}
