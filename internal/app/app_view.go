package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/scribe/internal/ui"
)

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.render())
	return v
}

// RenderToString renders the current view as a string. Tests use it.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.render()
}

func (m *Model) render() string {
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.updateFooterContext()
	ctx := ui.GetViewContext()

	var body string
	if e := m.activeEditor(); e != nil {
		body = lipgloss.NewStyle().
			Width(ctx.EditorWidth).
			Height(ctx.ContentHeight).
			MaxHeight(ctx.ContentHeight).
			Render(e.View())
	} else {
		body = ui.RenderEmptyState(ctx.EditorWidth, ctx.ContentHeight)
	}
	if m.sidePanel.Visible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.sidePanel.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		m.tabStrip.View(m.tabs.Tabs()),
		body,
		m.footer.View(),
	)
}

// updateFooterContext refreshes the footer's bindings and status line.
func (m *Model) updateFooterContext() {
	e := m.activeEditor()
	selecting := e != nil && e.HasMark()
	m.footer.SetContext(e != nil, m.sidePanel.Visible(), selecting)

	language := ""
	if t, ok := m.tabs.ActiveTab(); ok {
		language = t.Language
	}
	m.footer.SetStatus(language, m.tabs.Len())
}

// updateSizes recomputes the layout after a resize or when the side panel
// opens or closes.
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.SetSidePanelOpen(m.sidePanel.Visible())
	if m.width > 0 && m.height > 0 {
		ctx.UpdateTerminalSize(m.width, m.height)
	}

	m.header.SetWidth(ctx.TerminalWidth)
	m.tabStrip.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidePanel.SetSize(ctx.SidePanelWidth, ctx.ContentHeight)
	for _, t := range m.tabs.Tabs() {
		if e := m.editorFor(t.ID); e != nil {
			e.SetSize(ctx.EditorWidth, ctx.ContentHeight)
		}
	}
}
