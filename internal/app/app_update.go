package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/keys"
	"github.com/zhubert/scribe/internal/ui"
)

// panelScrollLines is how far alt+up/down move the side panel.
const panelScrollLines = 3

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case StartupMsg:
		return m, m.openStartupFiles()

	case tea.KeyPressMsg:
		return m.handleKeyPress(msg)

	case tea.PasteMsg:
		if m.modal.IsVisible() {
			return m.forwardToModal(msg)
		}
		return m, m.updateEditor(msg)

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}
		return m, nil

	case probeResultMsg:
		return m, m.handleProbeResult(msg.result)

	case pollTickMsg:
		return m, tea.Batch(m.probe(), m.schedulePoll())

	case retryTickMsg:
		if !m.monitor.RetryDue(msg.token) {
			return m, nil
		}
		return m, m.probe()

	case serverStartedMsg:
		return m, m.handleServerStarted(msg)

	case actionResultMsg:
		return m, m.handleOutcome(msg.outcome)
	}

	if m.modal.IsVisible() {
		return m.forwardToModal(msg)
	}
	return m, m.updateEditor(msg)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	key := msg.String()
	if result, cmd, handled := m.ExecuteKey(key); handled {
		return result, cmd
	}
	m.quitArmed = false

	switch key {
	case keys.Escape:
		if e := m.activeEditor(); e != nil && e.HasMark() {
			e.ClearMark()
			return m, nil
		}
		if m.sidePanel.Visible() {
			m.sidePanel.Hide()
			m.updateSizes()
		}
		return m, nil
	case keys.AltUp:
		m.sidePanel.ScrollUp(panelScrollLines)
		return m, nil
	case keys.AltDown:
		m.sidePanel.ScrollDown(panelScrollLines)
		return m, nil
	}

	return m, m.updateEditor(msg)
}

// updateEditor forwards msg to the active editor and records any edit in
// the store, keeping the dirty flag current.
func (m *Model) updateEditor(msg tea.Msg) tea.Cmd {
	e := m.activeEditor()
	if e == nil {
		return nil
	}
	changed, cmd := e.Update(msg)
	if changed {
		if id, ok := m.tabs.Active(); ok {
			m.tabs.ContentChanged(id)
		}
	}
	return cmd
}
