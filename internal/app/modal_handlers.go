package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/keys"
	"github.com/zhubert/scribe/internal/session"
	"github.com/zhubert/scribe/internal/ui"
	"github.com/zhubert/scribe/internal/ui/modals"
)

// handleModalKey routes a key press to whichever modal is open. Modals own
// the keyboard: nothing reaches the registry or the editor while one shows.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.PathState:
		return m.handlePathModal(key, msg, s)
	case *modals.ConfirmCloseState:
		return m.handleConfirmCloseModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	}
	return m, nil
}

// forwardToModal lets the modal's own widgets handle msg.
func (m *Model) forwardToModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handlePathModal handles the Open and Save As prompts.
func (m *Model) handlePathModal(key string, msg tea.KeyPressMsg, state *modals.PathState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, m.focusActive()
	case keys.Enter:
		path := state.Path()
		if strings.TrimSpace(path) == "" {
			m.modal.SetError("Please enter a path")
			return m, nil
		}
		if state.Purpose == modals.PathSaveAs {
			return m.submitSaveAs(path, state)
		}
		return m.submitOpen(path)
	}
	return m.forwardToModal(msg)
}

func (m *Model) submitOpen(path string) (tea.Model, tea.Cmd) {
	m.modal.Hide()
	id, err := m.tabs.Open(path)
	if err != nil {
		m.log.Warn("open failed", "path", path, "error", err)
		return m, tea.Batch(m.focusActive(), m.ShowFlashError(fmt.Sprintf("Could not open %s: %v", path, err)))
	}
	name := path
	if t, ok := m.tabs.Store().Get(id); ok {
		name = t.Name
	}
	return m, tea.Batch(m.focusActive(), m.ShowFlashInfo("Opened "+name))
}

func (m *Model) submitSaveAs(path string, state *modals.PathState) (tea.Model, tea.Cmd) {
	id := session.TabID(state.TabID)
	m.modal.Hide()

	if active, _ := m.tabs.Active(); active != id {
		if err := m.tabs.Switch(id); err != nil {
			m.log.Warn("save target gone", "tabID", id, "error", err)
			return m, m.focusActive()
		}
	}

	res, err := m.tabs.SaveAs(session.StaticPicker(path))
	feedback := m.saveFeedback(res, err)
	if err != nil || res.Cancelled || !state.CloseAfterSave {
		return m, tea.Batch(m.focusActive(), feedback)
	}
	out := m.tabs.RequestClose(id)
	return m, tea.Batch(m.afterClose(out), feedback)
}

// handleConfirmCloseModal answers the unsaved-changes prompt. y and n act
// at once; arrows move the highlight and Enter takes it.
func (m *Model) handleConfirmCloseModal(key string, msg tea.KeyPressMsg, state *modals.ConfirmCloseState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, m.focusActive()
	case "y":
		return m.resolveClose(state, modals.CloseDiscard)
	case "n":
		return m.resolveClose(state, modals.CloseKeep)
	case "s":
		return m.resolveClose(state, modals.CloseSave)
	case keys.Enter:
		return m.resolveClose(state, state.Choice())
	}
	return m.forwardToModal(msg)
}

func (m *Model) resolveClose(state *modals.ConfirmCloseState, choice modals.CloseChoice) (tea.Model, tea.Cmd) {
	id := session.TabID(state.TabID)
	m.modal.Hide()

	switch choice {
	case modals.CloseDiscard:
		out := m.tabs.ConfirmClose(id)
		return m, m.afterClose(out)
	case modals.CloseSave:
		return m.saveThenClose(id)
	default:
		m.log.Debug("close cancelled", "tabID", id)
		return m, m.focusActive()
	}
}

// saveThenClose saves a dirty tab and closes it. A tab with no file yet
// goes through Save As first.
func (m *Model) saveThenClose(id session.TabID) (tea.Model, tea.Cmd) {
	if err := m.tabs.Switch(id); err != nil {
		return m, m.focusActive()
	}
	if m.tabs.NeedsDestination() {
		m.showSaveAs(true)
		return m, nil
	}
	res, err := m.tabs.Save(nil)
	feedback := m.saveFeedback(res, err)
	if err != nil {
		return m, tea.Batch(m.focusActive(), feedback)
	}
	out := m.tabs.RequestClose(id)
	return m, tea.Batch(m.afterClose(out), feedback)
}

// handleSettingsModal handles key events for the Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, m.focusActive()
	case keys.Enter:
		return m.applySettings(state)
	}
	return m.forwardToModal(msg)
}

// applySettings saves the edited settings and applies them live.
func (m *Model) applySettings(state *modals.SettingsState) (tea.Model, tea.Cmd) {
	v := state.Values()
	if v.BaseURL == "" {
		m.modal.SetError("Ollama URL cannot be empty")
		return m, nil
	}
	if v.Model == "" {
		m.modal.SetError("Model cannot be empty")
		return m, nil
	}

	var cmds []tea.Cmd
	reprobe := false

	if v.BaseURL != m.config.GetBaseURL() {
		if m.newClient == nil {
			m.modal.SetError("The server address cannot be changed while running")
			return m, nil
		}
		client, err := m.newClient(v.BaseURL)
		if err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		m.client = client
		m.config.SetBaseURL(v.BaseURL)
		reprobe = true
		m.log.Info("inference server changed", "baseURL", v.BaseURL)
	}

	if state.ThemeChanged() {
		ui.SetThemeByName(v.Theme)
		m.config.SetTheme(v.Theme)
		for _, t := range m.tabs.Tabs() {
			if e := m.editorFor(t.ID); e != nil {
				e.RefreshStyles()
			}
		}
		m.sidePanel.RefreshStyles()
	}

	if v.Model != m.config.GetModel() {
		m.config.SetModel(v.Model)
		m.header.SetModel(v.Model)
		reprobe = true
	}
	m.config.SetAutostart(v.Autostart)
	m.config.SetNotificationsEnabled(v.NotificationsEnabled)

	m.modal.Hide()
	cmds = append(cmds, m.focusActive())
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		cmds = append(cmds, cmd)
	} else {
		cmds = append(cmds, m.ShowFlashSuccess("Settings saved"))
	}
	if reprobe {
		cmds = append(cmds, m.probe())
	}
	return m, tea.Batch(cmds...)
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		return m.forwardToModal(msg)
	}

	switch key {
	case keys.Escape, keys.F1, "q":
		m.modal.Hide()
		return m, m.focusActive()
	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		m.modal.Hide()
		result, cmd := m.executeHelpShortcut(shortcut)
		if m.modal.IsVisible() {
			return result, cmd
		}
		return result, tea.Batch(cmd, m.focusActive())
	}
	return m.forwardToModal(msg)
}
