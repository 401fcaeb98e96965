package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/assist"
	"github.com/zhubert/scribe/internal/session"
	"github.com/zhubert/scribe/internal/tabs"
	"github.com/zhubert/scribe/internal/ui"
	"github.com/zhubert/scribe/internal/ui/modals"
)

func cmdNewTab(m *Model) (tea.Model, tea.Cmd) {
	m.tabs.NewTab()
	return m, m.focusActive()
}

func cmdOpen(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewOpenFileState())
	return m, nil
}

func cmdSave(m *Model) (tea.Model, tea.Cmd) {
	if m.tabs.NeedsDestination() {
		m.showSaveAs(false)
		return m, nil
	}
	res, err := m.tabs.Save(nil)
	return m, m.saveFeedback(res, err)
}

func cmdSaveAs(m *Model) (tea.Model, tea.Cmd) {
	m.showSaveAs(false)
	return m, nil
}

func cmdCloseTab(m *Model) (tea.Model, tea.Cmd) {
	id, _ := m.tabs.Active()
	out := m.tabs.RequestClose(id)
	if out.NeedsConfirm {
		m.modal.Show(modals.NewConfirmCloseState(string(out.ID), out.Name))
		return m, nil
	}
	return m, m.afterClose(out)
}

func cmdNextTab(m *Model) (tea.Model, tea.Cmd) {
	m.tabs.Next()
	return m, m.focusActive()
}

func cmdPrevTab(m *Model) (tea.Model, tea.Cmd) {
	m.tabs.Prev()
	return m, m.focusActive()
}

func cmdSetMark(m *Model) (tea.Model, tea.Cmd) {
	e := m.activeEditor()
	if e == nil {
		return m, nil
	}
	if e.HasMark() {
		e.ClearMark()
	} else {
		e.SetMark()
	}
	return m, nil
}

func cmdAction(a assist.Action) func(m *Model) (tea.Model, tea.Cmd) {
	return func(m *Model) (tea.Model, tea.Cmd) {
		return m, m.startAction(a)
	}
}

func cmdTogglePanel(m *Model) (tea.Model, tea.Cmd) {
	m.sidePanel.Toggle()
	m.updateSizes()
	return m, nil
}

func cmdCopyPanel(m *Model) (tea.Model, tea.Cmd) {
	if err := m.copyText(m.sidePanel.Text()); err != nil {
		m.log.Warn("clipboard copy failed", "error", err)
		return m, m.ShowFlashError(fmt.Sprintf("Copy failed: %v", err))
	}
	return m, m.ShowFlashSuccess("Copied " + m.sidePanel.Title() + " to clipboard")
}

func cmdSettings(m *Model) (tea.Model, tea.Cmd) {
	names, displayNames := ui.ThemeChoices()
	current := modals.SettingsValues{
		Theme:                string(ui.CurrentThemeName()),
		Model:                m.config.GetModel(),
		BaseURL:              m.config.GetBaseURL(),
		NotificationsEnabled: m.config.GetNotificationsEnabled(),
		Autostart:            m.config.GetAutostart(),
	}
	m.modal.Show(modals.NewSettingsState(names, displayNames, current, m.monitor.Models()))
	return m, nil
}

func cmdHelp(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(modals.NewHelpStateFromSections(m.getHelpSections()))
	return m, nil
}

func cmdQuit(m *Model) (tea.Model, tea.Cmd) {
	dirty := m.tabs.Store().DirtyCount()
	if dirty == 0 || m.quitArmed {
		m.log.Info("quitting", "unsavedTabs", dirty)
		return m, tea.Quit
	}
	m.quitArmed = true
	return m, m.ShowFlashWarning(unsavedQuitMessage(dirty))
}

func unsavedQuitMessage(dirty int) string {
	if dirty == 1 {
		return "1 tab has unsaved changes. Quit again to discard them."
	}
	return fmt.Sprintf("%d tabs have unsaved changes. Quit again to discard them.", dirty)
}

// showSaveAs opens the Save As prompt for the active tab, suggesting its
// current path or name.
func (m *Model) showSaveAs(closeAfterSave bool) {
	t, ok := m.tabs.ActiveTab()
	if !ok {
		return
	}
	m.modal.Show(modals.NewSaveAsState(string(t.ID), suggestedPath(t), closeAfterSave))
}

func suggestedPath(t session.Tab) string {
	if t.Path != "" {
		return t.Path
	}
	return t.Name
}

// saveFeedback turns a save result into a flash message.
func (m *Model) saveFeedback(res session.SaveResult, err error) tea.Cmd {
	switch {
	case err != nil:
		return m.ShowFlashError(fmt.Sprintf("Save failed: %v", err))
	case res.Cancelled:
		return nil
	case res.TabsExpanded:
		return m.ShowFlashWarning("Saved " + res.Name + "; tabs on edited lines were written as spaces")
	default:
		return m.ShowFlashSuccess("Saved " + res.Name)
	}
}

// afterClose moves focus to whichever tab became active.
func (m *Model) afterClose(out tabs.CloseOutcome) tea.Cmd {
	if !out.Closed {
		return nil
	}
	m.log.Debug("tab closed", "tabID", out.ID, "activated", out.Activated)
	return m.focusActive()
}
