package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/assist"
	"github.com/zhubert/scribe/internal/monitor"
	"github.com/zhubert/scribe/internal/notification"
)

// actionResultMsg carries a finished AI request back to the update loop.
type actionResultMsg struct {
	outcome assist.Outcome
}

// startAction snapshots the active editor and launches a. The request runs
// off the update loop; its outcome arrives as an actionResultMsg.
func (m *Model) startAction(a assist.Action) tea.Cmd {
	if id, ok := m.tabs.Active(); ok {
		m.tabs.ContentChanged(id)
	}
	req, ok := m.assist.Begin(a, m.assistInput())
	if !ok {
		return nil
	}
	m.updateActivities()

	client := m.client
	timeout := m.config.GenerateTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return actionResultMsg{outcome: req.Run(ctx, client)}
	}
}

// handleOutcome applies a finished request. A failure that means the server
// went away is fed to the monitor so the triggers disable at once.
func (m *Model) handleOutcome(o assist.Outcome) tea.Cmd {
	m.assist.Finish(o)
	m.updateActivities()

	if !o.OK() {
		var cmds []tea.Cmd
		if o.Unavailable() {
			tr := m.monitor.Observe(monitor.ProbeResult{Err: o.Err})
			cmds = append(cmds, m.applyTransition(tr))
		}
		cmds = append(cmds, m.ShowFlashError(fmt.Sprintf("%s: %v", o.Action.FailureMessage(), o.Err)))
		return tea.Batch(cmds...)
	}

	panel, applied := assist.Apply(o, m.tabs)
	if !applied {
		// The tab closed while the request was running.
		m.log.Info("discarding result for closed tab", "action", o.Action, "tabID", o.TabID)
		return nil
	}

	tabName := ""
	language := ""
	if t, ok := m.tabs.Store().Get(o.TabID); ok {
		tabName = t.Name
		language = t.Language
	}

	if panel.Body != "" {
		m.sidePanel.Show(panel.Title, panel.Body, language)
		m.updateSizes()
	}

	cmds := []tea.Cmd{m.ShowFlashSuccess(o.Action.SuccessMessage())}
	if m.config.GetNotificationsEnabled() {
		summary := o.Action.SuccessMessage()
		cmds = append(cmds, func() tea.Msg {
			if err := notification.ActionCompleted(tabName, summary); err != nil {
				m.log.Debug("desktop notification failed", "error", err)
			}
			return nil
		})
	}
	return tea.Batch(cmds...)
}

// updateActivities shows a loading message in the footer for each action
// in flight.
func (m *Model) updateActivities() {
	var activities []string
	for _, a := range assist.Actions {
		if m.assist.InFlight(a) {
			activities = append(activities, a.LoadingMessage())
		}
	}
	m.footer.SetActivities(activities)
}
