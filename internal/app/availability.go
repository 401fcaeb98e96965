package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/monitor"
	"github.com/zhubert/scribe/internal/ollama"
	"github.com/zhubert/scribe/internal/ui"
)

// probeResultMsg is the answer to one availability probe.
type probeResultMsg struct {
	result monitor.ProbeResult
}

// pollTickMsg fires on the steady poll cadence.
type pollTickMsg struct{}

// retryTickMsg fires after the retry delay. Only the latest token probes.
type retryTickMsg struct {
	token uint64
}

// serverStartedMsg reports the outcome of the launch-time server check.
type serverStartedMsg struct {
	started bool
	err     error
}

// probe asks the server for its model list, bounded by the probe timeout.
func (m *Model) probe() tea.Cmd {
	client := m.client
	timeout := m.monitor.ProbeTimeout()
	return func() tea.Msg {
		return probeResultMsg{result: monitor.Probe(context.Background(), client, timeout)}
	}
}

// schedulePoll re-probes after the poll interval, whatever the state.
func (m *Model) schedulePoll() tea.Cmd {
	return tea.Tick(m.monitor.PollInterval(), func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// scheduleRetry starts a new retry cycle, superseding any pending one.
func (m *Model) scheduleRetry() tea.Cmd {
	token := m.monitor.ScheduleRetry()
	return tea.Tick(m.monitor.RetryInterval(), func(time.Time) tea.Msg {
		return retryTickMsg{token: token}
	})
}

func (m *Model) handleProbeResult(res monitor.ProbeResult) tea.Cmd {
	tr := m.monitor.Observe(res)
	if res.Err != nil {
		m.log.Debug("probe failed", "error", res.Err)
	}
	return m.applyTransition(tr)
}

// applyTransition reflects an observation in the header and footer. Every
// Unavailable observation schedules a retry.
func (m *Model) applyTransition(tr monitor.Transition) tea.Cmd {
	m.header.SetStatus(statusFor(tr.To))

	var cmds []tea.Cmd
	if tr.To == monitor.Unavailable {
		cmds = append(cmds, m.scheduleRetry())
	}
	if tr.Changed() {
		switch {
		case tr.From == monitor.Available && tr.To == monitor.Unavailable:
			cmds = append(cmds, m.ShowFlashWarning("Ollama went offline. AI actions are disabled."))
		case tr.From == monitor.Unavailable && tr.To == monitor.Available:
			cmds = append(cmds, m.ShowFlashSuccess("Ollama is back online"))
		}
	}
	if tr.Advise {
		cmds = append(cmds, m.ShowFlashWarning(monitor.Advisory(m.config.GetModel())))
	} else if tr.Changed() && tr.To == monitor.Available && !m.monitor.HasModel(m.config.GetModel()) && len(m.monitor.Models()) > 0 {
		m.log.Warn("configured model not installed", "model", m.config.GetModel(), "installed", m.monitor.Models())
	}
	return tea.Batch(cmds...)
}

// ensureServer starts the configured server when nothing answers at the
// client's address. Clients that are not the HTTP client are just probed.
func (m *Model) ensureServer() tea.Cmd {
	client, ok := m.client.(*ollama.Client)
	if !ok || m.server == nil {
		return m.probe()
	}
	server := m.server
	timeout := m.monitor.ProbeTimeout()
	return func() tea.Msg {
		started, err := ollama.EnsureServer(context.Background(), client, server, timeout)
		return serverStartedMsg{started: started, err: err}
	}
}

func (m *Model) handleServerStarted(msg serverStartedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Warn("could not start inference server", "error", msg.err)
		tr := m.monitor.Observe(monitor.ProbeResult{Err: msg.err})
		return tea.Batch(
			m.applyTransition(tr),
			m.ShowFlashWarning("Could not start ollama; AI actions are disabled"),
		)
	}
	if msg.started {
		m.log.Info("started inference server")
		return tea.Batch(m.ShowFlashInfo("Starting ollama..."), m.probe())
	}
	return m.probe()
}

func statusFor(a monitor.Availability) ui.ConnectionStatus {
	switch a {
	case monitor.Available:
		return ui.StatusConnected
	case monitor.Unavailable:
		return ui.StatusOffline
	default:
		return ui.StatusChecking
	}
}
