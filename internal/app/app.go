package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/assist"
	"github.com/zhubert/scribe/internal/clipboard"
	"github.com/zhubert/scribe/internal/config"
	"github.com/zhubert/scribe/internal/logger"
	"github.com/zhubert/scribe/internal/monitor"
	"github.com/zhubert/scribe/internal/ollama"
	"github.com/zhubert/scribe/internal/session"
	"github.com/zhubert/scribe/internal/tabs"
	"github.com/zhubert/scribe/internal/ui"
)

// Inference is what the shell needs from the inference server: the model
// list for availability probes and one-shot generation for AI actions.
type Inference interface {
	ListModels(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// ClientFactory builds an Inference client for a server address. The
// settings modal uses it when the address changes.
type ClientFactory func(baseURL string) (Inference, error)

// Options configures a new Model.
type Options struct {
	Config  *config.Config
	Version string
	// Client talks to the inference server. Required.
	Client Inference
	// NewClient rebuilds Client when the server address changes. When nil
	// the address cannot be changed at runtime.
	NewClient ClientFactory
	// Server is started at launch when autostart is on and nothing answers.
	Server *ollama.Server
	// Files are opened in tabs at launch. With none, one Untitled tab is created.
	Files []string
}

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	version   string
	client    Inference
	newClient ClientFactory
	server    *ollama.Server

	header    *ui.Header
	tabStrip  *ui.TabStrip
	footer    *ui.Footer
	sidePanel *ui.SidePanel
	modal     *ui.Modal

	tabs    *tabs.Controller
	assist  *assist.Coordinator
	monitor *monitor.Monitor

	width  int
	height int

	// quitArmed is set by a quit request that was held back by unsaved tabs.
	quitArmed bool

	startupFiles []string
	// copyText writes to the system clipboard; tests replace it.
	copyText func(string) error
	log      *slog.Logger
}

// New creates a new app model
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:       cfg,
		version:      opts.Version,
		client:       opts.Client,
		newClient:    opts.NewClient,
		server:       opts.Server,
		header:       ui.NewHeader(),
		tabStrip:     ui.NewTabStrip(),
		footer:       ui.NewFooter(),
		sidePanel:    ui.NewSidePanel(),
		modal:        ui.NewModal(),
		assist:       assist.New(),
		startupFiles: opts.Files,
		copyText:     clipboard.WriteText,
		log:          logger.WithComponent("app"),
	}
	m.monitor = newMonitor(cfg)
	m.tabs = tabs.New(session.NewStore(), m.newEditor)
	m.header.SetModel(cfg.GetModel())

	return m
}

func newMonitor(cfg *config.Config) *monitor.Monitor {
	return monitor.New(monitor.Options{
		ProbeTimeout:  cfg.ProbeTimeout(),
		RetryInterval: cfg.RetryInterval(),
		PollInterval:  cfg.PollInterval(),
	})
}

// newEditor is the tabs.SurfaceFactory: every tab gets its own editor.
func (m *Model) newEditor(id session.TabID) tabs.Surface {
	e := ui.NewEditor()
	ctx := ui.GetViewContext()
	if m.width > 0 {
		e.SetSize(ctx.EditorWidth, ctx.ContentHeight)
	}
	return e
}

// StartupMsg opens the launch files once the program is running.
type StartupMsg struct{}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return StartupMsg{} },
	}
	if m.server != nil && m.config.GetAutostart() {
		cmds = append(cmds, m.ensureServer())
	} else {
		cmds = append(cmds, m.probe())
	}
	cmds = append(cmds, m.schedulePoll())
	return tea.Batch(cmds...)
}

// Shutdown stops the self-hosted inference server, if one was started.
// Call it after the program exits.
func (m *Model) Shutdown() {
	if m.server != nil && m.server.Running() {
		m.log.Info("stopping inference server")
		m.server.Stop()
	}
}

// openStartupFiles opens each launch file in a tab. Files that fail to
// open are reported and skipped; with nothing opened, one Untitled tab is
// created so the editor is never empty at launch.
func (m *Model) openStartupFiles() tea.Cmd {
	var failed []string
	for _, path := range m.startupFiles {
		if _, err := m.tabs.Open(path); err != nil {
			m.log.Warn("failed to open startup file", "path", path, "error", err)
			failed = append(failed, path)
		}
	}
	m.startupFiles = nil

	if m.tabs.Len() == 0 {
		m.tabs.NewTab()
	}
	cmd := m.focusActive()

	if len(failed) > 0 {
		return tea.Batch(cmd, m.ShowFlashError(openFailedMessage(failed)))
	}
	return cmd
}

// activeEditor returns the active tab's editor, or nil with no tabs.
func (m *Model) activeEditor() *ui.Editor {
	e, _ := m.tabs.ActiveSurface().(*ui.Editor)
	return e
}

// editorFor returns the editor of a tab, or nil.
func (m *Model) editorFor(id session.TabID) *ui.Editor {
	e, _ := m.tabs.Surface(id).(*ui.Editor)
	return e
}

// focusActive gives keyboard focus to the active editor and takes it from
// every other one.
func (m *Model) focusActive() tea.Cmd {
	active, _ := m.tabs.Active()
	var cmd tea.Cmd
	for _, v := range m.tabs.Tabs() {
		e := m.editorFor(v.ID)
		if e == nil {
			continue
		}
		if v.ID == active {
			cmd = e.Focus()
		} else {
			e.Blur()
		}
	}
	return cmd
}

// assistInput snapshots the editor state an AI action is judged against.
func (m *Model) assistInput() assist.Input {
	in := assist.Input{
		Available: m.monitor.Available(),
		Model:     m.config.GetModel(),
	}
	if id, ok := m.tabs.Active(); ok {
		in.TabID = id
		if s := m.tabs.ActiveSurface(); s != nil {
			in.Buffer = s.Value()
			in.Selection = s.Selection()
		}
	}
	return in
}

// actionEnabled reports whether the trigger for a is live right now.
func (m *Model) actionEnabled(a assist.Action) bool {
	return m.assist.Enabled(a, m.assistInput())
}
