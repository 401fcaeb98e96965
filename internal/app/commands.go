package app

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/assist"
	"github.com/zhubert/scribe/internal/keys"
	"github.com/zhubert/scribe/internal/ui/modals"
)

// Command is a user-invocable operation. The set is closed: every key
// binding and help entry maps to exactly one Command.
type Command int

const (
	CmdNewTab Command = iota
	CmdCloseTab
	CmdNew
	CmdOpen
	CmdSave
	CmdSaveAs
	CmdGenerate
	CmdDebug
	CmdExplain
	CmdNextTab
	CmdPrevTab
	CmdTogglePanel
	CmdCopyPanel
	CmdSettings
	CmdHelp
	CmdSetMark
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNewTab:      "new-tab",
	CmdCloseTab:    "close-tab",
	CmdNew:         "new",
	CmdOpen:        "open",
	CmdSave:        "save",
	CmdSaveAs:      "save-as",
	CmdGenerate:    "generate",
	CmdDebug:       "debug",
	CmdExplain:     "explain",
	CmdNextTab:     "next-tab",
	CmdPrevTab:     "prev-tab",
	CmdTogglePanel: "toggle-panel",
	CmdCopyPanel:   "copy-panel",
	CmdSettings:    "settings",
	CmdHelp:        "help",
	CmdSetMark:     "set-mark",
	CmdQuit:        "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Binding ties a Command to its keys, help text, guard and handler.
type Binding struct {
	Command     Command
	Keys        []string // first key is the one shown in help
	Description string
	Category    string
	Handler     func(m *Model) (tea.Model, tea.Cmd)
	// Condition is an optional guard. A bound key whose guard fails is
	// passed to the editor, where ctrl+e, ctrl+d, ctrl+b and ctrl+n keep
	// their usual line editing meaning.
	Condition func(m *Model) bool
}

// DisplayKey is the key shown in help and the footer.
func (b Binding) DisplayKey() string {
	if len(b.Keys) == 0 {
		return ""
	}
	return b.Keys[0]
}

// Categories for organizing commands in the help modal
const (
	CategoryFiles   = "Files"
	CategoryTabs    = "Tabs"
	CategoryAI      = "AI"
	CategoryEditing = "Editing"
	CategoryPanel   = "Side Panel"
	CategoryGeneral = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryFiles,
	CategoryTabs,
	CategoryEditing,
	CategoryAI,
	CategoryPanel,
	CategoryGeneral,
}

// CommandRegistry is the single source of truth for key bindings. It is
// filled in init because the help handler reads it.
var CommandRegistry []Binding

func init() {
	CommandRegistry = []Binding{
		// Files
		{
			Command:     CmdNew,
			Keys:        []string{keys.CtrlN},
			Description: "New file",
			Category:    CategoryFiles,
			Handler:     cmdNewTab,
		},
		{
			Command:     CmdOpen,
			Keys:        []string{keys.CtrlO},
			Description: "Open file in a new tab",
			Category:    CategoryFiles,
			Handler:     cmdOpen,
		},
		{
			Command:     CmdSave,
			Keys:        []string{keys.CtrlS},
			Description: "Save",
			Category:    CategoryFiles,
			Handler:     cmdSave,
			Condition:   hasActiveTab,
		},
		{
			Command:     CmdSaveAs,
			Keys:        []string{keys.CtrlShiftS, keys.AltS},
			Description: "Save as",
			Category:    CategoryFiles,
			Handler:     cmdSaveAs,
			Condition:   hasActiveTab,
		},

		// Tabs
		{
			Command:     CmdNewTab,
			Keys:        []string{keys.CtrlT},
			Description: "New tab",
			Category:    CategoryTabs,
			Handler:     cmdNewTab,
		},
		{
			Command:     CmdCloseTab,
			Keys:        []string{keys.CtrlW},
			Description: "Close tab",
			Category:    CategoryTabs,
			Handler:     cmdCloseTab,
			Condition:   hasActiveTab,
		},
		{
			Command:     CmdNextTab,
			Keys:        []string{keys.CtrlRight, keys.AltRightBracket},
			Description: "Next tab",
			Category:    CategoryTabs,
			Handler:     cmdNextTab,
			Condition:   hasSeveralTabs,
		},
		{
			Command:     CmdPrevTab,
			Keys:        []string{keys.CtrlLeft, keys.AltLeftBracket},
			Description: "Previous tab",
			Category:    CategoryTabs,
			Handler:     cmdPrevTab,
			Condition:   hasSeveralTabs,
		},

		// Editing
		{
			Command:     CmdSetMark,
			Keys:        []string{keys.CtrlSpace},
			Description: "Start or clear a selection",
			Category:    CategoryEditing,
			Handler:     cmdSetMark,
			Condition:   hasActiveTab,
		},

		// AI
		{
			Command:     CmdGenerate,
			Keys:        []string{keys.CtrlG},
			Description: "Generate code from the buffer",
			Category:    CategoryAI,
			Handler:     cmdAction(assist.Generate),
			Condition:   actionCondition(assist.Generate),
		},
		{
			Command:     CmdDebug,
			Keys:        []string{keys.CtrlD},
			Description: "Debug the buffer",
			Category:    CategoryAI,
			Handler:     cmdAction(assist.Debug),
			Condition:   actionCondition(assist.Debug),
		},
		{
			Command:     CmdExplain,
			Keys:        []string{keys.CtrlE},
			Description: "Explain the selection",
			Category:    CategoryAI,
			Handler:     cmdAction(assist.Explain),
			Condition:   actionCondition(assist.Explain),
		},

		// Side panel
		{
			Command:     CmdTogglePanel,
			Keys:        []string{keys.CtrlB},
			Description: "Show or hide the side panel",
			Category:    CategoryPanel,
			Handler:     cmdTogglePanel,
			Condition:   func(m *Model) bool { return m.sidePanel.HasContent() },
		},
		{
			Command:     CmdCopyPanel,
			Keys:        []string{keys.CtrlY},
			Description: "Copy the side panel text",
			Category:    CategoryPanel,
			Handler:     cmdCopyPanel,
			Condition:   func(m *Model) bool { return m.sidePanel.HasContent() },
		},

		// General
		{
			Command:     CmdSettings,
			Keys:        []string{keys.CtrlComma, keys.AltComma},
			Description: "Settings",
			Category:    CategoryGeneral,
			Handler:     cmdSettings,
		},
		{
			Command:     CmdHelp,
			Keys:        []string{keys.F1},
			Description: "Show this help",
			Category:    CategoryGeneral,
			Handler:     cmdHelp,
		},
		{
			Command:     CmdQuit,
			Keys:        []string{keys.CtrlQ, keys.CtrlC},
			Description: "Quit",
			Category:    CategoryGeneral,
			Handler:     cmdQuit,
		},
	}
}

// DisplayOnlyBindings are shown in help but have no handler of their own.
var DisplayOnlyBindings = []Binding{
	{Keys: []string{"esc"}, Description: "Clear selection / hide panel", Category: CategoryEditing},
	{Keys: []string{"alt+up/down"}, Description: "Scroll the side panel", Category: CategoryPanel},
}

func hasActiveTab(m *Model) bool {
	_, ok := m.tabs.Active()
	return ok
}

func hasSeveralTabs(m *Model) bool {
	return m.tabs.Len() > 1
}

func actionCondition(a assist.Action) func(m *Model) bool {
	return func(m *Model) bool { return m.actionEnabled(a) }
}

// lookupBinding finds the binding for a key press.
func lookupBinding(key string) (Binding, bool) {
	for _, b := range CommandRegistry {
		if slices.Contains(b.Keys, key) {
			return b, true
		}
	}
	return Binding{}, false
}

// bindingFor returns the binding of a command.
func bindingFor(c Command) (Binding, bool) {
	for _, b := range CommandRegistry {
		if b.Command == c {
			return b, true
		}
	}
	return Binding{}, false
}

// ExecuteKey runs the command bound to key. It reports false when nothing
// is bound or the binding's guard fails, so the key can go to the editor.
func (m *Model) ExecuteKey(key string) (tea.Model, tea.Cmd, bool) {
	b, ok := lookupBinding(key)
	if !ok {
		return m, nil, false
	}
	if b.Condition != nil && !b.Condition(m) {
		m.log.Debug("command unavailable, key goes to the editor", "command", b.Command, "key", key)
		return m, nil, false
	}
	result, cmd := m.run(b)
	return result, cmd, true
}

// ExecuteCommand runs c if its guard allows.
func (m *Model) ExecuteCommand(c Command) (tea.Model, tea.Cmd) {
	b, ok := bindingFor(c)
	if !ok {
		return m, nil
	}
	return m.run(b)
}

func (m *Model) run(b Binding) (tea.Model, tea.Cmd) {
	if b.Command != CmdQuit {
		m.quitArmed = false
	}
	if b.Condition != nil && !b.Condition(m) {
		m.log.Debug("command guard failed", "command", b.Command)
		return m, nil
	}
	m.log.Debug("running command", "command", b.Command)
	return b.Handler(m)
}

// getHelpSections builds help modal sections for the commands whose guards
// pass right now, plus the display-only entries.
func (m *Model) getHelpSections() []modals.HelpSection {
	categories := make(map[string][]modals.HelpShortcut)

	add := func(b Binding) {
		categories[b.Category] = append(categories[b.Category], modals.HelpShortcut{
			Key:  b.DisplayKey(),
			Desc: b.Description,
		})
	}
	for _, b := range CommandRegistry {
		if b.Condition != nil && !b.Condition(m) {
			continue
		}
		add(b)
	}
	for _, b := range DisplayOnlyBindings {
		add(b)
	}

	var sections []modals.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts := categories[cat]; len(shortcuts) > 0 {
			sections = append(sections, modals.HelpSection{Title: cat, Shortcuts: shortcuts})
		}
	}
	return sections
}

// executeHelpShortcut runs the command behind a help entry. Display-only
// entries have no binding and do nothing.
func (m *Model) executeHelpShortcut(sc *modals.HelpShortcut) (tea.Model, tea.Cmd) {
	if sc == nil {
		return m, nil
	}
	b, ok := lookupBinding(sc.Key)
	if !ok || b.Command == CmdHelp {
		return m, nil
	}
	return m.run(b)
}
