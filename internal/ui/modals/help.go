package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// helpRow is one line of the help list: a section heading when heading is
// set, otherwise a command shortcut.
type helpRow struct {
	heading  string
	shortcut HelpShortcut
}

func (r helpRow) isHeading() bool { return r.heading != "" }

// Headings never match a filter so they drop out while the user searches.
func (r helpRow) FilterValue() string {
	if r.isHeading() {
		return ""
	}
	return r.shortcut.Desc + " " + r.shortcut.Key
}

const helpKeyColumn = 14

type helpRowDelegate struct{}

func (helpRowDelegate) Height() int                         { return 1 }
func (helpRowDelegate) Spacing() int                        { return 0 }
func (helpRowDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (helpRowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(helpRow)
	if !ok {
		return
	}
	if row.isHeading() {
		fmt.Fprint(w, lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary).Render(row.heading))
		return
	}

	key := lipgloss.NewStyle().Foreground(ColorPrimary).Width(helpKeyColumn)
	desc := lipgloss.NewStyle().Foreground(ColorText)
	cursor := "  "
	if index == m.Index() {
		cursor = "> "
		key = key.Bold(true).Foreground(ColorTextInverse).Background(ColorPrimary)
		desc = desc.Foreground(ColorTextInverse).Background(ColorPrimary)
	}
	fmt.Fprint(w, cursor+key.Render(row.shortcut.Key)+desc.Render(row.shortcut.Desc))
}

// HelpState lists the commands usable right now. Enter runs the selected one.
type HelpState struct {
	list  list.Model
	count int
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  Enter: run  Esc: close"
}

func (s *HelpState) Render() string {
	summary := ModalHelpStyle.Render(fmt.Sprintf("%d commands available", s.count))
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(s.Title()),
		s.list.View(),
		summary,
		ModalHelpStyle.Render(s.Help()),
	)
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// SetSize leaves room for the title, summary and help lines.
func (s *HelpState) SetSize(width, height int) {
	s.list.SetSize(width, max(height-5, 1))
}

// GetSelectedShortcut returns nil when a heading is selected or nothing is.
func (s *HelpState) GetSelectedShortcut() *HelpShortcut {
	row, ok := s.list.SelectedItem().(helpRow)
	if !ok || row.isHeading() {
		return nil
	}
	return &row.shortcut
}

// IsFiltering reports whether the filter prompt has the keyboard.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpStateFromSections flattens sections into one list, each heading
// followed by its shortcuts. The first shortcut starts selected.
func NewHelpStateFromSections(sections []HelpSection) *HelpState {
	var rows []list.Item
	first, count := -1, 0
	for _, sec := range sections {
		rows = append(rows, helpRow{heading: sec.Title})
		for _, sc := range sec.Shortcuts {
			if first < 0 {
				first = len(rows)
			}
			rows = append(rows, helpRow{shortcut: sc})
			count++
		}
	}

	l := list.New(rows, helpRowDelegate{}, ModalWidth, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)
	if first >= 0 {
		l.Select(first)
	}

	return &HelpState{list: l, count: count}
}
