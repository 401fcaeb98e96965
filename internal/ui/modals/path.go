package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// PathPurpose says what a confirmed path will be used for.
type PathPurpose int

const (
	PathOpen PathPurpose = iota
	PathSaveAs
)

// =============================================================================
// PathState - file path prompt for Open and Save As
// =============================================================================

type PathState struct {
	Purpose PathPurpose
	// TabID is the tab being saved; empty for Open.
	TabID string
	// CloseAfterSave closes the tab once the save succeeds.
	CloseAfterSave bool

	path string
	form *huh.Form
}

func (*PathState) modalState() {}

func (s *PathState) Title() string {
	if s.Purpose == PathSaveAs {
		return "Save As"
	}
	return "Open File"
}

func (s *PathState) Help() string {
	return "Enter: confirm  Esc: cancel"
}

func (s *PathState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *PathState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Path returns the entered path with ~ expanded, or "" when nothing usable
// was typed.
func (s *PathState) Path() string {
	return ExpandPath(s.path)
}

// SetPath replaces the entered path
func (s *PathState) SetPath(path string) {
	s.path = path
}

func newPathState(purpose PathPurpose, suggested, title, description string) *PathState {
	s := &PathState{Purpose: purpose, path: suggested}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Placeholder("~/notes/todo.txt").
				CharLimit(ModalInputCharLimit).
				Value(&s.path),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth)

	initHuhForm(s.form)
	return s
}

// NewOpenFileState prompts for a file to open in a new tab.
func NewOpenFileState() *PathState {
	return newPathState(PathOpen, "", "Path", "The file opens in a new tab")
}

// NewSaveAsState prompts for the destination of tabID. suggested is the
// tab's current path or name.
func NewSaveAsState(tabID, suggested string, closeAfterSave bool) *PathState {
	s := newPathState(PathSaveAs, suggested, "Save to", "Existing files are overwritten")
	s.TabID = tabID
	s.CloseAfterSave = closeAfterSave
	return s
}
