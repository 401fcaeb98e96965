package modals

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/zhubert/scribe/internal/keys"
)

// CloseChoice is the answer to the unsaved-changes prompt.
type CloseChoice int

const (
	CloseKeep CloseChoice = iota
	CloseSave
	CloseDiscard
)

// =============================================================================
// ConfirmCloseState - unsaved-changes prompt shown before closing a dirty tab
// =============================================================================

type ConfirmCloseState struct {
	TabID         string
	TabName       string
	Options       []string
	SelectedIndex int
}

func (*ConfirmCloseState) modalState() {}

func (s *ConfirmCloseState) Title() string { return "Unsaved Changes" }

func (s *ConfirmCloseState) Help() string {
	return "up/down to select, Enter to confirm, Esc to keep editing"
}

// Question is the prompt text naming the tab.
func (s *ConfirmCloseState) Question() string {
	return fmt.Sprintf("Close unsaved file %q?", s.TabName)
}

func (s *ConfirmCloseState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	question := lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true).
		MarginBottom(1).
		Render(s.Question())

	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, question, RenderSelectableList(s.Options, s.SelectedIndex), help)
}

func (s *ConfirmCloseState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Up, "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case keys.Down, "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		case "y":
			s.SelectedIndex = int(CloseDiscard)
		case "n":
			s.SelectedIndex = int(CloseKeep)
		}
	}
	return s, nil
}

// Choice returns the highlighted answer
func (s *ConfirmCloseState) Choice() CloseChoice {
	return CloseChoice(s.SelectedIndex)
}

// NewConfirmCloseState creates the prompt for a dirty tab. The safe answer
// is selected by default.
func NewConfirmCloseState(tabID, tabName string) *ConfirmCloseState {
	return &ConfirmCloseState{
		TabID:         tabID,
		TabName:       tabName,
		Options:       []string{"Keep editing", "Save, then close", "Discard changes and close"},
		SelectedIndex: int(CloseKeep),
	}
}
