package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestNewConfirmCloseState_DefaultsToKeep(t *testing.T) {
	s := NewConfirmCloseState("tab-1", "notes.txt")

	if s.Choice() != CloseKeep {
		t.Errorf("Choice() = %v, want CloseKeep", s.Choice())
	}
	if s.TabID != "tab-1" {
		t.Errorf("TabID = %q", s.TabID)
	}
	if got := s.Question(); got != `Close unsaved file "notes.txt"?` {
		t.Errorf("Question() = %q", got)
	}
}

func TestConfirmCloseState_Navigation(t *testing.T) {
	s := NewConfirmCloseState("tab-1", "Untitled")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.Choice() != CloseSave {
		t.Errorf("after down Choice() = %v, want CloseSave", s.Choice())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.Choice() != CloseDiscard {
		t.Errorf("down past the end should stay on the last option, got %v", s.Choice())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.Choice() != CloseKeep {
		t.Errorf("up past the start should stay on the first option, got %v", s.Choice())
	}
}

func TestConfirmCloseState_YesNoKeys(t *testing.T) {
	s := NewConfirmCloseState("tab-1", "Untitled")

	s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if s.Choice() != CloseDiscard {
		t.Errorf("y should select discard, got %v", s.Choice())
	}
	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if s.Choice() != CloseKeep {
		t.Errorf("n should select keep, got %v", s.Choice())
	}
}

func TestConfirmCloseState_Render(t *testing.T) {
	s := NewConfirmCloseState("tab-1", "main.go")
	out := s.Render()

	for _, want := range []string{"Unsaved Changes", "main.go", "Keep editing", "Discard changes and close"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
}
