package modals

import (
	"strings"
	"testing"
)

var testThemes = []string{"dark-purple", "nord"}
var testThemeNames = []string{"Dark Purple", "Nord"}

func currentSettings() SettingsValues {
	return SettingsValues{
		Theme:                "dark-purple",
		Model:                "llama3.2:3b",
		BaseURL:              "http://localhost:11434",
		NotificationsEnabled: true,
		Autostart:            false,
	}
}

func TestNewSettingsState_Values(t *testing.T) {
	s := NewSettingsState(testThemes, testThemeNames, currentSettings(), []string{"llama3.2:3b", "qwen2.5-coder"})

	got := s.Values()
	if got != currentSettings() {
		t.Errorf("Values() = %+v, want %+v", got, currentSettings())
	}
	if s.ThemeChanged() || s.ServerChanged() {
		t.Error("a fresh form reports no changes")
	}
}

func TestSettingsState_DetectsChanges(t *testing.T) {
	s := NewSettingsState(testThemes, testThemeNames, currentSettings(), nil)

	s.theme = "nord"
	s.model = " codellama "
	if !s.ThemeChanged() {
		t.Error("ThemeChanged() should be true")
	}
	if !s.ServerChanged() {
		t.Error("ServerChanged() should be true")
	}
	if s.Values().Model != "codellama" {
		t.Errorf("Model = %q, want trimmed", s.Values().Model)
	}
}

func TestSettingsState_OptionToggles(t *testing.T) {
	s := NewSettingsState(testThemes, testThemeNames, currentSettings(), nil)

	s.generalOptions = []string{optionAutostart}
	v := s.Values()
	if v.NotificationsEnabled || !v.Autostart {
		t.Errorf("Values() = %+v", v)
	}
}

func TestSettingsState_Render(t *testing.T) {
	s := NewSettingsState(testThemes, testThemeNames, currentSettings(), []string{"llama3.2:3b"})
	out := s.Render()

	for _, want := range []string{"Settings", "Theme", "Model"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q", want)
		}
	}
	if s.PreferredWidth() != ModalWidthWide {
		t.Errorf("PreferredWidth() = %d", s.PreferredWidth())
	}
}
