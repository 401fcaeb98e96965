package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/scribe/internal/keys"
	"github.com/zhubert/scribe/internal/ui"
	"github.com/zhubert/scribe/internal/ui/modals"
)

func TestOpen_FromPrompt(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.go", "package main\n")
	m := testModel(t, newFakeInference())

	sendKey(m, keys.CtrlO)
	state, ok := m.modal.State.(*modals.PathState)
	if !ok || state.Purpose != modals.PathOpen {
		t.Fatalf("expected open prompt, got %T", m.modal.State)
	}
	state.SetPath(path)
	sendKey(m, keys.Enter)

	if m.modal.IsVisible() {
		t.Error("prompt should close")
	}
	if m.tabs.Len() != 2 {
		t.Fatalf("expected 2 tabs, got %d", m.tabs.Len())
	}
	tab, _ := m.tabs.ActiveTab()
	if tab.Name != "main.go" || tab.Language != "go" {
		t.Errorf("tab = %+v", tab)
	}
	if !m.activeEditor().Focused() {
		t.Error("opened tab should have focus")
	}
}

func TestOpen_EmptyPathKeepsPrompt(t *testing.T) {
	m := testModel(t, newFakeInference())
	sendKey(m, keys.CtrlO)
	sendKey(m, keys.Enter)

	if !m.modal.IsVisible() {
		t.Fatal("prompt should stay open")
	}
	if m.modal.GetError() == "" {
		t.Error("expected an inline error")
	}
}

func TestOpen_BlankPathKeepsPrompt(t *testing.T) {
	m := testModel(t, newFakeInference())
	sendKey(m, keys.CtrlO)
	m.modal.State.(*modals.PathState).SetPath("   ")
	sendKey(m, keys.Enter)

	if !m.modal.IsVisible() || m.modal.GetError() == "" {
		t.Error("a blank path should keep the prompt with an error")
	}
}

func TestOpen_KeepsSurroundingSpaces(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt ", "spaced")
	m := testModel(t, newFakeInference())

	sendKey(m, keys.CtrlO)
	m.modal.State.(*modals.PathState).SetPath(path)
	sendKey(m, keys.Enter)

	tab, ok := m.tabs.ActiveTab()
	if !ok || tab.Name != "notes.txt " {
		t.Fatalf("tab = %+v", tab)
	}
	if got := m.activeEditor().Value(); got != "spaced" {
		t.Errorf("buffer = %q", got)
	}
}

func TestOpen_MissingFileFlashes(t *testing.T) {
	m := testModel(t, newFakeInference())
	sendKey(m, keys.CtrlO)
	m.modal.State.(*modals.PathState).SetPath(filepath.Join(t.TempDir(), "gone.txt"))
	sendKey(m, keys.Enter)

	if m.tabs.Len() != 1 {
		t.Errorf("no tab should be created, got %d", m.tabs.Len())
	}
	if !strings.Contains(m.footer.FlashText(), "gone.txt") {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
}

func TestOpen_EscapeCancels(t *testing.T) {
	m := testModel(t, newFakeInference())
	sendKey(m, keys.CtrlO)
	sendKey(m, keys.Escape)
	if m.modal.IsVisible() {
		t.Error("esc should close the prompt")
	}
}

func TestSave_UnboundAsksForPath(t *testing.T) {
	m := testModel(t, newFakeInference())
	setBuffer(t, m, "hello")

	sendKey(m, keys.CtrlS)
	state, ok := m.modal.State.(*modals.PathState)
	if !ok || state.Purpose != modals.PathSaveAs {
		t.Fatalf("expected Save As prompt, got %T", m.modal.State)
	}
	if state.CloseAfterSave {
		t.Error("plain save must not close the tab")
	}

	dest := filepath.Join(t.TempDir(), "hello.txt")
	state.SetPath(dest)
	sendKey(m, keys.Enter)

	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "hello" {
		t.Fatalf("file = %q, err = %v", data, err)
	}
	tab, _ := m.tabs.ActiveTab()
	if tab.Name != "hello.txt" || tab.Dirty {
		t.Errorf("tab = %+v", tab)
	}
	if m.footer.FlashText() != "Saved hello.txt" {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
}

func TestSave_BoundWritesDirectly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "one")
	m := testModel(t, newFakeInference(), path)
	setBuffer(t, m, "two")

	sendKey(m, keys.CtrlS)

	if m.modal.IsVisible() {
		t.Error("a bound tab should save without a prompt")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "two" {
		t.Errorf("file = %q", data)
	}
}

func TestSaveAs_WriteFailureFlashes(t *testing.T) {
	m := testModel(t, newFakeInference())
	setBuffer(t, m, "x")

	sendKey(m, keys.AltS)
	m.modal.State.(*modals.PathState).SetPath(filepath.Join(t.TempDir(), "missing", "dir", "x.txt"))
	sendKey(m, keys.Enter)

	if !strings.HasPrefix(m.footer.FlashText(), "Save failed") {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
	tab, _ := m.tabs.ActiveTab()
	if tab.Path != "" {
		t.Error("a failed save must not bind the tab")
	}
}

func TestSettings_SaveWritesConfig(t *testing.T) {
	m := testModel(t, newFakeInference())

	sendKey(m, keys.CtrlComma)
	if _, ok := m.modal.State.(*modals.SettingsState); !ok {
		t.Fatalf("expected settings modal, got %T", m.modal.State)
	}
	sendKey(m, keys.Enter)

	if m.modal.IsVisible() {
		t.Error("settings should close on save")
	}
	if _, err := os.Stat(m.config.Path()); err != nil {
		t.Errorf("config not written: %v", err)
	}
	if m.footer.FlashText() != "Settings saved" {
		t.Errorf("flash = %q", m.footer.FlashText())
	}
}

func TestSettings_EscapeDiscards(t *testing.T) {
	m := testModel(t, newFakeInference())
	sendKey(m, keys.AltComma)
	sendKey(m, keys.Escape)

	if m.modal.IsVisible() {
		t.Error("esc should close settings")
	}
	if _, err := os.Stat(m.config.Path()); err == nil {
		t.Error("cancelled settings must not write the config")
	}
}

func TestHelp_OpenAndClose(t *testing.T) {
	m := testModel(t, newFakeInference())

	sendKey(m, keys.F1)
	if _, ok := m.modal.State.(*modals.HelpState); !ok {
		t.Fatalf("expected help modal, got %T", m.modal.State)
	}
	if !strings.Contains(stripANSI(m.RenderToString()), "Keyboard Shortcuts") {
		t.Error("help should be rendered")
	}

	sendKey(m, keys.Escape)
	if m.modal.IsVisible() {
		t.Error("esc should close help")
	}
}

func TestModal_BlocksEditorAndRegistry(t *testing.T) {
	m := testModel(t, newFakeInference())
	sendKey(m, keys.F1)

	sendKey(m, keys.CtrlT)
	if m.tabs.Len() != 1 {
		t.Error("bindings must not fire behind a modal")
	}
}

func TestSaveConfigOrFlash(t *testing.T) {
	m := testModel(t, newFakeInference())
	if cmd := m.saveConfigOrFlash(); cmd != nil {
		t.Error("expected nil cmd on successful save")
	}
}

func TestFlashTick_ClearsExpired(t *testing.T) {
	m := testModel(t, newFakeInference())

	m.footer.SetFlashWithDuration("gone", ui.FlashInfo, 0)
	if _, cmd := m.Update(ui.FlashTickMsg{}); cmd != nil {
		t.Error("an expired flash needs no further ticks")
	}
	if m.footer.HasFlash() {
		t.Error("expired flash should be cleared")
	}

	m.ShowFlashInfo("stays")
	if _, cmd := m.Update(ui.FlashTickMsg{}); cmd == nil {
		t.Error("a live flash should keep ticking")
	}
}

func TestView_Layout(t *testing.T) {
	path := writeFile(t, t.TempDir(), "view.go", "package view\n")
	m := testModel(t, newFakeInference(), path)

	out := stripANSI(m.RenderToString())
	for _, want := range []string{"Checking Ollama...", "view.go", "package view", "1 file open"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	setBuffer(t, m, "changed")
	out = stripANSI(m.RenderToString())
	if !strings.Contains(out, "view.go "+ui.DirtyMarker) {
		t.Error("dirty tab should carry the marker")
	}
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := New(Options{Config: testConfig(t), Client: newFakeInference()})
	if got := m.RenderToString(); got != "Loading..." {
		t.Errorf("got %q", got)
	}
	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}
