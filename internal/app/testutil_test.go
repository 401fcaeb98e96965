package app

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/scribe/internal/config"
	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/keys"
	"github.com/zhubert/scribe/internal/logger"
	"github.com/zhubert/scribe/internal/monitor"
	"github.com/zhubert/scribe/internal/notification"
	"github.com/zhubert/scribe/internal/session"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	notification.SetNotifier(func(title, message string, icon any) error { return nil })

	code := m.Run()

	notification.ResetNotifier()
	logger.Reset()
	os.Exit(code)
}

// fakeInference is an in-memory inference server.
type fakeInference struct {
	mu       sync.Mutex
	models   []string
	listErr  error
	reply    string
	genErr   error
	prompts  []string
	modelArg string
}

func newFakeInference(models ...string) *fakeInference {
	return &fakeInference{models: models, reply: "ok"}
}

func (f *fakeInference) ListModels(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string(nil), f.models...), nil
}

func (f *fakeInference) Generate(ctx context.Context, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.modelArg = model
	if f.genErr != nil {
		return "", f.genErr
	}
	return f.reply, nil
}

func (f *fakeInference) goOffline() {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := pErrors.InferenceUnavailable("http://localhost:11434", context.DeadlineExceeded)
	f.listErr = err
	f.genErr = err
}

func (f *fakeInference) comeBack() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = nil
	f.genErr = nil
}

// testConfig loads defaults bound to a file in a temp dir, so Save works.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	return cfg
}

// testModel builds a sized model with one Untitled tab, as at launch with
// no files.
func testModel(t *testing.T, client *fakeInference, files ...string) *Model {
	t.Helper()
	m := New(Options{
		Config:  testConfig(t),
		Version: "0.0.0-test",
		Client:  client,
		Files:   files,
	})
	m.copyText = func(string) error { return nil }
	setSize(m, 120, 40)
	m.Update(StartupMsg{})
	return m
}

// onlineModel is a testModel whose monitor has seen the server answer.
func onlineModel(t *testing.T, client *fakeInference, files ...string) *Model {
	t.Helper()
	m := testModel(t, client, files...)
	m.Update(probeResultMsg{result: monitor.ProbeResult{Models: client.models}})
	if !m.monitor.Available() {
		t.Fatal("expected server to be available")
	}
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.F1:
		return tea.KeyPressMsg{Code: tea.KeyF1}
	case keys.CtrlSpace:
		return tea.KeyPressMsg{Code: tea.KeySpace, Mod: tea.ModCtrl}
	case keys.CtrlLeft:
		return tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModCtrl}
	case keys.CtrlRight:
		return tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModCtrl}
	case keys.CtrlShiftS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl | tea.ModShift}
	case keys.AltUp:
		return tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModAlt}
	case keys.AltDown:
		return tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModAlt}
	case keys.AltS:
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModAlt}
	case keys.AltComma:
		return tea.KeyPressMsg{Code: ',', Mod: tea.ModAlt}
	}
	if len(key) == len("ctrl+x") && key[:5] == "ctrl+" {
		return tea.KeyPressMsg{Code: rune(key[5]), Mod: tea.ModCtrl}
	}
	if len(key) == 1 {
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
	return tea.KeyPressMsg{Text: key}
}

// sendKey sends a key press to the model and returns the resulting command.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) {
	for _, ch := range text {
		sendKey(m, string(ch))
	}
}

// setSize sends a window size message to the model.
func setSize(m *Model, width, height int) {
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

// writeFile creates a file under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// runAction starts a and feeds the finished request back into the model.
func runAction(t *testing.T, m *Model, key string) tea.Cmd {
	t.Helper()
	cmd := sendKey(m, key)
	if cmd == nil {
		t.Fatalf("expected %s to start a request", key)
	}
	msg := cmd()
	res, ok := msg.(actionResultMsg)
	if !ok {
		t.Fatalf("expected actionResultMsg, got %T", msg)
	}
	_, after := m.Update(res)
	return after
}

// activeID returns the active tab, failing the test when there is none.
func activeID(t *testing.T, m *Model) session.TabID {
	t.Helper()
	id, ok := m.tabs.Active()
	if !ok {
		t.Fatal("expected an active tab")
	}
	return id
}

// setBuffer replaces the active buffer as if the user had typed it.
func setBuffer(t *testing.T, m *Model, text string) {
	t.Helper()
	m.tabs.ReplaceContent(activeID(t, m), text)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes terminal styling so rendered views can be searched.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
