package tabs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zhubert/scribe/internal/logger"
	"github.com/zhubert/scribe/internal/session"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

// fakeSurface is an in-memory Surface.
type fakeSurface struct {
	value     string
	selection string
}

func (f *fakeSurface) Value() string         { return f.value }
func (f *fakeSurface) SetValue(text string)  { f.value = text; f.selection = "" }
func (f *fakeSurface) Selection() string     { return f.selection }
func (f *fakeSurface) typeText(text string)  { f.value += text }
func (f *fakeSurface) selectText(sel string) { f.selection = sel }

func newTestController() *Controller {
	return New(session.NewStore(), func(session.TabID) Surface {
		return &fakeSurface{}
	})
}

func surfaceOf(t *testing.T, c *Controller, id session.TabID) *fakeSurface {
	t.Helper()
	s, ok := c.Surface(id).(*fakeSurface)
	if !ok {
		t.Fatalf("no fake surface for %s", id)
	}
	return s
}

func TestNewTab(t *testing.T) {
	c := newTestController()

	id := c.NewTab()
	if active, ok := c.Active(); !ok || active != id {
		t.Errorf("Active() = %q, want %q", active, id)
	}
	if c.State(id) != StateClean {
		t.Errorf("State() = %v, want clean", c.State(id))
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestOpen(t *testing.T) {
	c := newTestController()
	path := filepath.Join(t.TempDir(), "a.py")
	if err := os.WriteFile(path, []byte("print(1)\n"), 0644); err != nil {
		t.Fatal(err)
	}

	id, err := c.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := surfaceOf(t, c, id).Value(); got != "print(1)\n" {
		t.Errorf("surface value = %q", got)
	}
	if c.State(id) != StateClean {
		t.Errorf("State() = %v, want clean", c.State(id))
	}
}

func TestOpen_FailureKeepsActive(t *testing.T) {
	c := newTestController()
	first := c.NewTab()

	if _, err := c.Open(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("Open() of a missing file should fail")
	}
	if active, _ := c.Active(); active != first {
		t.Errorf("active tab changed to %q after failed open", active)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestContentChanged_MarksDirty(t *testing.T) {
	c := newTestController()
	id := c.NewTab()

	surfaceOf(t, c, id).typeText("abc")
	c.ContentChanged(id)

	if c.State(id) != StateDirty {
		t.Errorf("State() = %v, want dirty", c.State(id))
	}
	if got := c.Store().ReadContent(id); got != "abc" {
		t.Errorf("store content = %q, want abc", got)
	}
}

// trimmingSurface drops trailing spaces from every text it is given, like a
// widget that cannot show them.
type trimmingSurface struct{ fakeSurface }

func (s *trimmingSurface) SetValue(text string) {
	s.fakeSurface.SetValue(strings.TrimRight(text, " "))
}

func TestOpen_SurfaceAlteringTextStaysClean(t *testing.T) {
	c := New(session.NewStore(), func(session.TabID) Surface { return &trimmingSurface{} })
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("text   "), 0o644); err != nil {
		t.Fatal(err)
	}

	id, err := c.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	c.ContentChanged(id)

	if c.State(id) != StateClean {
		t.Errorf("State() = %v, want clean", c.State(id))
	}
	if out := c.RequestClose(id); !out.Closed {
		t.Error("an unedited tab should close without confirmation")
	}
}

func TestSwitch_DoesNotMutateStore(t *testing.T) {
	c := newTestController()
	a := c.NewTab()
	b := c.NewTab()
	surfaceOf(t, c, a).typeText("unsynced")

	if err := c.Switch(a); err != nil {
		t.Fatalf("Switch() error = %v", err)
	}
	if active, _ := c.Active(); active != a {
		t.Errorf("Active() = %q, want %q", active, a)
	}
	if got := c.Store().ReadContent(a); got != "" {
		t.Errorf("Switch must not write to the store, content = %q", got)
	}
	if err := c.Switch("nope"); err == nil {
		t.Error("Switch to unknown tab should fail")
	}
	if active, _ := c.Active(); active != a {
		t.Error("failed Switch must keep the active tab")
	}
	_ = b
}

func TestNextPrev(t *testing.T) {
	c := newTestController()
	a := c.NewTab()
	b := c.NewTab()
	cc := c.NewTab()

	c.Next()
	if active, _ := c.Active(); active != a {
		t.Errorf("Next() from last should wrap to first, got %q", active)
	}
	c.Prev()
	if active, _ := c.Active(); active != cc {
		t.Errorf("Prev() from first should wrap to last, got %q", active)
	}
	c.Prev()
	if active, _ := c.Active(); active != b {
		t.Errorf("Prev() = %q, want %q", active, b)
	}
}

func TestSave_UnboundUsesPicker(t *testing.T) {
	c := newTestController()
	target := filepath.Join(t.TempDir(), "a.txt")
	id := c.NewTab()
	surfaceOf(t, c, id).typeText("hello")
	c.ContentChanged(id)

	if !c.NeedsDestination() {
		t.Error("unbound tab should need a destination")
	}

	res, err := c.Save(session.StaticPicker(target))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if res.Path != target || res.Name != "a.txt" {
		t.Errorf("SaveResult = %+v", res)
	}
	if c.State(id) != StateClean {
		t.Errorf("State() = %v, want clean", c.State(id))
	}
	if c.NeedsDestination() {
		t.Error("saved tab should no longer need a destination")
	}
	data, _ := os.ReadFile(target)
	if string(data) != "hello" {
		t.Errorf("file = %q, want hello", data)
	}
}

func TestSave_SyncsUnreportedEdits(t *testing.T) {
	c := newTestController()
	target := filepath.Join(t.TempDir(), "b.txt")
	id := c.NewTab()
	surfaceOf(t, c, id).typeText("late edit")

	if _, err := c.SaveAs(session.StaticPicker(target)); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "late edit" {
		t.Errorf("file = %q, want the surface text", data)
	}
}

func TestSaveAs_CancelKeepsDirty(t *testing.T) {
	c := newTestController()
	id := c.NewTab()
	surfaceOf(t, c, id).typeText("x")
	c.ContentChanged(id)

	res, err := c.SaveAs(session.StaticPicker(""))
	if err != nil || !res.Cancelled {
		t.Fatalf("SaveAs() = %+v, %v; want cancelled", res, err)
	}
	if c.State(id) != StateDirty {
		t.Errorf("State() = %v, want dirty", c.State(id))
	}
}

func TestSave_NoActiveTab(t *testing.T) {
	c := newTestController()
	if _, err := c.Save(session.StaticPicker("/tmp/x")); err == nil {
		t.Error("Save with no active tab should fail")
	}
}

func TestRequestClose_CleanClosesAndActivatesMostRecent(t *testing.T) {
	c := newTestController()
	a := c.NewTab()
	b := c.NewTab()
	cc := c.NewTab()
	if err := c.Switch(b); err != nil {
		t.Fatal(err)
	}

	out := c.RequestClose(b)
	if !out.Closed || out.NeedsConfirm {
		t.Fatalf("RequestClose() = %+v", out)
	}
	if out.Activated != cc {
		t.Errorf("Activated = %q, want most recent %q", out.Activated, cc)
	}
	if c.State(b) != StateClosed {
		t.Errorf("State() = %v, want closed", c.State(b))
	}
	if c.Surface(b) != nil {
		t.Error("closed tab's surface should be dropped")
	}

	// Closing an inactive tab leaves the active pointer alone.
	out = c.RequestClose(a)
	if !out.Closed || out.Activated != "" {
		t.Errorf("RequestClose(inactive) = %+v", out)
	}
	if active, _ := c.Active(); active != cc {
		t.Errorf("Active() = %q, want %q", active, cc)
	}
}

func TestRequestClose_DirtyNeedsConfirm(t *testing.T) {
	c := newTestController()
	id := c.NewTab()
	surfaceOf(t, c, id).typeText("unsaved")

	out := c.RequestClose(id)
	if out.Closed || !out.NeedsConfirm {
		t.Fatalf("RequestClose() = %+v, want NeedsConfirm", out)
	}
	if out.Name != session.UntitledName {
		t.Errorf("Name = %q, want %q", out.Name, session.UntitledName)
	}
	if c.State(id) != StateDirty {
		t.Errorf("refused close must keep the tab dirty, got %v", c.State(id))
	}

	out = c.ConfirmClose(id)
	if !out.Closed {
		t.Fatal("ConfirmClose should close the tab")
	}
	if _, ok := c.Active(); ok {
		t.Error("closing the last tab should leave no active tab")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestHasSelection(t *testing.T) {
	c := newTestController()
	if c.HasSelection() {
		t.Error("no tabs means no selection")
	}

	id := c.NewTab()
	s := surfaceOf(t, c, id)
	s.typeText("def f(): pass")
	if c.HasSelection() {
		t.Error("empty selection should report false")
	}
	s.selectText("def f()")
	if !c.HasSelection() || c.Selection() != "def f()" {
		t.Errorf("Selection() = %q", c.Selection())
	}
}

func TestReplaceContent(t *testing.T) {
	c := newTestController()
	id := c.NewTab()

	if !c.ReplaceContent(id, "generated") {
		t.Fatal("ReplaceContent should succeed for an open tab")
	}
	if got := c.Store().ReadContent(id); got != "generated" {
		t.Errorf("store content = %q", got)
	}
	if c.State(id) != StateDirty {
		t.Errorf("State() = %v, want dirty", c.State(id))
	}
	if c.ReplaceContent("missing", "x") {
		t.Error("ReplaceContent on unknown tab should report false")
	}
}

func TestTabs(t *testing.T) {
	c := newTestController()
	a := c.NewTab()
	b := c.NewTab()
	surfaceOf(t, c, a).typeText("x")
	c.ContentChanged(a)

	views := c.Tabs()
	if len(views) != 2 {
		t.Fatalf("len(Tabs()) = %d", len(views))
	}
	if views[0].ID != a || !views[0].Dirty || views[0].Active {
		t.Errorf("views[0] = %+v", views[0])
	}
	if views[1].ID != b || views[1].Dirty || !views[1].Active {
		t.Errorf("views[1] = %+v", views[1])
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateCreated: "created",
		StateClean:   "clean",
		StateDirty:   "dirty",
		StateClosed:  "closed",
		State(99):    "unknown",
	}
	for st, want := range tests {
		if st.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", st, st.String(), want)
		}
	}
}
