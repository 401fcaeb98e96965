// Package tabs coordinates the session store with the per-tab editing
// surfaces. The Controller owns the active-tab pointer and the close
// protocol, including the unsaved-changes confirmation.
package tabs

import (
	"log/slog"

	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/logger"
	"github.com/zhubert/scribe/internal/session"
)

// State is the lifecycle state of a tab.
type State int

const (
	StateCreated State = iota
	StateClean
	StateDirty
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Surface is the live editing widget for one tab.
type Surface interface {
	Value() string
	SetValue(text string)
	// Selection returns the selected text, or "" when nothing is selected.
	Selection() string
}

// NormalizingSurface is a Surface that rewrites text when it is loaded,
// such as a widget that shows tabs as spaces. It keeps the loaded text so
// Value can give it back unchanged.
type NormalizingSurface interface {
	Surface
	// Replace swaps the text as an edit, keeping the loaded text as the
	// reference for Value.
	Replace(text string)
	// MarkSaved records text as what is now on disk.
	MarkSaved(text string)
	// TabsExpanded reports whether saving now would write spaces in place
	// of loaded tabs.
	TabsExpanded() bool
}

// SurfaceFactory builds the surface for a newly created tab.
type SurfaceFactory func(id session.TabID) Surface

// TabView is what the tab strip needs to render one tab.
type TabView struct {
	ID       session.TabID
	Name     string
	Path     string
	Language string
	Dirty    bool
	Active   bool
	State    State
}

// CloseOutcome reports the result of a close request.
type CloseOutcome struct {
	ID           session.TabID
	Name         string
	Closed       bool
	NeedsConfirm bool
	// Activated is the tab that became active, empty when none did.
	Activated session.TabID
}

// Controller drives tab lifecycles between the Store and the surfaces.
type Controller struct {
	store      *session.Store
	newSurface SurfaceFactory
	surfaces   map[session.TabID]Surface
	states     map[session.TabID]State
	active     session.TabID
	log        *slog.Logger
}

// New creates a Controller over store. factory is called once per tab.
func New(store *session.Store, factory SurfaceFactory) *Controller {
	return &Controller{
		store:      store,
		newSurface: factory,
		surfaces:   make(map[session.TabID]Surface),
		states:     make(map[session.TabID]State),
		log:        logger.WithComponent("tabs"),
	}
}

// Store returns the underlying session store.
func (c *Controller) Store() *session.Store {
	return c.store
}

func (c *Controller) attach(id session.TabID, content string) {
	c.states[id] = StateCreated
	surface := c.newSurface(id)
	surface.SetValue(content)
	if v := surface.Value(); v != content {
		// Whatever the surface made of the file is the clean starting
		// point; only later edits make the tab dirty.
		c.log.Warn("surface altered loaded text", "tabID", id)
		c.store.SetBaseline(id, v)
	}
	c.surfaces[id] = surface
	c.states[id] = StateClean
	c.active = id
}

// NewTab creates an empty tab and makes it active.
func (c *Controller) NewTab() session.TabID {
	id := c.store.CreateTab()
	c.attach(id, "")
	c.log.Debug("new tab", "tabID", id)
	return id
}

// Open loads path into a new tab and makes it active. On failure no tab is
// created and the active tab is unchanged.
func (c *Controller) Open(path string) (session.TabID, error) {
	res, err := c.store.OpenFromDisk(path)
	if err != nil {
		c.log.Warn("open failed", "path", path, "error", err)
		return "", err
	}
	c.attach(res.ID, res.Content)
	return res.ID, nil
}

// Switch makes id the active tab. It never touches the store.
func (c *Controller) Switch(id session.TabID) error {
	if _, ok := c.surfaces[id]; !ok {
		return pErrors.TabNotFound(string(id))
	}
	c.active = id
	return nil
}

// Next activates the tab after the active one, wrapping around.
func (c *Controller) Next() {
	c.cycle(1)
}

// Prev activates the tab before the active one, wrapping around.
func (c *Controller) Prev() {
	c.cycle(-1)
}

func (c *Controller) cycle(delta int) {
	tabs := c.store.Tabs()
	if len(tabs) < 2 {
		return
	}
	idx := 0
	for i, t := range tabs {
		if t.ID == c.active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	c.active = tabs[idx].ID
}

// ContentChanged pulls the surface text into the store. It must be called
// for every edit, in order, before any save or AI action reads the store.
func (c *Controller) ContentChanged(id session.TabID) {
	surface, ok := c.surfaces[id]
	if !ok {
		return
	}
	c.store.WriteContent(id, surface.Value())
	if t, ok := c.store.Get(id); ok && t.Dirty {
		c.states[id] = StateDirty
	}
}

// ReplaceContent overwrites a tab's buffer, as if the user had typed it.
func (c *Controller) ReplaceContent(id session.TabID, text string) bool {
	surface, ok := c.surfaces[id]
	if !ok {
		return false
	}
	if ns, ok := surface.(NormalizingSurface); ok {
		ns.Replace(text)
	} else {
		surface.SetValue(text)
	}
	c.ContentChanged(id)
	return true
}

func (c *Controller) noActive(op string) error {
	return pErrors.E(pErrors.Op(op), pErrors.KindInvalid, "no active tab")
}

// NeedsDestination reports whether saving the active tab requires asking
// for a path first.
func (c *Controller) NeedsDestination() bool {
	t, ok := c.ActiveTab()
	return ok && !t.Bound()
}

// Save persists the active tab. Unbound tabs go through picker.
func (c *Controller) Save(picker session.Picker) (session.SaveResult, error) {
	id := c.active
	if id == "" {
		return session.SaveResult{}, c.noActive("tabs.Save")
	}
	c.ContentChanged(id)
	text, expanded := c.surfaces[id].Value(), c.tabsExpanded(id)
	res, err := c.store.Save(id, text, picker)
	return c.afterSave(id, text, expanded, res, err), err
}

// SaveAs persists the active tab at a path chosen by picker.
func (c *Controller) SaveAs(picker session.Picker) (session.SaveResult, error) {
	id := c.active
	if id == "" {
		return session.SaveResult{}, c.noActive("tabs.SaveAs")
	}
	c.ContentChanged(id)
	text, expanded := c.surfaces[id].Value(), c.tabsExpanded(id)
	res, err := c.store.SaveAs(id, text, picker)
	return c.afterSave(id, text, expanded, res, err), err
}

func (c *Controller) afterSave(id session.TabID, text string, expanded bool, res session.SaveResult, err error) session.SaveResult {
	if err != nil || res.Cancelled {
		return res
	}
	if _, ok := c.states[id]; ok {
		c.states[id] = StateClean
	}
	if ns, ok := c.surfaces[id].(NormalizingSurface); ok {
		ns.MarkSaved(text)
	}
	res.TabsExpanded = expanded
	c.log.Info("tab saved", "tabID", id, "path", res.Path, "tabsExpanded", expanded)
	return res
}

func (c *Controller) tabsExpanded(id session.TabID) bool {
	ns, ok := c.surfaces[id].(NormalizingSurface)
	return ok && ns.TabsExpanded()
}

// RequestClose closes a clean tab straight away. A dirty tab is left open
// and the outcome asks the caller to confirm with the user.
func (c *Controller) RequestClose(id session.TabID) CloseOutcome {
	c.ContentChanged(id)
	t, known := c.store.Get(id)
	out := CloseOutcome{ID: id, Name: t.Name}

	if !c.store.RequestClose(id).Allowed {
		out.NeedsConfirm = true
		return out
	}
	if known {
		out.Closed = true
		out.Activated = c.finishClose(id)
	}
	return out
}

// ConfirmClose discards unsaved changes and closes the tab.
func (c *Controller) ConfirmClose(id session.TabID) CloseOutcome {
	t, _ := c.store.Get(id)
	out := CloseOutcome{ID: id, Name: t.Name}
	if c.store.ForceClose(id) {
		out.Closed = true
		out.Activated = c.finishClose(id)
		c.log.Info("closed tab with unsaved changes", "tabID", id)
	}
	return out
}

// finishClose drops the surface and re-targets the active pointer at the
// most recently opened remaining tab.
func (c *Controller) finishClose(id session.TabID) session.TabID {
	delete(c.surfaces, id)
	delete(c.states, id)
	if c.active != id {
		return ""
	}
	next, ok := c.store.MostRecent()
	if !ok {
		c.active = ""
		return ""
	}
	c.active = next
	return next
}

// Active returns the active tab ID.
func (c *Controller) Active() (session.TabID, bool) {
	return c.active, c.active != ""
}

// ActiveTab returns a snapshot of the active tab.
func (c *Controller) ActiveTab() (session.Tab, bool) {
	if c.active == "" {
		return session.Tab{}, false
	}
	return c.store.Get(c.active)
}

// ActiveSurface returns the active tab's surface, or nil.
func (c *Controller) ActiveSurface() Surface {
	return c.surfaces[c.active]
}

// Surface returns the surface for id, or nil.
func (c *Controller) Surface(id session.TabID) Surface {
	return c.surfaces[id]
}

// Selection returns the active tab's selected text.
func (c *Controller) Selection() string {
	if s := c.ActiveSurface(); s != nil {
		return s.Selection()
	}
	return ""
}

// HasSelection reports whether the active tab has a non-empty selection.
func (c *Controller) HasSelection() bool {
	return c.Selection() != ""
}

// State returns the lifecycle state of id. Tabs that are not open report
// StateClosed.
func (c *Controller) State(id session.TabID) State {
	if st, ok := c.states[id]; ok {
		return st
	}
	return StateClosed
}

// Len returns the number of open tabs.
func (c *Controller) Len() int {
	return c.store.Len()
}

// Tabs returns the tab strip in open order.
func (c *Controller) Tabs() []TabView {
	tabs := c.store.Tabs()
	out := make([]TabView, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, TabView{
			ID:       t.ID,
			Name:     t.Name,
			Path:     t.Path,
			Language: t.Language,
			Dirty:    t.Dirty,
			Active:   t.ID == c.active,
			State:    c.State(t.ID),
		})
	}
	return out
}
