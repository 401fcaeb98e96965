package session

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	pErrors "github.com/zhubert/scribe/internal/errors"
	"github.com/zhubert/scribe/internal/logger"
)

// UntitledName is the display name of a tab that was never saved.
const UntitledName = "Untitled"

// TabID identifies a tab for the lifetime of the process.
type TabID string

// Tab is a snapshot of one open document.
type Tab struct {
	ID       TabID
	Path     string // absolute; empty until the first successful save
	Name     string
	Content  string
	Dirty    bool
	Language string
	Opened   uint64 // creation sequence, larger is more recent
}

// Bound reports whether the tab has a file on disk.
func (t Tab) Bound() bool {
	return t.Path != ""
}

// Picker chooses a destination for SaveAs. It returns ok=false when the
// user dismissed the prompt.
type Picker interface {
	PickSavePath(suggested string) (path string, ok bool)
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(suggested string) (string, bool)

// PickSavePath calls f.
func (f PickerFunc) PickSavePath(suggested string) (string, bool) {
	return f(suggested)
}

// StaticPicker returns a Picker that always answers path. An empty path
// behaves like a dismissed prompt.
func StaticPicker(path string) Picker {
	return PickerFunc(func(string) (string, bool) {
		return path, path != ""
	})
}

// OpenResult describes a tab created from a file.
type OpenResult struct {
	ID      TabID
	Name    string
	Content string
}

// SaveResult describes the outcome of Save or SaveAs.
type SaveResult struct {
	Path         string
	Name         string
	Cancelled    bool
	// TabsExpanded is set by the tab controller when the editor wrote
	// spaces in place of tabs the file had.
	TabsExpanded bool
}

// CloseResult is the answer to RequestClose.
type CloseResult struct {
	Allowed bool
}

// Store is the canonical, in-memory table of open tabs.
type Store struct {
	mu    sync.RWMutex
	tabs  map[TabID]*Tab
	order []TabID // creation order
	seq   uint64
	newID func() TabID
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		tabs: make(map[TabID]*Tab),
		newID: func() TabID {
			return TabID(uuid.New().String())
		},
	}
}

// insert registers a new tab. Callers hold mu.
func (s *Store) insert(t *Tab) {
	s.seq++
	t.ID = s.newID()
	t.Opened = s.seq
	s.tabs[t.ID] = t
	s.order = append(s.order, t.ID)
}

// CreateTab creates an empty, clean, unbound tab.
func (s *Store) CreateTab() TabID {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Tab{Name: UntitledName, Language: DetectLanguage(UntitledName)}
	s.insert(t)
	logger.WithTab(string(t.ID)).Debug("tab created")
	return t.ID
}

// ReadContent returns the buffered text of a tab, or "" when id is unknown.
func (s *Store) ReadContent(id TabID) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if t, ok := s.tabs[id]; ok {
		return t.Content
	}
	return ""
}

// WriteContent replaces the buffered text and marks the tab dirty when the
// text changed. Unknown ids are ignored.
func (s *Store) WriteContent(id TabID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tabs[id]
	if !ok || t.Content == text {
		return
	}
	t.Content = text
	t.Dirty = true
}

// SetBaseline replaces a tab's content without marking it dirty. It is for
// text that stands for what is on disk, not for edits.
func (s *Store) SetBaseline(id TabID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tabs[id]; ok {
		t.Content = text
	}
}

// OpenFromDisk reads path and creates a clean tab bound to it. No tab is
// created when the read fails.
func (s *Store) OpenFromDisk(path string) (OpenResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return OpenResult{}, pErrors.FileReadFailed(path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return OpenResult{}, pErrors.FileReadFailed(abs, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := filepath.Base(abs)
	t := &Tab{
		Path:     abs,
		Name:     name,
		Content:  string(data),
		Language: DetectLanguage(name),
	}
	s.insert(t)

	logger.WithTab(string(t.ID)).Info("opened file", "path", abs, "bytes", len(data))
	return OpenResult{ID: t.ID, Name: t.Name, Content: t.Content}, nil
}

// Save writes text to the tab's bound path. An unbound tab is handed to
// SaveAs with the given picker.
func (s *Store) Save(id TabID, text string, picker Picker) (SaveResult, error) {
	s.mu.RLock()
	t, ok := s.tabs[id]
	var path string
	if ok {
		path = t.Path
	}
	s.mu.RUnlock()

	if !ok {
		return SaveResult{}, pErrors.TabNotFound(string(id))
	}
	if path == "" {
		return s.SaveAs(id, text, picker)
	}
	return s.writeAndBind(id, path, text)
}

// SaveAs asks picker for a destination and writes text there. A dismissed
// picker returns SaveResult{Cancelled: true} and a nil error.
func (s *Store) SaveAs(id TabID, text string, picker Picker) (SaveResult, error) {
	s.mu.RLock()
	t, ok := s.tabs[id]
	suggested := ""
	if ok {
		suggested = t.Path
		if suggested == "" {
			suggested = t.Name
		}
	}
	s.mu.RUnlock()

	if !ok {
		return SaveResult{}, pErrors.TabNotFound(string(id))
	}

	if picker == nil {
		return SaveResult{Cancelled: true}, nil
	}
	path, picked := picker.PickSavePath(suggested)
	if !picked || path == "" {
		logger.WithTab(string(id)).Debug("save as cancelled")
		return SaveResult{Cancelled: true}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return SaveResult{}, pErrors.FileWriteFailed(path, err)
	}
	return s.writeAndBind(id, abs, text)
}

// writeAndBind persists text at path and, only on success, updates the tab.
func (s *Store) writeAndBind(id TabID, path, text string) (SaveResult, error) {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		logger.WithTab(string(id)).Warn("save failed", "path", path, "error", err)
		return SaveResult{}, pErrors.FileWriteFailed(path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tabs[id]
	if !ok {
		// Closed while the write was in progress; the file is still written.
		return SaveResult{Path: path, Name: filepath.Base(path)}, nil
	}
	t.Path = path
	t.Name = filepath.Base(path)
	t.Language = DetectLanguage(t.Name)
	t.Content = text
	t.Dirty = false

	logger.WithTab(string(id)).Info("saved file", "path", path, "bytes", len(text))
	return SaveResult{Path: t.Path, Name: t.Name}, nil
}

// RequestClose removes a clean tab. A dirty tab is kept and the result
// reports Allowed=false. Unknown ids are allowed and change nothing.
func (s *Store) RequestClose(id TabID) CloseResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tabs[id]
	if !ok {
		return CloseResult{Allowed: true}
	}
	if t.Dirty {
		return CloseResult{Allowed: false}
	}
	s.remove(id)
	return CloseResult{Allowed: true}
}

// ForceClose removes a tab regardless of unsaved changes. It reports
// whether a tab was removed.
func (s *Store) ForceClose(id TabID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tabs[id]; !ok {
		return false
	}
	s.remove(id)
	return true
}

// remove deletes a tab. Callers hold mu.
func (s *Store) remove(id TabID) {
	delete(s.tabs, id)
	for i, other := range s.order {
		if other == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	logger.WithTab(string(id)).Debug("tab closed")
}

// Get returns a copy of a tab.
func (s *Store) Get(id TabID) (Tab, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tabs[id]
	if !ok {
		return Tab{}, false
	}
	return *t, true
}

// Tabs returns copies of all tabs in the order they were opened.
func (s *Store) Tabs() []Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Tab, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.tabs[id])
	}
	return out
}

// Len returns the number of open tabs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// MostRecent returns the most recently opened tab still open.
func (s *Store) MostRecent() (TabID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return "", false
	}
	return s.order[len(s.order)-1], true
}

// DirtyCount returns how many tabs hold unsaved changes.
func (s *Store) DirtyCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, t := range s.tabs {
		if t.Dirty {
			n++
		}
	}
	return n
}
