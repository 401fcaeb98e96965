// Package ui provides the visual components of the scribe editor.
//
// # Layout
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header: title, model, Ollama status                 │
//	├─────────────────────────────────────────────────────┤
//	│ Tab strip                                           │
//	├──────────────────────────────┬──────────────────────┤
//	│                              │                      │
//	│   Editor                     │   Side panel         │
//	│                              │   (Debug / Explain)  │
//	│                              │                      │
//	├──────────────────────────────┴──────────────────────┤
//	│ Footer: key hints or flash, language, open files    │
//	└─────────────────────────────────────────────────────┘
//
// The side panel takes two fifths of the width when visible. ViewContext
// owns these calculations; components never compute layout on their own.
//
// # Components
//
// Editor wraps a bubbles textarea and adds a mark-based selection. It is
// the text surface the tabs package reads and writes.
//
// TabStrip renders one label per tab and scrolls to keep the active tab
// visible. Dirty tabs carry DirtyMarker.
//
// SidePanel shows Debug and Explain results as rendered markdown with
// highlighted code blocks.
//
// Modal hosts one dialog from the modals subpackage at a time.
//
// # Styles
//
// Styles are package variables rebuilt by SetTheme. Components read them at
// render time, so a theme switch only needs the cached renders refreshed.
package ui
