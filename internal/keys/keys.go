// Package keys provides string constants for Bubble Tea v2 key press events.
//
// These constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// and are guaranteed to match the actual runtime values. Using these constants
// instead of hardcoded strings prevents typo bugs (e.g., "escape" vs "esc").
//
// Single-character keys like "y" or "n" are not included here because they
// are unambiguous and cannot be misspelled in a meaningful way.
package keys

import tea "charm.land/bubbletea/v2"

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Left   = tea.KeyPressMsg{Code: tea.KeyLeft}.String()   // "left"
	Right  = tea.KeyPressMsg{Code: tea.KeyRight}.String()  // "right"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter    = tea.KeyPressMsg{Code: tea.KeyEnter}.String()                    // "enter"
	Tab      = tea.KeyPressMsg{Code: tea.KeyTab}.String()                      // "tab"
	ShiftTab = (tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}).String() // "shift+tab"
	Escape   = tea.KeyPressMsg{Code: tea.KeyEscape}.String()                   // "esc"
	F1       = tea.KeyPressMsg{Code: tea.KeyF1}.String()                       // "f1"
)

// Ctrl combinations
var (
	CtrlC      = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String()                // "ctrl+c"
	CtrlQ      = (tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl}).String()                // "ctrl+q"
	CtrlT      = (tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}).String()                // "ctrl+t"
	CtrlW      = (tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl}).String()                // "ctrl+w"
	CtrlN      = (tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}).String()                // "ctrl+n"
	CtrlO      = (tea.KeyPressMsg{Code: 'o', Mod: tea.ModCtrl}).String()                // "ctrl+o"
	CtrlS      = (tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}).String()                // "ctrl+s"
	CtrlShiftS = (tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl | tea.ModShift}).String() // "ctrl+shift+s"
	CtrlG      = (tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl}).String()                // "ctrl+g"
	CtrlD      = (tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}).String()                // "ctrl+d"
	CtrlE      = (tea.KeyPressMsg{Code: 'e', Mod: tea.ModCtrl}).String()                // "ctrl+e"
	CtrlB      = (tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl}).String()                // "ctrl+b"
	CtrlY      = (tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}).String()                // "ctrl+y"
	CtrlComma  = (tea.KeyPressMsg{Code: ',', Mod: tea.ModCtrl}).String()                // "ctrl+,"
	CtrlSpace  = (tea.KeyPressMsg{Code: tea.KeySpace, Mod: tea.ModCtrl}).String()       // "ctrl+space"
	CtrlLeft   = (tea.KeyPressMsg{Code: tea.KeyLeft, Mod: tea.ModCtrl}).String()        // "ctrl+left"
	CtrlRight  = (tea.KeyPressMsg{Code: tea.KeyRight, Mod: tea.ModCtrl}).String()       // "ctrl+right"
)

// Alt fallbacks for terminals that swallow the ctrl+shift and ctrl+punctuation chords.
var (
	AltS            = (tea.KeyPressMsg{Code: 's', Mod: tea.ModAlt}).String() // "alt+s"
	AltComma        = (tea.KeyPressMsg{Code: ',', Mod: tea.ModAlt}).String() // "alt+,"
	AltLeftBracket  = (tea.KeyPressMsg{Code: '[', Mod: tea.ModAlt}).String() // "alt+["
	AltRightBracket = (tea.KeyPressMsg{Code: ']', Mod: tea.ModAlt}).String() // "alt+]"
)

// Side panel scrolling
var (
	AltUp   = (tea.KeyPressMsg{Code: tea.KeyUp, Mod: tea.ModAlt}).String()   // "alt+up"
	AltDown = (tea.KeyPressMsg{Code: tea.KeyDown, Mod: tea.ModAlt}).String() // "alt+down"
)
