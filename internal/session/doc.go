// Package session holds the canonical table of open tabs.
//
// # Overview
//
// Every open document in scribe is a Tab owned by a Store. The Store keeps
// the last-known buffer text for each tab, the file it is bound to (if any)
// and whether the buffer has unsaved changes. Editing widgets are mirrors:
// they push their text into the Store through WriteContent and never hold
// state the Store does not also know about.
//
// # Tab Lifecycle
//
// 1. Create: CreateTab makes an empty, clean, unbound tab named "Untitled".
// OpenFromDisk reads a whole file and makes a clean tab bound to it.
//
// 2. Edit: WriteContent replaces the buffered text and marks the tab dirty.
//
// 3. Save: Save writes to the bound path, or falls through to SaveAs for an
// unbound tab. SaveAs asks a Picker for the destination; a dismissed picker
// is a cancellation, not an error. A successful save rebinds the tab and
// marks it clean. A failed write leaves the tab untouched.
//
// 4. Close: RequestClose removes clean tabs and refuses dirty ones so the
// caller can confirm with the user; ForceClose removes unconditionally.
//
// # Identity
//
// Tab IDs are random UUIDs and are never reused while the process runs.
// Path and Name only change as the result of a successful save.
//
// # Persistence
//
// Nothing in the Store survives a restart. Files are read and written whole,
// as UTF-8, by direct overwrite.
package session
