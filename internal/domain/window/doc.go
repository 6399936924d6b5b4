// Package window implements the desktop window manager.
//
// State is an immutable value: every operation returns a new State and
// leaves the receiver untouched, so callers can read-old, compute-new and
// write-new without partial updates. Manager wraps a State for concurrent
// use by API handlers.
//
// Invariants:
//   - at most one window per app key
//   - the focus order holds every open key exactly once; the last key is
//     topmost
//   - at most one drag is active; BeginDrag overwrites an active drag
//
// Example Usage:
//
//	s := window.New()
//	s = s.Open(types.AppTerminal)
//	s = s.BeginDrag(types.AppTerminal, 60, 70)
//	s = s.ContinueDrag(200, 220).EndDrag()
package window
