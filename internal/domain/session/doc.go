// Package session owns the in-memory desktop sessions.
//
// A Session pairs one window Manager with one terminal Engine. Neither
// subsystem knows about the other; the session only routes input and builds
// combined snapshots.
//
// Sessions live only in memory. Idle sessions are evicted by Sweep, which
// the server calls from a ticker.
//
// Example Usage:
//
//	mgr := session.NewManager(apps, commands)
//	s := mgr.Create()
//	s.Windows.Open(types.AppTerminal)
//	s.Execute(ctx, "run scan.node")
//	mgr.Sweep(time.Now(), 30*time.Minute)
package session
