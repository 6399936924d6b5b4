// Package service applies desktop input to sessions.
//
// Desktop is the one entry point shared by the HTTP handlers, the WebSocket
// handler and tests: it resolves the session, validates input, runs the
// window or terminal operation and returns the combined snapshot.
//
// Example Usage:
//
//	desktop := service.NewDesktop(sessions, apps, commands, nil, logger)
//	snap, err := desktop.Window(sid, service.OpOpen, types.AppTerminal, nil)
//	snap, result, err := desktop.Exec(ctx, sid, "run scan.node")
package service
