// Package types provides shared data structures for the RootAccess backend.
//
// Core Types:
//   - AppKey, AppDescriptor: fixed app identities and launcher entries
//   - Window, WindowView, Viewport: window geometry and render views
//   - CommandDef, PlayerState: terminal game catalog and resources
//   - SessionSnapshot: read-only view of one desktop session
//
// Request Types:
//   - TerminalRequest, PointerRequest: REST payloads
//   - WSMessage: WebSocket communication
package types
