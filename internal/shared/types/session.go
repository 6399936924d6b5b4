package types

import "time"

// DesktopSnapshot is a read-only view of a window manager state
type DesktopSnapshot struct {
	Windows    []WindowView `json:"windows"` // render order, minimized excluded
	Taskbar    []Window     `json:"taskbar"` // creation order
	FocusOrder []AppKey     `json:"focus_order"`
	Focused    *AppKey      `json:"focused,omitempty"`
	Dragging   *AppKey      `json:"dragging,omitempty"`
}

// TerminalSnapshot is a read-only view of a command engine state
type TerminalSnapshot struct {
	Player    PlayerState      `json:"player"`
	Cooldowns map[string]int64 `json:"cooldowns_ms"` // remaining, ready commands omitted
	Log       []string         `json:"log"`
}

// SessionSnapshot combines both subsystems of a session
type SessionSnapshot struct {
	ID           string           `json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	LastActiveAt time.Time        `json:"last_active_at"`
	Desktop      DesktopSnapshot  `json:"desktop"`
	Terminal     TerminalSnapshot `json:"terminal"`
}

// SessionMetadata contains summary information
type SessionMetadata struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	WindowCount  int       `json:"window_count"`
	Level        int       `json:"level"`
}

// SessionStats contains session manager statistics
type SessionStats struct {
	ActiveSessions int        `json:"active_sessions"`
	Created        int64      `json:"created_total"`
	Evicted        int64      `json:"evicted_total"`
	LastSweep      *time.Time `json:"last_sweep,omitempty"`
}
