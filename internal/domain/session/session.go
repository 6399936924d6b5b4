package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/window"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/id"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// Session is one user's desktop and terminal
type Session struct {
	ID        id.SessionID
	CreatedAt time.Time
	Windows   *window.Manager
	Terminal  *terminal.Engine

	clock      terminal.Clock
	lastActive atomic.Int64 // unix nanos
}

func newSession(sid id.SessionID, windows *window.Manager, engine *terminal.Engine, clock terminal.Clock) *Session {
	now := clock.Now()
	s := &Session{
		ID:        sid,
		CreatedAt: now,
		Windows:   windows,
		Terminal:  engine,
		clock:     clock,
	}
	s.lastActive.Store(now.UnixNano())
	return s
}

// Touch marks the session as active now
func (s *Session) Touch() {
	s.lastActive.Store(s.clock.Now().UnixNano())
}

// LastActiveAt returns when the session last received input
func (s *Session) LastActiveAt() time.Time {
	return time.Unix(0, s.lastActive.Load()).In(s.CreatedAt.Location())
}

// Execute runs one terminal line and marks the session active
func (s *Session) Execute(ctx context.Context, line string) terminal.Outcome {
	s.Touch()
	_, out := s.Terminal.Execute(ctx, line)
	return out
}

// Snapshot returns the combined view of both subsystems
func (s *Session) Snapshot() types.SessionSnapshot {
	return types.SessionSnapshot{
		ID:           s.ID.String(),
		CreatedAt:    s.CreatedAt,
		LastActiveAt: s.LastActiveAt(),
		Desktop:      s.Windows.Snapshot(),
		Terminal:     s.Terminal.Snapshot(),
	}
}

// Metadata returns summary information
func (s *Session) Metadata() types.SessionMetadata {
	return types.SessionMetadata{
		ID:           s.ID.String(),
		CreatedAt:    s.CreatedAt,
		LastActiveAt: s.LastActiveAt(),
		WindowCount:  s.Windows.State().Len(),
		Level:        s.Terminal.State().Player.Level,
	}
}
