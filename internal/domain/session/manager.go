package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/window"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/id"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// ErrNotFound is returned for unknown or evicted session ids
var ErrNotFound = errors.New("session not found")

// Recorder receives session metrics
type Recorder interface {
	window.Recorder
	terminal.Recorder
	SetActiveSessions(n int)
	RecordSessionEvent(event string)
}

// SinkFactory builds the intent sink for a new session
type SinkFactory func(sid id.SessionID) terminal.IntentSink

// Manager creates, looks up and evicts sessions
type Manager struct {
	sessions sync.Map // id.SessionID -> *Session
	apps     window.AppCatalog
	commands terminal.Catalog
	clock    terminal.Clock
	metrics  Recorder
	sinks    SinkFactory
	logger   *zap.Logger

	count   atomic.Int64
	created atomic.Int64
	evicted atomic.Int64

	mu        sync.RWMutex
	lastSweep *time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the wall clock for all sessions
func WithClock(c terminal.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithMetrics adds metrics tracking to the manager and its sessions
func WithMetrics(r Recorder) Option {
	return func(m *Manager) { m.metrics = r }
}

// WithSinkFactory attaches an intent sink to every new session
func WithSinkFactory(f SinkFactory) Option {
	return func(m *Manager) { m.sinks = f }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a session manager over the given catalogs
func NewManager(apps window.AppCatalog, commands terminal.Catalog, opts ...Option) *Manager {
	m := &Manager{
		apps:     apps,
		commands: commands,
		clock:    terminal.SystemClock,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session at the baseline state
func (m *Manager) Create() *Session {
	sid := id.NewSessionID()

	windows := window.NewManager(m.apps)
	engineOpts := []terminal.Option{
		terminal.WithClock(m.clock),
		terminal.WithLogger(m.logger.With(zap.String("session_id", sid.String()))),
	}
	if m.metrics != nil {
		windows = windows.WithMetrics(m.metrics)
		engineOpts = append(engineOpts, terminal.WithMetrics(m.metrics))
	}
	if m.sinks != nil {
		if sink := m.sinks(sid); sink != nil {
			engineOpts = append(engineOpts, terminal.WithIntentSink(sink))
		}
	}

	s := newSession(sid, windows, terminal.NewEngine(m.commands, engineOpts...), m.clock)
	m.sessions.Store(sid, s)
	m.created.Add(1)
	m.track("created", m.count.Add(1))

	m.logger.Info("Session created", zap.String("session_id", sid.String()))
	return s
}

// Get retrieves a session and marks it active
func (m *Manager) Get(sid id.SessionID) (*Session, error) {
	val, ok := m.sessions.Load(sid)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sid)
	}
	s := val.(*Session)
	s.Touch()
	return s, nil
}

// List returns metadata for all sessions, oldest first
func (m *Manager) List() []types.SessionMetadata {
	var out []types.SessionMetadata
	m.sessions.Range(func(_, value interface{}) bool {
		out = append(out, value.(*Session).Metadata())
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete removes a session
func (m *Manager) Delete(sid id.SessionID) error {
	if _, ok := m.sessions.LoadAndDelete(sid); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, sid)
	}
	m.track("deleted", m.count.Add(-1))
	m.logger.Info("Session deleted", zap.String("session_id", sid.String()))
	return nil
}

// Sweep evicts sessions idle for longer than ttl and returns how many
func (m *Manager) Sweep(now time.Time, ttl time.Duration) int {
	evicted := 0
	m.sessions.Range(func(key, value interface{}) bool {
		s := value.(*Session)
		if now.Sub(s.LastActiveAt()) <= ttl {
			return true
		}
		if _, ok := m.sessions.LoadAndDelete(key); ok {
			evicted++
			m.track("evicted", m.count.Add(-1))
		}
		return true
	})

	m.evicted.Add(int64(evicted))
	m.mu.Lock()
	m.lastSweep = &now
	m.mu.Unlock()

	if evicted > 0 {
		m.logger.Info("Evicted idle sessions", zap.Int("count", evicted), zap.Duration("ttl", ttl))
	}
	return evicted
}

// Stats returns manager statistics
func (m *Manager) Stats() types.SessionStats {
	m.mu.RLock()
	lastSweep := m.lastSweep
	m.mu.RUnlock()

	return types.SessionStats{
		ActiveSessions: int(m.count.Load()),
		Created:        m.created.Load(),
		Evicted:        m.evicted.Load(),
		LastSweep:      lastSweep,
	}
}

func (m *Manager) track(event string, active int64) {
	if m.metrics == nil {
		return
	}
	m.metrics.RecordSessionEvent(event)
	m.metrics.SetActiveSessions(int(active))
}
