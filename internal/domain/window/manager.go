package window

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// ErrUnknownApp is returned for keys outside the app catalog
var ErrUnknownApp = errors.New("unknown app")

// AppCatalog reports which app keys exist
type AppCatalog interface {
	Has(key types.AppKey) bool
}

// Recorder receives window operation metrics
type Recorder interface {
	RecordWindowOp(op string)
}

// Manager serializes operations on one desktop State
type Manager struct {
	mu      sync.RWMutex
	state   State // Protected by mu
	apps    AppCatalog
	metrics Recorder
}

// NewManager creates a manager with an empty desktop
func NewManager(apps AppCatalog) *Manager {
	return &Manager{
		state: New(),
		apps:  apps,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics Recorder) *Manager {
	m.metrics = metrics
	return m
}

// apply runs fn against the current state under the write lock
func (m *Manager) apply(op string, fn func(State) State) State {
	m.mu.Lock()
	m.state = fn(m.state)
	next := m.state
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordWindowOp(op)
	}
	return next
}

func (m *Manager) check(key types.AppKey) error {
	if m.apps != nil && !m.apps.Has(key) {
		return fmt.Errorf("%w: %s", ErrUnknownApp, key)
	}
	return nil
}

// Open opens or restores the window for key
func (m *Manager) Open(key types.AppKey) (State, error) {
	if err := m.check(key); err != nil {
		return m.State(), err
	}
	return m.apply("open", func(s State) State { return s.Open(key) }), nil
}

// Close closes the window for key
func (m *Manager) Close(key types.AppKey) (State, error) {
	if err := m.check(key); err != nil {
		return m.State(), err
	}
	return m.apply("close", func(s State) State { return s.Close(key) }), nil
}

// Minimize hides the window for key
func (m *Manager) Minimize(key types.AppKey) (State, error) {
	if err := m.check(key); err != nil {
		return m.State(), err
	}
	return m.apply("minimize", func(s State) State { return s.Minimize(key) }), nil
}

// Maximize fills vp with the window for key
func (m *Manager) Maximize(key types.AppKey, vp types.Viewport) (State, error) {
	if err := m.check(key); err != nil {
		return m.State(), err
	}
	return m.apply("maximize", func(s State) State { return s.Maximize(key, vp) }), nil
}

// Focus raises the window for key
func (m *Manager) Focus(key types.AppKey) (State, error) {
	if err := m.check(key); err != nil {
		return m.State(), err
	}
	return m.apply("focus", func(s State) State { return s.Focus(key) }), nil
}

// BeginDrag starts dragging the window for key
func (m *Manager) BeginDrag(key types.AppKey, x, y int) (State, error) {
	if err := m.check(key); err != nil {
		return m.State(), err
	}
	return m.apply("drag_begin", func(s State) State { return s.BeginDrag(key, x, y) }), nil
}

// ContinueDrag moves the dragged window
func (m *Manager) ContinueDrag(x, y int) State {
	return m.apply("drag_move", func(s State) State { return s.ContinueDrag(x, y) })
}

// EndDrag ends any active drag
func (m *Manager) EndDrag() State {
	return m.apply("drag_end", func(s State) State { return s.EndDrag() })
}

// State returns the current state
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Snapshot returns a serializable view of the current state
func (m *Manager) Snapshot() types.DesktopSnapshot {
	return m.State().Snapshot()
}
