package terminal

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

// Clock reads wall-clock time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads time.Now
var SystemClock Clock = ClockFunc(time.Now)

// Recorder receives command metrics
type Recorder interface {
	RecordCommand(commandID string, outcome string)
}

// IntentSink is told about every successful execution
type IntentSink interface {
	RecordIntent(ctx context.Context, outcome Outcome)
}

// Engine owns one session's terminal state
type Engine struct {
	mu      sync.Mutex
	state   State // Protected by mu
	catalog Catalog
	clock   Clock
	metrics Recorder
	sink    IntentSink
	logger  *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the wall clock
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithMetrics adds metrics tracking
func WithMetrics(r Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// WithIntentSink forwards successful executions to sink
func WithIntentSink(sink IntentSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithState starts the engine from s instead of the baseline
func WithState(s State) Option {
	return func(e *Engine) { e.state = s }
}

// NewEngine creates an engine at the baseline state
func NewEngine(cat Catalog, opts ...Option) *Engine {
	e := &Engine{
		state:   NewState(),
		catalog: cat,
		clock:   SystemClock,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute resolves one input line. now is read once per call.
func (e *Engine) Execute(ctx context.Context, line string) (State, Outcome) {
	e.mu.Lock()
	now := e.clock.Now()
	next, outcome := Execute(e.state, e.catalog, line, now)
	e.state = next
	e.mu.Unlock()

	if outcome.Kind != OutcomeNone && e.metrics != nil {
		e.metrics.RecordCommand(outcome.CommandID, string(outcome.Kind))
	}

	if outcome.Kind == OutcomeExecuted {
		e.logger.Debug("Command executed",
			zap.String("command", outcome.CommandID),
			zap.Int("credits", next.Player.Credits),
			zap.Int("trace", next.Player.Trace),
			zap.Int("level", next.Player.Level),
		)
		if e.sink != nil {
			e.sink.RecordIntent(ctx, outcome)
		}
	}

	return next, outcome
}

// Reconcile replaces the player resources with fn(current) under the
// engine lock, keeping cooldowns and log. Used when authoritative values
// arrive from the document store.
func (e *Engine) Reconcile(fn func(types.PlayerState) types.PlayerState) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Player = fn(e.state.Player)
	return e.state
}

// State returns the current state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Remaining returns the cooldown left on commandID right now
func (e *Engine) Remaining(commandID string) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Remaining(commandID, e.clock.Now())
}

// Snapshot returns a serializable view of the current state
func (e *Engine) Snapshot() types.TerminalSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot(e.clock.Now())
}

// Catalog returns the engine's command catalog
func (e *Engine) Catalog() Catalog {
	return e.catalog
}
