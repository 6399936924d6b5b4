package terminal

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingSink struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (s *recordingSink) RecordIntent(_ context.Context, o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outcomes = append(s.outcomes, o)
}

type commandCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *commandCounter) RecordCommand(_ string, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = map[string]int{}
	}
	c.counts[outcome]++
}

func TestEngineUsesInjectedClock(t *testing.T) {
	clock := &fakeClock{now: t0}
	e := NewEngine(catalog.DefaultCommands(), WithClock(clock))

	_, out := e.Execute(context.Background(), "run scan.node")
	require.Equal(t, OutcomeExecuted, out.Kind)
	assert.Equal(t, 6*time.Second, e.Remaining("scan.node"))

	clock.Advance(4 * time.Second)
	_, out = e.Execute(context.Background(), "run scan.node")
	assert.Equal(t, OutcomeCooldown, out.Kind)
	assert.Equal(t, 2*time.Second, e.Remaining("scan.node"))

	clock.Advance(2 * time.Second)
	_, out = e.Execute(context.Background(), "run scan.node")
	assert.Equal(t, OutcomeExecuted, out.Kind)
	assert.Equal(t, 156, e.State().Player.Credits)
}

func TestEngineNotifiesSinkOnSuccessOnly(t *testing.T) {
	sink := &recordingSink{}
	counter := &commandCounter{}
	e := NewEngine(catalog.DefaultCommands(),
		WithClock(&fakeClock{now: t0}),
		WithIntentSink(sink),
		WithMetrics(counter),
	)

	for _, line := range []string{"help", "run scan.node", "run scan.node", "run bogus", "", "clear"} {
		e.Execute(context.Background(), line)
	}

	require.Len(t, sink.outcomes, 1)
	assert.Equal(t, "scan.node", sink.outcomes[0].CommandID)
	assert.Equal(t, t0, sink.outcomes[0].At)

	assert.Equal(t, 1, counter.counts[string(OutcomeExecuted)])
	assert.Equal(t, 1, counter.counts[string(OutcomeCooldown)])
	assert.Equal(t, 1, counter.counts[string(OutcomeUnknownCommand)])
	assert.Zero(t, counter.counts[string(OutcomeNone)])
}

func TestEngineSessionsAreIsolated(t *testing.T) {
	clock := &fakeClock{now: t0}
	a := NewEngine(catalog.DefaultCommands(), WithClock(clock))
	b := NewEngine(catalog.DefaultCommands(), WithClock(clock))

	a.Execute(context.Background(), "run drain.wallet")

	assert.Equal(t, BaselinePlayer, b.State().Player)
	assert.Zero(t, b.Remaining("drain.wallet"))
}

func TestEngineReconcileKeepsCooldowns(t *testing.T) {
	e := NewEngine(catalog.DefaultCommands(), WithClock(&fakeClock{now: t0}))
	e.Execute(context.Background(), "run scan.node")

	remote := types.PlayerState{Credits: 999, Trace: 12, XP: 40, Level: 3}
	var seen types.PlayerState
	s := e.Reconcile(func(local types.PlayerState) types.PlayerState {
		seen = local
		return remote
	})

	assert.Equal(t, types.PlayerState{Credits: 138, Trace: 10, XP: 14, Level: 1}, seen)
	assert.Equal(t, remote, s.Player)
	assert.Equal(t, 6*time.Second, e.Remaining("scan.node"))
	assert.Equal(t, remote, e.Snapshot().Player)
}

func TestEngineReconcileSerializesWithExecute(t *testing.T) {
	clock := &fakeClock{now: t0}
	e := NewEngine(catalog.DefaultCommands(), WithClock(clock))

	// each reconcile adds a fixed bonus to whatever it reads; a lost update
	// would drop either a bonus or a command reward
	const rounds = 50
	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.Reconcile(func(p types.PlayerState) types.PlayerState {
				p.Credits += 1000
				return p
			})
		}()
		go func() {
			defer wg.Done()
			e.Execute(context.Background(), "help")
		}()
	}
	e.Execute(context.Background(), "run scan.node")
	wg.Wait()

	assert.Equal(t, 120+rounds*1000+18, e.State().Player.Credits)
}

func TestEngineConcurrentExecute(t *testing.T) {
	clock := &fakeClock{now: t0}
	e := NewEngine(catalog.DefaultCommands(), WithClock(clock))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Execute(context.Background(), "run scan.node")
		}()
	}
	wg.Wait()

	// Exactly one run wins the cooldown slot
	assert.Equal(t, 138, e.State().Player.Credits)
}
