package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time          { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(clock *manualClock, s Settings) *Breaker {
	s.Now = clock.Now
	if s.ReadyToTrip == nil {
		s.ReadyToTrip = func(c Counts) bool { return c.ConsecutiveFailures >= 2 }
	}
	return New("test", s)
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name     string
		calls    []bool // true = success
		expected State
	}{
		{"stays closed on successes", []bool{true, true, true}, StateClosed},
		{"opens after consecutive failures", []bool{false, false}, StateOpen},
		{"success resets the streak", []bool{false, true, false}, StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBreaker(&manualClock{now: time.Unix(0, 0)}, Settings{Cooldown: time.Minute})
			for _, ok := range tt.calls {
				if ok {
					_ = b.Execute(succeed)
				} else {
					_ = b.Execute(fail)
				}
			}
			assert.Equal(t, tt.expected, b.State())
		})
	}
}

func TestBreakerCounts(t *testing.T) {
	b := newTestBreaker(&manualClock{now: time.Unix(0, 0)}, Settings{})

	require.NoError(t, b.Execute(succeed))
	counts := b.Counts()
	assert.Equal(t, uint32(1), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalSuccesses)

	assert.ErrorIs(t, b.Execute(fail), errBoom)
	counts = b.Counts()
	assert.Equal(t, uint32(2), counts.Requests)
	assert.Equal(t, uint32(1), counts.TotalFailures)
	assert.Equal(t, uint32(1), counts.ConsecutiveFailures)
	assert.Zero(t, counts.ConsecutiveSuccesses)
}

func TestBreakerOpenFailsFast(t *testing.T) {
	b := newTestBreaker(&manualClock{now: time.Unix(0, 0)}, Settings{Cooldown: time.Minute})
	_ = b.Execute(fail)
	_ = b.Execute(fail)

	called := false
	err := b.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestBreakerHalfOpenRecovers(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	b := newTestBreaker(clock, Settings{Probes: 2, Cooldown: 30 * time.Second})
	_ = b.Execute(fail)
	_ = b.Execute(fail)

	clock.Advance(29 * time.Second)
	assert.Equal(t, StateOpen, b.State())

	clock.Advance(time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateHalfOpen, b.State())
	require.NoError(t, b.Execute(succeed))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	b := newTestBreaker(clock, Settings{Cooldown: time.Second})
	_ = b.Execute(fail)
	_ = b.Execute(fail)
	clock.Advance(time.Second)

	assert.ErrorIs(t, b.Execute(fail), errBoom)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreakerWindowClearsCounts(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	b := newTestBreaker(clock, Settings{Window: time.Minute})
	_ = b.Execute(fail)

	clock.Advance(time.Minute)
	_ = b.Execute(fail)

	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, uint32(1), b.Counts().ConsecutiveFailures)
}

func TestBreakerIsFailure(t *testing.T) {
	b := newTestBreaker(&manualClock{now: time.Unix(0, 0)}, Settings{
		IsFailure: func(err error) bool { return err != nil && !errors.Is(err, context.Canceled) },
	})

	for i := 0; i < 5; i++ {
		_ = b.Execute(func() error { return context.Canceled })
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerCallbacks(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	var transitions []string
	b := newTestBreaker(clock, Settings{
		Cooldown: time.Second,
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	clock.Advance(time.Second)
	_ = b.Execute(succeed)

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	b := newTestBreaker(&manualClock{now: time.Unix(0, 0)}, Settings{})

	assert.Panics(t, func() {
		_ = b.Execute(func() error { panic("kaboom") })
	})
	assert.Equal(t, uint32(1), b.Counts().TotalFailures)
}

func TestDoReturnsValue(t *testing.T) {
	b := newTestBreaker(&manualClock{now: time.Unix(0, 0)}, Settings{})

	v, err := Do(b, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = Do(b, func() (string, error) { return "", errBoom })
	assert.ErrorIs(t, err, errBoom)
}
