package docstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/contract"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/id"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

type fakeWriter struct {
	mu          sync.Mutex
	intents     []contract.CommandIntentDoc
	projections []contract.UserPublicProjectionDoc
	fail        error
	block       chan struct{}
}

func (w *fakeWriter) RecordIntent(_ context.Context, _ contract.Actor, intent contract.CommandIntentDoc) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail != nil {
		return w.fail
	}
	w.intents = append(w.intents, intent)
	return nil
}

func (w *fakeWriter) PublishProjection(_ context.Context, _ contract.Actor, doc contract.UserPublicProjectionDoc) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.projections = append(w.projections, doc)
	return nil
}

func executed(commandID string, player types.PlayerState) terminal.Outcome {
	return terminal.Outcome{
		Kind:      terminal.OutcomeExecuted,
		CommandID: commandID,
		Player:    player,
		At:        time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPublisherDeliversIntentAndProjection(t *testing.T) {
	w := &fakeWriter{}
	p := NewPublisher(w, 8, nil)
	sid := id.NewSessionID()

	p.Sink(sid).RecordIntent(context.Background(), executed("scan.node", types.PlayerState{Credits: 138, Trace: 10, XP: 14, Level: 1}))
	p.Close()

	require.Len(t, w.intents, 1)
	assert.Equal(t, sid.String(), w.intents[0].UID)
	assert.Equal(t, "scan.node", w.intents[0].CommandID)
	assert.True(t, id.IsValidPrefixed(w.intents[0].IntentID, id.IntentPrefix))

	require.Len(t, w.projections, 1)
	assert.Equal(t, 1, w.projections[0].Level)
	assert.Equal(t, int64(1), p.Stats().Sent)
}

func TestPublisherCountsFailures(t *testing.T) {
	w := &fakeWriter{fail: errors.New("offline")}
	p := NewPublisher(w, 8, nil)

	p.Sink(id.NewSessionID()).RecordIntent(context.Background(), executed("scan.node", types.PlayerState{Level: 1}))
	p.Close()

	assert.Equal(t, int64(1), p.Stats().Failed)
	assert.Empty(t, w.projections)
}

func TestPublisherDropsWhenFull(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	p := NewPublisher(w, 1, nil)
	sink := p.Sink(id.NewSessionID())

	// First job is taken by the worker and blocks; the second fills the queue
	for i := 0; i < 10; i++ {
		sink.RecordIntent(context.Background(), executed("scan.node", types.PlayerState{Level: 1}))
	}
	close(w.block)
	p.Close()

	stats := p.Stats()
	assert.Positive(t, stats.Dropped)
	assert.Equal(t, int64(10), stats.Sent+stats.Dropped)
}

func TestPublisherDropsAfterClose(t *testing.T) {
	p := NewPublisher(&fakeWriter{}, 4, nil)
	p.Close()
	p.Close()

	p.Sink(id.NewSessionID()).RecordIntent(context.Background(), executed("scan.node", types.PlayerState{Level: 1}))
	assert.Equal(t, int64(1), p.Stats().Dropped)
}

func TestRankScore(t *testing.T) {
	assert.Equal(t, 0, RankScore(types.PlayerState{Level: 1}))
	assert.Equal(t, 2000+140+13, RankScore(types.PlayerState{Credits: 138, XP: 14, Level: 3}))
}

type callCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *callCounter) RecordDocstoreCall(op, status string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[op+":"+status]++
}

func TestPublisherRecordsCallMetrics(t *testing.T) {
	counter := &callCounter{}
	p := NewPublisher(&fakeWriter{}, 4, nil).WithMetrics(counter)

	p.Sink(id.NewSessionID()).RecordIntent(context.Background(), executed("scan.node", types.PlayerState{Level: 1}))
	p.Close()

	assert.Equal(t, 1, counter.calls["record_intent:ok"])
	assert.Equal(t, 1, counter.calls["publish_projection:ok"])
}
