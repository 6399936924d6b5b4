package docstore

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/contract"
	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/id"
)

// Writer is the write side of the document store
type Writer interface {
	RecordIntent(ctx context.Context, actor contract.Actor, intent contract.CommandIntentDoc) error
	PublishProjection(ctx context.Context, actor contract.Actor, doc contract.UserPublicProjectionDoc) error
}

type job struct {
	actor      contract.Actor
	intent     contract.CommandIntentDoc
	projection contract.UserPublicProjectionDoc
}

// CallRecorder receives document store call metrics
type CallRecorder interface {
	RecordDocstoreCall(op, status string, duration time.Duration)
}

// Publisher forwards executed commands to the document store from a single
// background worker so terminal input never waits on the network
type Publisher struct {
	writer  Writer
	jobs    chan job
	timeout time.Duration
	logger  *zap.Logger
	metrics CallRecorder

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	sent    atomic.Int64
	failed  atomic.Int64
	dropped atomic.Int64
}

// PublisherStats are delivery counters
type PublisherStats struct {
	Sent    int64 `json:"sent"`
	Failed  int64 `json:"failed"`
	Dropped int64 `json:"dropped"`
}

// NewPublisher starts a publisher with a queue of the given size
func NewPublisher(w Writer, queue int, logger *zap.Logger) *Publisher {
	if queue <= 0 {
		queue = 256
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Publisher{
		writer:  w,
		jobs:    make(chan job, queue),
		timeout: 10 * time.Second,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// WithMetrics adds call metrics
func (p *Publisher) WithMetrics(r CallRecorder) *Publisher {
	p.metrics = r
	return p
}

// Sink returns the intent sink for one session. The session id doubles as
// the document store uid.
func (p *Publisher) Sink(sid id.SessionID) terminal.IntentSink {
	return &sessionSink{publisher: p, actor: contract.Actor{UID: sid.String()}}
}

// Close stops accepting work and waits for the queue to drain
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	<-p.done
}

// Stats returns delivery counters
func (p *Publisher) Stats() PublisherStats {
	return PublisherStats{
		Sent:    p.sent.Load(),
		Failed:  p.failed.Load(),
		Dropped: p.dropped.Load(),
	}
}

func (p *Publisher) enqueue(j job) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.dropped.Add(1)
		return
	}
	select {
	case p.jobs <- j:
	default:
		p.dropped.Add(1)
		p.logger.Warn("Intent queue full, dropping", zap.String("uid", j.actor.UID))
	}
}

func (p *Publisher) run() {
	defer close(p.done)
	for j := range p.jobs {
		p.deliver(j)
	}
}

func (p *Publisher) deliver(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	fields := []zap.Field{
		zap.String("uid", j.actor.UID),
		zap.String("command", j.intent.CommandID),
		zap.String("intent_id", j.intent.IntentID),
	}

	if err := p.observe("record_intent", func() error {
		return p.writer.RecordIntent(ctx, j.actor, j.intent)
	}); err != nil {
		p.failed.Add(1)
		p.logger.Error("Failed to record command intent", append(fields, zap.Error(err))...)
		return
	}
	if err := p.observe("publish_projection", func() error {
		return p.writer.PublishProjection(ctx, j.actor, j.projection)
	}); err != nil {
		p.failed.Add(1)
		p.logger.Error("Failed to publish projection", append(fields, zap.Error(err))...)
		return
	}
	p.sent.Add(1)
}

func (p *Publisher) observe(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	if p.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		p.metrics.RecordDocstoreCall(op, status, time.Since(start))
	}
	return err
}

type sessionSink struct {
	publisher *Publisher
	actor     contract.Actor
}

// RecordIntent queues an intent and the refreshed public projection
func (s *sessionSink) RecordIntent(_ context.Context, o terminal.Outcome) {
	at := o.At.UTC()
	s.publisher.enqueue(job{
		actor: s.actor,
		intent: contract.CommandIntentDoc{
			IntentID:    id.NewIntentID().String(),
			UID:         s.actor.UID,
			CommandID:   o.CommandID,
			RequestedAt: at,
		},
		projection: contract.UserPublicProjectionDoc{
			UID:             s.actor.UID,
			DisplayName:     s.actor.UID,
			Level:           o.Player.Level,
			RankScore:       RankScore(o.Player),
			BadgeHighlights: []string{},
			UpdatedAt:       at,
		},
	})
}
