package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/RootAccess/backend/internal/domain/contract"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/RootAccess/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/RootAccess/backend/internal/shared/types"
)

type recordedRequest struct {
	Method  string
	Path    string
	Auth    string
	IdemKey string
	TraceID string
	Body    map[string]interface{}
}

type fakeStore struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	user     *contract.UserPrivateDoc
}

func (f *fakeStore) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := recordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Auth:    r.Header.Get("Authorization"),
		IdemKey: r.Header.Get("Idempotency-Key"),
		TraceID: r.Header.Get(tracing.TraceHeader),
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&rec.Body)
	}
	f.requests = append(f.requests, rec)

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if r.Method == http.MethodGet {
		if f.user == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(f.user)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{}`))
}

func (f *fakeStore) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newTestClient(t *testing.T) (*Client, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	srv := httptest.NewServer(http.HandlerFunc(store.handler))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Token: "secret", Timeout: 2 * time.Second}, nil), store
}

func TestPublishProjection(t *testing.T) {
	c, store := newTestClient(t)
	alice := contract.Actor{UID: "alice"}

	err := c.PublishProjection(context.Background(), alice, contract.UserPublicProjectionDoc{
		UID:         "alice",
		DisplayName: "<script>alert(1)</script>neo",
		Level:       3,
	})
	require.NoError(t, err)

	req := store.last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/userPublic/alice", req.Path)
	assert.Equal(t, "Bearer secret", req.Auth)
	assert.Equal(t, "neo", req.Body["displayName"])
	assert.EqualValues(t, 3, req.Body["level"])
}

func TestPublishProjectionDeniedLocally(t *testing.T) {
	c, store := newTestClient(t)

	err := c.PublishProjection(context.Background(), contract.Actor{UID: "bob"},
		contract.UserPublicProjectionDoc{UID: "alice", DisplayName: "alice"})

	assert.ErrorIs(t, err, contract.ErrPermissionDenied)
	assert.Zero(t, store.count())
}

func TestPublishProjectionRejectsEmptyName(t *testing.T) {
	c, _ := newTestClient(t)

	err := c.PublishProjection(context.Background(), contract.Actor{UID: "alice"},
		contract.UserPublicProjectionDoc{UID: "alice", DisplayName: "<b></b>"})
	assert.Error(t, err)
}

func TestRecordIntent(t *testing.T) {
	c, store := newTestClient(t)
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	err := c.RecordIntent(context.Background(), contract.Actor{UID: "alice"}, contract.CommandIntentDoc{
		IntentID: "intent_1", UID: "alice", CommandID: "scan.node", RequestedAt: at,
	})
	require.NoError(t, err)

	req := store.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/users/alice/commandIntents", req.Path)
	assert.Equal(t, "scan.node", req.Body["commandId"])
	assert.Len(t, req.IdemKey, 64)
	_, hasBalance := req.Body["balance"]
	assert.False(t, hasBalance)
}

func TestRecordIntentCrossUserDenied(t *testing.T) {
	c, store := newTestClient(t)

	err := c.RecordIntent(context.Background(), contract.Actor{UID: "mallory"},
		contract.CommandIntentDoc{IntentID: "i", UID: "alice", CommandID: "scan.node"})
	assert.ErrorIs(t, err, contract.ErrPermissionDenied)
	assert.Zero(t, store.count())
}

func TestFetchUser(t *testing.T) {
	c, store := newTestClient(t)
	store.user = &contract.UserPrivateDoc{UID: "alice", Balance: 500, Trace: 12, XP: 30, Level: 4}

	doc, err := c.FetchUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 500, doc.Balance)
	assert.Equal(t, 4, doc.Level)
	assert.Equal(t, "/users/alice", store.last().Path)
}

func TestFetchUserPropagatesTrace(t *testing.T) {
	c, store := newTestClient(t)
	store.user = &contract.UserPrivateDoc{UID: "alice", Level: 1}
	tracer := tracing.New("test", nil)
	defer tracer.Close()
	c.WithTracer(tracer)

	span, ctx := tracer.StartSpan(context.Background(), "sync")
	_, err := c.FetchUser(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, string(span.TraceID), store.last().TraceID)
}

func TestFetchUserNotFound(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.FetchUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, resilience.StateClosed, c.Breaker().State())
}

func TestFetchUserRejectsBadUID(t *testing.T) {
	c, store := newTestClient(t)

	_, err := c.FetchUser(context.Background(), "../admin")
	assert.Error(t, err)
	assert.Zero(t, store.count())
}

func TestRemoteForbiddenMapsToPermissionDenied(t *testing.T) {
	c, store := newTestClient(t)
	store.status = http.StatusForbidden

	_, err := c.FetchUser(context.Background(), "alice")
	assert.ErrorIs(t, err, contract.ErrPermissionDenied)
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	c, store := newTestClient(t)
	store.status = http.StatusInternalServerError

	for i := 0; i < 5; i++ {
		_, err := c.FetchUser(context.Background(), "alice")
		assert.ErrorIs(t, err, ErrRemote)
	}

	_, err := c.FetchUser(context.Background(), "alice")
	assert.True(t, errors.Is(err, resilience.ErrCircuitOpen))
	assert.Equal(t, 5, store.count())
}

func TestReconcile(t *testing.T) {
	local := types.PlayerState{Credits: 138, Trace: 10, XP: 14, Level: 1}

	assert.Equal(t, local, Reconcile(local, nil))

	remote := &contract.UserPrivateDoc{Balance: 90, Trace: 140, XP: -5, Level: 0}
	assert.Equal(t, types.PlayerState{Credits: 90, Trace: 100, XP: 0, Level: 1}, Reconcile(local, remote))
}
