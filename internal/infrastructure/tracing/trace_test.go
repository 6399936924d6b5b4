package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartSpanContinuesTrace(t *testing.T) {
	tracer := New("test", nil)
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, childCtx := tracer.StartSpan(ctx, "child")

	assert.NotEmpty(t, root.TraceID)
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.NotEqual(t, root.SpanID, child.SpanID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
}

func TestInjectTraceContext(t *testing.T) {
	tracer := New("test", nil)
	defer tracer.Close()

	headers := map[string]string{}
	InjectTraceContext(context.Background(), headers)
	assert.Empty(t, headers)

	span, ctx := tracer.StartSpan(context.Background(), "op")
	InjectTraceContext(ctx, headers)
	assert.Equal(t, string(span.TraceID), headers[TraceHeader])
	assert.Equal(t, string(span.SpanID), headers[SpanHeader])
}

func TestCloseDrainsSpans(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := New("test", zap.New(core))

	ok, _ := tracer.StartSpan(context.Background(), "ok")
	ok.Finish()
	tracer.Submit(ok)

	failed, _ := tracer.StartSpan(context.Background(), "failed")
	failed.SetError(errors.New("boom"))
	failed.Finish()
	tracer.Submit(failed)

	tracer.Close()
	tracer.Close()
	tracer.Submit(ok)

	assert.Equal(t, 1, logs.FilterMessage("span completed").Len())
	errored := logs.FilterMessage("span completed with error").All()
	require.Len(t, errored, 1)
	assert.EqualValues(t, 500, errored[0].ContextMap()["status"])
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	tracer := New("backend", zap.New(core))

	var seen TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/sessions/:id", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/sessions/sess_1", nil)
	req.Header.Set(TraceHeader, "trace-from-client")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	tracer.Close()

	assert.Equal(t, TraceID("trace-from-client"), seen)
	assert.Equal(t, "trace-from-client", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET /sessions/:id", fields["operation"])
	assert.Equal(t, "200", fields["http.status"])
}
