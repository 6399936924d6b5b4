/*
Package tracing provides lightweight request tracing.

Spans are created per HTTP request by HTTPMiddleware and per outbound
document store call. Trace context travels in the X-Trace-ID and X-Span-ID
headers, so a docstore request carries the trace of the API request that
caused it. Finished spans are buffered and written to the zap log by a
single collector goroutine.

# Usage

	tracer := tracing.New("backend", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
