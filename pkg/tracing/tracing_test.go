package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder 安装内存SpanRecorder作为全局Provider
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return recorder
}

func TestInitTracer(t *testing.T) {
	// gRPC连接是惰性的，没有Collector也能初始化成功
	shutdown, err := InitTracer(Config{ServiceName: "bookcatalog-test", Endpoint: "localhost:4317", Insecure: true, SampleRatio: 0.5})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	_ = shutdown(context.Background())
}

func TestStartSpan_ParentChild(t *testing.T) {
	recorder := useRecorder(t)

	ctx, parent := StartSpan(context.Background(), "bookcatalog", "POST /books")
	traceID := ExtractTraceID(ctx)
	require.Len(t, traceID, 32)
	assert.Len(t, ExtractSpanID(ctx), 16)

	childCtx, child := StartSpan(ctx, "bookcatalog", "book.Create")
	assert.Equal(t, traceID, ExtractTraceID(childCtx), "子Span应继承TraceID")
	child.End()
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "book.Create", spans[0].Name())
	assert.Equal(t, parent.SpanContext().SpanID(), spans[0].Parent().SpanID())
}

func TestExtract_NoSpan(t *testing.T) {
	assert.Empty(t, ExtractTraceID(context.Background()))
	assert.Empty(t, ExtractSpanID(context.Background()))
}
