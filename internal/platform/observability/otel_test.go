package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestInit_WiresLoggerTracerAndMeter(t *testing.T) {
	var logs bytes.Buffer
	spans := tracetest.NewInMemoryExporter()
	reader := sdkmetric.NewManualReader()

	instruments, shutdown, err := Init(context.Background(), "gomitas-test",
		WithLogOutput(&logs),
		WithLogLevel(slog.LevelInfo),
		WithSpanExporter(spans),
		WithMetricReader(reader),
		WithVersion("test"),
	)
	require.NoError(t, err)

	ctx, span := instruments.Tracer("orders").Start(context.Background(), "PlaceOrder")
	instruments.Logger.InfoContext(ctx, "placing order")
	counter, err := instruments.Meter("orders").Int64Counter("orders.placed")
	require.NoError(t, err)
	counter.Add(ctx, 2)
	span.End()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.NotEmpty(t, rm.ScopeMetrics)
	assert.Equal(t, "orders.placed", rm.ScopeMetrics[0].Metrics[0].Name)

	require.NoError(t, shutdown(context.Background()))
	require.Len(t, spans.GetSpans(), 1)
	assert.Equal(t, "PlaceOrder", spans.GetSpans()[0].Name)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "placing order", entry["msg"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
}

func TestInstruments_NilFallbacks(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("x"))
	assert.NotNil(t, instruments.Meter("x"))
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, levelFromEnv("LOG_LEVEL", slog.LevelInfo))
	t.Setenv("LOG_LEVEL", "loud")
	assert.Equal(t, slog.LevelInfo, levelFromEnv("LOG_LEVEL", slog.LevelInfo))
}
