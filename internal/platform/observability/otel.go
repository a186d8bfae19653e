package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Instruments bundles the process-wide logger, tracer and meter providers.
type Instruments struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
	// MetricReader collects the meters on demand. Nothing pushes metrics.
	MetricReader sdkmetric.Reader
}

type settings struct {
	version      string
	environment  string
	level        slog.Level
	output       io.Writer
	spanExporter sdktrace.SpanExporter
	metricReader sdkmetric.Reader
}

// Option tunes Init.
type Option func(*settings)

// WithVersion sets service.version on the resource.
func WithVersion(version string) Option {
	return func(s *settings) { s.version = version }
}

// WithLogOutput redirects structured logs, stdout by default.
func WithLogOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithLogLevel overrides LOG_LEVEL.
func WithLogLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithSpanExporter replaces the OTLP exporter, mostly for tests.
func WithSpanExporter(exporter sdktrace.SpanExporter) Option {
	return func(s *settings) { s.spanExporter = exporter }
}

// WithMetricReader replaces the manual reader.
func WithMetricReader(reader sdkmetric.Reader) Option {
	return func(s *settings) { s.metricReader = reader }
}

// Init installs the slog default logger, the global tracer and meter providers
// and the W3C propagators. Call the returned shutdown on exit to flush spans.
func Init(ctx context.Context, serviceName string, opts ...Option) (*Instruments, func(context.Context) error, error) {
	cfg := settings{
		environment: envOrDefault("ENVIRONMENT", "local"),
		level:       levelFromEnv("LOG_LEVEL", slog.LevelInfo),
		output:      os.Stdout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := newLogger(cfg.output, cfg.level)
	res, err := newResource(ctx, serviceName, cfg)
	if err != nil {
		return nil, nil, err
	}

	exporter := cfg.spanExporter
	if exporter == nil {
		if exporter, err = newSpanExporter(ctx, logger); err != nil {
			return nil, nil, err
		}
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)

	reader := cfg.metricReader
	if reader == nil {
		reader = sdkmetric.NewManualReader()
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	logger.Debug("observability initialized",
		slog.String("service", serviceName),
		slog.String("environment", cfg.environment),
	)

	shutdown := func(ctx context.Context) error {
		return errors.Join(
			meterProvider.Shutdown(ctx),
			tracerProvider.Shutdown(ctx),
		)
	}
	return &Instruments{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		MetricReader:   reader,
	}, shutdown, nil
}

// Tracer returns a named tracer, falling back to the global provider.
func (i *Instruments) Tracer(name string) trace.Tracer {
	if i == nil || i.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return i.TracerProvider.Tracer(name)
}

// Meter returns a named meter, or a no-op meter when none is configured.
func (i *Instruments) Meter(name string) metric.Meter {
	if i == nil || i.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return i.MeterProvider.Meter(name)
}

func newResource(ctx context.Context, serviceName string, cfg settings) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("deployment.environment", cfg.environment),
	}
	if cfg.version != "" {
		attrs = append(attrs, attribute.String("service.version", cfg.version))
	}
	return resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(attrs...),
	)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level, AddSource: level <= slog.LevelDebug})
	logger := slog.New(newTraceHandler(handler))
	slog.SetDefault(logger)
	return logger
}

// newSpanExporter prefers OTLP over HTTP and falls back to stdout.
func newSpanExporter(ctx context.Context, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	var opts []otlptracehttp.Option
	if endpoint := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")); endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") != "0" {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}
	logger.Warn("OTLP trace exporter unavailable, writing spans to stdout", slog.String("error", err.Error()))
	return stdouttrace.New(stdouttrace.WithPrettyPrint())
}

func levelFromEnv(key string, fallback slog.Level) slog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return fallback
	}
	return level
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
