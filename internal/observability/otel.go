package observability

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"resumeparser/internal/config"
)

// Manager owns the tracer and meter providers installed for this process
type Manager struct {
	settings       Settings
	writer         io.Writer
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	shutdownFuncs  []func(context.Context) error
}

// Option customizes Setup
type Option func(*Manager)

// WithWriter sends console exporter output to w instead of stderr.
// Stdout is reserved for parse results.
func WithWriter(w io.Writer) Option {
	return func(m *Manager) {
		m.writer = w
	}
}

// Setup installs global OpenTelemetry providers according to cfg.
// When observability is disabled a no-op manager is returned.
func Setup(ctx context.Context, cfg *config.Config, version string, opts ...Option) (*Manager, error) {
	m := &Manager{
		settings: GetSettings(cfg, version),
		writer:   os.Stderr,
	}
	for _, opt := range opts {
		opt(m)
	}

	if !m.settings.Enabled {
		return m, nil
	}

	res, err := m.newResource()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize resource: %w", err)
	}

	if err := m.initTracing(ctx, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if m.settings.MetricsEnabled {
		if err := m.initMetrics(ctx, res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return m, nil
}

// newResource creates the OpenTelemetry resource
func (m *Manager) newResource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(m.settings.ServiceName),
			semconv.ServiceVersion(m.settings.ServiceVersion),
			attribute.String("service.instance.id", m.settings.ServiceInstance),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// initTracing sets up OpenTelemetry tracing
func (m *Manager) initTracing(ctx context.Context, res *resource.Resource) error {
	var exporter trace.SpanExporter
	var err error

	switch {
	case m.settings.ConsoleOutput:
		// Console exporter for development
		opts := []stdouttrace.Option{stdouttrace.WithWriter(m.writer)}
		if m.settings.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	case m.settings.OTLP.Enabled:
		exporter, err = m.createOTLPExporter(ctx)
	default:
		// No-op exporter when no production exporter is configured
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(m.settings.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (m *Manager) initMetrics(ctx context.Context, res *resource.Resource) error {
	readers, err := m.setupMetricReaders(ctx)
	if err != nil {
		return err
	}

	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	metrics, err := NewMetrics(mp.Meter(m.settings.ServiceName))
	if err != nil {
		return err
	}
	m.metrics = metrics
	return nil
}

// setupMetricReaders sets up all metric readers based on configuration
func (m *Manager) setupMetricReaders(ctx context.Context) ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	if m.settings.ConsoleOutput {
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(m.writer))
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(m.settings.CollectionInterval)))
	}

	if m.settings.OTLP.Enabled {
		otlpReader, err := m.createOTLPMetricsReader(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics reader: %w", err)
		}
		readers = append(readers, otlpReader)
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// Metrics returns the instruments bound to this manager's meter provider,
// or instruments from the global meter when metrics were not set up.
func (m *Manager) Metrics() *Metrics {
	if m.metrics != nil {
		return m.metrics
	}
	return GlobalMetrics()
}

// Tracer returns a tracer for the service
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if !m.settings.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Enabled reports whether providers were installed
func (m *Manager) Enabled() bool {
	return m.settings.Enabled
}

// Shutdown flushes and stops all observability components
func (m *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// No-op exporter for when neither console nor OTLP output is configured
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPExporter creates an OTLP HTTP trace exporter
func (m *Manager) createOTLPExporter(ctx context.Context) (trace.SpanExporter, error) {
	otlpConfig := m.settings.OTLP

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (m *Manager) createOTLPMetricsReader(ctx context.Context) (sdkmetric.Reader, error) {
	otlpConfig := m.settings.OTLP

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(m.settings.CollectionInterval)), nil
}
