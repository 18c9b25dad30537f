package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope used for all custom metrics
const MeterName = "resumeparser"

// Metrics holds all custom metrics for resume parsing
type Metrics struct {
	// LLM call metrics
	LLMRequestCount metric.Int64Counter
	LLMErrorCount   metric.Int64Counter
	LLMTokenUsage   metric.Int64Histogram
	LLMDuration     metric.Float64Histogram

	// Business metrics
	ResumesParsed metric.Int64Counter
	ParseDuration metric.Float64Histogram
}

// TokenUsage represents token usage information from LLM responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// LLMCall describes one completed LLM request for metric recording
type LLMCall struct {
	Provider string
	Model    string
	Duration time.Duration
	Usage    *TokenUsage
	Err      error
}

// NewMetrics creates all instruments on the given meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	if err := m.createLLMMetrics(meter); err != nil {
		return nil, err
	}
	if err := m.createBusinessMetrics(meter); err != nil {
		return nil, err
	}
	return m, nil
}

// GlobalMetrics creates instruments on the global meter provider. The global
// provider delegates to whatever Setup installs, even if Setup runs later.
// Instrument creation only fails for invalid names, so failures yield a
// Metrics whose recorders are no-ops.
func GlobalMetrics() *Metrics {
	m, err := NewMetrics(otel.Meter(MeterName))
	if err != nil {
		return &Metrics{}
	}
	return m
}

// createLLMMetrics creates LLM-related metrics
func (m *Metrics) createLLMMetrics(meter metric.Meter) error {
	var err error

	m.LLMRequestCount, err = meter.Int64Counter(
		"resumeparser_llm_requests_total",
		metric.WithDescription("Total number of LLM requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create LLM request count metric: %w", err)
	}

	m.LLMErrorCount, err = meter.Int64Counter(
		"resumeparser_llm_errors_total",
		metric.WithDescription("Total number of LLM request errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create LLM error count metric: %w", err)
	}

	m.LLMTokenUsage, err = meter.Int64Histogram(
		"resumeparser_llm_token_usage",
		metric.WithDescription("Token usage for LLM requests (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return fmt.Errorf("failed to create LLM token usage metric: %w", err)
	}

	m.LLMDuration, err = meter.Float64Histogram(
		"resumeparser_llm_request_duration_seconds",
		metric.WithDescription("Time spent waiting for LLM responses"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create LLM duration metric: %w", err)
	}

	return nil
}

// createBusinessMetrics creates resume-level metrics
func (m *Metrics) createBusinessMetrics(meter metric.Meter) error {
	var err error

	m.ResumesParsed, err = meter.Int64Counter(
		"resumeparser_resumes_parsed_total",
		metric.WithDescription("Total number of resume parse attempts"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resumes parsed metric: %w", err)
	}

	m.ParseDuration, err = meter.Float64Histogram(
		"resumeparser_parse_duration_seconds",
		metric.WithDescription("End-to-end time to parse one resume"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parse duration metric: %w", err)
	}

	return nil
}

// RecordLLMCall records request count, duration, errors and token usage for one call
func (m *Metrics) RecordLLMCall(ctx context.Context, call LLMCall) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("provider", call.Provider),
		attribute.String("model", call.Model),
		attribute.Bool("success", call.Err == nil),
	}

	if m.LLMRequestCount != nil {
		m.LLMRequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if m.LLMDuration != nil {
		m.LLMDuration.Record(ctx, call.Duration.Seconds(), metric.WithAttributes(attrs...))
	}
	if call.Err != nil && m.LLMErrorCount != nil {
		m.LLMErrorCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	m.recordTokenMetrics(ctx, call.Usage, attrs)
}

// recordTokenMetrics records individual token usage metrics
func (m *Metrics) recordTokenMetrics(ctx context.Context, usage *TokenUsage, attrs []attribute.KeyValue) {
	if usage == nil || m.LLMTokenUsage == nil {
		return
	}

	tokenTypes := []struct {
		tokenType string
		value     int64
	}{
		{"input", usage.InputTokens},
		{"output", usage.OutputTokens},
		{"total", usage.TotalTokens},
	}

	for _, tt := range tokenTypes {
		tokenAttrs := append(attrs[:len(attrs):len(attrs)], attribute.String("token_type", tt.tokenType))
		m.LLMTokenUsage.Record(ctx, tt.value, metric.WithAttributes(tokenAttrs...))
	}
}

// RecordResumeParsed records one ParseResume invocation
func (m *Metrics) RecordResumeParsed(ctx context.Context, format string, duration time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("format", format),
		attribute.Bool("success", err == nil),
	}

	if m.ResumesParsed != nil {
		m.ResumesParsed.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if m.ParseDuration != nil {
		m.ParseDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	}
}
