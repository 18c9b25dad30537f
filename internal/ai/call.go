package ai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resumeparser/internal/errors"
	"resumeparser/internal/observability"
)

// wrapCallError converts a failed provider call into an LLMError
func wrapCallError(provider, model string, err error) error {
	code := errors.ErrCodeLLMRequestFailed
	message := fmt.Sprintf("%s request failed", provider)
	if isBreakerRejection(err) {
		code = errors.ErrCodeLLMCircuitOpen
		message = fmt.Sprintf("%s circuit breaker is open, request rejected", provider)
	}
	return errors.NewLLMError(code, message, err).
		WithContext("provider", provider).
		WithContext("model", model)
}

// finishCall records span attributes, metrics and a log line for one Generate call
func finishCall(ctx context.Context, span trace.Span, metrics *observability.Metrics, logger *errors.Logger, call observability.LLMCall) {
	metrics.RecordLLMCall(ctx, call)

	if call.Err != nil {
		span.RecordError(call.Err)
		span.SetAttributes(attribute.Bool("success", false))
		logger.LogError(call.Err, "LLM call failed",
			"provider", call.Provider,
			"model", call.Model,
			"duration_ms", call.Duration.Milliseconds())
		return
	}

	args := []any{
		"provider", call.Provider,
		"model", call.Model,
		"duration_ms", call.Duration.Milliseconds(),
	}
	if call.Usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", call.Usage.InputTokens),
			attribute.Int64("ai.tokens.output", call.Usage.OutputTokens),
			attribute.Int64("ai.tokens.total", call.Usage.TotalTokens),
		)
		args = append(args,
			"input_tokens", call.Usage.InputTokens,
			"output_tokens", call.Usage.OutputTokens,
			"total_tokens", call.Usage.TotalTokens)
	}
	span.SetAttributes(attribute.Bool("success", true))
	logger.Debug("LLM call completed", args...)
}
