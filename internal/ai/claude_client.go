package ai

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/observability"
)

// ClaudeClient implements LLMClient using Anthropic's Claude
type ClaudeClient struct {
	client         anthropic.Client
	config         config.LLMConfig
	model          string
	circuitBreaker *CircuitBreaker[*anthropic.Message]
	retrier        retrier
	metrics        *observability.Metrics
	logger         *errors.Logger
}

// Ensure ClaudeClient implements LLMClient
var _ LLMClient = (*ClaudeClient)(nil)

// NewClaudeClient creates a Claude client. A missing API key fails here,
// before any network call is attempted.
func NewClaudeClient(cfg config.LLMConfig, logger *errors.Logger, opts ...Option) (*ClaudeClient, error) {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	o := buildOptions(opts)

	apiKey, err := resolveAPIKey(cfg, o)
	if err != nil {
		return nil, err
	}

	// Retries are handled by executeWithRetry so the SDK's own retries are off
	requestOptions := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(newHTTPClient()),
	}
	if cfg.BaseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(cfg.BaseURL))
	}

	return &ClaudeClient{
		client:         anthropic.NewClient(requestOptions...),
		config:         cfg,
		model:          cfg.EffectiveModel(),
		circuitBreaker: NewCircuitBreaker[*anthropic.Message](config.ProviderClaude, cfg.CircuitBreaker, logger),
		retrier:        newRetrier(cfg.MaxRetries, logger),
		metrics:        o.metrics,
		logger:         logger,
	}, nil
}

// Generate implements LLMClient
func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return "", err
	}

	tracer := otel.Tracer("resumeparser.ai.claude")
	ctx, span := tracer.Start(ctx, "claude.generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", config.ProviderClaude),
		attribute.String("ai.model", c.model),
		attribute.Float64("ai.temperature", float64(c.config.Temperature)),
		attribute.Int("input.prompt_length", len(prompt)),
	)

	start := time.Now()
	message, err := c.circuitBreaker.Execute(func() (*anthropic.Message, error) {
		return executeWithRetry(ctx, c.retrier, "claude.generate", func(ctx context.Context) (*anthropic.Message, error) {
			callCtx, cancel := context.WithTimeout(ctx, c.config.EffectiveTimeout())
			defer cancel()
			return c.client.Messages.New(callCtx, c.buildMessageParams(prompt))
		})
	})

	if err == nil && (message == nil || len(message.Content) == 0) {
		err = errors.NewLLMError(errors.ErrCodeLLMEmptyResponse, "Claude returned no content", nil).
			WithContext("provider", config.ProviderClaude).
			WithContext("model", c.model)
	} else if err != nil {
		err = wrapCallError(config.ProviderClaude, c.model, err)
	}

	var usage *TokenUsage
	if err == nil {
		usage = extractClaudeTokenUsage(message)
	}
	finishCall(ctx, span, c.metrics, c.logger, observability.LLMCall{
		Provider: config.ProviderClaude,
		Model:    c.model,
		Duration: time.Since(start),
		Usage:    usage,
		Err:      err,
	})
	if err != nil {
		return "", err
	}

	return messageText(message), nil
}

// Model implements the model description used in logs
func (c *ClaudeClient) Model() ModelInfo {
	return ModelInfo{Provider: config.ProviderClaude, Name: c.model}
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (c *ClaudeClient) GetCircuitBreakerStats() map[string]any {
	stats := c.circuitBreaker.GetStats()
	stats["healthy"] = c.circuitBreaker.IsHealthy()
	return stats
}

// buildMessageParams creates a single-turn request for prompt
func (c *ClaudeClient) buildMessageParams(prompt string) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.config.MaxOutputTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if params.MaxTokens <= 0 {
		params.MaxTokens = 1024
	}
	if c.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.config.Temperature))
	}
	if c.config.TopK > 0 {
		params.TopK = anthropic.Int(int64(c.config.TopK))
	}
	return params
}

// messageText concatenates the text blocks of a response
func messageText(message *anthropic.Message) string {
	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String()
}

// extractClaudeTokenUsage extracts token usage information from a Claude response
func extractClaudeTokenUsage(message *anthropic.Message) *TokenUsage {
	if message == nil {
		return nil
	}
	return &TokenUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
		TotalTokens:  message.Usage.InputTokens + message.Usage.OutputTokens,
	}
}
