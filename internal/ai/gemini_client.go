package ai

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"

	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/observability"
)

// GeminiClient implements LLMClient for Google Gemini
type GeminiClient struct {
	client         *genai.Client
	config         config.LLMConfig
	model          string
	circuitBreaker *CircuitBreaker[*genai.GenerateContentResponse]
	retrier        retrier
	metrics        *observability.Metrics
	logger         *errors.Logger
}

// Ensure GeminiClient implements LLMClient
var _ LLMClient = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini client. A missing API key fails here,
// before any network call is attempted.
func NewGeminiClient(cfg config.LLMConfig, logger *errors.Logger, opts ...Option) (*GeminiClient, error) {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	o := buildOptions(opts)

	apiKey, err := resolveAPIKey(cfg, o)
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: newHTTPClient(),
		HTTPOptions: genai.HTTPOptions{
			BaseURL: cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, errors.NewLLMError(errors.ErrCodeLLMRequestFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiClient{
		client:         client,
		config:         cfg,
		model:          cfg.EffectiveModel(),
		circuitBreaker: NewCircuitBreaker[*genai.GenerateContentResponse](config.ProviderGemini, cfg.CircuitBreaker, logger),
		retrier:        newRetrier(cfg.MaxRetries, logger),
		metrics:        o.metrics,
		logger:         logger,
	}, nil
}

// Generate implements LLMClient
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return "", err
	}

	tracer := otel.Tracer("resumeparser.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.generate")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", config.ProviderGemini),
		attribute.String("ai.model", g.model),
		attribute.Float64("ai.temperature", float64(g.config.Temperature)),
		attribute.Int("input.prompt_length", len(prompt)),
	)

	start := time.Now()
	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return executeWithRetry(ctx, g.retrier, "gemini.generate", func(ctx context.Context) (*genai.GenerateContentResponse, error) {
			callCtx, cancel := context.WithTimeout(ctx, g.config.EffectiveTimeout())
			defer cancel()
			return g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), g.buildGenerateConfig())
		})
	})

	if err == nil && (result == nil || len(result.Candidates) == 0) {
		err = errors.NewLLMError(errors.ErrCodeLLMEmptyResponse, "Gemini returned no candidates", nil).
			WithContext("provider", config.ProviderGemini).
			WithContext("model", g.model)
	} else if err != nil {
		err = wrapCallError(config.ProviderGemini, g.model, err)
	}

	var usage *TokenUsage
	if err == nil {
		usage = extractGeminiTokenUsage(result)
	}
	finishCall(ctx, span, g.metrics, g.logger, observability.LLMCall{
		Provider: config.ProviderGemini,
		Model:    g.model,
		Duration: time.Since(start),
		Usage:    usage,
		Err:      err,
	})
	if err != nil {
		return "", err
	}

	return result.Text(), nil
}

// Model implements the model description used in logs
func (g *GeminiClient) Model() ModelInfo {
	return ModelInfo{Provider: config.ProviderGemini, Name: g.model}
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiClient) GetCircuitBreakerStats() map[string]any {
	stats := g.circuitBreaker.GetStats()
	stats["healthy"] = g.circuitBreaker.IsHealthy()
	return stats
}

// buildGenerateConfig creates the generation parameters for each request
func (g *GeminiClient) buildGenerateConfig() *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: g.config.MaxOutputTokens,
	}

	// Apply sampling configuration if set
	if g.config.Temperature > 0 {
		temperature := g.config.Temperature
		genaiConfig.Temperature = &temperature
	}
	if g.config.TopP > 0 {
		topP := g.config.TopP
		genaiConfig.TopP = &topP
	}
	if g.config.TopK > 0 {
		topK := float32(g.config.TopK)
		genaiConfig.TopK = &topK
	}

	return genaiConfig
}

// extractGeminiTokenUsage extracts token usage information from Gemini API response
func extractGeminiTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
