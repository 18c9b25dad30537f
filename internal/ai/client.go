package ai

import (
	"fmt"
	"strings"

	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/observability"
)

// Option customizes LLM client construction
type Option func(*clientOptions)

type clientOptions struct {
	apiKey  string
	metrics *observability.Metrics
}

// WithAPIKey sets the credential explicitly, taking precedence over config and environment
func WithAPIKey(key string) Option {
	return func(o *clientOptions) {
		o.apiKey = key
	}
}

// WithMetrics records call metrics on m instead of the global meter
func WithMetrics(m *observability.Metrics) Option {
	return func(o *clientOptions) {
		o.metrics = m
	}
}

func buildOptions(opts []Option) clientOptions {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.metrics == nil {
		o.metrics = observability.GlobalMetrics()
	}
	return o
}

// resolveAPIKey applies key precedence: explicit option, then config (which
// already carries any Vault secret), then the provider environment variable.
func resolveAPIKey(cfg config.LLMConfig, o clientOptions) (string, error) {
	if key := strings.TrimSpace(o.apiKey); key != "" {
		return key, nil
	}
	if key := cfg.ResolveAPIKey(); key != "" {
		return key, nil
	}
	return "", errors.NewLLMError(errors.ErrCodeMissingAPIKey,
		fmt.Sprintf("No API key configured for provider %s (set %s or llm.apiKey)", cfg.Provider, cfg.APIKeyEnv()), nil).
		WithContext("provider", cfg.Provider)
}

// NewClient creates the LLM client for the configured provider
func NewClient(cfg config.LLMConfig, logger *errors.Logger, opts ...Option) (LLMClient, error) {
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	logger.Debug("Initializing LLM client",
		"provider", cfg.Provider,
		"model", cfg.EffectiveModel(),
		"temperature", cfg.Temperature,
		"timeout", cfg.EffectiveTimeout(),
		"max_retries", cfg.MaxRetries)

	var client interface {
		LLMClient
		Model() ModelInfo
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		gemini, err := NewGeminiClient(cfg, logger, opts...)
		if err != nil {
			return nil, err
		}
		client = gemini
	case config.ProviderClaude:
		claude, err := NewClaudeClient(cfg, logger, opts...)
		if err != nil {
			return nil, err
		}
		client = claude
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported LLM provider: %s", cfg.Provider), nil)
	}

	info := client.Model()
	logger.Info("LLM client ready", "provider", info.Provider, "model", info.Name)
	return client, nil
}
