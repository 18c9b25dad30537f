package config

import (
	"os"
	"strings"
	"time"
)

// Default models per provider
const (
	DefaultGeminiModel = "gemini-2.0-flash-lite"
	DefaultClaudeModel = "claude-3-5-haiku-latest"
)

// Provider environment variables consulted when no key is configured
const (
	GeminiAPIKeyEnv    = "GEMINI_API_KEY"
	AnthropicAPIKeyEnv = "ANTHROPIC_API_KEY"
)

// DefaultLLMConfig returns the built-in settings for a provider.
func DefaultLLMConfig(provider string) LLMConfig {
	cfg := Default().LLM
	cfg.Provider = provider
	return cfg
}

// EffectiveModel returns the configured model or the provider default.
func (l LLMConfig) EffectiveModel() string {
	if l.Model != "" {
		return l.Model
	}
	if l.Provider == ProviderClaude {
		return DefaultClaudeModel
	}
	return DefaultGeminiModel
}

// APIKeyEnv returns the provider-specific environment variable name.
func (l LLMConfig) APIKeyEnv() string {
	if l.Provider == ProviderClaude {
		return AnthropicAPIKeyEnv
	}
	return GeminiAPIKeyEnv
}

// ResolveAPIKey returns the configured key, falling back to the provider
// environment variable. An empty result means no credential is available.
// Surrounding whitespace is dropped, so a blank value counts as missing.
func (l LLMConfig) ResolveAPIKey() string {
	if key := strings.TrimSpace(l.APIKey); key != "" {
		return key
	}
	return strings.TrimSpace(os.Getenv(l.APIKeyEnv()))
}

// EffectiveTimeout returns the per-call timeout, never zero.
func (l LLMConfig) EffectiveTimeout() time.Duration {
	if l.Timeout > 0 {
		return l.Timeout
	}
	return 30 * time.Second
}
