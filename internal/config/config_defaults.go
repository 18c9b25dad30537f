package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM Configuration
	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model", "") // Resolved per provider, see EffectiveModel
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.baseURL", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.maxRetries", 0) // Single attempt unless retries are enabled
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.maxOutputTokens", 2048)
	v.SetDefault("llm.topP", 0.8)
	v.SetDefault("llm.topK", 40)

	// Circuit Breaker Configuration
	v.SetDefault("llm.circuitBreaker.enabled", true)
	v.SetDefault("llm.circuitBreaker.maxRequests", 3)
	v.SetDefault("llm.circuitBreaker.interval", 60*time.Second)
	v.SetDefault("llm.circuitBreaker.timeout", 60*time.Second)
	v.SetDefault("llm.circuitBreaker.minRequests", 3)
	v.SetDefault("llm.circuitBreaker.failureThreshold", 0.6)

	// Extraction Configuration
	v.SetDefault("extraction.fields", []string{"name", "email", "skills"})
	v.SetDefault("extraction.customFields", map[string]any{})
	v.SetDefault("extraction.prompts.name", "")
	v.SetDefault("extraction.prompts.nameFile", "")
	v.SetDefault("extraction.prompts.email", "")
	v.SetDefault("extraction.prompts.emailFile", "")
	v.SetDefault("extraction.prompts.skills", "")
	v.SetDefault("extraction.prompts.skillsFile", "")

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxFileSize", 10*1024*1024) // 10MB

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.llmKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "resumeparser")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.prettyPrint", true)
	v.SetDefault("observability.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})
}
