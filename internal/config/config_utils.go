package config

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// applyFallbacks fills values that depend on other settings
func (c *Config) applyFallbacks() {
	c.applyExtractionDefaults()
	c.applyObservabilityDefaults()
}

// applyExtractionDefaults normalizes field names so config and flags compare equal
func (c *Config) applyExtractionDefaults() {
	fields := make([]string, 0, len(c.Extraction.Fields))
	for _, field := range c.Extraction.Fields {
		field = strings.ToLower(strings.TrimSpace(field))
		if field != "" {
			fields = append(fields, field)
		}
	}
	c.Extraction.Fields = fields
}

// applyObservabilityDefaults applies default observability configuration values
func (c *Config) applyObservabilityDefaults() {
	if c.Observability.ServiceInstance == "" {
		c.Observability.ServiceInstance = generateServiceInstanceID(c.Observability.ServiceName)
	}
}

// generateServiceInstanceID generates a unique service instance ID
func generateServiceInstanceID(serviceName string) string {
	// Try to get hostname, fallback to default
	if hostname, err := os.Hostname(); err == nil {
		return fmt.Sprintf("%s-%s", serviceName, hostname)
	}
	return fmt.Sprintf("%s-1", serviceName)
}

// logConfigurationSources logs a summary of configuration sources being used
func (c *Config) logConfigurationSources(configFileUsed string) {
	log.Println("[CONFIG] === Configuration Sources Summary ===")

	// Log config file source
	if configFileUsed != "" {
		log.Printf("[CONFIG] Config file: %s", configFileUsed)
	} else {
		log.Println("[CONFIG] Config file: None (using defaults)")
	}

	// Log environment variables that are set
	envVars := []string{
		"RESUMEPARSER_LLM_APIKEY",
		"RESUMEPARSER_LLM_PROVIDER",
		"RESUMEPARSER_LLM_MODEL",
		"RESUMEPARSER_APP_LOGLEVEL",
		"RESUMEPARSER_VAULT_ENABLED",
		GeminiAPIKeyEnv,
		AnthropicAPIKeyEnv,
	}

	log.Println("[CONFIG] Environment variables:")
	hasEnvVars := false
	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			// Mask sensitive values
			if strings.Contains(strings.ToLower(envVar), "key") {
				log.Printf("[CONFIG]   %s=***MASKED***", envVar)
			} else {
				log.Printf("[CONFIG]   %s=%s", envVar, value)
			}
			hasEnvVars = true
		}
	}
	if !hasEnvVars {
		log.Println("[CONFIG]   None set")
	}

	// Log key configuration values (with sensitive data masked)
	log.Println("[CONFIG] === Key Configuration Values ===")
	log.Printf("[CONFIG] LLM Provider: %s", c.LLM.Provider)
	log.Printf("[CONFIG] LLM Model: %s", c.LLM.EffectiveModel())
	if c.LLM.ResolveAPIKey() != "" {
		log.Println("[CONFIG] LLM API Key: ***CONFIGURED***")
	} else {
		log.Println("[CONFIG] LLM API Key: ***NOT SET***")
	}
	log.Printf("[CONFIG] Extraction Fields: %v", c.Extraction.Fields)
	log.Printf("[CONFIG] Custom Fields: %d", len(c.Extraction.CustomFields))
	log.Printf("[CONFIG] Log Level: %s", c.App.LogLevel)
	log.Printf("[CONFIG] Vault Enabled: %t", c.Vault.Enabled)
	log.Printf("[CONFIG] Observability Enabled: %t", c.Observability.Enabled)

	log.Println("[CONFIG] =====================================")
}
