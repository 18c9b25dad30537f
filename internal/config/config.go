package config

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported LLM providers
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Explicit key passed to the LLM client constructor - Highest priority
// 2. Vault (if configured)
// 3. Config File values / RESUMEPARSER_LLM_APIKEY
// 4. Provider environment variable (GEMINI_API_KEY, ANTHROPIC_API_KEY) - Lowest priority
type Config struct {
	LLM           LLMConfig           `mapstructure:"llm"`
	Extraction    ExtractionConfig    `mapstructure:"extraction"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// LLMConfig holds the hosted model configuration
type LLMConfig struct {
	Provider        string               `mapstructure:"provider"`
	Model           string               `mapstructure:"model"`
	APIKey          string               `mapstructure:"apiKey"`
	BaseURL         string               `mapstructure:"baseURL"` // Override the provider endpoint (proxies, tests)
	Timeout         time.Duration        `mapstructure:"timeout"` // Per API call
	MaxRetries      int                  `mapstructure:"maxRetries"`
	Temperature     float32              `mapstructure:"temperature"`
	MaxOutputTokens int32                `mapstructure:"maxOutputTokens"`
	TopP            float32              `mapstructure:"topP"`
	TopK            int                  `mapstructure:"topK"`
	CircuitBreaker  CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// ExtractionConfig selects which fields are extracted and how they are prompted
type ExtractionConfig struct {
	Fields       []string                     `mapstructure:"fields"`
	CustomFields map[string]CustomFieldConfig `mapstructure:"customFields"`
	Prompts      PromptConfig                 `mapstructure:"prompts"`

	// Prompt content read from *File paths, keyed by field name
	loadedPrompts map[string]string
}

// CustomFieldConfig describes an additional attribute extracted with its own prompt.
// Viper lower-cases map keys, so custom field names are lower case.
type CustomFieldConfig struct {
	Prompt      string `mapstructure:"prompt"`
	PromptFile  string `mapstructure:"promptFile"`
	MultiValued bool   `mapstructure:"multiValued"`
}

// PromptConfig holds per-field prompt overrides. Each template must contain
// one %s verb, which receives the resume text.
type PromptConfig struct {
	Name       string `mapstructure:"name"`
	NameFile   string `mapstructure:"nameFile"`
	Email      string `mapstructure:"email"`
	EmailFile  string `mapstructure:"emailFile"`
	Skills     string `mapstructure:"skills"`
	SkillsFile string `mapstructure:"skillsFile"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	ServiceName     string        `mapstructure:"serviceName"`
	ServiceVersion  string        `mapstructure:"serviceVersion"`
	ServiceInstance string        `mapstructure:"serviceInstance"`
	ConsoleOutput   bool          `mapstructure:"consoleOutput"`
	PrettyPrint     bool          `mapstructure:"prettyPrint"`
	SampleRate      float64       `mapstructure:"sampleRate"`
	Metrics         MetricsConfig `mapstructure:"metrics"`
	OTLP            OTLPConfig    `mapstructure:"otlp"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := newViper()

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/resumeparser/")
	v.AddConfigPath("$HOME/.resumeparser")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/resumeparser/, $HOME/.resumeparser, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	return finishLoading(v, configFileUsed)
}

// LoadConfigFile loads configuration from an explicit YAML file, still honoring
// defaults and environment variables.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	log.Printf("[CONFIG] Successfully loaded config file: %s", path)
	return finishLoading(v, path)
}

// Default returns the built-in configuration without consulting files or environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode
	_ = v.Unmarshal(&config)
	config.applyFallbacks()
	return &config
}

func newViper() *viper.Viper {
	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("RESUMEPARSER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'RESUMEPARSER'")

	return v
}

func finishLoading(v *viper.Viper, configFileUsed string) (*Config, error) {
	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	config.applyFallbacks()

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate prompt files before attempting to load them
	if err := config.validatePromptFiles(); err != nil {
		return nil, fmt.Errorf("prompt file validation failed: %w", err)
	}

	// Load custom prompts from external files
	if err := config.loadPromptsFromFiles(); err != nil {
		return nil, fmt.Errorf("failed to load custom prompts from files: %w", err)
	}

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// BuiltinFieldNames are the fields the extraction.fields list may name
var BuiltinFieldNames = []string{"name", "email", "skills"}

// Validate checks if the configuration is valid. A missing API key is not a
// configuration error; the LLM client reports it when it is constructed.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderClaude:
	default:
		return fmt.Errorf("unsupported LLM provider: %s (must be '%s' or '%s')", c.LLM.Provider, ProviderGemini, ProviderClaude)
	}

	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM timeout must be positive")
	}

	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("LLM maxRetries cannot be negative")
	}

	if c.LLM.CircuitBreaker.Enabled {
		if c.LLM.CircuitBreaker.FailureThreshold <= 0 || c.LLM.CircuitBreaker.FailureThreshold > 1 {
			return fmt.Errorf("circuit breaker failureThreshold must be in (0, 1]")
		}
	}

	if !slices.Contains(c.App.SupportedFormats, c.App.DefaultFormat) {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	if c.App.MaxFileSize < 0 {
		return fmt.Errorf("maxFileSize cannot be negative")
	}

	if len(c.Extraction.Fields) == 0 && len(c.Extraction.CustomFields) == 0 {
		return fmt.Errorf("at least one extraction field is required")
	}

	for _, field := range c.Extraction.Fields {
		if !slices.Contains(BuiltinFieldNames, field) {
			return fmt.Errorf("unknown extraction field: %s (built-in fields: %v)", field, BuiltinFieldNames)
		}
	}

	for name, field := range c.Extraction.CustomFields {
		if slices.Contains(BuiltinFieldNames, name) {
			return fmt.Errorf("custom field %s shadows a built-in field", name)
		}
		if strings.TrimSpace(field.Prompt) == "" && field.PromptFile == "" {
			return fmt.Errorf("custom field %s requires a prompt or promptFile", name)
		}
	}

	return nil
}
