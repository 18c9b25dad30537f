package observability

import (
	"time"

	"resumeparser/internal/config"
)

// Settings is the resolved observability configuration for one process
type Settings struct {
	ServiceName        string
	ServiceVersion     string
	ServiceInstance    string
	Enabled            bool
	ConsoleOutput      bool
	PrettyPrint        bool
	SampleRate         float64
	MetricsEnabled     bool
	CollectionInterval time.Duration
	OTLP               config.OTLPConfig
}

// GetSettings creates observability settings from the provided config
func GetSettings(cfg *config.Config, version string) Settings {
	if cfg == nil {
		// Fallback to defaults if config not available
		return Settings{
			ServiceName:        "resumeparser",
			ServiceVersion:     version,
			ServiceInstance:    "resumeparser-1",
			Enabled:            true,
			PrettyPrint:        true,
			SampleRate:         1.0,
			MetricsEnabled:     true,
			CollectionInterval: 15 * time.Second,
		}
	}

	obsConfig := cfg.Observability

	// Use app version if service version not specified
	serviceVersion := obsConfig.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = version
	}

	interval := obsConfig.Metrics.CollectionInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	return Settings{
		ServiceName:        obsConfig.ServiceName,
		ServiceVersion:     serviceVersion,
		ServiceInstance:    obsConfig.ServiceInstance,
		Enabled:            obsConfig.Enabled,
		ConsoleOutput:      obsConfig.ConsoleOutput,
		PrettyPrint:        obsConfig.PrettyPrint,
		SampleRate:         obsConfig.SampleRate,
		MetricsEnabled:     obsConfig.Metrics.Enabled,
		CollectionInterval: interval,
		OTLP:               obsConfig.OTLP,
	}
}
