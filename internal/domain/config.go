package domain

// Config represents the application configuration.
type Config struct {
	API APIConfig // [api] settings
	Log LogConfig // [log] settings
}

// APIConfig holds remote service settings from the [api] section.
type APIConfig struct {
	BaseURL        string // Base URL of the task service, no trailing slash
	GoogleClientID string // OAuth client ID for federated login (optional)
	TimeoutSeconds int    // Per-request timeout
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the configuration defaults.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: 15,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
