// Package config holds the runtime configuration of the F1 data service.
// Values are populated by cobra flags bound through viper, so every
// setting can come from a flag, an environment variable with the F1API
// prefix, or a YAML config file.
package config

// Config is the resolved process configuration.
type Config struct {
	// ListenAddr is the HTTP listen address of the API server.
	ListenAddr string

	// RedisAddr is the address of the shared cache store.
	RedisAddr     string
	RedisDB       int
	RedisPassword string

	// StandingsBaseURL is the base URL of the standings provider
	// (Ergast-compatible API).
	StandingsBaseURL string

	// SessionsBaseURL is the base URL of the event-schedule/session
	// results provider.
	SessionsBaseURL string

	// UpstreamTimeoutSeconds bounds each upstream HTTP request.
	UpstreamTimeoutSeconds int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogPretty switches from JSON to human-readable console logs.
	LogPretty bool
}

// Default returns the configuration defaults used when neither flags,
// environment nor config file say otherwise.
func Default() Config {
	return Config{
		ListenAddr:             ":8080",
		RedisAddr:              "localhost:6379",
		RedisDB:                0,
		StandingsBaseURL:       "https://api.jolpi.ca/ergast/f1",
		SessionsBaseURL:        "http://localhost:8090",
		UpstreamTimeoutSeconds: 10,
		LogLevel:               "info",
		LogPretty:              false,
	}
}
