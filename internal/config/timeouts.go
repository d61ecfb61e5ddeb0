package config

import "time"

// TimeoutConfig holds timeout settings for the HTTP surface.
// The database layer configures none of its own; request contexts carry these deadlines.
type TimeoutConfig struct {
	// HTTPRequest bounds a single API request, including its queries. Default: 30s
	HTTPRequest time.Duration

	// Shutdown is how long in-flight requests get to finish on SIGINT/SIGTERM.
	// Default: 10s
	Shutdown time.Duration
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() *TimeoutConfig {
	return &TimeoutConfig{
		HTTPRequest: 30 * time.Second,
		Shutdown:    10 * time.Second,
	}
}

// global instance that can be set at startup
var globalTimeouts = DefaultTimeoutConfig()

// SetGlobalTimeouts sets the global timeout configuration
func SetGlobalTimeouts(cfg *TimeoutConfig) {
	if cfg == nil {
		cfg = DefaultTimeoutConfig()
	}
	globalTimeouts = cfg
}

// GetTimeouts returns the global timeout configuration
func GetTimeouts() *TimeoutConfig {
	return globalTimeouts
}
