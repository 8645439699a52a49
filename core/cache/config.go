package cache

import "time"

const (
	// ModeStateful backs caches with process-local memory. Fast, but each
	// instance sees its own copy; only safe for single-instance deployments.
	ModeStateful = "stateful"
	// ModeStateless backs caches with the shared Redis store so the whole
	// fleet observes the same cached state.
	ModeStateless = "stateless"
)

// Config holds configuration for the cache layer.
type Config struct {
	// Mode selects the deployment mode (stateful, stateless).
	Mode string `mapstructure:"mode" default:"stateful"`
	// Capacity bounds each process-local cache; ignored in stateless mode.
	Capacity int `mapstructure:"capacity" default:"1024"`
	// TTLSeconds expires shared cache entries; 0 keeps them forever.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"0"`
}

// IsValidMode checks if the configured mode is valid.
func (c Config) IsValidMode() bool {
	switch c.Mode {
	case ModeStateful, ModeStateless:
		return true
	default:
		return false
	}
}

// TTL returns the configured entry lifetime as a duration.
func (c Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}
