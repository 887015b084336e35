package transport

import "time"

// Config defines how the connect invoker reaches the backend.
type Config struct {
	// BaseURL of the RPC backend. Empty disables the built-in invoker.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Timeout bounds a single call. Zero leaves calls bounded only by the
	// caller's context.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Merge(source *Config) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}

	if source.Timeout > 0 {
		c.Timeout = source.Timeout
	}
}
