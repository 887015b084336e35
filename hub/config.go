package hub

import (
	"log/slog"
	"time"
)

// Config defines configuration for a Hub instance.
type Config struct {
	// Hub identity
	Name string `json:"name" yaml:"name"`

	// DefaultTimeout bounds Waiter.Wait when the context carries no
	// deadline. Zero waits until the context is done.
	DefaultTimeout time.Duration `json:"default_timeout,omitempty" yaml:"default_timeout,omitempty"`

	// Observability
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Name:   "default",
		Logger: slog.Default(),
	}
}

func (c *Config) Merge(source *Config) {
	if source.Name != "" {
		c.Name = source.Name
	}

	if source.DefaultTimeout > 0 {
		c.DefaultTimeout = source.DefaultTimeout
	}

	if source.Logger != nil {
		c.Logger = source.Logger
	}
}
