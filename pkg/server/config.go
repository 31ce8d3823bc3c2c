package server

import (
	"log/slog"
	"time"
)

// Config holds configuration for the HTTP/WebSocket host.
type Config struct {
	// Address is the address to listen on (e.g., ":8080").
	// Default: ":8080".
	Address string

	// Selector is the display-surface selector the client mounts into.
	// Default: "#app".
	Selector string

	// Title is the page title of the served shell.
	// Default: "Loom".
	Title string

	// ReadTimeout is the maximum time to wait for a client message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 5 seconds.
	ShutdownTimeout time.Duration

	// Logger receives structured logs. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		Selector:        "#app",
		Title:           "Loom",
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		MaxMessageSize:  64 * 1024,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	if c == nil {
		c = def
	} else {
		c = c.Clone()
	}
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.Selector == "" {
		c.Selector = def.Selector
	}
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
