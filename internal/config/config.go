// Package config loads the YAML configuration shared by the gopoly binaries.
//
// Example gopoly.yaml:
//
//	calculator:
//	  prompt: "> "
//	  interactive: auto
//	server:
//	  addr: ":8080"
//	  max_body_bytes: 1048576
//	  session_ttl: 30m
//	  max_sessions: 1024
//	  max_pow: 1024
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Interactive modes for the calculator prompt.
const (
	InteractiveAuto   = "auto"   // prompt only when stdin is a terminal
	InteractiveAlways = "always"
	InteractiveNever  = "never"
)

// Config is the top-level configuration file.
type Config struct {
	Calculator Calculator `yaml:"calculator"`
	Server     Server     `yaml:"server"`
}

// Calculator configures cmd/polycalc.
type Calculator struct {
	// Prompt is printed before each line in interactive mode.
	Prompt string `yaml:"prompt"`

	// Interactive is one of "auto", "always" or "never".
	Interactive string `yaml:"interactive"`
}

// Server configures cmd/mcp-server.
type Server struct {
	Addr              string        `yaml:"addr"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`

	// SessionTTL is how long an unused calculator session survives.
	SessionTTL time.Duration `yaml:"session_ttl"`

	// MaxSessions caps the number of live calculator sessions.
	MaxSessions int `yaml:"max_sessions"`

	// MaxLines caps the number of lines accepted by a single exec request.
	MaxLines int `yaml:"max_lines"`

	// MaxPow caps the exponent of the pow tool.
	MaxPow int32 `yaml:"max_pow"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Calculator: Calculator{
			Prompt:      "> ",
			Interactive: InteractiveAuto,
		},
		Server: Server{
			Addr:              ":8080",
			MaxBodyBytes:      1 << 20,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			SessionTTL:        30 * time.Minute,
			MaxSessions:       1024,
			MaxLines:          10000,
			MaxPow:            1024,
		},
	}
}

// Load reads path on top of Default. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	switch c.Calculator.Interactive {
	case InteractiveAuto, InteractiveAlways, InteractiveNever:
	default:
		return fmt.Errorf("calculator.interactive: must be %q, %q or %q, got %q",
			InteractiveAuto, InteractiveAlways, InteractiveNever, c.Calculator.Interactive)
	}

	s := c.Server
	if s.Addr == "" {
		return fmt.Errorf("server.addr: must not be empty")
	}
	if s.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes: must be positive, got %d", s.MaxBodyBytes)
	}
	if s.MaxSessions <= 0 {
		return fmt.Errorf("server.max_sessions: must be positive, got %d", s.MaxSessions)
	}
	if s.MaxLines <= 0 {
		return fmt.Errorf("server.max_lines: must be positive, got %d", s.MaxLines)
	}
	if s.MaxPow < 0 {
		return fmt.Errorf("server.max_pow: must not be negative, got %d", s.MaxPow)
	}
	if s.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl: must be positive, got %s", s.SessionTTL)
	}
	for name, d := range map[string]time.Duration{
		"read_header_timeout": s.ReadHeaderTimeout,
		"read_timeout":        s.ReadTimeout,
		"write_timeout":       s.WriteTimeout,
		"idle_timeout":        s.IdleTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("server.%s: must not be negative, got %s", name, d)
		}
	}
	return nil
}
