package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/njchilds90/gopoly/internal/config"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg := config.Default()
	data := []byte(`
calculator:
  prompt: "poly> "
  interactive: never
server:
  addr: "127.0.0.1:9000"
  session_ttl: 90s
`)
	if err := config.Parse(data, &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Calculator.Prompt != "poly> " {
		t.Errorf("want prompt 'poly> ', got %q", cfg.Calculator.Prompt)
	}
	if cfg.Calculator.Interactive != config.InteractiveNever {
		t.Errorf("want interactive never, got %q", cfg.Calculator.Interactive)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("want addr 127.0.0.1:9000, got %q", cfg.Server.Addr)
	}
	if cfg.Server.SessionTTL != 90*time.Second {
		t.Errorf("want session_ttl 90s, got %s", cfg.Server.SessionTTL)
	}
	if cfg.Server.MaxPow != 1024 {
		t.Errorf("want default max_pow 1024, got %d", cfg.Server.MaxPow)
	}
	// untouched keys keep defaults
	if cfg.Server.MaxSessions != config.Default().Server.MaxSessions {
		t.Errorf("max_sessions should keep its default, got %d", cfg.Server.MaxSessions)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"interactive", "calculator:\n  interactive: sometimes\n", "calculator.interactive"},
		{"empty addr", "server:\n  addr: \"\"\n", "server.addr"},
		{"max sessions", "server:\n  max_sessions: 0\n", "server.max_sessions"},
		{"ttl", "server:\n  session_ttl: -1s\n", "server.session_ttl"},
		{"negative timeout", "server:\n  read_timeout: -5s\n", "server.read_timeout"},
		{"negative max pow", "server:\n  max_pow: -1\n", "server.max_pow"},
		{"max pow overflow", "server:\n  max_pow: 4294967296\n", "parsing config"},
		{"syntax", "server: [\n", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := config.Parse([]byte(tt.yaml), &cfg)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gopoly.yaml")
	if err := os.WriteFile(path, []byte("server:\n  max_lines: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.MaxLines != 5 {
		t.Errorf("want max_lines 5, got %d", cfg.Server.MaxLines)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want not-exist error, got %v", err)
	}
}
