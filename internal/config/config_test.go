package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
dsn = "postgres://test@localhost/test"

[auth]
token_secret = "secret"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BindAddress != "0.0.0.0:8080" {
		t.Errorf("bind_address = %q, want default", cfg.Server.BindAddress)
	}
	if cfg.Auth.SessionTTL != 24*time.Hour {
		t.Errorf("session_ttl = %v, want 24h", cfg.Auth.SessionTTL)
	}
	if cfg.Content.DataDir != "data/yaml" {
		t.Errorf("data_dir = %q, want default", cfg.Content.DataDir)
	}
	if !cfg.RateLimit.Enabled || cfg.RateLimit.LoginAttemptsPerMinute != 10 {
		t.Errorf("rate limit = %+v, want enabled with 10/min", cfg.RateLimit)
	}
	if cfg.Server.StartTime == 0 {
		t.Error("start time not set")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
bind_address = "127.0.0.1:9000"
read_timeout = "30s"

[database]
dsn = "postgres://test@localhost/test"
max_open_conns = 50

[auth]
token_secret = "secret"
session_ttl = "1h"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BindAddress != "127.0.0.1:9000" {
		t.Errorf("bind_address = %q", cfg.Server.BindAddress)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("read_timeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.MaxOpenConns != 50 {
		t.Errorf("max_open_conns = %d, want 50", cfg.Database.MaxOpenConns)
	}
	if cfg.Auth.SessionTTL != time.Hour {
		t.Errorf("session_ttl = %v, want 1h", cfg.Auth.SessionTTL)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[database]
dsn = "postgres://file@localhost/file"

[auth]
token_secret = "file-secret"
`)
	t.Setenv("ACADEMY_DB_DSN", "postgres://env@localhost/env")
	t.Setenv("ACADEMY_TOKEN_SECRET", "env-secret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.DSN != "postgres://env@localhost/env" {
		t.Errorf("dsn = %q, want env value", cfg.Database.DSN)
	}
	if cfg.Auth.TokenSecret != "env-secret" {
		t.Errorf("token_secret = %q, want env value", cfg.Auth.TokenSecret)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing dsn", "[auth]\ntoken_secret = \"s\"\n"},
		{"missing token secret", "[database]\ndsn = \"postgres://x@y/z\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			if _, err := Load(path); err == nil {
				t.Fatal("load succeeded, want error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("load of missing file succeeded")
	}
}
