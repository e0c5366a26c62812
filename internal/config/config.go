package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Auth      AuthConfig      `toml:"auth"`
	Content   ContentConfig   `toml:"content"`
	Logging   LoggingConfig   `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	Name        string        `toml:"name"`
	BindAddress string        `toml:"bind_address"`
	ReadTimeout time.Duration `toml:"read_timeout"`
	StartTime   int64         // set at boot, not from config
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type AuthConfig struct {
	TokenSecret string        `toml:"token_secret"`
	SessionTTL  time.Duration `toml:"session_ttl"`
}

type ContentConfig struct {
	DataDir    string `toml:"data_dir"`    // YAML catalog tables
	ScriptsDir string `toml:"scripts_dir"` // Lua reward hooks
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type RateLimitConfig struct {
	Enabled                bool `toml:"enabled"`
	LoginAttemptsPerMinute int  `toml:"login_attempts_per_minute"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// applyEnv overlays deploy secrets from the environment over file values.
func (c *Config) applyEnv() {
	if v := os.Getenv("ACADEMY_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("ACADEMY_TOKEN_SECRET"); v != "" {
		c.Auth.TokenSecret = v
	}
}

// Validate checks the two required connection parameters. Missing either one
// is a fatal startup error — the server does not run in a degraded mode.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("config: database.dsn is required (or ACADEMY_DB_DSN)")
	}
	if c.Auth.TokenSecret == "" {
		return errors.New("config: auth.token_secret is required (or ACADEMY_TOKEN_SECRET)")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name:        "CyberGuardian Academy",
			BindAddress: "0.0.0.0:8080",
			ReadTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Auth: AuthConfig{
			SessionTTL: 24 * time.Hour,
		},
		Content: ContentConfig{
			DataDir:    "data/yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		RateLimit: RateLimitConfig{
			Enabled:                true,
			LoginAttemptsPerMinute: 10,
		},
	}
}
