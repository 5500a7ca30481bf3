// Package config assembles runtime configuration from an optional YAML
// file overlaid by environment variables. Environment always wins, so a
// deployment can ship a config file and still override single knobs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the full runtime configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Data     DataConfig     `yaml:"data"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the backing database. A non-empty URL picks
// Postgres; otherwise the catalog lives in a local SQLite file.
type DatabaseConfig struct {
	URL        string `yaml:"url"`
	SQLitePath string `yaml:"sqlite_path"`
}

// DataConfig locates the on-disk catalog documents.
type DataConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// AuthConfig governs write access. With an empty password hash the server
// runs in dev mode and accepts unauthenticated writes.
type AuthConfig struct {
	AdminPasswordHash string `yaml:"admin_password_hash"`
}

// SessionConfig tunes the admin session cookie.
type SessionConfig struct {
	Lifetime time.Duration `yaml:"lifetime"`
}

// LoggingConfig tunes the global logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Load builds a Config from defaults, an optional YAML file named by
// AROMATECA_CONFIG, and the environment, in that precedence order.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			SQLitePath: "aromateca.db",
		},
		Data: DataConfig{
			Dir:   "data",
			Watch: true,
		},
		Session: SessionConfig{
			Lifetime: 12 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	if path := strings.TrimSpace(os.Getenv("AROMATECA_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Server.Addr = firstNonEmpty(
		os.Getenv("SERVER_ADDR"),
		os.Getenv("ADDR"),
		cfg.Server.Addr,
	)
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.Server.AllowedOrigins = splitList(origins)
	}
	cfg.Server.ShutdownTimeout = parseDurationWithDefault("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	cfg.Database.URL = firstNonEmpty(
		os.Getenv("DATABASE_URL"),
		os.Getenv("DB_URL"),
		cfg.Database.URL,
	)
	cfg.Database.SQLitePath = firstNonEmpty(os.Getenv("SQLITE_PATH"), cfg.Database.SQLitePath)

	cfg.Data.Dir = firstNonEmpty(os.Getenv("DATA_DIR"), cfg.Data.Dir)
	cfg.Data.Watch = parseBoolWithDefault("DATA_WATCH", cfg.Data.Watch)

	cfg.Auth.AdminPasswordHash = firstNonEmpty(
		os.Getenv("ADMIN_PASSWORD_HASH"),
		cfg.Auth.AdminPasswordHash,
	)

	cfg.Session.Lifetime = parseDurationWithDefault("SESSION_LIFETIME", cfg.Session.Lifetime)

	cfg.Logging.Level = firstNonEmpty(os.Getenv("LOG_LEVEL"), cfg.Logging.Level)
	cfg.Logging.JSON = parseBoolWithDefault("LOG_JSON", cfg.Logging.JSON)

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Session.Lifetime <= 0 {
		return Config{}, fmt.Errorf("session lifetime must be positive")
	}

	return cfg, nil
}

// DevMode reports whether writes are open to unauthenticated callers.
func (c Config) DevMode() bool {
	return strings.TrimSpace(c.Auth.AdminPasswordHash) == ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDurationWithDefault(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}

func parseBoolWithDefault(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}
