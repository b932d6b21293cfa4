package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Activity  ActivityConfig  `yaml:"activity"`
	Auth      AuthConfig      `yaml:"auth"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
	// RateLimit is a ulule/limiter formatted rate, e.g. "60-M" for 60
	// requests per minute per client IP. Empty disables rate limiting.
	RateLimit string `yaml:"rate_limit"`
}

type ActivityConfig struct {
	Dir     string `yaml:"dir"`
	Enabled bool   `yaml:"enabled"`
}

type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "http" or "stdio"
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment values win over file values.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8888,
			StaticDir: "admin",
			RateLimit: "60-M",
		},
		Activity: ActivityConfig{
			Dir:     "/data/.openclaw/activity",
			Enabled: true,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("CLAWDOCK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CLAWDOCK_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ADMIN_API_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ADMIN_API_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dir := os.Getenv("ACTIVITY_LOG_DIR"); dir != "" {
		cfg.Activity.Dir = dir
	}
	if enabled := os.Getenv("ACTIVITY_LOG_ENABLED"); enabled != "" {
		cfg.Activity.Enabled = strings.EqualFold(enabled, "true")
	}
	if token := os.Getenv("CLAWDOCK_ADMIN_TOKEN"); token != "" {
		cfg.Auth.Enabled = true
		cfg.Auth.Token = token
	}
	if mode := os.Getenv("CLAWDOCK_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if staticDir := os.Getenv("CLAWDOCK_STATIC_DIR"); staticDir != "" {
		cfg.Server.StaticDir = staticDir
	}
	if rate := os.Getenv("CLAWDOCK_RATE_LIMIT"); rate != "" {
		cfg.Server.RateLimit = rate
	}
	if level := os.Getenv("CLAWDOCK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Transport.Mode != "http" && cfg.Transport.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid transport mode %q (want http or stdio)", cfg.Transport.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
