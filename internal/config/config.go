// Package config loads the service configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service settings. Command line flags override file values.
type Config struct {
	Addr            string        `yaml:"addr"`
	DB              string        `yaml:"db"`
	Log             string        `yaml:"log"`
	AdminUser       string        `yaml:"admin_user"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	Redis           RedisConfig   `yaml:"redis"`
	Metrics         MetricsConfig `yaml:"metrics"`
}

// RedisConfig enables publishing the alert feed to Redis when Addr is set.
type RedisConfig struct {
	Addr string        `yaml:"addr"`
	Key  string        `yaml:"key"`
	TTL  time.Duration `yaml:"ttl"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:            ":8080",
		DB:              "shramba.sqlite3",
		AdminUser:       "Admin",
		RefreshInterval: 5 * time.Minute,
		Redis: RedisConfig{
			Key: "shramba:alerts:latest",
			TTL: 15 * time.Minute,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("addr must not be empty")
	case c.DB == "":
		return errors.New("db must not be empty")
	case c.AdminUser == "":
		return errors.New("admin_user must not be empty")
	case c.RefreshInterval <= 0:
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	case c.Redis.Addr != "" && c.Redis.Key == "":
		return errors.New("redis.key must not be empty when redis.addr is set")
	case c.Redis.TTL < 0:
		return fmt.Errorf("redis.ttl must not be negative, got %s", c.Redis.TTL)
	}
	return nil
}
