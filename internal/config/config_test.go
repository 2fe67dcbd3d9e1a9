package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shramba.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
addr: 127.0.0.1:9000
db: /var/lib/shramba/db.sqlite3
refresh_interval: 90s
redis:
  addr: localhost:6379
metrics:
  enabled: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, "/var/lib/shramba/db.sqlite3", cfg.DB)
	assert.Equal(t, 90*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "shramba:alerts:latest", cfg.Redis.Key, "unset keys keep their default")
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "Admin", cfg.AdminUser)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeConfig(t, "addr: [unclosed"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidInterval(t *testing.T) {
	_, err := Load(writeConfig(t, "refresh_interval: 0s\n"))
	assert.ErrorContains(t, err, "refresh_interval")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"empty db", func(c *Config) { c.DB = "" }},
		{"empty admin", func(c *Config) { c.AdminUser = "" }},
		{"negative interval", func(c *Config) { c.RefreshInterval = -time.Second }},
		{"redis without key", func(c *Config) { c.Redis.Addr = "localhost:6379"; c.Redis.Key = "" }},
		{"negative ttl", func(c *Config) { c.Redis.TTL = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
