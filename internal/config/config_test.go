package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openclaw/clawdock/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8888, cfg.Server.Port)
	require.Equal(t, "/data/.openclaw/activity", cfg.Activity.Dir)
	require.True(t, cfg.Activity.Enabled)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CLAWDOCK_SERVER_HOST", "127.0.0.1")
	t.Setenv("ADMIN_API_PORT", "9999")
	t.Setenv("ACTIVITY_LOG_DIR", "/tmp/activity")
	t.Setenv("ACTIVITY_LOG_ENABLED", "false")
	t.Setenv("CLAWDOCK_ADMIN_TOKEN", "sekrit")
	t.Setenv("CLAWDOCK_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9999, cfg.Server.Port)
	require.Equal(t, "/tmp/activity", cfg.Activity.Dir)
	require.False(t, cfg.Activity.Enabled)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "sekrit", cfg.Auth.Token)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnabledParsing(t *testing.T) {
	t.Setenv("ACTIVITY_LOG_ENABLED", "TRUE")
	cfg, err := config.Load()
	require.NoError(t, err)
	require.True(t, cfg.Activity.Enabled)

	t.Setenv("ACTIVITY_LOG_ENABLED", "yes")
	cfg, err = config.Load()
	require.NoError(t, err)
	require.False(t, cfg.Activity.Enabled)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("ADMIN_API_PORT", "not-a-port")
	_, err := config.Load()
	require.ErrorContains(t, err, "ADMIN_API_PORT")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  host: 10.1.1.1
  port: 8080
activity:
  dir: /var/log/clawdock
  enabled: true
auth:
  enabled: true
  token: filetoken
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	t.Setenv("CLAWDOCK_CONFIG_PATH", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "10.1.1.1", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "/var/log/clawdock", cfg.Activity.Dir)
	require.Equal(t, "filetoken", cfg.Auth.Token)
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o644))
	t.Setenv("CLAWDOCK_CONFIG_PATH", path)
	t.Setenv("ADMIN_API_PORT", "7000")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadInvalidTransportMode(t *testing.T) {
	t.Setenv("CLAWDOCK_TRANSPORT_MODE", "carrier-pigeon")
	_, err := config.Load()
	require.ErrorContains(t, err, "transport mode")
}
