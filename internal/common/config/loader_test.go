package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfigFile(t, "app:\n  name: rect-client\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, 30000, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.Path)
	assert.Equal(t, 300000, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, ":9402", cfg.Metrics.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_TrimsTrailingSlash(t *testing.T) {
	path := writeConfigFile(t, "api:\n  base_url: https://api.example.com/\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
}

func TestLoadFromFile_ExplicitValuesWin(t *testing.T) {
	path := writeConfigFile(t, `
api:
  base_url: https://rect.example.com
  timeout: 5000
dashboard:
  refresh_interval: 60000
logging:
  level: debug
  format: console
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://rect.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5000, cfg.API.Timeout)
	assert.Equal(t, 60000, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile_RejectsUnknownStorageBackend(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  backend: dynamo\n")

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.backend")
}

func TestLoadFromFile_RedisBackendRequiresAddress(t *testing.T) {
	path := writeConfigFile(t, "storage:\n  backend: redis\n")

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.redis.address")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, "5s", GetDuration(5000).String())
	assert.Equal(t, "0s", GetDuration(0).String())
}
