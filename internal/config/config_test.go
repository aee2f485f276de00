package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/starose-admin/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "HOST", "APP_NAME", "FOLDER", "LOG_LEVEL", "ENV", "API_BASE_URL", "API_TIMEOUT", "STORAGE_BACKEND", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
	t.Setenv("FOLDER", t.TempDir())
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.New("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GetPort())
	assert.Equal(t, "127.0.0.1", cfg.GetHost())
	assert.Equal(t, "127.0.0.1:8080", cfg.GetListenAddr())
	assert.Equal(t, "Starose Admin", cfg.GetAppName())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.Equal(t, "DEV", cfg.GetEnv())
	assert.Equal(t, "http://localhost:5000/api", cfg.GetAPIBaseURL())
	assert.Equal(t, 15*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, config.StorageBackendFile, cfg.GetStorageBackend())
	assert.Empty(t, cfg.GetAllowedOrigins())
}

func TestFileValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "starose.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: Starose Till 2
port: "9090"
log_level: DEBUG
api:
  base_url: https://pos.example.com/api/
  timeout: 30s
storage:
  backend: sqlite
allowed_origins:
  - http://till.local
`), 0o600))

	cfg, err := config.New(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.GetPort())
	assert.Equal(t, "127.0.0.1:9090", cfg.GetListenAddr())
	assert.Equal(t, "Starose Till 2", cfg.GetAppName())
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, "https://pos.example.com/api", cfg.GetAPIBaseURL())
	assert.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
	assert.Equal(t, config.StorageBackendSQLite, cfg.GetStorageBackend())
	assert.True(t, cfg.GetAllowedOrigins().IsAllowedOrigin("http://till.local"))
}

func TestEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "starose.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\napi:\n  timeout: 30s\n"), 0o600))
	t.Setenv("PORT", ":7070")
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("API_TIMEOUT", "nonsense")
	t.Setenv("ALLOWED_ORIGINS", "http://a.local, http://b.local")

	cfg, err := config.New(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.GetPort())
	assert.Equal(t, "0.0.0.0:7070", cfg.GetListenAddr())
	assert.Equal(t, 15*time.Second, cfg.GetRequestTimeout())
	assert.True(t, cfg.GetAllowedOrigins().IsAllowedOrigin("http://b.local"))
}

func TestDefaultConfigFileInDataFolder(t *testing.T) {
	clearEnv(t)
	folder := t.TempDir()
	t.Setenv("FOLDER", folder)
	require.NoError(t, os.WriteFile(filepath.Join(folder, config.FileName), []byte("env: prod\n"), 0o600))

	cfg, err := config.New("")
	require.NoError(t, err)
	assert.Equal(t, "PROD", cfg.GetEnv())
}

func TestMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := config.New(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("port: [unterminated"), 0o600))
	_, err = config.New(bad)
	require.Error(t, err)
}

func TestWildcardOriginIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "*, http://till.local")

	cfg, err := config.New("")
	require.NoError(t, err)
	origins := cfg.GetAllowedOrigins()
	assert.False(t, origins.IsAllowedOrigin("*"))
	assert.True(t, origins.IsAllowedOrigin("http://till.local"))
	assert.Len(t, origins, 1)
}
