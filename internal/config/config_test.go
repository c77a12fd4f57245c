package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  metrics_port: 9100
database:
  driver: postgres
  dsn: host=localhost dbname=wastenot
catalog:
  path: /data/nutrition.csv
auth:
  secret: test-secret
  token_ttl_hours: 12
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 9100, cfg.Server.MetricsPort)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "/data/nutrition.csv", cfg.Catalog.Path)
	assert.Equal(t, "test-secret", cfg.Auth.Secret)
	assert.Equal(t, 12, cfg.Auth.TokenTTLHours)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "auth:\n  secret: test-secret\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("WASTENOT_AUTH_SECRET", "")
	path := writeConfig(t, "server:\n  port: 9000\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_SecretFromEnvironment(t *testing.T) {
	t.Setenv("WASTENOT_AUTH_SECRET", "env-secret")
	path := writeConfig(t, "server:\n  port: 9000\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.Auth.Secret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
