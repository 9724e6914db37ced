package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Session.Backend)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "0 7 * * *", cfg.Jobs.LowStockSchedule)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
session:
  backend: redis
  ttl: 30m
`), 0o600))

	t.Setenv("HOSPIFLOW_SERVER_PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOSPIFLOW_SESSION_BACKEND", "etcd")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.DSN())
}
