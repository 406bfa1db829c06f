package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TABLERO_CONFIG", "PORT", "CORS_ORIGINS", "DB_DRIVER", "SQLITE_PATH",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DB", "POSTGRES_USER",
	"POSTGRES_PASSWORD", "POSTGRES_SSLMODE", "REDIS_URL", "EVENTS_CHANNEL",
	"TABLERO_API_URL", "POLL_INTERVAL", "CLIENT_TIMEOUT", "TABLERO_USUARIO",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_PATH",
}

// isolateEnv points the config lookup at an empty temp dir and clears overrides
func isolateEnv(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	configDir := filepath.Join(dir, "tablero")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	assert.Equal(t, "q", defaults.Quit)
	assert.Equal(t, "[", defaults.MoveTaskLeft)
	assert.Equal(t, "]", defaults.MoveTaskRight)
	assert.Equal(t, "enter", defaults.ViewTask)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "127.0.0.1", cfg.Database.Postgres.Host)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "tekai_db", cfg.Database.Postgres.Name)
	assert.Equal(t, "http://localhost:3000/api", cfg.Client.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Client.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.Client.Timeout)
	assert.Contains(t, cfg.Server.CORSOrigins, "http://localhost:5173")
	assert.Equal(t, "q", cfg.KeyMappings.Quit)
}

func TestLoadConfigWithFile(t *testing.T) {
	dir := isolateEnv(t)
	writeConfig(t, dir, `server:
  port: 8080
database:
  driver: postgres
  postgres:
    host: db.internal
client:
  poll_interval: 5s
key_mappings:
  quit: "x"
theme:
  preset: monochrome
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	// Unspecified values keep defaults
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, 5*time.Second, cfg.Client.PollInterval)
	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	assert.Equal(t, "j", cfg.KeyMappings.NextTask)
	assert.Equal(t, MonochromeColorScheme().Accent, cfg.ColorScheme.Accent)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := isolateEnv(t)
	writeConfig(t, dir, "server:\n  port: 8080\n")

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_PASSWORD", "secreto")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("POLL_INTERVAL", "1500")
	t.Setenv("TABLERO_API_URL", "http://api.test/api/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "secreto", cfg.Database.Postgres.Password)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 1500*time.Millisecond, cfg.Client.PollInterval)
	assert.Equal(t, "http://api.test/api", cfg.Client.APIURL)
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o644))
	t.Setenv("TABLERO_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad port", "PORT", "abc"},
		{"unknown driver", "DB_DRIVER", "oracle"},
		{"bad poll interval", "POLL_INTERVAL", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	dir := isolateEnv(t)
	writeConfig(t, dir, "server: [unclosed")

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveConfig(t *testing.T) {
	dir := isolateEnv(t)

	cfg := Default()
	cfg.Server.Port = 4242
	cfg.KeyMappings.Quit = "x"

	require.NoError(t, cfg.Save())

	_, err := os.Stat(filepath.Join(dir, "tablero", "config.yaml"))
	require.NoError(t, err)

	cfg2, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4242, cfg2.Server.Port)
	assert.Equal(t, "x", cfg2.KeyMappings.Quit)
}

func TestPostgresDSN(t *testing.T) {
	p := Default().Database.Postgres
	assert.Equal(t,
		"host=127.0.0.1 port=5432 dbname=tekai_db user=tekai_user password=tekai_password_2024 sslmode=disable",
		p.DSN())
}

func TestServerAddr(t *testing.T) {
	assert.Equal(t, ":3000", ServerConfig{Port: 3000}.Addr())
}
