package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from an empty directory so no stray .env is read
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Port)
	require.Equal(t, 600, cfg.RateLimit)
	require.False(t, cfg.AuthEnabled)
	require.Equal(t, 18.0, cfg.Analytics.HourlyRate)
	require.Equal(t, 0.15, cfg.Analytics.CapacityThreshold)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := chdirTemp(t)

	path := filepath.Join(dir, "slotting.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: ":9090"
db_path: /tmp/a.db
rate_limit: 10
token_ttl: 2h
analytics:
  hourly_rate: 21.5
  capacity_threshold: 0.2
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_PATH=/tmp/from-dotenv.db\n"), 0o644))

	t.Setenv("PORT", ":7070")
	t.Setenv("DB_PATH", "")
	t.Setenv("HOURLY_RATE", "")
	os.Unsetenv("DB_PATH")
	os.Unsetenv("HOURLY_RATE")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Port)
	require.Equal(t, "/tmp/from-dotenv.db", cfg.DBPath)
	require.Equal(t, 10, cfg.RateLimit)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
	require.Equal(t, 21.5, cfg.Analytics.HourlyRate)
	require.Equal(t, 0.2, cfg.Analytics.CapacityThreshold)
	require.Equal(t, 264.0, cfg.Analytics.WalkingSpeedFPM)
}

func TestLoadRejects(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFIG_FILE", "")

	t.Run("malformed env", func(t *testing.T) {
		t.Setenv("RATE_LIMIT", "lots")
		_, err := Load("")
		require.Error(t, err)
	})

	t.Run("auth without secret", func(t *testing.T) {
		t.Setenv("AUTH_ENABLED", "true")
		_, err := Load("")
		require.Error(t, err)

		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("API_KEY", "key")
		cfg, err := Load("")
		require.NoError(t, err)
		require.True(t, cfg.AuthEnabled)
	})
}
