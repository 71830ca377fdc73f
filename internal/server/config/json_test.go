package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr":         ":9090",
		"database_dsn":          "postgres://u:p@db:5432/bank",
		"session_store":         "redis",
		"redis_addr":            "redis:6379",
		"redis_password":        "pw",
		"session_ttl":           "30m",
		"lockout_threshold":     3,
		"lockout_duration":      "10m",
		"login_min_duration":    "250ms",
		"login_throttle_window": "1s",
		"transfer_limit":        5000,
		"cookie_secure":         true,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, ":9090", cfg.EndpointAddr)
		assert.Equal(t, "postgres://u:p@db:5432/bank", cfg.DatabaseDSN)
		assert.Equal(t, "redis", cfg.SessionStore)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, "pw", cfg.RedisPassword)
		assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
		assert.Equal(t, 3, cfg.LockoutThreshold)
		assert.Equal(t, 10*time.Minute, cfg.LockoutDuration)
		assert.Equal(t, 250*time.Millisecond, cfg.LoginMinDuration)
		assert.Equal(t, time.Second, cfg.LoginThrottleWindow)
		assert.Equal(t, int64(5000), cfg.TransferLimit)
		assert.True(t, cfg.CookieSecure)
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{
			EndpointAddr: ":7070",
			SessionTTL:   time.Minute,
		}
		parseJson(cfg)

		assert.Equal(t, ":7070", cfg.EndpointAddr)
		assert.Equal(t, time.Minute, cfg.SessionTTL)
	})
}

func Test_parseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", ":6060", "-t", "5", "-k", "2", "-x", "200", "-i"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 2, cfg.LockoutThreshold)
	assert.Equal(t, int64(200), cfg.TransferLimit)
	assert.False(t, cfg.CookieSecure)
}
