package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil)
	require.NoError(t, err)

	require.Equal(t, DefaultPort(), cfg.Port)
	require.Equal(t, DefaultBackend().BaseURL, cfg.Backend.BaseURL)
	require.Equal(t, DefaultSession().Cookie, cfg.Session.Cookie)
	require.Equal(t, DefaultLoginRateLimit().Limit, cfg.Login.Limit)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("BACKEND_URL", "http://env:8080/api")

	cfg, err := load([]string{"--port", "7070", "--backend-url", "http://flag:8080/api"})
	require.NoError(t, err)

	require.Equal(t, 7070, cfg.Port)
	require.Equal(t, "http://flag:8080/api", cfg.Backend.BaseURL)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("PORT", "9001")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_FILE", "/tmp/s.json")

	cfg, err := load(nil)
	require.NoError(t, err)

	require.Equal(t, 9001, cfg.Port)
	require.Equal(t, 30*time.Minute, cfg.Session.TTL)
	require.Equal(t, "/tmp/s.json", cfg.Session.File)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	_, err := load([]string{"--port", "0"})
	require.Error(t, err)

	_, err = load([]string{"--port", "70000"})
	require.Error(t, err)
}

func TestLoadRejectsEmptyBackendURL(t *testing.T) {
	_, err := load([]string{"--backend-url", ""})
	require.Error(t, err)
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("SESSION_TTL", "eternity")

	cfg, err := load(nil)
	require.NoError(t, err)

	require.Equal(t, DefaultPort(), cfg.Port)
	require.Equal(t, DefaultSession().TTL, cfg.Session.TTL)
}
