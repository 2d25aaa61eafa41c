package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFrom(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults, cfg)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoadFrom(t *testing.T) {
	t.Parallel()
	cfg, err := LoadFrom(env(map[string]string{
		"PORT":             "8080",
		"ALLOWED_ORIGINS":  "http://localhost:5173, https://ludo.example.com,,",
		"FORFEIT_DELAY":    "2s",
		"SHUTDOWN_TIMEOUT": "30s",
		"LOG_LEVEL":        "DEBUG",
		"GIN_MODE":         "debug",
	}))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://ludo.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Second, cfg.ForfeitDelay)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Debug)
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		vars map[string]string
	}{
		{name: "port not a number", vars: map[string]string{"PORT": "http"}},
		{name: "port out of range", vars: map[string]string{"PORT": "70000"}},
		{name: "bad forfeit delay", vars: map[string]string{"FORFEIT_DELAY": "soon"}},
		{name: "negative forfeit delay", vars: map[string]string{"FORFEIT_DELAY": "-1s"}},
		{name: "zero shutdown timeout", vars: map[string]string{"SHUTDOWN_TIMEOUT": "0s"}},
		{name: "bad debug flag", vars: map[string]string{"DEBUG": "maybe"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadFrom(env(tc.vars))
			assert.Error(t, err)
		})
	}
}
