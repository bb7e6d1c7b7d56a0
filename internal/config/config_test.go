package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{"DISCORD_TOKEN", "DATA_FILE", "HEALTH_PORT", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Empty(t, cfg.Token)
	assert.Equal(t, "bot_data.json", cfg.DataFile)
	assert.Equal(t, "5000", cfg.HealthPort)
	assert.Equal(t, 0, cfg.LogLevel)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "secret-token")
	t.Setenv("DATA_FILE", "/var/lib/bot/state.json")
	t.Setenv("HEALTH_PORT", "8080")
	t.Setenv("LOG_LEVEL", "-4")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.Token)
	assert.Equal(t, "/var/lib/bot/state.json", cfg.DataFile)
	assert.Equal(t, "8080", cfg.HealthPort)
	assert.Equal(t, -4, cfg.LogLevel)
}
