package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8765, cfg.Port)
	assert.Equal(t, []string{}, cfg.AllowedOrigins)
	assert.Equal(t, 200, cfg.OutboundQueueSize)
	assert.Equal(t, 1048576, cfg.MaxFrameBytes)
}

func TestLoadConfig_OverridesFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OUTBOUND_QUEUE_SIZE", "50")
	t.Setenv("MAX_FRAME_BYTES", "4096")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 50, cfg.OutboundQueueSize)
	assert.Equal(t, 4096, cfg.MaxFrameBytes)
}

func TestLoadConfig_InvalidPortIsError(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}
