package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "pytania.json", cfg.SchemaSource)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.False(t, cfg.Debug)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCHEMA_SOURCE", "https://example.com/ankieta.json")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	assert.Equal(t, "https://example.com/ankieta.json", cfg.SchemaSource)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.SweepInterval)
	assert.True(t, cfg.Debug)
}
