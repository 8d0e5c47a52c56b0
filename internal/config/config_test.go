package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("API_URL", "")
	t.Setenv("API_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:3000/api/weblarek", cfg.APIURL)
	assert.Zero(t, cfg.APITimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_URL", "http://api.test")
	t.Setenv("API_TIMEOUT", "3s")
	t.Setenv("NATS_URL", "nats://127.0.0.1:4222")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "http://api.test", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATSURL)
}

func TestLoadBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	assert.Zero(t, Load().APITimeout)
}
