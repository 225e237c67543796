package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"LISTEN", "STORE_DRIVER", "STORE_PATH", "SEED_DEMO", "SIMULATED_LATENCY", "AUTH_RATE", "AUTH_BURST", "REDIS_DB"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.Listen)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "docspot.json", cfg.StorePath)
	assert.True(t, cfg.SeedDemo)
	assert.Zero(t, cfg.Latency)
	assert.Equal(t, 5.0, cfg.AuthRate)
	assert.Equal(t, 10, cfg.AuthBurst)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("SIMULATED_LATENCY", "250ms")
	t.Setenv("SEED_DEMO", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 250*time.Millisecond, cfg.Latency)
	assert.False(t, cfg.SeedDemo)
}

func TestLoadConfigRejectsBadNumbers(t *testing.T) {
	t.Setenv("AUTH_BURST", "lots")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "AUTH_BURST")
}

func TestErrorFormatWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrorFormat{Package: "internal", Function: "test", Message: "unable to save", Error: cause}.ToError()
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "unable to save: disk full", err.Error())

	assert.EqualError(t, ErrorFormat{Message: "plain"}.ToError(), "plain")
	assert.Contains(t, ErrorFormat{ID: "user-1", Message: "m", Error: cause}.String(), `"error":"disk full"`)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]int{1, 2}, 3))
}
