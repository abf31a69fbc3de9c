package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NextGameDelay = cfg.EndGameDelay - time.Second
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.AutoDestroyDelay = 0
	require.Error(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(envEndGameDelay, "2s")
	t.Setenv(envNextGameDelay, "7s")
	t.Setenv(envAFKTimeout, "45s")
	t.Setenv(envAutoDestroyDelay, "90s")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, cfg.EndGameDelay)
	require.Equal(t, 7*time.Second, cfg.NextGameDelay)
	require.Equal(t, 45*time.Second, cfg.AFKTimeout)
	require.Equal(t, 90*time.Second, cfg.AutoDestroyDelay)
}

func TestLoadConfigBadDuration(t *testing.T) {
	t.Setenv(envEndGameDelay, "soon")
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigRejectsBadPacing(t *testing.T) {
	t.Setenv(envEndGameDelay, "10s")
	t.Setenv(envNextGameDelay, "1s")
	_, err := LoadConfig("")
	require.Error(t, err)
}
