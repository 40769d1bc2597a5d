package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 100*time.Millisecond, cfg.Period())
	require.Equal(t, 70.0, cfg.MaxSpeed)
	require.Equal(t, 11, cfg.Horizon)
	require.Equal(t, PIDGains{Kp: 0.12, Kd: 1.8, Ki: 0.005}, cfg.Steering)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"max_speed": 45, "horizon": 8}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 45.0, cfg.MaxSpeed)
	require.Equal(t, 8, cfg.Horizon)
	// untouched fields keep their defaults
	require.Equal(t, 100, cfg.ActuationPeriodMS)
	require.Equal(t, 2.67, cfg.Wheelbase)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	for name, body := range map[string]string{
		"bad_period.json":  `{"actuation_period_ms": 0}`,
		"bad_horizon.json": `{"horizon": 0}`,
		"not_json.json":    `nope`,
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
		_, err := LoadConfig(path)
		require.Error(t, err, name)
	}

	_, err := LoadConfig(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
