package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "metroscan-recognize", cfg.Recognizer.Command)
	assert.InDelta(t, 2e-2, cfg.Cluster.LineEps, 1e-9)
	assert.Equal(t, 4, cfg.Decode.StartHourLow)
	assert.Equal(t, 7, cfg.Decode.StartHourHigh)
	assert.Equal(t, []string{"520"}, cfg.Decode.FooterSignatures)
	assert.Equal(t, 75, cfg.Preprocess.Thresholds["10"])
	assert.Equal(t, 192, cfg.Preprocess.Thresholds["燕房"])
	assert.Equal(t, 80, cfg.Preprocess.DefaultThreshold)
	assert.Equal(t, []string{"18"}, cfg.Layout.DualRoutes)
	assert.InDelta(t, 0.5, cfg.Layout.DefaultSplit, 1e-9)
	assert.Equal(t, 1, cfg.Check.MinGapMinutes)
	assert.Equal(t, 12, cfg.Check.MaxGapMinutes)
	assert.Equal(t, 10, cfg.Batch.Workers)
	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, "data", cfg.Server.DataDir)
}

func TestLoad_ConfigFileOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "metroscan.yaml")
	content := []byte("log_level: debug\ndecode:\n  start_hour_high: 8\nbatch:\n  workers: 2\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	loader := NewLoader()
	loader.SetConfigFile(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.Decode.StartHourHigh)
	assert.Equal(t, 2, cfg.Batch.Workers)
	// Untouched keys keep their defaults.
	assert.Equal(t, 4, cfg.Decode.StartHourLow)
	assert.Equal(t, []string{"表"}, cfg.Decode.FooterMarkers)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "metroscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: shouting\n"), 0o600))

	loader := NewLoader()
	loader.SetConfigFile(path)
	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
