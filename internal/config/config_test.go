package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		LogLevel: "info",
		Cluster:  ClusterConfig{LineEps: 2e-2, ColumnEps: 0.05},
		Decode: DecodeConfig{
			StartHourLow:     4,
			StartHourHigh:    7,
			FooterMarkers:    []string{"表"},
			FooterSignatures: []string{"520"},
		},
		Preprocess: PreprocessConfig{
			Thresholds:       map[string]int{"10": 75},
			DefaultThreshold: 80,
			MaxSide:          8192,
			TargetSide:       3999,
			TallRatio:        1.5,
		},
		Layout:   LayoutConfig{DualRoutes: []string{"18"}, DefaultSplit: 0.5},
		Check:    CheckConfig{MinGapMinutes: 1, MaxGapMinutes: 12},
		Batch:    BatchConfig{Workers: 10},
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8443, DataDir: "data"},
		Stations: StationsConfig{},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero line eps", func(c *Config) { c.Cluster.LineEps = 0 }},
		{"negative column eps", func(c *Config) { c.Cluster.ColumnEps = -1 }},
		{"inverted start hours", func(c *Config) { c.Decode.StartHourLow = 8; c.Decode.StartHourHigh = 7 }},
		{"start hour out of range", func(c *Config) { c.Decode.StartHourHigh = 10 }},
		{"threshold too high", func(c *Config) { c.Preprocess.DefaultThreshold = 300 }},
		{"route threshold too high", func(c *Config) { c.Preprocess.Thresholds["10"] = 999 }},
		{"split beyond one", func(c *Config) { c.Layout.DefaultSplit = 1.2 }},
		{"gap bounds inverted", func(c *Config) { c.Check.MinGapMinutes = 12; c.Check.MaxGapMinutes = 1 }},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := validConfig()
	opts := cfg.PipelineOptions()
	assert.InDelta(t, 2e-2, opts.LineEps, 1e-9)
	assert.InDelta(t, 0.05, opts.ColumnEps, 1e-9)
	assert.Equal(t, 4, opts.Decode.StartHourLow)
	assert.Equal(t, 7, opts.Decode.StartHourHigh)
	assert.Equal(t, []string{"表"}, opts.Decode.FooterMarkers)
	assert.Equal(t, []string{"18"}, opts.DualRoutes)
	assert.Equal(t, 1, opts.Check.MinGapMinutes)
	assert.Equal(t, 12, opts.Check.MaxGapMinutes)
}

func TestPreprocessOptions_ThresholdConversion(t *testing.T) {
	cfg := validConfig()
	cfg.Preprocess.Thresholds = map[string]int{"燕房": 192, "10": 75}
	opts := cfg.PreprocessOptions()
	assert.Equal(t, uint8(192), opts.Thresholds["燕房"])
	assert.Equal(t, uint8(75), opts.Thresholds["10"])
	assert.Equal(t, uint8(80), opts.DefaultThreshold)
	assert.Equal(t, 8192, opts.MaxSide)
	assert.Equal(t, 3999, opts.TargetSide)
}
