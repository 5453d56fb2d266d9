package config

import (
	"errors"
	"fmt"

	"github.com/metroscan/metroscan/internal/decode"
	"github.com/metroscan/metroscan/internal/pipeline"
	"github.com/metroscan/metroscan/internal/preprocess"
	"github.com/metroscan/metroscan/internal/timetable"
)

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}

	if c.Cluster.LineEps <= 0 || c.Cluster.ColumnEps <= 0 {
		return errors.New("cluster tolerances must be positive")
	}
	if c.Decode.StartHourLow < 0 || c.Decode.StartHourHigh > 9 ||
		c.Decode.StartHourLow > c.Decode.StartHourHigh {
		return errors.New("decode start hour range must be within 0-9 and ordered")
	}
	if c.Preprocess.DefaultThreshold < 0 || c.Preprocess.DefaultThreshold > 255 {
		return errors.New("preprocess default_threshold must be within 0-255")
	}
	for route, t := range c.Preprocess.Thresholds {
		if t < 0 || t > 255 {
			return fmt.Errorf("preprocess threshold for route %q must be within 0-255", route)
		}
	}
	if c.Layout.DefaultSplit < 0 || c.Layout.DefaultSplit > 1 {
		return errors.New("layout default_split must be within 0-1")
	}
	if c.Check.MinGapMinutes < 0 || c.Check.MaxGapMinutes <= c.Check.MinGapMinutes {
		return errors.New("check gap bounds must satisfy 0 <= min < max")
	}
	if c.Batch.Workers < 0 {
		return errors.New("batch workers must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("server port must be within 0-65535")
	}
	return nil
}

// PipelineOptions maps the configuration to pipeline tuning.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		LineEps:   c.Cluster.LineEps,
		ColumnEps: c.Cluster.ColumnEps,
		Decode: decode.Options{
			StartHourLow:     c.Decode.StartHourLow,
			StartHourHigh:    c.Decode.StartHourHigh,
			FooterMarkers:    c.Decode.FooterMarkers,
			FooterSignatures: c.Decode.FooterSignatures,
		},
		Check: timetable.CheckOptions{
			MinGapMinutes: c.Check.MinGapMinutes,
			MaxGapMinutes: c.Check.MaxGapMinutes,
		},
		DualRoutes:   c.Layout.DualRoutes,
		DefaultSplit: c.Layout.DefaultSplit,
	}
}

// PreprocessOptions maps the configuration to image preparation options.
func (c *Config) PreprocessOptions() preprocess.Options {
	thresholds := make(map[string]uint8, len(c.Preprocess.Thresholds))
	for route, t := range c.Preprocess.Thresholds {
		thresholds[route] = uint8(t)
	}
	return preprocess.Options{
		Thresholds:       thresholds,
		DefaultThreshold: uint8(c.Preprocess.DefaultThreshold),
		MaxSide:          c.Preprocess.MaxSide,
		TargetSide:       c.Preprocess.TargetSide,
		TallRatio:        c.Preprocess.TallRatio,
		TallSplitRoutes:  c.Preprocess.TallSplitRoutes,
	}
}

// CheckOptions maps the configuration to schedule check bounds.
func (c *Config) CheckOptions() timetable.CheckOptions {
	return timetable.CheckOptions{
		MinGapMinutes: c.Check.MinGapMinutes,
		MaxGapMinutes: c.Check.MaxGapMinutes,
	}
}
