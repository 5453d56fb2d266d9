// Package batch drives the decode of a whole board corpus: file discovery,
// station reference construction, parallel per-image decoding, and JSONL
// output.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/metroscan/metroscan/internal/ocr"
	"github.com/metroscan/metroscan/internal/pipeline"
	"github.com/metroscan/metroscan/internal/stations"
)

// ProcessBatch decodes all board images under the given paths.
func ProcessBatch(ctx context.Context, imagePaths []string, config *Config) (*Result, error) {
	files, err := discoverImageFiles(imagePaths, config.Recursive, config.RouteFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}
	slog.Info("discovered board images", "count", len(files), "route_filter", config.RouteFilter)

	// The reference table is built over the whole corpus before any decode
	// starts and is read-only afterwards.
	overrides := stations.DefaultOverrides()
	if config.StationOverridesFile != "" {
		overrides, err = stations.LoadOverrides(config.StationOverridesFile)
		if err != nil {
			return nil, err
		}
	}
	reference := stations.BuildReference(files, overrides)
	slog.Info("built station reference", "routes", len(reference))

	recognizer := ocr.NewCommandRecognizer(config.RecognizerCommand, config.RecognizerArgs...)
	pl := pipeline.New(recognizer, reference, config.Pipeline)

	startTime := time.Now()
	records, err := processImagesParallel(ctx, pl, files, config.Preprocess, config.Workers)
	duration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("batch processing failed: %w", err)
	}

	workers := config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Result{
		Records:     records,
		ImagePaths:  files,
		Duration:    duration,
		WorkerCount: workers,
	}, nil
}
