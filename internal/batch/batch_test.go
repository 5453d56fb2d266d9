package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroscan/metroscan/internal/pipeline"
	"github.com/metroscan/metroscan/internal/preprocess"
	"github.com/metroscan/metroscan/internal/testutil"
)

func TestProcessBatch_NoImages(t *testing.T) {
	cfg := &Config{
		Pipeline:   pipeline.DefaultOptions(),
		Preprocess: preprocess.DefaultOptions(),
	}
	result, err := ProcessBatch(context.Background(), []string{t.TempDir()}, cfg)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no image files found")
}

func TestProcessBatch_BadOverridesFile(t *testing.T) {
	paths := testutil.WritePNGFiles(t, "4-西单-1.png")
	cfg := &Config{
		Pipeline:             pipeline.DefaultOptions(),
		Preprocess:           preprocess.DefaultOptions(),
		StationOverridesFile: "/nonexistent/overrides.yaml",
	}
	_, err := ProcessBatch(context.Background(), paths, cfg)
	require.Error(t, err)
}
