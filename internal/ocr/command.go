package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os/exec"
)

// CommandRecognizer invokes an external recognizer binary. The image is
// written to the command's stdin as PNG; the command must print a JSON array
// of fragments to stdout. Stderr is passed through into the returned error on
// failure.
type CommandRecognizer struct {
	Path string
	Args []string
}

// NewCommandRecognizer builds a recognizer backed by the given executable.
func NewCommandRecognizer(path string, args ...string) *CommandRecognizer {
	return &CommandRecognizer{Path: path, Args: args}
}

func (c *CommandRecognizer) Recognize(ctx context.Context, img image.Image) ([]Fragment, error) {
	var in bytes.Buffer
	if err := png.Encode(&in, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for recognizer: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.Path, c.Args...) //nolint:gosec
	// G204: recognizer path comes from configuration, expected user input
	cmd.Stdin = &in
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	if err := cmd.Run(); err != nil {
		if errOut.Len() > 0 {
			return nil, fmt.Errorf("recognizer %s failed: %w: %s", c.Path, err, errOut.String())
		}
		return nil, fmt.Errorf("recognizer %s failed: %w", c.Path, err)
	}

	var fragments []Fragment
	if err := json.Unmarshal(out.Bytes(), &fragments); err != nil {
		return nil, fmt.Errorf("failed to parse recognizer output: %w", err)
	}
	return fragments, nil
}
