// Package testutil provides shared helpers for metroscan tests.
package testutil

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metroscan/metroscan/internal/ocr"
)

// Frag builds a fragment with a fixed high confidence.
func Frag(text string, x, y float64) ocr.Fragment {
	return ocr.Fragment{Text: text, Confidence: 0.9, X: x, Y: y}
}

// StaticRecognizer returns the same fragments for every image.
func StaticRecognizer(fragments []ocr.Fragment) ocr.Recognizer {
	return ocr.RecognizerFunc(func(context.Context, image.Image) ([]ocr.Fragment, error) {
		return fragments, nil
	})
}

// PassRecognizer returns per-pass fragments in call order, cycling when
// exhausted. Decoding runs the metadata pass first, the digit pass second.
type PassRecognizer struct {
	Passes [][]ocr.Fragment
	calls  int
}

func (p *PassRecognizer) Recognize(context.Context, image.Image) ([]ocr.Fragment, error) {
	fragments := p.Passes[p.calls%len(p.Passes)]
	p.calls++
	return fragments, nil
}

// WriteCorpusFiles creates empty image files with the given names in a temp
// directory and returns their paths.
func WriteCorpusFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte{}, 0o600))
		paths[i] = path
	}
	return paths
}

// WritePNGFiles creates small valid PNG images with the given names in a
// temp directory and returns their paths.
func WritePNGFiles(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, TestImage(8, 8)))
		require.NoError(t, f.Close())
		paths[i] = path
	}
	return paths
}

// TestImage returns a small gray test image.
func TestImage(w, h int) image.Image {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	return img
}
