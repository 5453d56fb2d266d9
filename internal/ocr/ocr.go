// Package ocr defines the contract between metroscan and the external
// text-recognition engine. The engine itself is a black box: it receives a
// prepared image and returns positioned text fragments. Everything downstream
// (clustering, extraction, decoding) works on fragments only.
package ocr

import (
	"context"
	"image"
)

// Fragment is a single recognized text span with its confidence and the
// origin of its bounding box in coordinates normalized to [0,1] against the
// image's own width and height.
type Fragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Recognizer produces fragments for a prepared image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) ([]Fragment, error)
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(ctx context.Context, img image.Image) ([]Fragment, error)

func (f RecognizerFunc) Recognize(ctx context.Context, img image.Image) ([]Fragment, error) {
	return f(ctx, img)
}
