// Package preprocess prepares board photographs for the two recognition
// passes: a grayscale rendering for metadata extraction and a binarized
// rendering for digit decoding. Tall two-board photos of configured routes
// are split into top and bottom halves first.
package preprocess

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Pair holds the two renderings of one prepared board image.
type Pair struct {
	Gray   image.Image
	Binary image.Image
}

// Options configures preprocessing. Binarization cutoffs are per route since
// board printing contrast varies between lines.
type Options struct {
	// Thresholds maps a route to its binarization intensity cutoff.
	Thresholds map[string]uint8
	// DefaultThreshold applies to routes absent from Thresholds.
	DefaultThreshold uint8
	// MaxSide caps the longest image side; larger images are downscaled.
	MaxSide int
	// TargetSide is the longest side after downscaling.
	TargetSide int
	// TallRatio is the height/width ratio beyond which a board photo of a
	// split route is treated as two stacked boards.
	TallRatio float64
	// TallSplitRoutes lists routes whose tall photos are split in half.
	TallSplitRoutes []string
}

// DefaultOptions returns the preprocessing configuration tuned for the
// current board corpus.
func DefaultOptions() Options {
	return Options{
		Thresholds: map[string]uint8{
			"燕房":   192,
			"大兴机场": 128,
			"19":   128,
			"10":   75,
		},
		DefaultThreshold: 80,
		MaxSide:          8192,
		TargetSide:       3999,
		TallRatio:        1.5,
		TallSplitRoutes:  []string{"10"},
	}
}

// Threshold returns the binarization cutoff for a route.
func (o Options) Threshold(route string) uint8 {
	if t, ok := o.Thresholds[route]; ok {
		return t
	}
	return o.DefaultThreshold
}

// Open loads an image from disk, honoring EXIF orientation.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return img, nil
}

// Prepare converts an image to grayscale, downsizes oversized photos, splits
// tall two-board photos of configured routes, and binarizes each part with
// the route's threshold. It returns one pair per board.
func Prepare(img image.Image, route string, opts Options) []Pair {
	gray := imaging.Grayscale(img)

	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if longest := max(w, h); opts.MaxSide > 0 && longest > opts.MaxSide {
		scale := float64(opts.TargetSide) / float64(longest)
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
		gray = imaging.Resize(gray, w, h, imaging.Lanczos)
	}

	parts := []*image.NRGBA{gray}
	if w > 0 && float64(h)/float64(w) > opts.TallRatio && splitRoute(route, opts.TallSplitRoutes) {
		half := h / 2
		top := imaging.Crop(gray, image.Rect(0, 0, w, half))
		bottom := imaging.Crop(gray, image.Rect(0, half, w, h))
		parts = []*image.NRGBA{top, bottom}
	}

	threshold := opts.Threshold(route)
	pairs := make([]Pair, 0, len(parts))
	for _, part := range parts {
		pairs = append(pairs, Pair{Gray: part, Binary: binarize(part, threshold)})
	}
	return pairs
}

// binarize maps pixels above the cutoff to white and the rest to black.
// The input is already grayscale, so the red channel carries the intensity.
func binarize(img *image.NRGBA, threshold uint8) *image.Gray {
	bounds := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			var v uint8
			if img.Pix[i] > threshold {
				v = 255
			}
			out.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: v})
		}
	}
	return out
}

func splitRoute(route string, routes []string) bool {
	for _, r := range routes {
		if r == route {
			return true
		}
	}
	return false
}
