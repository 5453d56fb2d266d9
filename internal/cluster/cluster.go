// Package cluster groups unordered OCR fragments into reading-order units.
// Line clustering buckets fragments by y proximity and orders each line left
// to right; column clustering (rotated boards) buckets by x proximity and
// orders each column top to bottom.
package cluster

import (
	"sort"

	"github.com/metroscan/metroscan/internal/ocr"
)

const (
	// DefaultLineEps is the absolute y tolerance for line grouping.
	DefaultLineEps = 2e-2
	// DefaultColumnEps is the x tolerance for column grouping, expressed as
	// a fraction of the maximum observed x across all fragments so it scales
	// with board width.
	DefaultColumnEps = 0.05
)

// Lines partitions fragments into ordered lines. Fragments whose y coordinate
// is within eps of the line's anchor (the y of its first member, not a running
// average) join that line; lines are emitted top of image first and each line
// is ordered by ascending x.
func Lines(fragments []ocr.Fragment, eps float64) [][]string {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]ocr.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines [][]string
	current := []ocr.Fragment{sorted[0]}
	anchorY := sorted[0].Y

	flush := func() {
		sort.SliceStable(current, func(i, j int) bool { return current[i].X < current[j].X })
		texts := make([]string, len(current))
		for i, f := range current {
			texts[i] = f.Text
		}
		lines = append(lines, texts)
	}

	for _, f := range sorted[1:] {
		if abs(f.Y-anchorY) <= eps {
			current = append(current, f)
			continue
		}
		flush()
		current = []ocr.Fragment{f}
		anchorY = f.Y
	}
	flush()

	return lines
}

// Columns partitions fragments into ordered columns for vertically written
// boards. eps is relative to the maximum observed x; columns are emitted left
// to right and each column is ordered by ascending y.
func Columns(fragments []ocr.Fragment, eps float64) [][]string {
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]ocr.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	maxX := sorted[len(sorted)-1].X
	tol := maxX * eps

	var columns [][]string
	current := []ocr.Fragment{sorted[0]}
	anchorX := sorted[0].X

	flush := func() {
		sort.SliceStable(current, func(i, j int) bool { return current[i].Y < current[j].Y })
		texts := make([]string, len(current))
		for i, f := range current {
			texts[i] = f.Text
		}
		columns = append(columns, texts)
	}

	for _, f := range sorted[1:] {
		if abs(f.X-anchorX) <= tol {
			current = append(current, f)
			continue
		}
		flush()
		current = []ocr.Fragment{f}
		anchorX = f.X
	}
	flush()

	return columns
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
