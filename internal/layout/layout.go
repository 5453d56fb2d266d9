// Package layout resolves how a board's fragments map to timetables. Most
// boards carry one timetable; a few routes print two independent directions
// side by side and must be split before decoding.
package layout

import (
	"regexp"
	"strings"

	"github.com/metroscan/metroscan/internal/ocr"
)

// Kind selects the decode pipeline for a board.
type Kind int

const (
	// Standard boards hold one timetable read in horizontal lines.
	Standard Kind = iota
	// Dual boards hold two side-by-side timetables with vertical headers.
	Dual
)

// DefaultSplitPoint is the x boundary assumed when no weekend marker is found.
const DefaultSplitPoint = 0.5

// Resolve returns the layout kind for a route.
func Resolve(route string, dualRoutes []string) Kind {
	for _, r := range dualRoutes {
		if r == route {
			return Dual
		}
	}
	return Standard
}

var latinDigitRe = regexp.MustCompile(`[a-zA-Z0-9]+`)

// SplitPoint derives the boundary between the two boards from the metadata
// pass. The weekend header sits at the left edge of the right-hand board, so
// the rightmost fragment matching a weekend marker gives the boundary;
// fallback is the configured default.
func SplitPoint(fragments []ocr.Fragment, fallback float64) float64 {
	split := fallback
	found := false
	for _, f := range fragments {
		clean := latinDigitRe.ReplaceAllString(f.Text, "")
		if strings.Contains(clean, "休") || strings.Contains(f.Text, "Weekends") {
			if !found || f.X > split {
				split = f.X
			}
			found = true
		}
	}
	return split
}

// Partition assigns fragments to the left or right board by x coordinate.
// A fragment sitting exactly on the boundary goes right.
func Partition(fragments []ocr.Fragment, boundary float64) (left, right []ocr.Fragment) {
	for _, f := range fragments {
		if f.X < boundary {
			left = append(left, f)
		} else {
			right = append(right, f)
		}
	}
	return left, right
}
