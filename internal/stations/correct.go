package stations

import "github.com/agnivade/levenshtein"

// Scorer rates how similar two station names are. Higher is more similar.
// The metric is pluggable so the correction policy (arg-max with first-match
// tie-break) can be tested independently of the distance function.
type Scorer interface {
	Score(a, b string) float64
}

// RatioScorer scores by normalized edit distance on runes, on a 0-100 scale.
type RatioScorer struct{}

func (RatioScorer) Score(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la+lb == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return float64(la+lb-d) / float64(la+lb) * 100
}

// Correct maps an extracted destination to the closest known station on the
// route. The input comes back unchanged when the route is unknown, has no
// reference stations, or the destination is empty; an exact match
// short-circuits. Ties keep the first-encountered station.
func Correct(destination, route string, ref Reference, scorer Scorer) string {
	if destination == "" || route == "" {
		return destination
	}
	list := ref[route]
	if len(list) == 0 {
		return destination
	}

	for _, station := range list {
		if station == destination {
			return destination
		}
	}

	best := destination
	bestScore := 0.0
	for _, station := range list {
		if score := scorer.Score(destination, station); score > bestScore {
			bestScore = score
			best = station
		}
	}
	return best
}
