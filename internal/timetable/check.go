package timetable

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CheckOptions bounds the plausible headway between adjacent departures.
// The limits are tuned against observed board data, not fixed truths.
type CheckOptions struct {
	// MinGapMinutes flags gaps at or below this value as too short.
	MinGapMinutes int
	// MaxGapMinutes flags gaps at or above this value as too long.
	MaxGapMinutes int
}

// DefaultCheckOptions returns the headway bounds used for subway boards.
func DefaultCheckOptions() CheckOptions {
	return CheckOptions{MinGapMinutes: 1, MaxGapMinutes: 12}
}

// Check verifies a decoded departure sequence and returns all violations
// found (never just the first). An empty result means the sequence is clean.
// Check never fails: malformed entries become violations too.
func Check(times []string, opts CheckOptions) []string {
	if len(times) == 0 {
		return []string{"empty schedule"}
	}

	var violations []string
	prev := -1
	for i, t := range times {
		minutes, ok := parseMinutes(t)
		if !ok {
			violations = append(violations, fmt.Sprintf("bad time format at entry %d: %s", i+1, t))
			continue
		}
		if prev >= 0 {
			gap := minutes - prev
			// A schedule wraps past midnight at most once per pair.
			if gap < 0 {
				gap += 24 * 60
			}
			switch {
			case gap <= 0:
				violations = append(violations, fmt.Sprintf("not monotonically increasing: %s -> %s", times[i-1], t))
			case gap <= opts.MinGapMinutes:
				violations = append(violations, fmt.Sprintf("interval too short (%d min): %s -> %s", gap, times[i-1], t))
			case gap >= opts.MaxGapMinutes:
				violations = append(violations, fmt.Sprintf("interval too long (%d min): %s -> %s", gap, times[i-1], t))
			}
		}
		prev = minutes
	}
	return violations
}

func parseMinutes(t string) (int, bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// Failure pairs a record with its violations in an audit report.
type Failure struct {
	Record     Record
	Violations []string
}

// Report aggregates an audit over a decoded corpus.
type Report struct {
	Total    int
	Failures []Failure
}

// Failed returns the number of records with at least one violation.
func (r *Report) Failed() int { return len(r.Failures) }

// Accuracy returns the clean fraction as a percentage, 0 for an empty corpus.
func (r *Report) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Total-r.Failed()) / float64(r.Total) * 100
}

// Audit reads a persisted JSONL corpus and checks every record. Records that
// carry a decode error count as failures with the error as their violation.
func Audit(r io.Reader, opts CheckOptions) (*Report, error) {
	records, err := ReadJSONL(r)
	if err != nil {
		return nil, err
	}

	report := &Report{Total: len(records)}
	for _, rec := range records {
		var violations []string
		if rec.Error != "" {
			violations = []string{"decode error: " + rec.Error}
		} else {
			violations = Check(rec.ScheduleTimes, opts)
		}
		if len(violations) > 0 {
			report.Failures = append(report.Failures, Failure{Record: rec, Violations: violations})
		}
	}
	return report, nil
}
