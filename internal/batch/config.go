package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/metroscan/metroscan/internal/pipeline"
	"github.com/metroscan/metroscan/internal/preprocess"
	"github.com/metroscan/metroscan/internal/timetable"
)

// Config holds all configuration for a batch decode run.
type Config struct {
	// Recognizer invocation
	RecognizerCommand string
	RecognizerArgs    []string

	// Decode tuning shared across all images
	Pipeline   pipeline.Options
	Preprocess preprocess.Options

	// Station reference
	StationOverridesFile string

	// File discovery
	Recursive   bool
	RouteFilter string

	// Output
	OutputFile string

	// Parallelism
	Workers int

	// Reporting
	Quiet     bool
	ShowStats bool
}

// Result holds the outcome of a batch run. Records are ordered by the input
// file order; split images contribute consecutive records.
type Result struct {
	Records     []timetable.Record
	ImagePaths  []string
	Duration    time.Duration
	WorkerCount int
}

// Failed returns the number of records that carry a decode error.
func (r *Result) Failed() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Error != "" {
			n++
		}
	}
	return n
}

// SaveResults writes the records as JSONL to the output file, or stdout when
// no file is configured.
func (r *Result) SaveResults(outputFile string, quiet bool) error {
	if outputFile == "" {
		return timetable.WriteJSONL(os.Stdout, r.Records)
	}

	f, err := os.Create(outputFile) //nolint:gosec
	// G304: outputFile comes from the --output flag, expected user input
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := timetable.WriteJSONL(f, r.Records); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if !quiet {
		_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
	}
	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	failed := r.Failed()
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total images: %d\n", len(r.ImagePaths))
	_, _ = fmt.Fprintf(os.Stdout, "  Records: %d\n", len(r.Records))
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	if len(r.ImagePaths) > 0 {
		per := r.Duration / time.Duration(len(r.ImagePaths))
		_, _ = fmt.Fprintf(os.Stdout, "  Avg per image: %v\n", per.Round(time.Millisecond))
	}
}
