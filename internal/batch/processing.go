package batch

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/metroscan/metroscan/internal/pipeline"
	"github.com/metroscan/metroscan/internal/preprocess"
	"github.com/metroscan/metroscan/internal/stations"
	"github.com/metroscan/metroscan/internal/timetable"
)

// imageJob is one board photo to decode.
type imageJob struct {
	index int
	path  string
}

// imageResult carries the records for one photo. A per-image failure becomes
// an explicit error record rather than aborting the batch.
type imageResult struct {
	index   int
	records []timetable.Record
}

// processImagesParallel decodes images with a worker pool and returns the
// records flattened in input order. The pipeline and preprocessing options
// are shared read-only across workers.
func processImagesParallel(ctx context.Context, pl *pipeline.Pipeline, paths []string,
	prep preprocess.Options, workers int,
) ([]timetable.Record, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan imageJob, len(paths))
	results := make(chan imageResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					results <- imageResult{
						index:   job.index,
						records: []timetable.Record{timetable.ErrorRecord(filepath.Base(job.path), ctx.Err())},
					}
					continue
				default:
				}
				results <- imageResult{index: job.index, records: decodeImage(ctx, pl, job.path, prep)}
			}
		}()
	}

	for i, path := range paths {
		jobs <- imageJob{index: i, path: path}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	perImage := make([][]timetable.Record, len(paths))
	for res := range results {
		perImage[res.index] = res.records
	}

	var records []timetable.Record
	for _, recs := range perImage {
		records = append(records, recs...)
	}
	return records, ctx.Err()
}

// decodeImage is the per-image recovery boundary: any failure in loading,
// preprocessing, or recognition yields a single error record for the file.
func decodeImage(ctx context.Context, pl *pipeline.Pipeline, path string, prep preprocess.Options) []timetable.Record {
	img, err := preprocess.Open(path)
	if err != nil {
		slog.Warn("failed to load image", "file", path, "error", err)
		return []timetable.Record{timetable.ErrorRecord(filepath.Base(path), err)}
	}

	route, _ := stations.RouteStation(path)
	pairs := preprocess.Prepare(img, route, prep)

	records, err := pl.Decode(ctx, path, pairs)
	if err != nil {
		slog.Warn("failed to decode image", "file", path, "error", err)
		return []timetable.Record{timetable.ErrorRecord(filepath.Base(path), err)}
	}
	return records
}
