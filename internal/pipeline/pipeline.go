// Package pipeline orchestrates the decode of one board image: two
// recognition passes (grayscale for metadata, binary for digits), clustering,
// extraction, destination correction, and record assembly. The layout kind is
// resolved once per image from its route and dispatches to the standard or
// the dual-board pipeline.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/metroscan/metroscan/internal/cluster"
	"github.com/metroscan/metroscan/internal/decode"
	"github.com/metroscan/metroscan/internal/extract"
	"github.com/metroscan/metroscan/internal/layout"
	"github.com/metroscan/metroscan/internal/ocr"
	"github.com/metroscan/metroscan/internal/preprocess"
	"github.com/metroscan/metroscan/internal/stations"
	"github.com/metroscan/metroscan/internal/timetable"
)

// Options carries the decode tuning shared by all images of a batch.
type Options struct {
	LineEps      float64
	ColumnEps    float64
	Decode       decode.Options
	Check        timetable.CheckOptions
	DualRoutes   []string
	DefaultSplit float64
}

// DefaultOptions returns the tuning used for the current board corpus.
func DefaultOptions() Options {
	return Options{
		LineEps:      cluster.DefaultLineEps,
		ColumnEps:    cluster.DefaultColumnEps,
		Decode:       decode.DefaultOptions(),
		Check:        timetable.DefaultCheckOptions(),
		DualRoutes:   []string{"18"},
		DefaultSplit: layout.DefaultSplitPoint,
	}
}

// Pipeline decodes prepared board images into timetable records. It holds no
// per-image state: the reference table is read-only and the recognizer is the
// external engine, so one pipeline is safe to share across parallel workers.
type Pipeline struct {
	recognizer ocr.Recognizer
	reference  stations.Reference
	scorer     stations.Scorer
	opts       Options
}

// New builds a pipeline. A nil scorer falls back to the ratio scorer.
func New(recognizer ocr.Recognizer, reference stations.Reference, opts Options) *Pipeline {
	return &Pipeline{
		recognizer: recognizer,
		reference:  reference,
		scorer:     stations.RatioScorer{},
		opts:       opts,
	}
}

// WithScorer swaps the similarity metric used for destination correction.
func (p *Pipeline) WithScorer(s stations.Scorer) *Pipeline {
	p.scorer = s
	return p
}

// Decode runs the full decode for one source image. pairs holds one prepared
// (gray, binary) pair per board; split photos carry two and their records get
// "-1"/"-2" filename suffixes. Recognition failures abort the whole image;
// the caller substitutes an error record.
func (p *Pipeline) Decode(ctx context.Context, path string, pairs []preprocess.Pair) ([]timetable.Record, error) {
	route, station := stations.RouteStation(path)
	kind := layout.Resolve(route, p.opts.DualRoutes)
	base := filepath.Base(path)

	var records []timetable.Record
	for i, pair := range pairs {
		filename := base
		if len(pairs) > 1 {
			filename = fmt.Sprintf("%s-%d", base, i+1)
		}

		grayFrags, err := p.recognizer.Recognize(ctx, pair.Gray)
		if err != nil {
			return nil, fmt.Errorf("metadata pass failed for %s: %w", filename, err)
		}
		binFrags, err := p.recognizer.Recognize(ctx, pair.Binary)
		if err != nil {
			return nil, fmt.Errorf("digit pass failed for %s: %w", filename, err)
		}

		if kind == layout.Dual {
			records = append(records, p.decodeDual(filename, route, station, grayFrags, binFrags)...)
		} else {
			records = append(records, p.decodeStandard(filename, route, station, grayFrags, binFrags))
		}
	}

	for _, rec := range records {
		if violations := timetable.Check(rec.ScheduleTimes, p.opts.Check); len(violations) > 0 {
			slog.Warn("decoded schedule failed consistency check",
				"file", rec.Filename, "route", route, "violations", violations)
		}
	}
	return records, nil
}

// decodeStandard handles the common single-timetable board.
func (p *Pipeline) decodeStandard(filename, route, station string, grayFrags, binFrags []ocr.Fragment) timetable.Record {
	grayLines := cluster.Lines(grayFrags, p.opts.LineEps)
	destination := extract.Destination(grayLines)
	operating := extract.OperatingTime(grayLines)
	destination = p.correct(destination, route)

	binLines := cluster.Lines(binFrags, p.opts.LineEps)
	times := decode.Times(binLines, p.opts.Decode)

	return p.record(filename, route, station, destination, operating, times)
}

// decodeDual handles boards with two side-by-side timetables. Metadata comes
// from column clusters over the full unsplit metadata pass (the vertical
// headers span the whole column); only the digit pass is split left/right.
func (p *Pipeline) decodeDual(filename, route, station string, grayFrags, binFrags []ocr.Fragment) []timetable.Record {
	columns := cluster.Columns(grayFrags, p.opts.ColumnEps)
	destinations, operating := extract.DualMetadata(columns)
	for i := range destinations {
		destinations[i] = p.correct(destinations[i], route)
	}

	split := layout.SplitPoint(grayFrags, p.opts.DefaultSplit)
	left, right := layout.Partition(binFrags, split)
	slog.Debug("split dual board", "file", filename, "boundary", split,
		"left", len(left), "right", len(right))

	records := make([]timetable.Record, 0, 2)
	for i, side := range [][]ocr.Fragment{left, right} {
		lines := cluster.Lines(side, p.opts.LineEps)
		times := decode.Times(lines, p.opts.Decode)
		records = append(records, p.record(filename, route, station, destinations[i], operating[i], times))
	}
	return records
}

func (p *Pipeline) correct(destination, route string) string {
	if destination == "" {
		return destination
	}
	corrected := stations.Correct(destination, route, p.reference, p.scorer)
	if corrected != destination {
		slog.Info("corrected destination", "route", route, "from", destination, "to", corrected)
	}
	return corrected
}

func (p *Pipeline) record(filename, route, station, destination string, operating timetable.OperatingTime, times []string) timetable.Record {
	if times == nil {
		times = []string{}
	}
	rec := timetable.Record{
		Filename:      filename,
		ScheduleTimes: times,
	}
	if route != "" {
		rec.Route = &route
	}
	if station != "" {
		rec.Station = &station
	}
	if destination != "" {
		rec.Destination = &destination
	}
	if operating != "" {
		rec.OperatingTime = &operating
	}
	return rec
}
