package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroscan/metroscan/internal/ocr"
	"github.com/metroscan/metroscan/internal/pipeline"
	"github.com/metroscan/metroscan/internal/preprocess"
	"github.com/metroscan/metroscan/internal/stations"
	"github.com/metroscan/metroscan/internal/testutil"
	"github.com/metroscan/metroscan/internal/timetable"
)

func testFragments() []ocr.Fragment {
	return []ocr.Fragment{
		testutil.Frag("开往天宫院方向", 0.1, 0.9),
		testutil.Frag("工作日", 0.1, 0.8),
		testutil.Frag("6", 0.05, 0.5),
		testutil.Frag("05", 0.1, 0.5),
	}
}

func TestProcessImagesParallel_OrderedRecords(t *testing.T) {
	paths := testutil.WritePNGFiles(t, "4-西单-1.png", "4-天宫院-1.png", "4-菜市口-1.png")
	reference := stations.BuildReference(paths, stations.DefaultOverrides())
	pl := pipeline.New(testutil.StaticRecognizer(testFragments()), reference, pipeline.DefaultOptions())

	records, err := processImagesParallel(context.Background(), pl, paths, preprocess.DefaultOptions(), 2)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Records come back in input order even with parallel workers.
	assert.Equal(t, "4-西单-1.png", records[0].Filename)
	assert.Equal(t, "4-天宫院-1.png", records[1].Filename)
	assert.Equal(t, "4-菜市口-1.png", records[2].Filename)
	for _, rec := range records {
		assert.Empty(t, rec.Error)
		assert.Equal(t, []string{"06:05"}, rec.ScheduleTimes)
	}
}

func TestProcessImagesParallel_CorruptImageBecomesErrorRecord(t *testing.T) {
	paths := testutil.WriteCorpusFiles(t, "4-西单-1.png") // empty file, not a PNG
	pl := pipeline.New(testutil.StaticRecognizer(nil), stations.Reference{}, pipeline.DefaultOptions())

	records, err := processImagesParallel(context.Background(), pl, paths, preprocess.DefaultOptions(), 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "4-西单-1.png", records[0].Filename)
	assert.NotEmpty(t, records[0].Error)
	assert.Nil(t, records[0].Route)
}

func TestResult_Failed(t *testing.T) {
	result := &Result{Records: []timetable.Record{
		{Filename: "a"},
		timetable.ErrorRecord("b", assert.AnError),
	}}
	assert.Equal(t, 1, result.Failed())
}

func TestResult_SaveResultsToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.jsonl")
	route := "4"
	result := &Result{Records: []timetable.Record{
		{Filename: "4-西单-1.png", Route: &route, ScheduleTimes: []string{"06:05"}},
	}}

	require.NoError(t, result.SaveResults(out, true))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	data, err := timetable.ReadJSONL(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, "4-西单-1.png", data[0].Filename)
	assert.Equal(t, "4", *data[0].Route)
}
