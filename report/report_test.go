package report

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvr-ai/go-eval/metrics"
)

func sampleResults() map[string]metrics.ClassResult {
	return map[string]metrics.ClassResult{
		"chair": {
			Recall:    []float64{0.5, 1.0},
			Precision: []float64{1.0, 1.0},
			AP:        1.0,
		},
		"table": {
			Recall:    []float64{0.0},
			Precision: []float64{0.0},
			AP:        0.0,
		},
	}
}

// TestLogReporter validates the per-class and summary log lines.
func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &LogReporter{Logger: log.New(&buf, "", 0)}

	r.ClassEvaluated("chair", metrics.ClassResult{AP: 0.84321})
	r.EvaluationDone(0.5)

	out := buf.String()
	assert.Contains(t, out, "chair: 0.84321", "the class line should carry the AP")
	assert.Contains(t, out, "mean AP: 0.50000", "the summary line should carry the mean")
}

// TestMultiReporterFansOut validates that every sink sees every event.
func TestMultiReporterFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := MultiReporter{
		&LogReporter{Logger: log.New(&a, "", 0)},
		&LogReporter{Logger: log.New(&b, "", 0)},
	}

	m.ClassEvaluated("chair", metrics.ClassResult{AP: 1.0})
	m.EvaluationDone(1.0)

	assert.Equal(t, a.String(), b.String(), "both sinks should receive identical events")
	assert.Contains(t, a.String(), "chair")
}

// TestNewSummary validates ordering and aggregate values.
func TestNewSummary(t *testing.T) {
	opts := metrics.Options{IoUThreshold: 0.25, Use11Point: true}
	s := NewSummary(sampleResults(), opts)

	require.Len(t, s.Classes, 2)
	assert.Equal(t, "chair", s.Classes[0].Class, "classes must be sorted by name")
	assert.Equal(t, "table", s.Classes[1].Class)
	assert.Equal(t, 2, s.Classes[0].Detections)
	assert.InDelta(t, 0.5, s.MeanAP, 1e-12)
	assert.InDelta(t, 0.25, s.IoUThreshold, 1e-12)
	assert.True(t, s.Use11Point)
}

// TestWriteSummary validates the JSON document on disk.
func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	s := NewSummary(sampleResults(), metrics.Options{IoUThreshold: 0.25})

	require.NoError(t, WriteSummary(path, s), "writing should succeed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, json.Unmarshal(data, &decoded), "the summary should be valid JSON")
	assert.InDelta(t, s.MeanAP, decoded.MeanAP, 1e-12)
	assert.Len(t, decoded.Classes, 2)
}

// TestCurvePlotterWritesFiles validates that one PNG per class lands in
// the output directory.
func TestCurvePlotterWritesFiles(t *testing.T) {
	dir := t.TempDir()
	p := &CurvePlotter{OutputDir: filepath.Join(dir, "ap_curves")}

	for class, result := range sampleResults() {
		p.ClassEvaluated(class, result)
	}
	p.EvaluationDone(0.5)
	require.NoError(t, p.Err, "plotting should succeed")

	for _, class := range []string{"chair", "table"} {
		info, err := os.Stat(filepath.Join(dir, "ap_curves", class+".png"))
		require.NoError(t, err, "plot for %s should exist", class)
		assert.Greater(t, info.Size(), int64(0), "plot for %s should not be empty", class)
	}
}
