package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputeAPEmptyInputs validates that zero detections yield AP 0 in
// both integration modes.
func TestComputeAPEmptyInputs(t *testing.T) {
	assert.Zero(t, ComputeAP(nil, nil, false), "exact mode should yield 0 for empty curves")
	assert.Zero(t, ComputeAP(nil, nil, true), "11-point mode should yield 0 for empty curves")
	assert.Zero(t, ComputeAP([]float64{}, []float64{}, false), "exact mode should yield 0 for empty slices")
}

// TestComputeAPPerfectDetector validates a single detection curve at
// full recall and full precision.
func TestComputeAPPerfectDetector(t *testing.T) {
	recall := []float64{1.0}
	precision := []float64{1.0}

	assert.InDelta(t, 1.0, ComputeAP(recall, precision, false), 1e-12,
		"exact mode should integrate a perfect curve to 1")
	assert.InDelta(t, 1.0, ComputeAP(recall, precision, true), 1e-12,
		"11-point mode should average a perfect curve to 1")
}

// TestComputeAPEnvelopeRemovesDips validates the right-to-left running
// maximum: a local precision dip must not reduce the area under later,
// higher segments.
func TestComputeAPEnvelopeRemovesDips(t *testing.T) {
	recall := []float64{0.25, 0.5, 0.75, 1.0}
	precision := []float64{1.0, 0.5, 0.75, 0.6}

	// Envelope: [1.0, 0.75, 0.75, 0.6], integrated over recall steps of
	// 0.25 each: 0.25 + 0.1875 + 0.1875 + 0.15.
	ap := ComputeAP(recall, precision, false)
	assert.InDelta(t, 0.775, ap, 1e-9, "dip at recall 0.5 should be lifted to the later precision 0.75")
}

// TestComputeAPDuplicateDetection covers the curve produced by a second,
// redundant detection of an already-claimed object.
func TestComputeAPDuplicateDetection(t *testing.T) {
	recall := []float64{1.0, 1.0}
	precision := []float64{1.0, 0.5}

	// Recall never advances past the first point, so the second sample
	// contributes no area.
	assert.InDelta(t, 1.0, ComputeAP(recall, precision, false), 1e-9,
		"repeated recall values should not add area")
}

// TestComputeAPModesAgreeOnSmoothCurves validates that the 11-point
// approximation stays within a few percent of the exact integral on a
// fine-grained, smoothly decaying curve.
func TestComputeAPModesAgreeOnSmoothCurves(t *testing.T) {
	const n = 200
	recall := make([]float64, n)
	precision := make([]float64, n)
	for i := 0; i < n; i++ {
		recall[i] = float64(i+1) / n
		precision[i] = 1.0 - 0.5*recall[i]
	}

	exact := ComputeAP(recall, precision, false)
	eleven := ComputeAP(recall, precision, true)

	assert.InDelta(t, 0.75, exact, 0.01, "exact mode should match the analytic area")
	assert.InDelta(t, exact, eleven, 0.02, "the two modes should agree on smooth curves")
}

// TestComputeAPStaysInUnitInterval runs the integrator over assorted
// valid curves and checks the result range.
func TestComputeAPStaysInUnitInterval(t *testing.T) {
	curves := []struct {
		name      string
		recall    []float64
		precision []float64
	}{
		{"all false positives", []float64{0, 0, 0}, []float64{0, 0, 0}},
		{"staircase", []float64{0.2, 0.2, 0.4, 0.6, 0.6, 1.0}, []float64{1.0, 0.5, 0.66, 0.75, 0.6, 0.5}},
		{"single point", []float64{0.5}, []float64{0.5}},
		{"late recovery", []float64{0.1, 0.5, 1.0}, []float64{0.1, 0.9, 0.4}},
	}

	for _, tc := range curves {
		for _, use11 := range []bool{false, true} {
			ap := ComputeAP(tc.recall, tc.precision, use11)
			assert.GreaterOrEqual(t, ap, 0.0, "%s: AP must not be negative (use11Point=%v)", tc.name, use11)
			assert.LessOrEqual(t, ap, 1.0, "%s: AP must not exceed 1 (use11Point=%v)", tc.name, use11)
		}
	}
}
