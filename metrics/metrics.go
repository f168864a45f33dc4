// Package metrics - precision/recall curves and Average Precision for
// object detection results.
//
// The package is layout-agnostic about boxes: predictions and ground
// truth carry opaque values that are only ever passed to the caller's
// IoU function, so the same evaluator serves 2D rectangles, axis-aligned
// 3D boxes or oriented 3D boxes alike.
package metrics

// IoUFunc computes the Intersection over Union of two boxes. The boxes
// are opaque to the evaluator; callers supply the geometry (for example
// boxes.IoU for oriented 3D boxes). Implementations must be symmetric
// and return values in [0,1] for well-formed boxes.
type IoUFunc func(a, b any) float64

// Detection is a single prediction: an opaque box plus its confidence.
type Detection struct {
	Box   any
	Score float32
}

// ClassResult holds the evaluation output for one class. Recall and
// Precision are parallel step-curve samples ordered by descending
// confidence; recall is non-decreasing along the curve.
type ClassResult struct {
	Recall    []float64 `json:"recall"`
	Precision []float64 `json:"precision"`
	AP        float64   `json:"ap"`
}

// Reporter receives evaluation results as they are produced. The core
// evaluator performs no I/O itself; plotting and logging sinks live in
// the report package and are injected through Options.
type Reporter interface {
	// ClassEvaluated is called once per class, in sorted class order.
	ClassEvaluated(class string, result ClassResult)
	// EvaluationDone is called once after all classes, with the
	// unweighted mean AP.
	EvaluationDone(meanAP float64)
}

// Options configures an evaluation run.
type Options struct {
	// IoU is the box overlap function. Required.
	IoU IoUFunc

	// IoUThreshold is the minimum overlap for a prediction to claim a
	// ground-truth box. The comparison is strict: an IoU exactly equal
	// to the threshold does not match.
	IoUThreshold float64

	// Use11Point selects the legacy VOC07 11-point AP metric instead of
	// the exact envelope integral.
	Use11Point bool

	// Workers bounds how many classes EvalDetection evaluates
	// concurrently. Values below 2 evaluate sequentially.
	Workers int

	// Reporter, when set, receives per-class results and the final
	// mean AP after EvalDetection completes.
	Reporter Reporter
}
