// Package report - reporting sinks for evaluation results: log lines,
// PR-curve plots and JSON summaries. Sinks implement metrics.Reporter
// and are injected into the evaluation run, keeping the core evaluator
// free of I/O.
package report

import (
	"log"

	"github.com/nvr-ai/go-eval/metrics"
)

// LogReporter writes per-class AP and the mean AP to a logger.
type LogReporter struct {
	// Logger defaults to the standard logger when nil.
	Logger *log.Logger
}

func (r *LogReporter) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// ClassEvaluated logs one class result.
func (r *LogReporter) ClassEvaluated(class string, result metrics.ClassResult) {
	r.logf("%s: %.5f", class, result.AP)
}

// EvaluationDone logs the mean AP.
func (r *LogReporter) EvaluationDone(meanAP float64) {
	r.logf("mean AP: %.5f", meanAP)
}

// MultiReporter fans evaluation results out to several reporters in
// order.
type MultiReporter []metrics.Reporter

// ClassEvaluated forwards the class result to every reporter.
func (m MultiReporter) ClassEvaluated(class string, result metrics.ClassResult) {
	for _, r := range m {
		r.ClassEvaluated(class, result)
	}
}

// EvaluationDone forwards the mean AP to every reporter.
func (m MultiReporter) EvaluationDone(meanAP float64) {
	for _, r := range m {
		r.EvaluationDone(meanAP)
	}
}
