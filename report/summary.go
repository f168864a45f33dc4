package report

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-eval/metrics"
)

// ClassSummary is the JSON record for one evaluated class.
type ClassSummary struct {
	Class      string  `json:"class"`
	AP         float64 `json:"ap"`
	Detections int     `json:"detections"`
}

// Summary describes a full evaluation run.
type Summary struct {
	Timestamp    time.Time      `json:"timestamp"`
	IoUThreshold float64        `json:"iou_threshold"`
	Use11Point   bool           `json:"use_07_metric"`
	Classes      []ClassSummary `json:"classes"`
	MeanAP       float64        `json:"mean_ap"`
}

// NewSummary builds a Summary from evaluation results with classes in
// sorted name order.
func NewSummary(results map[string]metrics.ClassResult, opts metrics.Options) Summary {
	s := Summary{
		Timestamp:    time.Now(),
		IoUThreshold: opts.IoUThreshold,
		Use11Point:   opts.Use11Point,
		MeanAP:       metrics.MeanAP(results),
	}

	classes := make([]string, 0, len(results))
	for class := range results {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	for _, class := range classes {
		res := results[class]
		s.Classes = append(s.Classes, ClassSummary{
			Class:      class,
			AP:         res.AP,
			Detections: len(res.Recall),
		})
	}
	return s
}

// WriteSummary writes the summary to path as indented JSON.
func WriteSummary(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal summary")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write summary")
	}
	return nil
}
