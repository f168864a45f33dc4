package metrics

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// EvalDetection evaluates every class present in the ground truth and
// aggregates the per-class results.
//
// Classes without predictions evaluate against an empty prediction map
// and come back with all-zero curves. With Options.Workers above 1 the
// classes are evaluated on a bounded worker pool; classes share no
// state, so only the result map is locked. The sequential path is the
// default and is fully deterministic.
//
// Arguments:
//   - preds: Predictions keyed by class, then image ID.
//   - gts: Ground-truth boxes keyed by class, then image ID.
//   - opts: Evaluation options.
//
// Returns:
//   - Per-class results keyed by class name.
//   - error: The first per-class failure, annotated with its class.
func EvalDetection(preds map[string]map[string][]Detection, gts map[string]map[string][]any, opts Options) (map[string]ClassResult, error) {
	classes := make([]string, 0, len(gts))
	for class := range gts {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	results := make(map[string]ClassResult, len(classes))

	if opts.Workers > 1 {
		var (
			mu       sync.Mutex
			wg       sync.WaitGroup
			firstErr error
		)
		sem := make(chan struct{}, opts.Workers)
		for _, class := range classes {
			wg.Add(1)
			go func(class string) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				res, err := EvalClass(preds[class], gts[class], opts)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if firstErr == nil {
						firstErr = errors.Wrapf(err, "class %q", class)
					}
					return
				}
				results[class] = res
			}(class)
		}
		wg.Wait()
		if firstErr != nil {
			return nil, firstErr
		}
	} else {
		for _, class := range classes {
			res, err := EvalClass(preds[class], gts[class], opts)
			if err != nil {
				return nil, errors.Wrapf(err, "class %q", class)
			}
			results[class] = res
		}
	}

	// Side effects run after the maps are final, sequentially and in
	// sorted class order regardless of how the evaluation ran.
	if opts.Reporter != nil {
		for _, class := range classes {
			opts.Reporter.ClassEvaluated(class, results[class])
		}
		opts.Reporter.EvaluationDone(MeanAP(results))
	}

	return results, nil
}

// MeanAP returns the unweighted arithmetic mean of the per-class AP
// values, 0 when no classes were evaluated.
func MeanAP(results map[string]ClassResult) float64 {
	if len(results) == 0 {
		return 0
	}
	aps := make([]float64, 0, len(results))
	for _, res := range results {
		aps = append(aps, res.AP)
	}
	return stat.Mean(aps, nil)
}
