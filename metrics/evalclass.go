package metrics

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// epsilon guards the precision denominator. cumTP+cumFP is always at
// least 1 at every index, so the guard only matters if that invariant is
// ever broken.
var epsilon = math.Nextafter(1, 2) - 1

// classRecord tracks which ground-truth boxes of one image have been
// claimed by a true positive. Records live for a single EvalClass call.
type classRecord struct {
	boxes   []any
	matched []bool
}

// EvalClass computes the precision/recall curve and Average Precision
// for a single class across all images, matching predictions to ground
// truth greedily in descending confidence order.
//
// Images that appear in preds but not in gts are a first-class case:
// every detection there is a false positive. A class with no ground
// truth at all evaluates to all-zero recall and precision with AP 0
// rather than propagating a division by zero.
//
// Arguments:
//   - preds: Predictions per image ID.
//   - gts: Ground-truth boxes per image ID, opaque to the evaluator.
//   - opts: Evaluation options. IoU and IoUThreshold are required;
//     Workers and Reporter are ignored at this level.
//
// Returns:
//   - ClassResult: The recall/precision curve and its AP.
//   - error: Precondition violations (missing IoU function, threshold
//     outside (0,1)).
func EvalClass(preds map[string][]Detection, gts map[string][]any, opts Options) (ClassResult, error) {
	if opts.IoU == nil {
		return ClassResult{}, errors.New("metrics: IoU function is required")
	}
	if opts.IoUThreshold <= 0 || opts.IoUThreshold >= 1 {
		return ClassResult{}, errors.Errorf("metrics: IoU threshold %v outside (0,1)", opts.IoUThreshold)
	}

	// Build one record per image with ground truth; every box starts
	// unclaimed.
	records := make(map[string]*classRecord, len(gts))
	npos := 0
	for img, gtBoxes := range gts {
		records[img] = &classRecord{
			boxes:   gtBoxes,
			matched: make([]bool, len(gtBoxes)),
		}
		npos += len(gtBoxes)
	}
	// Images with predictions but no ground truth still need a record:
	// everything detected there is a false positive.
	for img := range preds {
		if _, ok := records[img]; !ok {
			records[img] = &classRecord{}
		}
	}

	// Flatten all predictions into parallel slices. Image keys are
	// visited in sorted order so repeated runs see the same flattening,
	// which keeps tie ordering (and therefore the output) deterministic.
	imgs := make([]string, 0, len(preds))
	for img := range preds {
		imgs = append(imgs, img)
	}
	sort.Strings(imgs)

	var (
		imageIDs []string
		scores   []float32
		bbs      []any
	)
	for _, img := range imgs {
		for _, det := range preds[img] {
			imageIDs = append(imageIDs, img)
			scores = append(scores, det.Score)
			bbs = append(bbs, det.Box)
		}
	}

	// Sort by descending confidence as a single permutation over the
	// parallel slices.
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	// Walk the detections and mark each one TP or FP.
	nd := len(order)
	tp := make([]float64, nd)
	fp := make([]float64, nd)
	for rank, d := range order {
		rec := records[imageIDs[d]]

		// Find the best-overlapping ground-truth box. The forward scan
		// with a strict comparison resolves exact ties to the first
		// index. An image without ground truth leaves ovmax at -Inf.
		ovmax := math.Inf(-1)
		jmax := -1
		for j, gt := range rec.boxes {
			if iou := opts.IoU(bbs[d], gt); iou > ovmax {
				ovmax = iou
				jmax = j
			}
		}

		if ovmax > opts.IoUThreshold {
			if !rec.matched[jmax] {
				tp[rank] = 1
				rec.matched[jmax] = true
			} else {
				// Claimed by a higher-confidence detection already.
				fp[rank] = 1
			}
		} else {
			fp[rank] = 1
		}
	}

	cumTP := floats.CumSum(make([]float64, nd), tp)
	cumFP := floats.CumSum(make([]float64, nd), fp)

	res := ClassResult{
		Recall:    make([]float64, nd),
		Precision: make([]float64, nd),
	}
	for i := 0; i < nd; i++ {
		if npos > 0 {
			res.Recall[i] = cumTP[i] / float64(npos)
		}
		res.Precision[i] = cumTP[i] / math.Max(cumTP[i]+cumFP[i], epsilon)
	}
	res.AP = ComputeAP(res.Recall, res.Precision, opts.Use11Point)
	return res, nil
}
