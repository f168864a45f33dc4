package metrics

// ComputeAP integrates a precision/recall step curve into a single
// Average Precision value.
//
// The two slices must be the same length, ordered by descending
// confidence, with recall non-decreasing and all values in [0,1].
// Empty inputs yield 0 in both modes.
//
// Arguments:
//   - recall: Recall samples of the curve.
//   - precision: Precision samples of the curve.
//   - use11Point: If true, use the VOC07 11-point metric; otherwise
//     compute the exact area under the precision envelope.
//
// Returns:
//   - The Average Precision in [0,1].
func ComputeAP(recall, precision []float64, use11Point bool) float64 {
	if use11Point {
		var ap float64
		for i := 0; i <= 10; i++ {
			t := float64(i) / 10
			// p is the best precision achieved at recall >= t, or 0 when
			// the curve never reaches t.
			var p float64
			for j, r := range recall {
				if r >= t && precision[j] > p {
					p = precision[j]
				}
			}
			ap += p / 11
		}
		return ap
	}

	// Sentinels pin the curve to recall 0 and 1 so the envelope and the
	// step integral below cover the whole recall axis.
	mrec := make([]float64, 0, len(recall)+2)
	mrec = append(mrec, 0)
	mrec = append(mrec, recall...)
	mrec = append(mrec, 1)

	mpre := make([]float64, 0, len(precision)+2)
	mpre = append(mpre, 0)
	mpre = append(mpre, precision...)
	mpre = append(mpre, 0)

	// Precision envelope: a running maximum from the right makes
	// precision non-increasing in recall, removing local dips.
	for i := len(mpre) - 2; i >= 0; i-- {
		if mpre[i+1] > mpre[i] {
			mpre[i] = mpre[i+1]
		}
	}

	// Area under the step function. Only indices where recall actually
	// changes contribute.
	var ap float64
	for i := 0; i < len(mrec)-1; i++ {
		if mrec[i+1] != mrec[i] {
			ap += (mrec[i+1] - mrec[i]) * mpre[i+1]
		}
	}
	return ap
}
