// Package boxes - bounding box geometry for detector evaluation.
package boxes

// Rect is a lightweight 2D bounding box.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// CalculateIoU computes the Intersection over Union of two rectangles.
//
// IoU = Area of Intersection / Area of Union, a value in [0,1] where 1.0
// means the rectangles are identical and 0.0 means they do not overlap
// at all. Touching edges count as no overlap.
//
// Arguments:
//   - r: The first rectangle.
//   - o: The second rectangle.
//
// Returns:
//   - The IoU score as float32.
func CalculateIoU(r, o Rect) float32 {
	// The intersection starts at the maximum of the two origins and ends
	// at the minimum of the two far corners.
	ix1 := max(r.X1, o.X1)
	iy1 := max(r.Y1, o.Y1)
	ix2 := min(r.X2, o.X2)
	iy2 := min(r.Y2, o.Y2)

	// A zero or negative extent means the rectangles do not overlap.
	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0.0
	}
	interArea := interW * interH

	// Union by inclusion-exclusion: Area(A) + Area(B) - Intersection(A, B).
	areaR := (r.X2 - r.X1) * (r.Y2 - r.Y1)
	areaO := (o.X2 - o.X1) * (o.Y2 - o.Y1)
	unionArea := areaR + areaO - interArea

	return float32(interArea) / float32(unionArea)
}
