package boxes

import (
	"math"

	"github.com/chewxy/math32"
	clipper "github.com/ctessum/go.clipper"
)

// Box3D is an oriented 3D bounding box given by its center, full extents
// and a rotation about the vertical (Z) axis.
type Box3D struct {
	// X, Y, Z is the box center.
	X, Y, Z float32
	// Dx, Dy, Dz are the full extents along each axis before rotation.
	Dx, Dy, Dz float32
	// Yaw is the rotation around the Z axis in radians.
	Yaw float32
}

// clipperScale maps metric coordinates onto clipper's integer grid.
// 1e4 keeps sub-millimetre precision for scene-scale boxes.
const clipperScale = 10000.0

// Volume returns the volume of the box.
func (b Box3D) Volume() float32 {
	return b.Dx * b.Dy * b.Dz
}

// Corners returns the four bird's-eye-view corners of the box in the
// XY plane, counter-clockwise starting from (+Dx/2, +Dy/2) before
// rotation.
func (b Box3D) Corners() [4][2]float32 {
	c := math32.Cos(b.Yaw)
	s := math32.Sin(b.Yaw)
	hx := b.Dx / 2
	hy := b.Dy / 2

	local := [4][2]float32{{hx, hy}, {-hx, hy}, {-hx, -hy}, {hx, -hy}}
	var out [4][2]float32
	for i, p := range local {
		out[i][0] = b.X + p[0]*c - p[1]*s
		out[i][1] = b.Y + p[0]*s + p[1]*c
	}
	return out
}

// path converts the bird's-eye-view footprint to a clipper polygon.
func (b Box3D) path() clipper.Path {
	corners := b.Corners()
	path := make(clipper.Path, 0, len(corners))
	for _, p := range corners {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(p[0] * clipperScale),
			Y: clipper.CInt(p[1] * clipperScale),
		})
	}
	return path
}

// IoU3D computes the volumetric Intersection over Union of two oriented
// boxes. The footprint overlap is found by polygon clipping in the XY
// plane and extruded by the vertical interval overlap.
//
// Arguments:
//   - a: The first box.
//   - b: The second box.
//
// Returns:
//   - The IoU score in [0,1]. Degenerate (zero-volume) boxes yield 0.
func IoU3D(a, b Box3D) float64 {
	va := float64(a.Volume())
	vb := float64(b.Volume())
	if va <= 0 || vb <= 0 {
		return 0
	}

	zTop := math32.Min(a.Z+a.Dz/2, b.Z+b.Dz/2)
	zBottom := math32.Max(a.Z-a.Dz/2, b.Z-b.Dz/2)
	zOverlap := float64(zTop - zBottom)
	if zOverlap <= 0 {
		return 0
	}

	c := clipper.NewClipper(clipper.IoNone)
	c.AddPath(a.path(), clipper.PtSubject, true)
	c.AddPath(b.path(), clipper.PtClip, true)
	solution, ok := c.Execute1(clipper.CtIntersection, clipper.PftNonZero, clipper.PftNonZero)
	if !ok || len(solution) == 0 {
		return 0
	}

	var bevArea float64
	for _, poly := range solution {
		bevArea += math.Abs(clipper.Area(poly))
	}
	bevArea /= clipperScale * clipperScale

	inter := bevArea * zOverlap
	union := va + vb - inter
	if union <= 0 {
		return 0
	}

	iou := inter / union
	// Clipper's integer grid can round the footprint outward a hair.
	if iou > 1 {
		iou = 1
	}
	return iou
}

// IoU adapts IoU3D to the opaque box signature the metrics package
// consumes. Operands that are not Box3D values yield 0.
func IoU(a, b any) float64 {
	ba, ok := a.(Box3D)
	if !ok {
		return 0
	}
	bb, ok := b.(Box3D)
	if !ok {
		return 0
	}
	return IoU3D(ba, bb)
}
