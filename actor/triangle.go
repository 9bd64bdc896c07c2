package actor

import (
	"github.com/akmonengine/plume/tree"
	"github.com/akmonengine/plume/wide"
	"github.com/go-gl/mathgl/mgl32"
)

// Triangle is a mesh primitive with corners in shape-local coordinates.
type Triangle struct {
	A mgl32.Vec3
	B mgl32.Vec3
	C mgl32.Vec3
}

// TriangleWide is one triangle per lane.
type TriangleWide struct {
	A wide.Vec3
	B wide.Vec3
	C wide.Vec3
}

// Bounds returns the triangle's local axis-aligned bounds.
func (t Triangle) Bounds() tree.Bounds {
	var b tree.Bounds
	for axis := 0; axis < 3; axis++ {
		b.Min[axis] = min(t.A[axis], t.B[axis], t.C[axis])
		b.Max[axis] = max(t.A[axis], t.B[axis], t.C[axis])
	}
	return b
}

const triangleDegeneracyEpsilon = 1e-10

// TriangleRayTest intersects a ray with the triangle (a, b, c). The returned
// normal is the triangle's geometric normal, not re-oriented toward the ray;
// both windings are hit. t is measured in units of the direction's length.
func TriangleRayTest(a, b, c, origin, direction mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	ab := b.Sub(a)
	ac := c.Sub(a)

	p := direction.Cross(ac)
	det := ab.Dot(p)
	if det > -triangleDegeneracyEpsilon && det < triangleDegeneracyEpsilon {
		// Parallel to the triangle plane, or degenerate triangle.
		return false, 0, mgl32.Vec3{}
	}
	inverseDet := 1 / det

	ao := origin.Sub(a)
	u := ao.Dot(p) * inverseDet
	if u < 0 || u > 1 {
		return false, 0, mgl32.Vec3{}
	}

	q := ao.Cross(ab)
	v := direction.Dot(q) * inverseDet
	if v < 0 || u+v > 1 {
		return false, 0, mgl32.Vec3{}
	}

	t := ac.Dot(q) * inverseDet
	if t < 0 {
		return false, 0, mgl32.Vec3{}
	}
	return true, t, ab.Cross(ac)
}
