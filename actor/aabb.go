package actor

import "github.com/go-gl/mathgl/mgl32"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Merge returns the smallest AABB containing both boxes.
func (a AABB) Merge(other AABB) AABB {
	var merged AABB
	for axis := 0; axis < 3; axis++ {
		merged.Min[axis] = min(a.Min[axis], other.Min[axis])
		merged.Max[axis] = max(a.Max[axis], other.Max[axis])
	}
	return merged
}

// ExpandToContain grows the box in place to include the point.
func (a *AABB) ExpandToContain(point mgl32.Vec3) {
	for axis := 0; axis < 3; axis++ {
		a.Min[axis] = min(a.Min[axis], point[axis])
		a.Max[axis] = max(a.Max[axis], point[axis])
	}
}
