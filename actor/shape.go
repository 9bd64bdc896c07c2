package actor

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Shape type ids are stable small integers consumed by external dispatch
// tables; they must not be renumbered.
const (
	CapsuleTypeID = 1
	MeshTypeID    = 8
)

// ShapeInterface is the interface that all collision shapes must implement
type ShapeInterface interface {
	// TypeID returns the shape's stable dispatch id
	TypeID() int
	// ComputeAABB calculates the axis-aligned bounding box for the shape
	// at the given transform
	ComputeAABB(transform Transform)
	GetAABB() AABB
	// ComputeMass calculates mass data for the shape given a density
	ComputeMass(density float32) float32
	ComputeInertia(mass float32) mgl32.Mat3
	// RayTest intersects a world-space ray with the shape. t is measured in
	// units of the direction's length; the normal is returned in world space.
	// A miss is a normal outcome, not an error.
	RayTest(transform Transform, origin, direction mgl32.Vec3) (bool, float32, mgl32.Vec3)
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
