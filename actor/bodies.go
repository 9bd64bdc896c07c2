package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BodyType represents the type of rigid body
type BodyType int

const (
	// BodyTypeDynamic bodies are affected by forces, gravity, and collisions
	// They have finite mass and can move freely
	BodyTypeDynamic BodyType = iota

	// BodyTypeStatic bodies are immovable and have infinite mass
	// They are not affected by forces or gravity (e.g., ground, walls)
	BodyTypeStatic
)

// RigidBody binds a pose to a collision shape and its mass data. Dynamics
// live in the simulation layer; this core only reads poses and shape state.
type RigidBody struct {
	Transform Transform

	Mass                float32
	InertiaLocal        mgl32.Mat3
	InverseInertiaLocal mgl32.Mat3

	BodyType BodyType
	Shape    ShapeInterface
}

// NewRigidBody creates a rigid body with the given properties. density is
// used to calculate mass for dynamic bodies (ignored for static).
func NewRigidBody(transform Transform, shape ShapeInterface, bodyType BodyType, density float32) *RigidBody {
	rb := &RigidBody{
		Transform: transform,
		Shape:     shape,
		BodyType:  bodyType,
	}

	if bodyType == BodyTypeStatic {
		// Static bodies have infinite mass and zero inverse inertia.
		rb.Mass = float32(math.Inf(1))
	} else {
		rb.Mass = shape.ComputeMass(density)
		rb.InertiaLocal = shape.ComputeInertia(rb.Mass)
		rb.InverseInertiaLocal = rb.InertiaLocal.Inv()
	}
	rb.Shape.ComputeAABB(rb.Transform)

	return rb
}

// GetInertiaWorld returns the inertia tensor in world space:
// I_world = R * I_local * R^T.
func (rb *RigidBody) GetInertiaWorld() mgl32.Mat3 {
	r := rb.Transform.Rotation.Mat4().Mat3()
	return r.Mul3(rb.InertiaLocal).Mul3(r.Transpose())
}

// GetInverseInertiaWorld returns the inverse inertia tensor in world space.
// Static bodies report zero so impulses vanish against them.
func (rb *RigidBody) GetInverseInertiaWorld() mgl32.Mat3 {
	if rb.BodyType == BodyTypeStatic {
		return mgl32.Mat3{}
	}
	r := rb.Transform.Rotation.Mat4().Mat3()
	return r.Mul3(rb.InverseInertiaLocal).Mul3(r.Transpose())
}

// BodySet is one island of poses addressed by body index.
type BodySet struct {
	Poses []Transform
}

// Bodies is the read-only pose storage consumed by constraint visualisation:
// bodies.Sets[setIndex].Poses[bodyIndex] yields a body's pose.
type Bodies struct {
	Sets []BodySet
}
