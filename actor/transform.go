package actor

import (
	"github.com/akmonengine/plume/wide"
	"github.com/go-gl/mathgl/mgl32"
)

// Transform represents a rigid pose: a position and an orientation.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
	}
}

// ToLocal maps a world-space point into the transform's local frame.
func (t Transform) ToLocal(point mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Conjugate().Rotate(point.Sub(t.Position))
}

// ToWorld maps a local-space point into world space.
func (t Transform) ToWorld(point mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Rotate(point).Add(t.Position)
}

// TransformWide is one transform per lane.
type TransformWide struct {
	Position wide.Vec3
	Rotation wide.Quat
}

// Broadcast fills every lane with the same transform.
func (t *TransformWide) Broadcast(source Transform) {
	t.Position = wide.BroadcastVec3(source.Position)
	t.Rotation = wide.BroadcastQuat(source.Rotation)
}
