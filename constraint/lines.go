package constraint

import (
	"github.com/akmonengine/plume/actor"
	"github.com/go-gl/mathgl/mgl32"
)

// LineInstance is one renderable debug segment.
type LineInstance struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
	Color mgl32.Vec3
}

const (
	contactTangentLength = 0.1
	contactNormalLength  = 0.15

	// Separated (speculative) contacts are drawn dimmed.
	separatedTintScale = 0.25
)

// AddContactLine appends the two segments visualising one contact: one along
// a tangent of the contact surface and one along the contact normal. The
// offset is from the body's position to the contact point, in world space.
func AddContactLine(pose actor.Transform, offset, normal mgl32.Vec3, depth float32, tint mgl32.Vec3, lines *[]LineInstance) {
	point := pose.Position.Add(offset)
	tangent := actor.FindPerpendicular(normal)
	color := tint
	if depth < 0 {
		color = tint.Mul(separatedTintScale)
	}
	*lines = append(*lines,
		LineInstance{Start: point, End: point.Add(tangent.Mul(contactTangentLength)), Color: color},
		LineInstance{Start: point, End: point.Add(normal.Mul(contactNormalLength)), Color: color},
	)
}

// ExtractContactLines projects a prestep bundle into debug lines: two
// segments per contact, for any contact count and either manifold kind, one-
// or two-body. Only the first body's pose is read because contact offsets are
// expressed from body A.
func ExtractContactLines(prestep ContactPrestep, setIndex int, bodyIndices []int, bodies *actor.Bodies, tint mgl32.Vec3, lines *[]LineInstance) {
	pose := bodies.Sets[setIndex].Poses[bodyIndices[0]]
	for i := 0; i < prestep.ContactCount(); i++ {
		offset, normal, depth := prestep.Contact(i)
		AddContactLine(pose, offset, normal, depth, tint, lines)
	}
}
