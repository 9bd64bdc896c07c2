package actor

import (
	"github.com/akmonengine/plume/wide"
)

// MinimumWideRayCount is the batch size below which the scalar ray test is
// expected to win over the lane-parallel one.
const MinimumWideRayCount = 2

// CapsuleWide is one capsule per lane.
type CapsuleWide struct {
	Radius     wide.Float
	HalfLength wide.Float
}

// Broadcast fills every lane with the same capsule.
func (c *CapsuleWide) Broadcast(source Capsule) {
	c.Radius = wide.Broadcast(source.Radius)
	c.HalfLength = wide.Broadcast(source.HalfLength)
}

// Gather writes one capsule into lane 0, leaving the other lanes untouched.
func (c *CapsuleWide) Gather(source Capsule) {
	c.Radius[0] = source.Radius
	c.HalfLength[0] = source.HalfLength
}

// RayTest is the lane-parallel counterpart of Capsule.RayTest: the same
// computation with every branch turned into a select over lane masks. Lanes
// whose intersected mask is clear carry garbage t and normal values.
func (c *CapsuleWide) RayTest(pose *TransformWide, origin, direction wide.Vec3) (intersected wide.Mask, t wide.Float, normal wide.Vec3) {
	zero := wide.Broadcast(0)
	one := wide.Broadcast(1)

	o := pose.Rotation.RotateInverse(origin.Sub(pose.Position))
	d := pose.Rotation.RotateInverse(direction)

	inverseDLength := one.Div(d.Length())
	d = d.Scale(inverseDLength)

	tOffset := o.Dot(d).Neg().Sub(c.HalfLength.Add(c.Radius)).Max(zero)
	o = o.Add(d.Scale(tOffset))

	a := d.X.Mul(d.X).Add(d.Z.Mul(d.Z))
	b := o.X.Mul(d.X).Add(o.Z.Mul(d.Z))
	radiusSquared := c.Radius.Mul(c.Radius)
	cylinderC := o.X.Mul(o.X).Add(o.Z.Mul(o.Z)).Sub(radiusSquared)

	// Outside the infinite cylinder and pointing away: no lane can hit.
	notEscaping := b.LessOrEqual(zero).Or(cylinderC.LessOrEqual(zero))

	notParallel := a.Greater(wide.Broadcast(capsuleAxisParallelEpsilon))
	cylinderDiscriminant := b.Mul(b).Sub(a.Mul(cylinderC))
	cylinderIntersected := cylinderDiscriminant.GreaterOrEqual(zero).And(notEscaping).And(notParallel)
	tCylinder := b.Neg().Sub(cylinderDiscriminant.Max(zero).Sqrt()).Div(a).Max(tOffset.Neg())
	cylinderHit := o.Add(d.Scale(tCylinder))
	useCylinder := cylinderHit.Y.Abs().LessOrEqual(c.HalfLength).And(notParallel)

	// Pick the end cap: the side of the cylindrical hit for oblique rays,
	// +HalfLength when d.y > 0 in the axis-parallel fallback. The parallel
	// case's sign convention is inverted relative to the scalar path.
	sphereY := wide.Select(notParallel,
		wide.Select(cylinderHit.Y.Greater(zero), c.HalfLength, c.HalfLength.Neg()),
		wide.Select(d.Y.Greater(zero), c.HalfLength, c.HalfLength.Neg()))

	os := o
	os.Y = os.Y.Sub(sphereY)
	sphereB := os.Dot(d)
	sphereC := os.Dot(os).Sub(radiusSquared)
	capNotEscaping := sphereB.LessOrEqual(zero).Or(sphereC.LessOrEqual(zero))
	sphereDiscriminant := sphereB.Mul(sphereB).Sub(sphereC)
	capIntersected := sphereDiscriminant.GreaterOrEqual(zero).And(capNotEscaping).And(notEscaping)
	tCap := sphereB.Neg().Sub(sphereDiscriminant.Max(zero).Sqrt()).Max(tOffset.Neg())
	capHit := os.Add(d.Scale(tCap))

	inverseRadius := one.Div(c.Radius)
	cylinderNormal := wide.Vec3{
		X: cylinderHit.X.Mul(inverseRadius),
		Y: zero,
		Z: cylinderHit.Z.Mul(inverseRadius),
	}
	capNormal := capHit.Scale(inverseRadius)

	intersected = wide.SelectMask(useCylinder, cylinderIntersected, capIntersected)
	t = wide.Select(useCylinder, tCylinder, tCap).Add(tOffset).Mul(inverseDLength)
	normal = pose.Rotation.Rotate(wide.SelectVec3(useCylinder, cylinderNormal, capNormal))
	return intersected, t, normal
}
