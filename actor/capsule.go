package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Capsule is the Minkowski sum of a Y-aligned line segment
// [-HalfLength, +HalfLength] with a sphere of radius Radius.
type Capsule struct {
	Radius     float32
	HalfLength float32

	aabb AABB
}

// Below this squared lateral direction magnitude the ray is treated as
// parallel to the capsule axis and only the end caps are tested.
const capsuleAxisParallelEpsilon = 1e-8

func (c *Capsule) TypeID() int {
	return CapsuleTypeID
}

// Length returns the length of the segment part of the capsule.
func (c *Capsule) Length() float32 {
	return 2 * c.HalfLength
}

// ComputeAngularExpansionData returns the maximum distance from the center to
// any point of the shape, and the maximum lateral displacement any point can
// undergo during a rotation. The capsule's minimum radius equals Radius, so
// the expansion is just the half length.
func (c *Capsule) ComputeAngularExpansionData() (maximumRadius, maximumAngularExpansion float32) {
	return c.HalfLength + c.Radius, c.HalfLength
}

func (c *Capsule) ComputeAABB(transform Transform) {
	segmentOffset := transform.Rotation.Rotate(mgl32.Vec3{0, c.HalfLength, 0})
	extent := mgl32.Vec3{
		float32(math.Abs(float64(segmentOffset.X()))) + c.Radius,
		float32(math.Abs(float64(segmentOffset.Y()))) + c.Radius,
		float32(math.Abs(float64(segmentOffset.Z()))) + c.Radius,
	}
	c.aabb = AABB{
		Min: transform.Position.Sub(extent),
		Max: transform.Position.Add(extent),
	}
}

func (c *Capsule) GetAABB() AABB {
	return c.aabb
}

// ComputeMass calculates mass data for the capsule
func (c *Capsule) ComputeMass(density float32) float32 {
	r := c.Radius
	cylinderVolume := 2 * c.HalfLength * r * r * math.Pi
	sphereVolume := (4.0 / 3.0) * math.Pi * r * r * r
	return density * (cylinderVolume + sphereVolume)
}

// ComputeInertia composes the inertia of the cylindrical body with that of the
// two hemispherical caps, with both partial volumes normalised to sum to one.
func (c *Capsule) ComputeInertia(mass float32) mgl32.Mat3 {
	r := c.Radius
	h := c.HalfLength
	cylinderVolume := 2 * h * r * r * float32(math.Pi)
	sphereVolume := (4.0 / 3.0) * float32(math.Pi) * r * r * r
	inverseTotal := 1 / (cylinderVolume + sphereVolume)
	cylinderVolume *= inverseTotal
	sphereVolume *= inverseTotal

	// Hemispheres offset from the center by the half length contribute the
	// parallel-axis h² and the 3rh/4 coupling term.
	ix := mass * (cylinderVolume*(r*r/4+h*h/3) + sphereVolume*(2*r*r/5+3*r*h/4+h*h))
	iy := mass * (cylinderVolume*r*r/2 + sphereVolume*2*r*r/5)

	return mgl32.Mat3{
		ix, 0, 0,
		0, iy, 0,
		0, 0, ix,
	}
}

// RayTest intersects a world-space ray with the capsule. t is measured in
// units of the direction's length and the normal is returned in world space.
func (c *Capsule) RayTest(transform Transform, origin, direction mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	inverseRotation := transform.Rotation.Conjugate()
	o := inverseRotation.Rotate(origin.Sub(transform.Position))
	d := inverseRotation.Rotate(direction)

	inverseDLength := 1 / d.Len()
	d = d.Mul(inverseDLength)

	// Move the origin up to the earliest possible time of impact so the
	// quadratics below stay well conditioned for distant rays.
	tOffset := -o.Dot(d) - (c.HalfLength + c.Radius)
	if tOffset < 0 {
		tOffset = 0
	}
	o = o.Add(d.Mul(tOffset))

	a := d.X()*d.X() + d.Z()*d.Z()
	b := o.X()*d.X() + o.Z()*d.Z()
	radiusSquared := c.Radius * c.Radius
	cylinderC := o.X()*o.X() + o.Z()*o.Z() - radiusSquared
	if b > 0 && cylinderC > 0 {
		// Outside the infinite cylinder and pointing away.
		return false, 0, mgl32.Vec3{}
	}

	var sphereY float32
	if a > capsuleAxisParallelEpsilon {
		discriminant := b*b - a*cylinderC
		if discriminant < 0 {
			return false, 0, mgl32.Vec3{}
		}
		t := (-b - float32(math.Sqrt(float64(discriminant)))) / a
		if t < -tOffset {
			t = -tOffset
		}
		hit := o.Add(d.Mul(t))
		if hit.Y() >= -c.HalfLength && hit.Y() <= c.HalfLength {
			normal := transform.Rotation.Rotate(mgl32.Vec3{hit.X() / c.Radius, 0, hit.Z() / c.Radius})
			return true, (t + tOffset) * inverseDLength, normal
		}
		// The cylindrical hit lies beyond the segment; test the nearer cap.
		if hit.Y() > 0 {
			sphereY = c.HalfLength
		} else {
			sphereY = -c.HalfLength
		}
	} else {
		// Axis-parallel ray: only the cap the ray heads toward can be hit.
		if d.Y() > 0 {
			sphereY = -c.HalfLength
		} else {
			sphereY = c.HalfLength
		}
	}

	os := mgl32.Vec3{o.X(), o.Y() - sphereY, o.Z()}
	sphereB := os.Dot(d)
	sphereC := os.Dot(os) - radiusSquared
	if sphereB > 0 && sphereC > 0 {
		return false, 0, mgl32.Vec3{}
	}
	discriminant := sphereB*sphereB - sphereC
	if discriminant < 0 {
		return false, 0, mgl32.Vec3{}
	}
	t := -sphereB - float32(math.Sqrt(float64(discriminant)))
	if t < -tOffset {
		t = -tOffset
	}
	hit := os.Add(d.Mul(t))
	normal := transform.Rotation.Rotate(hit.Mul(1 / c.Radius))
	return true, (t + tOffset) * inverseDLength, normal
}
