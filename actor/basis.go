package actor

import "github.com/go-gl/mathgl/mgl32"

// BuildOrthonormalBasis produces two unit tangents such that
// (t1, normal, t2) is right-handed, given a unit normal. It uses the revised
// Frisvad construction: the original's singularity at normal.z = -1 is folded
// into a sign flip, leaving a single discontinuity at normal.z = 0 whose
// numerical behaviour is acceptable for contact bases.
func BuildOrthonormalBasis(normal mgl32.Vec3) (t1, t2 mgl32.Vec3) {
	sign := float32(1)
	if normal.Z() < 0 {
		sign = -1
	}
	scale := -1 / (sign + normal.Z())

	t1 = mgl32.Vec3{
		normal.X() * normal.Y() * scale,
		sign + normal.Y()*normal.Y()*scale,
		-normal.Y(),
	}
	t2 = mgl32.Vec3{
		1 + sign*normal.X()*normal.X()*scale,
		sign * t1.X(),
		-sign * normal.X(),
	}
	return t1, t2
}

// FindPerpendicular computes only the first tangent of BuildOrthonormalBasis.
func FindPerpendicular(normal mgl32.Vec3) mgl32.Vec3 {
	sign := float32(1)
	if normal.Z() < 0 {
		sign = -1
	}
	scale := -1 / (sign + normal.Z())
	return mgl32.Vec3{
		normal.X() * normal.Y() * scale,
		sign + normal.Y()*normal.Y()*scale,
		-normal.Y(),
	}
}

// Swap exchanges two values in place.
func Swap[T any](a, b *T) {
	*a, *b = *b, *a
}
