package wide

var (
	one    = Broadcast(1)
	negOne = Broadcast(-1)
	zero   = Broadcast(0)
)

// BuildOrthonormalBasis builds two unit tangents per lane such that
// (t1, normal, t2) is right-handed. Uses the revised Frisvad construction,
// which keeps the original's branch-free form while moving its singularity
// away from normal.z = -1; the residual discontinuity sits at normal.z = 0.
func BuildOrthonormalBasis(normal Vec3) (t1, t2 Vec3) {
	sign := Select(normal.Z.Less(zero), negOne, one)
	scale := negOne.Div(sign.Add(normal.Z))

	t1 = Vec3{
		X: normal.X.Mul(normal.Y).Mul(scale),
		Y: sign.Add(normal.Y.Mul(normal.Y).Mul(scale)),
		Z: normal.Y.Neg(),
	}
	t2 = Vec3{
		X: one.Add(sign.Mul(normal.X).Mul(normal.X).Mul(scale)),
		Y: sign.Mul(t1.X),
		Z: sign.Mul(normal.X).Neg(),
	}
	return t1, t2
}

// FindPerpendicular computes only the first tangent of BuildOrthonormalBasis.
func FindPerpendicular(normal Vec3) Vec3 {
	sign := Select(normal.Z.Less(zero), negOne, one)
	scale := negOne.Div(sign.Add(normal.Z))
	return Vec3{
		X: normal.X.Mul(normal.Y).Mul(scale),
		Y: sign.Add(normal.Y.Mul(normal.Y).Mul(scale)),
		Z: normal.Y.Neg(),
	}
}
