package wide

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is one three-component vector per lane.
type Vec3 struct {
	X, Y, Z Float
}

// BroadcastVec3 fills every lane with the same vector.
func BroadcastVec3(v mgl32.Vec3) Vec3 {
	return Vec3{
		X: Broadcast(v.X()),
		Y: Broadcast(v.Y()),
		Z: Broadcast(v.Z()),
	}
}

// Lane extracts one lane as a scalar vector.
func (v Vec3) Lane(i int) mgl32.Vec3 {
	return mgl32.Vec3{v.X[i], v.Y[i], v.Z[i]}
}

// SetLane writes a scalar vector into one lane.
func (v *Vec3) SetLane(i int, s mgl32.Vec3) {
	v.X[i] = s.X()
	v.Y[i] = s.Y()
	v.Z[i] = s.Z()
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X.Add(other.X), v.Y.Add(other.Y), v.Z.Add(other.Z)}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X.Sub(other.X), v.Y.Sub(other.Y), v.Z.Sub(other.Z)}
}

// Scale multiplies every lane's vector by that lane's scalar.
func (v Vec3) Scale(s Float) Vec3 {
	return Vec3{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

func (v Vec3) Dot(other Vec3) Float {
	return v.X.Mul(other.X).Add(v.Y.Mul(other.Y)).Add(v.Z.Mul(other.Z))
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y.Mul(other.Z).Sub(v.Z.Mul(other.Y)),
		Y: v.Z.Mul(other.X).Sub(v.X.Mul(other.Z)),
		Z: v.X.Mul(other.Y).Sub(v.Y.Mul(other.X)),
	}
}

func (v Vec3) Length() Float {
	return v.Dot(v).Sqrt()
}

// SelectVec3 blends two wide vectors lane by lane.
func SelectVec3(m Mask, onTrue, onFalse Vec3) Vec3 {
	return Vec3{
		X: Select(m, onTrue.X, onFalse.X),
		Y: Select(m, onTrue.Y, onFalse.Y),
		Z: Select(m, onTrue.Z, onFalse.Z),
	}
}

// Quat is one quaternion per lane.
type Quat struct {
	X, Y, Z, W Float
}

// BroadcastQuat fills every lane with the same quaternion.
func BroadcastQuat(q mgl32.Quat) Quat {
	return Quat{
		X: Broadcast(q.V.X()),
		Y: Broadcast(q.V.Y()),
		Z: Broadcast(q.V.Z()),
		W: Broadcast(q.W),
	}
}

// Rotate applies each lane's rotation to that lane's vector:
// v' = v + 2w(q×v) + 2q×(q×v).
func (q Quat) Rotate(v Vec3) Vec3 {
	qv := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	c := qv.Cross(v)
	cc := qv.Cross(c)
	return v.Add(c.Scale(q.W).Add(cc).Scale(Broadcast(2)))
}

// RotateInverse applies the conjugate of each lane's rotation.
func (q Quat) RotateInverse(v Vec3) Vec3 {
	conj := Quat{X: q.X.Neg(), Y: q.Y.Neg(), Z: q.Z.Neg(), W: q.W}
	return conj.Rotate(v)
}
