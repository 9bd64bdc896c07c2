package actor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/plume/wide"
	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	for trial := 0; trial < 100; trial++ {
		transform := Transform{
			Position: randomUnitVector(rng).Mul(float32(rng.Float64() * 10)),
			Rotation: mgl32.QuatRotate(float32(rng.Float64()*2*math.Pi), randomUnitVector(rng)),
		}
		point := randomUnitVector(rng).Mul(float32(rng.Float64() * 5))

		restored := transform.ToLocal(transform.ToWorld(point))
		if !vec3Equal(point, restored, 1e-4) {
			t.Fatalf("round trip %v -> %v", point, restored)
		}
	}
}

func TestTransformIdentity(t *testing.T) {
	identity := NewTransform()
	point := mgl32.Vec3{1, 2, 3}
	if identity.ToWorld(point) != point || identity.ToLocal(point) != point {
		t.Error("identity transform must not move points")
	}
}

func TestTransformWideBroadcast(t *testing.T) {
	transform := Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0}),
	}
	var w TransformWide
	w.Broadcast(transform)

	for lane := 0; lane < wide.Width; lane++ {
		if w.Position.Lane(lane) != transform.Position {
			t.Errorf("position lane %d = %v", lane, w.Position.Lane(lane))
		}
	}

	// Lane rotation agrees with the scalar rotation.
	point := mgl32.Vec3{0.5, -1, 2}
	rotated := w.Rotation.Rotate(wide.BroadcastVec3(point))
	expected := transform.Rotation.Rotate(point)
	if !vec3Equal(rotated.Lane(0), expected, 1e-5) {
		t.Errorf("wide rotate = %v, scalar = %v", rotated.Lane(0), expected)
	}
}
