package constraint

import (
	"testing"

	"github.com/akmonengine/plume/actor"
	"github.com/akmonengine/plume/manifold"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBodies(poses ...actor.Transform) *actor.Bodies {
	return &actor.Bodies{Sets: []actor.BodySet{{Poses: poses}}}
}

func convexPrestepWithCount(count int) *ConvexContactPrestep {
	prestep := &ConvexContactPrestep{
		Normal: mgl32.Vec3{0, 1, 0},
		Count:  count,
	}
	for i := 0; i < count; i++ {
		prestep.Contacts[i] = ConvexPrestepContact{
			OffsetA:          mgl32.Vec3{float32(i), 0, 0},
			PenetrationDepth: 0.1,
		}
	}
	return prestep
}

func nonconvexPrestepWithCount(count int) *NonconvexContactPrestep {
	prestep := &NonconvexContactPrestep{Count: count}
	for i := 0; i < count; i++ {
		prestep.Contacts[i] = NonconvexPrestepContact{
			Offset: mgl32.Vec3{0, 0, float32(i)},
			Normal: mgl32.Vec3{0, 0, 1},
			Depth:  0.05,
		}
	}
	return prestep
}

// Every supported layout emits exactly two lines per contact: convex one- and
// two-body with 1..4 contacts, nonconvex with 2..8.
func TestExtractContactLinesCounts(t *testing.T) {
	pose := actor.NewTransform()
	tint := mgl32.Vec3{1, 0.5, 0}

	bodyIndexVariants := [][]int{
		{0},    // one-body constraint
		{0, 1}, // two-body constraint; only body A's pose is read
	}

	for _, bodyIndices := range bodyIndexVariants {
		bodies := testBodies(pose, actor.NewTransform())

		for count := 1; count <= manifold.MaximumConvexContacts; count++ {
			var lines []LineInstance
			ExtractContactLines(convexPrestepWithCount(count), 0, bodyIndices, bodies, tint, &lines)
			assert.Len(t, lines, 2*count, "convex count %d bodies %v", count, bodyIndices)
		}

		for count := 2; count <= manifold.MaximumNonconvexContacts; count++ {
			var lines []LineInstance
			ExtractContactLines(nonconvexPrestepWithCount(count), 0, bodyIndices, bodies, tint, &lines)
			assert.Len(t, lines, 2*count, "nonconvex count %d bodies %v", count, bodyIndices)
		}
	}
}

func TestExtractContactLinesUsesBodyAPose(t *testing.T) {
	poseA := actor.NewTransform()
	poseA.Position = mgl32.Vec3{10, 0, 0}
	poseB := actor.NewTransform()
	poseB.Position = mgl32.Vec3{-50, 0, 0}
	bodies := testBodies(poseA, poseB)

	prestep := convexPrestepWithCount(1)
	prestep.Contacts[0].OffsetA = mgl32.Vec3{1, 2, 3}

	var lines []LineInstance
	ExtractContactLines(prestep, 0, []int{0, 1}, bodies, mgl32.Vec3{1, 1, 1}, &lines)
	require.Len(t, lines, 2)

	// Contact offsets are expressed from body A, so both segments start at
	// poseA.Position + offset regardless of body B.
	expectedStart := mgl32.Vec3{11, 2, 3}
	assert.Equal(t, expectedStart, lines[0].Start)
	assert.Equal(t, expectedStart, lines[1].Start)
}

func TestAddContactLineGeometry(t *testing.T) {
	pose := actor.NewTransform()
	normal := mgl32.Vec3{0, 1, 0}
	offset := mgl32.Vec3{2, 0, 0}
	tint := mgl32.Vec3{1, 0, 0}

	var lines []LineInstance
	AddContactLine(pose, offset, normal, 0.1, tint, &lines)
	require.Len(t, lines, 2)

	point := pose.Position.Add(offset)
	tangentLine, normalLine := lines[0], lines[1]

	assert.Equal(t, point, tangentLine.Start)
	assert.Equal(t, point, normalLine.Start)

	// The tangent segment is perpendicular to the normal.
	tangentDirection := tangentLine.End.Sub(tangentLine.Start)
	assert.InDelta(t, 0, tangentDirection.Dot(normal), 1e-6)

	// The normal segment points along the contact normal.
	normalDirection := normalLine.End.Sub(normalLine.Start)
	assert.InDelta(t, 0, normalDirection.Cross(normal).Len(), 1e-6)

	// Penetrating contacts carry the full tint.
	assert.Equal(t, tint, tangentLine.Color)
	assert.Equal(t, tint, normalLine.Color)
}

func TestAddContactLineSeparatedTint(t *testing.T) {
	var lines []LineInstance
	tint := mgl32.Vec3{1, 1, 1}
	AddContactLine(actor.NewTransform(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, -0.02, tint, &lines)
	require.Len(t, lines, 2)
	assert.Equal(t, tint.Mul(separatedTintScale), lines[0].Color,
		"separated contacts draw dimmed")
}

func TestBuildConvexPrestep(t *testing.T) {
	m := &manifold.ConvexManifold{
		OffsetB: mgl32.Vec3{5, 0, 0},
		Normal:  mgl32.Vec3{0, 0, 1},
		Count:   3,
	}
	for i := 0; i < 3; i++ {
		m.Contacts[i] = manifold.Contact{
			Offset:    mgl32.Vec3{float32(i), float32(i), 0},
			Depth:     float32(i) * 0.1,
			FeatureID: int32(i),
		}
	}

	prestep := BuildConvexPrestep(m)
	assert.Equal(t, 3, prestep.Count)
	assert.Equal(t, m.Normal, prestep.Normal)
	for i := 0; i < 3; i++ {
		assert.Equal(t, m.Contacts[i].Offset, prestep.Contacts[i].OffsetA, "contact %d", i)
		assert.Equal(t, m.Contacts[i].Depth, prestep.Contacts[i].PenetrationDepth, "contact %d", i)
	}
	assert.True(t, prestep.Convex())
	assert.Equal(t, 3, prestep.ContactCount())

	offset, normal, depth := prestep.Contact(1)
	assert.Equal(t, m.Contacts[1].Offset, offset)
	assert.Equal(t, m.Normal, normal)
	assert.Equal(t, m.Contacts[1].Depth, depth)
}

func TestBuildNonconvexPrestep(t *testing.T) {
	m := &manifold.NonconvexManifold{Count: 5}
	for i := 0; i < 5; i++ {
		m.Contacts[i] = manifold.NonconvexContact{
			Offset:    mgl32.Vec3{float32(i), 0, 0},
			Depth:     float32(i) * 0.01,
			Normal:    mgl32.Vec3{0, 1, 0},
			FeatureID: int32(10 + i),
		}
	}

	prestep := BuildNonconvexPrestep(m)
	assert.Equal(t, 5, prestep.Count)
	assert.False(t, prestep.Convex())
	for i := 0; i < 5; i++ {
		offset, normal, depth := prestep.Contact(i)
		assert.Equal(t, m.Contacts[i].Offset, offset, "contact %d", i)
		assert.Equal(t, m.Contacts[i].Normal, normal, "contact %d", i)
		assert.Equal(t, m.Contacts[i].Depth, depth, "contact %d", i)
	}
}
