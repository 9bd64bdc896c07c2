package main

import (
	"fmt"

	"github.com/akmonengine/plume"
	"github.com/akmonengine/plume/actor"
	"github.com/akmonengine/plume/constraint"
	"github.com/akmonengine/plume/manifold"
	"github.com/go-gl/mathgl/mgl32"
)

func main() {
	// A small pyramid-roof mesh sitting on the XZ plane.
	mesh := actor.NewMesh([]actor.Triangle{
		{A: mgl32.Vec3{-1, 0, -1}, B: mgl32.Vec3{1, 0, -1}, C: mgl32.Vec3{0, 1, 0}},
		{A: mgl32.Vec3{1, 0, -1}, B: mgl32.Vec3{1, 0, 1}, C: mgl32.Vec3{0, 1, 0}},
		{A: mgl32.Vec3{1, 0, 1}, B: mgl32.Vec3{-1, 0, 1}, C: mgl32.Vec3{0, 1, 0}},
		{A: mgl32.Vec3{-1, 0, 1}, B: mgl32.Vec3{-1, 0, -1}, C: mgl32.Vec3{0, 1, 0}},
	}, mgl32.Vec3{1, 1, 1})
	defer mesh.Dispose()

	meshBody := actor.NewRigidBody(actor.NewTransform(), mesh, actor.BodyTypeStatic, 0)

	capsule := &actor.Capsule{Radius: 0.5, HalfLength: 1}
	capsulePose := actor.NewTransform()
	capsulePose.Position = mgl32.Vec3{0, 3, 0}
	capsuleBody := actor.NewRigidBody(capsulePose, capsule, actor.BodyTypeDynamic, 1)

	fmt.Printf("mesh: %d triangles, type id %d\n", mesh.TriangleCount(), mesh.TypeID())
	fmt.Printf("capsule: mass %.3f, type id %d\n", capsuleBody.Mass, capsule.TypeID())

	// Drop a ray from the capsule onto the roof.
	down := mgl32.Vec3{0, -1, 0}
	if hit, t, normal := mesh.RayTest(meshBody.Transform, capsulePose.Position, down); hit {
		fmt.Printf("ray down from capsule: t=%.3f normal=%v\n", t, normal)
	}

	// A ray up into the capsule itself, fired from the origin below it.
	if hit, t, normal := capsule.RayTest(capsulePose, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}); hit {
		fmt.Printf("ray up into capsule: t=%.3f normal=%v\n", t, normal)
	}

	// Batched casts across workers.
	rays := []actor.Ray{
		{Origin: mgl32.Vec3{0.5, 3, 0}, Direction: down, MaxT: 10},
		{Origin: mgl32.Vec3{-0.5, 3, 0}, Direction: down, MaxT: 10},
		{Origin: mgl32.Vec3{5, 3, 0}, Direction: down, MaxT: 10},
	}
	results := make([]plume.RayHit, len(rays))
	plume.CastRays(mesh, meshBody.Transform, rays, 2, results)
	for i, r := range results {
		fmt.Printf("batch ray %d: hit=%v t=%.3f\n", i, r.Hit, r.T)
	}

	// Which triangles does the capsule's bounds candidate against?
	capsule.ComputeAABB(capsulePose)
	box := capsule.GetAABB()
	var overlaps actor.ShapeOverlaps
	mesh.FindLocalOverlaps([]actor.AABB{box}, &overlaps)
	fmt.Printf("overlap candidates: %v\n", overlaps.Bucket(0))

	// Fake a manifold the narrow phase would produce, prep it, draw it.
	var m manifold.ConvexManifold
	m.Normal = mgl32.Vec3{0, 1, 0}
	m.Count = 2
	m.Contacts[0] = manifold.Contact{Offset: mgl32.Vec3{0.3, -1.5, 0}, Depth: 0.01, FeatureID: 7}
	m.Contacts[1] = manifold.Contact{Offset: mgl32.Vec3{-0.3, -1.5, 0}, Depth: -0.02, FeatureID: 8}

	prestep := constraint.BuildConvexPrestep(&m)
	bodies := &actor.Bodies{Sets: []actor.BodySet{{Poses: []actor.Transform{capsulePose}}}}
	var lines []constraint.LineInstance
	constraint.ExtractContactLines(&prestep, 0, []int{0}, bodies, mgl32.Vec3{1, 0.5, 0}, &lines)
	fmt.Printf("contact lines: %d (%d contacts)\n", len(lines), prestep.Count)
}
