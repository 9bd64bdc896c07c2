// Package plume is a collision-geometry core for real-time rigid-body
// physics: convex and mesh shapes, their bounds, ray and overlap queries, and
// the contact data structures the solver and debug visualisation read.
package plume

import (
	"github.com/akmonengine/plume/actor"
	"github.com/go-gl/mathgl/mgl32"
)

const DEFAULT_WORKERS = 1

// RayHit is one result slot of a batched cast.
type RayHit struct {
	Hit    bool
	T      float32
	Normal mgl32.Vec3
}

type batchRecorder struct {
	base    int
	results []RayHit
}

func (r *batchRecorder) OnRayHit(rayIndex int, t float32, normal mgl32.Vec3) {
	r.results[r.base+rayIndex] = RayHit{Hit: true, T: t, Normal: normal}
}

// CastRays resolves a ray batch against a mesh, fanning contiguous chunks
// across workers. results needs one slot per ray; workers write disjoint
// slots, so the only synchronisation is the final join.
func CastRays(mesh *actor.Mesh, transform actor.Transform, rays []actor.Ray, workers int, results []RayHit) {
	workers = max(DEFAULT_WORKERS, workers)
	for i := range rays {
		results[i] = RayHit{}
	}
	task(workers, len(rays), func(start, end int) {
		if start >= end {
			// More workers than rays leaves trailing chunks empty.
			return
		}
		recorder := batchRecorder{base: start, results: results}
		actor.MeshRayTestBatch(mesh, transform, rays[start:end], &recorder)
	})
}
