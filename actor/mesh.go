package actor

import (
	"math"

	"github.com/akmonengine/plume/buffers"
	"github.com/akmonengine/plume/tree"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	meshTrianglePool = buffers.Pool[Triangle]{}
	meshBoundsPool   = buffers.Pool[tree.Bounds]{}
)

// Mesh is an immutable triangle soup accelerated by a bounding-volume tree.
// Triangles are stored unscaled; the scale is applied to incoming queries via
// the cached inverse scale, and to outgoing triangles and normals.
type Mesh struct {
	triangles buffers.Buffer[Triangle]
	tree      tree.Tree

	scale        mgl32.Vec3
	inverseScale mgl32.Vec3

	// Unscaled bounds of the whole triangle set; queries that miss this box
	// skip the tree descent entirely.
	localBounds AABB

	aabb AABB
}

// NewMesh copies the triangles into pooled storage, builds the tree over the
// per-triangle local bounds and records the scale. The bounds scratch buffer
// lives only for the duration of the constructor.
func NewMesh(triangles []Triangle, scale mgl32.Vec3) *Mesh {
	m := &Mesh{}
	m.triangles = meshTrianglePool.Take(len(triangles))
	copy(m.triangles.Slice(), triangles)
	m.SetScale(scale)

	m.localBounds = AABB{
		Min: mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))},
		Max: mgl32.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))},
	}
	bounds := meshBoundsPool.Take(len(triangles))
	for i := range triangles {
		b := triangles[i].Bounds()
		bounds.Slice()[i] = b
		m.localBounds = m.localBounds.Merge(AABB{Min: b.Min, Max: b.Max})
	}
	m.tree.SweepBuild(bounds.Slice())
	meshBoundsPool.Return(&bounds)
	return m
}

// LocalBounds returns the unscaled bounds of the whole triangle set.
func (m *Mesh) LocalBounds() AABB {
	return m.localBounds
}

// Dispose returns the triangle storage and the tree to their pools.
func (m *Mesh) Dispose() {
	meshTrianglePool.Return(&m.triangles)
	m.tree.Dispose()
}

func (m *Mesh) TypeID() int {
	return MeshTypeID
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return m.triangles.Len()
}

// SetScale records the scale and its cached component-wise inverse. A zero
// scale component maps to the largest finite value rather than infinity so
// that scaled query boxes stay finite.
func (m *Mesh) SetScale(scale mgl32.Vec3) {
	m.scale = scale
	for axis := 0; axis < 3; axis++ {
		if scale[axis] != 0 {
			m.inverseScale[axis] = 1 / scale[axis]
		} else {
			m.inverseScale[axis] = math.MaxFloat32
		}
	}
}

func (m *Mesh) Scale() mgl32.Vec3 {
	return m.scale
}

func (m *Mesh) InverseScale() mgl32.Vec3 {
	return m.inverseScale
}

// GetLocalTriangle returns triangle i with the mesh scale applied.
func (m *Mesh) GetLocalTriangle(i int) Triangle {
	t := m.triangles.Slice()[i]
	return Triangle{
		A: mulElem(t.A, m.scale),
		B: mulElem(t.B, m.scale),
		C: mulElem(t.C, m.scale),
	}
}

// GetLocalTriangleWide writes triangle i, scaled, into lane 0 of the target.
func (m *Mesh) GetLocalTriangleWide(i int, target *TriangleWide) {
	t := m.GetLocalTriangle(i)
	target.A.SetLane(0, t.A)
	target.B.SetLane(0, t.B)
	target.C.SetLane(0, t.C)
}

// ComputeAABB folds the rotated scaled vertices of every triangle. Linear in
// the triangle count; meshes are assumed static so this runs rarely.
func (m *Mesh) ComputeAABB(transform Transform) {
	bounds := AABB{
		Min: mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))},
		Max: mgl32.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))},
	}
	for _, t := range m.triangles.Slice() {
		bounds.ExpandToContain(transform.Rotation.Rotate(mulElem(t.A, m.scale)))
		bounds.ExpandToContain(transform.Rotation.Rotate(mulElem(t.B, m.scale)))
		bounds.ExpandToContain(transform.Rotation.Rotate(mulElem(t.C, m.scale)))
	}
	bounds.Min = bounds.Min.Add(transform.Position)
	bounds.Max = bounds.Max.Add(transform.Position)
	m.aabb = bounds
}

func (m *Mesh) GetAABB() AABB {
	return m.aabb
}

// ComputeMass: meshes are static geometry with effectively infinite mass.
func (m *Mesh) ComputeMass(density float32) float32 {
	return float32(math.Inf(1))
}

func (m *Mesh) ComputeInertia(mass float32) mgl32.Mat3 {
	return mgl32.Mat3{}
}

// toLocalRay pulls a world ray into the unscaled mesh frame.
func (m *Mesh) toLocalRay(transform Transform, origin, direction mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	inverseRotation := transform.Rotation.Conjugate()
	localOrigin := mulElem(inverseRotation.Rotate(origin.Sub(transform.Position)), m.inverseScale)
	localDirection := mulElem(inverseRotation.Rotate(direction), m.inverseScale)
	return localOrigin, localDirection
}

// toWorldNormal maps an unscaled-frame triangle normal back to a unit
// world-space normal.
func (m *Mesh) toWorldNormal(transform Transform, localNormal mgl32.Vec3) mgl32.Vec3 {
	return transform.Rotation.Rotate(mulElem(localNormal, m.inverseScale)).Normalize()
}

type meshFirstHitTester struct {
	triangles []Triangle
	minimumT  float32
	normal    mgl32.Vec3
}

func (lt *meshFirstHitTester) TestLeaf(leafIndex int, ray *tree.Ray, maxT *float32) {
	tri := lt.triangles[leafIndex]
	hit, t, normal := TriangleRayTest(tri.A, tri.B, tri.C, ray.Origin, ray.Direction)
	if hit && t < lt.minimumT && t <= *maxT {
		lt.minimumT = t
		lt.normal = normal
		// Narrow the traversal bound; nothing farther can be the first hit.
		*maxT = t
	}
}

// RayTest returns the first hit along the ray, unbounded.
func (m *Mesh) RayTest(transform Transform, origin, direction mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	return m.RayTestWithin(transform, origin, direction, float32(math.Inf(1)))
}

// RayTestWithin returns the first hit along the ray with t <= maxT. t is in
// units of the direction's length; the normal is unit length in world space.
func (m *Mesh) RayTestWithin(transform Transform, origin, direction mgl32.Vec3, maxT float32) (bool, float32, mgl32.Vec3) {
	localOrigin, localDirection := m.toLocalRay(transform, origin, direction)
	tester := meshFirstHitTester{
		triangles: m.triangles.Slice(),
		minimumT:  float32(math.Inf(1)),
	}
	tree.RayCast(&m.tree, localOrigin, localDirection, &maxT, &tester)
	if math.IsInf(float64(tester.minimumT), 1) {
		return false, 0, mgl32.Vec3{}
	}
	return true, tester.minimumT, m.toWorldNormal(transform, tester.normal)
}

// CompoundRayHitHandler receives every triangle hit of an all-hits ray test,
// identified by child index. Narrowing *maxT prunes the remaining traversal.
type CompoundRayHitHandler interface {
	OnRayHit(childIndex int, maxT *float32, t float32, normal mgl32.Vec3)
}

type meshAllHitsTester[H CompoundRayHitHandler] struct {
	mesh      *Mesh
	transform Transform
	handler   H
}

func (lt *meshAllHitsTester[H]) TestLeaf(leafIndex int, ray *tree.Ray, maxT *float32) {
	tri := lt.mesh.triangles.Slice()[leafIndex]
	hit, t, normal := TriangleRayTest(tri.A, tri.B, tri.C, ray.Origin, ray.Direction)
	if hit && t <= *maxT {
		lt.handler.OnRayHit(leafIndex, maxT, t, lt.mesh.toWorldNormal(lt.transform, normal))
	}
}

// MeshRayTestAll reports every triangle the ray hits within maxT to the
// handler. Pass the handler by pointer to observe its mutations.
func MeshRayTestAll[H CompoundRayHitHandler](m *Mesh, transform Transform, origin, direction mgl32.Vec3, maxT float32, handler H) {
	localOrigin, localDirection := m.toLocalRay(transform, origin, direction)
	tester := meshAllHitsTester[H]{mesh: m, transform: transform, handler: handler}
	tree.RayCast(&m.tree, localOrigin, localDirection, &maxT, &tester)
}

// Ray is one entry of a batched ray query.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
	MaxT      float32
}

// ShapeRayBatchHitHandler receives the first hit of each ray in a batch,
// identified by the ray's index in the batch.
type ShapeRayBatchHitHandler interface {
	OnRayHit(rayIndex int, t float32, normal mgl32.Vec3)
}

// MeshRayTestBatch runs a first-hit test per batch entry, surfacing hits with
// the original ray index. The tree is traversed once per ray.
func MeshRayTestBatch[H ShapeRayBatchHitHandler](m *Mesh, transform Transform, rays []Ray, handler H) {
	for i := range rays {
		hit, t, normal := m.RayTestWithin(transform, rays[i].Origin, rays[i].Direction, rays[i].MaxT)
		if hit {
			handler.OnRayHit(i, t, normal)
		}
	}
}

// ShapeOverlaps buckets candidate triangle indices per query of a batched
// overlap test.
type ShapeOverlaps struct {
	buckets [][]int
}

// Reset prepares one empty bucket per query, reusing prior storage.
func (o *ShapeOverlaps) Reset(queryCount int) {
	if cap(o.buckets) < queryCount {
		o.buckets = make([][]int, queryCount)
	}
	o.buckets = o.buckets[:queryCount]
	for i := range o.buckets {
		o.buckets[i] = o.buckets[i][:0]
	}
}

// Bucket returns the candidate indices collected for query i.
func (o *ShapeOverlaps) Bucket(i int) []int {
	return o.buckets[i]
}

type overlapBucketEnumerator struct {
	bucket *[]int
}

func (e *overlapBucketEnumerator) LoopBody(leafIndex int) bool {
	*e.bucket = append(*e.bucket, leafIndex)
	return true
}

// scaleQueryBox maps a scaled-space box into the unscaled mesh frame,
// restoring the corner order when a negative scale flips an axis.
func (m *Mesh) scaleQueryBox(boxMin, boxMax mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	scaledMin := mulElem(boxMin, m.inverseScale)
	scaledMax := mulElem(boxMax, m.inverseScale)
	for axis := 0; axis < 3; axis++ {
		if scaledMin[axis] > scaledMax[axis] {
			Swap(&scaledMin[axis], &scaledMax[axis])
		}
	}
	return scaledMin, scaledMax
}

// FindLocalOverlaps collects, per query box, the indices of all triangles
// whose local bounds overlap it. Boxes are given in the mesh's scaled local
// space. Every candidate is reported; the walk never stops early.
func (m *Mesh) FindLocalOverlaps(queries []AABB, overlaps *ShapeOverlaps) {
	overlaps.Reset(len(queries))
	for i := range queries {
		queryMin, queryMax := m.scaleQueryBox(queries[i].Min, queries[i].Max)
		if !m.localBounds.Overlaps(AABB{Min: queryMin, Max: queryMax}) {
			continue
		}
		enumerator := overlapBucketEnumerator{bucket: &overlaps.buckets[i]}
		tree.GetOverlaps(&m.tree, queryMin, queryMax, &enumerator)
	}
}

type sweepLeafCollector struct {
	overlaps *[]int
}

func (c *sweepLeafCollector) TestLeaf(leafIndex int, maxT *float32) {
	*c.overlaps = append(*c.overlaps, leafIndex)
}

// FindLocalSweepOverlaps collects the indices of all triangles the box
// [boxMin, boxMax] may reach while sweeping along sweep for t in [0, maxT].
// Box and sweep are given in the mesh's scaled local space.
func (m *Mesh) FindLocalSweepOverlaps(boxMin, boxMax, sweep mgl32.Vec3, maxT float32, overlaps *[]int) {
	queryMin, queryMax := m.scaleQueryBox(boxMin, boxMax)
	scaledSweep := mulElem(sweep, m.inverseScale)
	if !math.IsInf(float64(maxT), 1) {
		// The whole sweep fits in the start box merged with the end box; if
		// that volume misses the mesh there is nothing to traverse.
		start := AABB{Min: queryMin, Max: queryMax}
		swept := start.Merge(AABB{
			Min: queryMin.Add(scaledSweep.Mul(maxT)),
			Max: queryMax.Add(scaledSweep.Mul(maxT)),
		})
		if !swept.Overlaps(m.localBounds) {
			return
		}
	}
	collector := sweepLeafCollector{overlaps: overlaps}
	tree.Sweep(&m.tree, queryMin, queryMax, scaledSweep, &maxT, &collector)
}
