// Package tree implements the bounding-volume hierarchy backing mesh queries.
// Traversals hand every candidate leaf to a caller-supplied tester; the tree
// itself never interprets leaf contents.
package tree

import (
	"math"
	"sort"

	"github.com/akmonengine/plume/buffers"
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned box in the tree's local space.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

type node struct {
	min, max  mgl32.Vec3
	left      int32
	right     int32
	leafIndex int32 // original item index when the node is a leaf, -1 otherwise
}

func (n *node) isLeaf() bool {
	return n.leafIndex >= 0
}

// Tree is a binary BVH with one leaf per input bounds entry.
type Tree struct {
	nodes     buffers.Buffer[node]
	LeafCount int
}

type buildItem struct {
	bounds   Bounds
	centroid mgl32.Vec3
	index    int32
}

var (
	nodePool = buffers.Pool[node]{}
	itemPool = buffers.Pool[buildItem]{}
)

// SweepBuild constructs the hierarchy over the given leaf bounds: leaves are
// sorted by centroid along the longest axis of each subtree and split at the
// median. A tree over n leaves uses exactly 2n-1 nodes.
func (t *Tree) SweepBuild(bounds []Bounds) {
	t.Dispose()
	t.LeafCount = len(bounds)
	if len(bounds) == 0 {
		return
	}

	items := itemPool.Take(len(bounds))
	for i, b := range bounds {
		items.Slice()[i] = buildItem{
			bounds:   b,
			centroid: b.Min.Add(b.Max).Mul(0.5),
			index:    int32(i),
		}
	}

	t.nodes = nodePool.Take(2*len(bounds) - 1)
	used := 0
	buildRecursive(items.Slice(), t.nodes.Slice(), &used)
	itemPool.Return(&items)
}

func buildRecursive(items []buildItem, nodes []node, used *int) int32 {
	idx := int32(*used)
	*used++
	n := &nodes[idx]
	*n = node{left: -1, right: -1, leafIndex: -1}

	n.min = mgl32.Vec3{float32(math.Inf(1)), float32(math.Inf(1)), float32(math.Inf(1))}
	n.max = mgl32.Vec3{float32(math.Inf(-1)), float32(math.Inf(-1)), float32(math.Inf(-1))}
	for i := range items {
		b := &items[i].bounds
		for a := 0; a < 3; a++ {
			n.min[a] = min(n.min[a], b.Min[a])
			n.max[a] = max(n.max[a], b.Max[a])
		}
	}

	if len(items) == 1 {
		n.leafIndex = items[0].index
		return idx
	}

	extent := n.max.Sub(n.min)
	axis := 0
	if extent.Y() > extent.X() {
		axis = 1
	}
	if extent.Z() > extent[axis] {
		axis = 2
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].centroid[axis] < items[j].centroid[axis]
	})

	mid := len(items) / 2
	nodes[idx].left = buildRecursive(items[:mid], nodes, used)
	nodes[idx].right = buildRecursive(items[mid:], nodes, used)
	return idx
}

// Dispose returns the node storage to the pool.
func (t *Tree) Dispose() {
	if t.nodes.Allocated() {
		nodePool.Return(&t.nodes)
	}
	t.LeafCount = 0
}

// Ray is the traversal-space ray handed to leaf testers.
type Ray struct {
	Origin           mgl32.Vec3
	Direction        mgl32.Vec3
	InverseDirection mgl32.Vec3
}

// NewRay precomputes the inverse direction used by slab tests. Zero direction
// components map to infinities, which the slab test tolerates.
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		InverseDirection: mgl32.Vec3{
			1 / direction.X(),
			1 / direction.Y(),
			1 / direction.Z(),
		},
	}
}

func slabTest(boxMin, boxMax mgl32.Vec3, ray *Ray, maxT float32) bool {
	tMin := float32(0)
	tMax := maxT
	for a := 0; a < 3; a++ {
		t1 := (boxMin[a] - ray.Origin[a]) * ray.InverseDirection[a]
		t2 := (boxMax[a] - ray.Origin[a]) * ray.InverseDirection[a]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
	}
	return tMin <= tMax
}

// RayLeafTester receives every leaf whose bounds the ray may enter. Narrowing
// *maxT prunes the remaining traversal.
type RayLeafTester interface {
	TestLeaf(leafIndex int, ray *Ray, maxT *float32)
}

// RayCast descends the tree along a ray, invoking the tester per candidate
// leaf. Free function rather than method so the tester monomorphises.
func RayCast[L RayLeafTester](t *Tree, origin, direction mgl32.Vec3, maxT *float32, tester L) {
	if t.LeafCount == 0 {
		return
	}
	ray := NewRay(origin, direction)

	var stack [traversalStackSize]int32
	stack[0] = 0
	depth := 1
	nodes := t.nodes.Slice()
	for depth > 0 {
		depth--
		n := &nodes[stack[depth]]
		if !slabTest(n.min, n.max, &ray, *maxT) {
			continue
		}
		if n.isLeaf() {
			tester.TestLeaf(int(n.leafIndex), &ray, maxT)
			continue
		}
		// Left pops first; combined with the centroid sort this tends to
		// reach near leaves before far ones, letting maxT narrowing prune.
		stack[depth] = n.right
		stack[depth+1] = n.left
		depth += 2
	}
}

// OverlapEnumerator receives every leaf overlapping a query box. Returning
// false stops the walk.
type OverlapEnumerator interface {
	LoopBody(leafIndex int) bool
}

// GetOverlaps enumerates all leaves whose bounds overlap [min, max].
func GetOverlaps[E OverlapEnumerator](t *Tree, queryMin, queryMax mgl32.Vec3, enumerator E) {
	if t.LeafCount == 0 {
		return
	}
	var stack [traversalStackSize]int32
	stack[0] = 0
	depth := 1
	nodes := t.nodes.Slice()
	for depth > 0 {
		depth--
		n := &nodes[stack[depth]]
		if n.min.X() > queryMax.X() || n.max.X() < queryMin.X() ||
			n.min.Y() > queryMax.Y() || n.max.Y() < queryMin.Y() ||
			n.min.Z() > queryMax.Z() || n.max.Z() < queryMin.Z() {
			continue
		}
		if n.isLeaf() {
			if !enumerator.LoopBody(int(n.leafIndex)) {
				return
			}
			continue
		}
		stack[depth] = n.left
		stack[depth+1] = n.right
		depth += 2
	}
}

// SweepLeafTester receives every leaf a swept box may reach before *maxT.
type SweepLeafTester interface {
	TestLeaf(leafIndex int, maxT *float32)
}

// Sweep casts the box [min, max] along sweep, invoking the tester for every
// leaf whose bounds the expanded ray enters within [0, *maxT]. t is measured
// in units of the sweep vector's length.
func Sweep[L SweepLeafTester](t *Tree, sweepMin, sweepMax, sweep mgl32.Vec3, maxT *float32, tester L) {
	if t.LeafCount == 0 {
		return
	}
	center := sweepMin.Add(sweepMax).Mul(0.5)
	halfExtents := sweepMax.Sub(sweepMin).Mul(0.5)
	ray := NewRay(center, sweep)

	var stack [traversalStackSize]int32
	stack[0] = 0
	depth := 1
	nodes := t.nodes.Slice()
	for depth > 0 {
		depth--
		n := &nodes[stack[depth]]
		expandedMin := n.min.Sub(halfExtents)
		expandedMax := n.max.Add(halfExtents)
		if !slabTest(expandedMin, expandedMax, &ray, *maxT) {
			continue
		}
		if n.isLeaf() {
			tester.TestLeaf(int(n.leafIndex), maxT)
			continue
		}
		stack[depth] = n.left
		stack[depth+1] = n.right
		depth += 2
	}
}

// The median split keeps depth at ceil(log2(n))+1, so 128 covers any mesh
// that fits in memory.
const traversalStackSize = 128
