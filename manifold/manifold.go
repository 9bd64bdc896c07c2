// Package manifold defines the fixed-capacity contact records produced by the
// narrow phase and consumed by the solver. Manifolds are value types; their
// inline contact slots are flat-addressable by index and Count is the sole
// source of slot validity.
package manifold

import "github.com/go-gl/mathgl/mgl32"

// Contact is one contact point of a convex pair. Offset points from body A's
// position to the contact; a negative depth means separation. The feature id
// identifies the geometric features that produced the contact and is used to
// track persistence across frames.
type Contact struct {
	Offset    mgl32.Vec3
	Depth     float32
	FeatureID int32
}

// NonconvexContact carries its own normal: a nonconvex pair's contact surface
// is not planar, so no shared basis exists.
type NonconvexContact struct {
	Offset    mgl32.Vec3
	Depth     float32
	Normal    mgl32.Vec3
	FeatureID int32
}

// MaximumConvexContacts is the contact capacity of a convex manifold.
// Limited to 4 for constraint solver stability (see Erin Catto, GDC 2007).
const MaximumConvexContacts = 4

// MaximumNonconvexContacts is the contact capacity of a nonconvex manifold.
const MaximumNonconvexContacts = 8

// ConvexManifold groups up to four contacts sharing one normal. OffsetB
// points from body A's position to body B's. Slots at index >= Count hold
// stale values and must not be read.
type ConvexManifold struct {
	OffsetB  mgl32.Vec3
	Count    int32
	Normal   mgl32.Vec3
	Contacts [MaximumConvexContacts]Contact
}

// NonconvexManifold groups up to eight contacts, each with its own normal.
type NonconvexManifold struct {
	OffsetB  mgl32.Vec3
	Count    int32
	Contacts [MaximumNonconvexContacts]NonconvexContact
}

// Add appends a convex contact with an explicit normal. The manifold must not
// be full.
func (m *NonconvexManifold) Add(contact *Contact, normal mgl32.Vec3) {
	m.Contacts[m.Count] = NonconvexContact{
		Offset:    contact.Offset,
		Depth:     contact.Depth,
		Normal:    normal,
		FeatureID: contact.FeatureID,
	}
	m.Count++
}

// Allocate claims the next slot and returns it for the caller to fill. The
// manifold must not be full.
func (m *NonconvexManifold) Allocate() *NonconvexContact {
	contact := &m.Contacts[m.Count]
	m.Count++
	return contact
}

// FastRemoveAt removes contact i by moving the last valid slot into its
// place. Contact order is not preserved, so per-index feature id persistence
// does not survive a removal.
func (m *NonconvexManifold) FastRemoveAt(i int) {
	m.Count--
	if int32(i) < m.Count {
		m.Contacts[i] = m.Contacts[m.Count]
	}
}

// FastRemoveAt removes contact i by moving the last valid slot into its
// place. Contact order is not preserved.
func (m *ConvexManifold) FastRemoveAt(i int) {
	m.Count--
	if int32(i) < m.Count {
		m.Contacts[i] = m.Contacts[m.Count]
	}
}

// Manifold is a polymorphic read view over both manifold kinds.
type Manifold interface {
	ContactCount() int
	// Convex reports whether all contacts share one normal.
	Convex() bool
	FeatureID(i int) int32
	// Contact returns the fields of contact i. For convex manifolds the
	// returned normal is the shared manifold normal.
	Contact(i int) (offset, normal mgl32.Vec3, depth float32, featureID int32)
}

func (m *ConvexManifold) ContactCount() int {
	return int(m.Count)
}

func (m *ConvexManifold) Convex() bool {
	return true
}

func (m *ConvexManifold) FeatureID(i int) int32 {
	return m.Contacts[i].FeatureID
}

func (m *ConvexManifold) Contact(i int) (mgl32.Vec3, mgl32.Vec3, float32, int32) {
	c := &m.Contacts[i]
	return c.Offset, m.Normal, c.Depth, c.FeatureID
}

func (m *NonconvexManifold) ContactCount() int {
	return int(m.Count)
}

func (m *NonconvexManifold) Convex() bool {
	return false
}

func (m *NonconvexManifold) FeatureID(i int) int32 {
	return m.Contacts[i].FeatureID
}

func (m *NonconvexManifold) Contact(i int) (mgl32.Vec3, mgl32.Vec3, float32, int32) {
	c := &m.Contacts[i]
	return c.Offset, c.Normal, c.Depth, c.FeatureID
}
