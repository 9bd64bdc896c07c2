// Package constraint holds the solver-facing contact data prepared from
// manifolds once per substep, and the projection of that data into renderable
// debug lines.
package constraint

import (
	"github.com/akmonengine/plume/manifold"
	"github.com/go-gl/mathgl/mgl32"
)

// ConvexPrestepContact is one contact of a convex prestep bundle.
type ConvexPrestepContact struct {
	OffsetA          mgl32.Vec3
	PenetrationDepth float32
}

// ConvexContactPrestep is the prestep bundle of a convex contact constraint:
// up to four contacts sharing one normal. Only slots below Count are valid.
type ConvexContactPrestep struct {
	Normal   mgl32.Vec3
	Count    int
	Contacts [manifold.MaximumConvexContacts]ConvexPrestepContact
}

// NonconvexPrestepContact is one contact of a nonconvex prestep bundle; each
// carries its own normal.
type NonconvexPrestepContact struct {
	Offset mgl32.Vec3
	Normal mgl32.Vec3
	Depth  float32
}

// NonconvexContactPrestep is the prestep bundle of a nonconvex contact
// constraint with up to eight contacts.
type NonconvexContactPrestep struct {
	Count    int
	Contacts [manifold.MaximumNonconvexContacts]NonconvexPrestepContact
}

// BuildConvexPrestep copies the solver-relevant fields out of a convex
// manifold.
func BuildConvexPrestep(m *manifold.ConvexManifold) ConvexContactPrestep {
	prestep := ConvexContactPrestep{
		Normal: m.Normal,
		Count:  int(m.Count),
	}
	for i := 0; i < prestep.Count; i++ {
		prestep.Contacts[i] = ConvexPrestepContact{
			OffsetA:          m.Contacts[i].Offset,
			PenetrationDepth: m.Contacts[i].Depth,
		}
	}
	return prestep
}

// BuildNonconvexPrestep copies the solver-relevant fields out of a nonconvex
// manifold.
func BuildNonconvexPrestep(m *manifold.NonconvexManifold) NonconvexContactPrestep {
	prestep := NonconvexContactPrestep{Count: int(m.Count)}
	for i := 0; i < prestep.Count; i++ {
		prestep.Contacts[i] = NonconvexPrestepContact{
			Offset: m.Contacts[i].Offset,
			Normal: m.Contacts[i].Normal,
			Depth:  m.Contacts[i].Depth,
		}
	}
	return prestep
}

// ContactPrestep is the read view the line extractor works against. The two
// concrete bundles differ only in contact capacity and normal sharing, so one
// routine parameterised over this interface replaces a type per
// (count, kind) pair.
type ContactPrestep interface {
	ContactCount() int
	Convex() bool
	Contact(i int) (offset, normal mgl32.Vec3, depth float32)
}

func (p *ConvexContactPrestep) ContactCount() int {
	return p.Count
}

func (p *ConvexContactPrestep) Convex() bool {
	return true
}

func (p *ConvexContactPrestep) Contact(i int) (mgl32.Vec3, mgl32.Vec3, float32) {
	return p.Contacts[i].OffsetA, p.Normal, p.Contacts[i].PenetrationDepth
}

func (p *NonconvexContactPrestep) ContactCount() int {
	return p.Count
}

func (p *NonconvexContactPrestep) Convex() bool {
	return false
}

func (p *NonconvexContactPrestep) Contact(i int) (mgl32.Vec3, mgl32.Vec3, float32) {
	c := &p.Contacts[i]
	return c.Offset, c.Normal, c.Depth
}
