package manifold

import (
	"sort"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// The inline slot layout is part of the contract with external consumers that
// address contacts flatly; these sizes must not drift.
func TestRecordSizes(t *testing.T) {
	tests := []struct {
		name string
		size uintptr
		want uintptr
	}{
		{name: "Contact", size: unsafe.Sizeof(Contact{}), want: 20},
		{name: "NonconvexContact", size: unsafe.Sizeof(NonconvexContact{}), want: 32},
		{name: "ConvexManifold", size: unsafe.Sizeof(ConvexManifold{}), want: 108},
		{name: "NonconvexManifold", size: unsafe.Sizeof(NonconvexManifold{}), want: 272},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.size != tt.want {
				t.Errorf("sizeof = %d, want %d", tt.size, tt.want)
			}
		})
	}
}

func TestContactSlotsFlatAddressable(t *testing.T) {
	var m NonconvexManifold
	base := uintptr(unsafe.Pointer(&m.Contacts[0]))
	slotSize := unsafe.Sizeof(NonconvexContact{})
	for i := range m.Contacts {
		offset := uintptr(unsafe.Pointer(&m.Contacts[i])) - base
		if offset != uintptr(i)*slotSize {
			t.Errorf("slot %d at offset %d, want %d", i, offset, uintptr(i)*slotSize)
		}
	}
}

func TestNonconvexAdd(t *testing.T) {
	var m NonconvexManifold
	contact := Contact{Offset: mgl32.Vec3{1, 2, 3}, Depth: 0.5, FeatureID: 42}
	normal := mgl32.Vec3{0, 1, 0}

	m.Add(&contact, normal)

	if m.Count != 1 {
		t.Fatalf("Count = %d, want 1", m.Count)
	}
	slot := m.Contacts[0]
	if slot.Offset != contact.Offset || slot.Depth != contact.Depth ||
		slot.Normal != normal || slot.FeatureID != contact.FeatureID {
		t.Errorf("slot 0 = %+v", slot)
	}
}

func TestNonconvexAllocate(t *testing.T) {
	var m NonconvexManifold
	slot := m.Allocate()
	slot.Offset = mgl32.Vec3{1, 0, 0}
	slot.FeatureID = 7

	if m.Count != 1 {
		t.Fatalf("Count = %d, want 1", m.Count)
	}
	if m.Contacts[0].FeatureID != 7 {
		t.Errorf("allocated slot not aliased into the manifold: %+v", m.Contacts[0])
	}

	for m.Count < MaximumNonconvexContacts {
		m.Allocate().FeatureID = m.Count
	}
	if m.Count != 8 {
		t.Errorf("Count = %d, want 8", m.Count)
	}
}

func featureIDSet(ids []int32) []int32 {
	sorted := append([]int32(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return sorted
}

func TestFastRemoveAt(t *testing.T) {
	tests := []struct {
		name        string
		count       int32
		removeIndex int
	}{
		{name: "first of four", count: 4, removeIndex: 0},
		{name: "middle of four", count: 4, removeIndex: 2},
		{name: "last of four", count: 4, removeIndex: 3},
		{name: "only contact", count: 1, removeIndex: 0},
		{name: "full manifold", count: 8, removeIndex: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m NonconvexManifold
			m.Count = tt.count
			for i := int32(0); i < tt.count; i++ {
				m.Contacts[i].FeatureID = 100 + i
			}
			removed := m.Contacts[tt.removeIndex].FeatureID

			m.FastRemoveAt(tt.removeIndex)

			if m.Count != tt.count-1 {
				t.Fatalf("Count = %d, want %d", m.Count, tt.count-1)
			}
			var remaining []int32
			for i := int32(0); i < m.Count; i++ {
				remaining = append(remaining, m.Contacts[i].FeatureID)
			}
			var expected []int32
			for i := int32(0); i < tt.count; i++ {
				if id := 100 + i; id != removed {
					expected = append(expected, id)
				}
			}
			got := featureIDSet(remaining)
			want := featureIDSet(expected)
			if len(got) != len(want) {
				t.Fatalf("remaining ids = %v, want %v (order free)", remaining, expected)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("remaining ids = %v, want %v (order free)", remaining, expected)
				}
			}
		})
	}
}

func TestConvexFastRemoveAt(t *testing.T) {
	var m ConvexManifold
	m.Count = 3
	for i := 0; i < 3; i++ {
		m.Contacts[i].FeatureID = int32(i)
	}

	m.FastRemoveAt(0)

	if m.Count != 2 {
		t.Fatalf("Count = %d, want 2", m.Count)
	}
	// The last contact moved into slot 0.
	if m.Contacts[0].FeatureID != 2 || m.Contacts[1].FeatureID != 1 {
		t.Errorf("slots after removal: %d %d", m.Contacts[0].FeatureID, m.Contacts[1].FeatureID)
	}
}

func TestManifoldInterface(t *testing.T) {
	convex := &ConvexManifold{
		Normal: mgl32.Vec3{0, 1, 0},
		Count:  2,
	}
	convex.Contacts[0] = Contact{Offset: mgl32.Vec3{1, 0, 0}, Depth: 0.25, FeatureID: 3}
	convex.Contacts[1] = Contact{Offset: mgl32.Vec3{-1, 0, 0}, Depth: -0.1, FeatureID: 4}

	nonconvex := &NonconvexManifold{Count: 1}
	nonconvex.Contacts[0] = NonconvexContact{
		Offset:    mgl32.Vec3{0, 0, 1},
		Depth:     0.5,
		Normal:    mgl32.Vec3{1, 0, 0},
		FeatureID: 9,
	}

	views := []Manifold{convex, nonconvex}
	if !views[0].Convex() || views[1].Convex() {
		t.Error("Convex() kinds wrong")
	}
	if views[0].ContactCount() != 2 || views[1].ContactCount() != 1 {
		t.Error("ContactCount() wrong")
	}

	// Convex contacts report the shared manifold normal.
	_, normal, depth, featureID := views[0].Contact(1)
	if normal != convex.Normal || depth != -0.1 || featureID != 4 {
		t.Errorf("convex Contact(1) = %v %v %v", normal, depth, featureID)
	}
	if views[0].FeatureID(0) != 3 {
		t.Errorf("FeatureID(0) = %d", views[0].FeatureID(0))
	}

	// Nonconvex contacts report their own normal.
	offset, normal, depth, featureID := views[1].Contact(0)
	if offset != nonconvex.Contacts[0].Offset || normal != (mgl32.Vec3{1, 0, 0}) ||
		depth != 0.5 || featureID != 9 {
		t.Errorf("nonconvex Contact(0) = %v %v %v %v", offset, normal, depth, featureID)
	}
}
