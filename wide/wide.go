// Package wide provides lane-parallel value types for batched geometric
// queries. Every field of a wide type holds one value per lane, and control
// flow is expressed as selects over lane masks instead of branches.
package wide

import "math"

// Width is the number of lanes in every wide type.
const Width = 4

// Float is one float32 per lane.
type Float [Width]float32

// Mask is one boolean per lane.
type Mask [Width]bool

// Broadcast fills every lane with the same value.
func Broadcast(s float32) Float {
	var r Float
	for i := range r {
		r[i] = s
	}
	return r
}

func (a Float) Add(b Float) Float {
	var r Float
	for i := range r {
		r[i] = a[i] + b[i]
	}
	return r
}

func (a Float) Sub(b Float) Float {
	var r Float
	for i := range r {
		r[i] = a[i] - b[i]
	}
	return r
}

func (a Float) Mul(b Float) Float {
	var r Float
	for i := range r {
		r[i] = a[i] * b[i]
	}
	return r
}

func (a Float) Div(b Float) Float {
	var r Float
	for i := range r {
		r[i] = a[i] / b[i]
	}
	return r
}

func (a Float) Neg() Float {
	var r Float
	for i := range r {
		r[i] = -a[i]
	}
	return r
}

func (a Float) Abs() Float {
	var r Float
	for i := range r {
		r[i] = float32(math.Abs(float64(a[i])))
	}
	return r
}

func (a Float) Sqrt() Float {
	var r Float
	for i := range r {
		r[i] = float32(math.Sqrt(float64(a[i])))
	}
	return r
}

func (a Float) Max(b Float) Float {
	var r Float
	for i := range r {
		r[i] = max(a[i], b[i])
	}
	return r
}

func (a Float) Min(b Float) Float {
	var r Float
	for i := range r {
		r[i] = min(a[i], b[i])
	}
	return r
}

func (a Float) Less(b Float) Mask {
	var m Mask
	for i := range m {
		m[i] = a[i] < b[i]
	}
	return m
}

func (a Float) LessOrEqual(b Float) Mask {
	var m Mask
	for i := range m {
		m[i] = a[i] <= b[i]
	}
	return m
}

func (a Float) Greater(b Float) Mask {
	var m Mask
	for i := range m {
		m[i] = a[i] > b[i]
	}
	return m
}

func (a Float) GreaterOrEqual(b Float) Mask {
	var m Mask
	for i := range m {
		m[i] = a[i] >= b[i]
	}
	return m
}

// Select blends two wide floats lane by lane: onTrue where the mask is set,
// onFalse elsewhere.
func Select(m Mask, onTrue, onFalse Float) Float {
	var r Float
	for i := range r {
		if m[i] {
			r[i] = onTrue[i]
		} else {
			r[i] = onFalse[i]
		}
	}
	return r
}

func (m Mask) And(other Mask) Mask {
	var r Mask
	for i := range r {
		r[i] = m[i] && other[i]
	}
	return r
}

func (m Mask) Or(other Mask) Mask {
	var r Mask
	for i := range r {
		r[i] = m[i] || other[i]
	}
	return r
}

func (m Mask) Not() Mask {
	var r Mask
	for i := range r {
		r[i] = !m[i]
	}
	return r
}

// SelectMask blends two masks lane by lane.
func SelectMask(m, onTrue, onFalse Mask) Mask {
	var r Mask
	for i := range r {
		if m[i] {
			r[i] = onTrue[i]
		} else {
			r[i] = onFalse[i]
		}
	}
	return r
}

// Any reports whether at least one lane is set.
func (m Mask) Any() bool {
	for i := range m {
		if m[i] {
			return true
		}
	}
	return false
}
