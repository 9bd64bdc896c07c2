// Package buffers provides recycled typed slices for scratch and long-lived
// geometry storage. Taken buffers may contain stale values; callers are
// expected to overwrite every element they read.
package buffers

import "sync"

// Buffer is a typed slice taken from a Pool.
type Buffer[T any] struct {
	data []T
}

// Slice exposes the buffer contents.
func (b Buffer[T]) Slice() []T {
	return b.data
}

func (b Buffer[T]) Len() int {
	return len(b.data)
}

// Allocated reports whether the buffer currently holds storage.
func (b Buffer[T]) Allocated() bool {
	return b.data != nil
}

// Pool recycles buffers of one element type.
type Pool[T any] struct {
	pool sync.Pool
}

// Take returns a buffer with exactly count elements, reusing returned storage
// when a large enough slice is available.
func (p *Pool[T]) Take(count int) Buffer[T] {
	if v := p.pool.Get(); v != nil {
		s := v.([]T)
		if cap(s) >= count {
			return Buffer[T]{data: s[:count]}
		}
	}
	return Buffer[T]{data: make([]T, count)}
}

// Return hands the buffer's storage back to the pool. The buffer must not be
// used afterwards.
func (p *Pool[T]) Return(b *Buffer[T]) {
	if b.data == nil {
		return
	}
	p.pool.Put(b.data[:0])
	b.data = nil
}
