// Package pool provides small sync.Pool wrappers for slice types that get
// allocated once per parsed JSON object and then discarded, which would
// otherwise pressure the GC on large documents.
package pool

import "sync"

// Pool wraps sync.Pool with typed Get/Put and an allocator/resetter pair.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T) T
}

// New creates a Pool whose Get falls back to alloc() on an empty pool, and
// whose Put runs reset before returning the value to the pool.
func New[T any](alloc func() T, reset func(T) T) Pool[T] {
	return Pool[T]{
		pool:  sync.Pool{New: func() any { return alloc() }},
		reset: reset,
	}
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(v T) {
	p.pool.Put(p.reset(v))
}

// SlicePool is a Pool specialized for slices, exposed as its own type so
// call sites read as "a pool of slices of Pair" rather than a raw generic
// instantiation.
type SlicePool[T any] struct {
	Pool[[]T]
}
