// Package pool provides unified type-safe object pooling for exfortab.
// Parsing thousands of small experiment files churns through short-lived
// token slices and row buffers; pooling them keeps garbage collection
// pressure flat across a whole library ingest.
//
// The package provides:
//   - Generic type-safe object pooling with Pool[T]
//   - Pre-configured global pools for parser and renderer scratch space
//   - Buffer pooling with size-based buckets for compression and archive I/O
//   - Statistics for monitoring pool efficiency
//
// Example usage:
//
//	tokens := pool.GetStringSlice()
//	defer pool.PutStringSlice(tokens)
//
//	myPool := pool.New(
//	    func() *rowBuffer { return &rowBuffer{} },
//	    func(b *rowBuffer) { b.Reset() },
//	)
//	obj := myPool.Get()
//	defer myPool.Put(obj)
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool represents a generic object pool with type safety.
// It wraps sync.Pool with statistics tracking and automatic reset.
// The pool is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	new   func() T
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
		misses    int64
	}
}

// New creates a new typed pool with custom allocation and reset functions.
// The new function is called when the pool is empty and a new object is
// needed. The reset function is called before returning an object to the
// pool, allowing for efficient cleanup and reuse.
func New[T any](new func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{
		new:   new,
		reset: reset,
	}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		return new()
	}
	return p
}

// Get retrieves an object from the pool. If the pool is empty, it creates
// a new object using the factory function provided in New.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	obj := p.pool.Get().(T)
	atomic.AddInt64(&p.stats.hits, 1)
	return obj
}

// Put returns an object to the pool for reuse. If a reset function was
// provided during pool creation, it is called before pooling the object.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Stats returns current pool statistics.
func (p *Pool[T]) Stats() (allocated, inUse, hits, misses int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits),
		atomic.LoadInt64(&p.stats.misses)
}

// Global pools for parser and renderer scratch space.
var (
	// StringSlicePool provides pooling for []string token buffers.
	// The parser tokenizes every metadata, header, and data line; slices
	// are pre-allocated with capacity 16 (experiment rows have at most
	// a handful of tokens) and cleared on return.
	StringSlicePool = New(
		func() []string {
			return make([]string, 0, 16)
		},
		func(s []string) {
			for i := range s {
				s[i] = ""
			}
		},
	)

	// Float64SlicePool provides pooling for numeric row buffers.
	Float64SlicePool = New(
		func() []float64 {
			return make([]float64, 0, 64)
		},
		func(s []float64) {
			// Values are overwritten on reuse
		},
	)

	// ByteSlicePool provides pooling for general-purpose byte slices.
	ByteSlicePool = New(
		func() []byte {
			return make([]byte, 0, 1024)
		},
		func(b []byte) {
			// Length reset happens at Get call sites
		},
	)
)

// GetStringSlice retrieves a string slice from the global pool.
// The returned slice has zero length and capacity for a full token row.
func GetStringSlice() []string {
	return StringSlicePool.Get()[:0]
}

// PutStringSlice returns a string slice to the global pool for reuse.
// Safe to call with nil slices.
func PutStringSlice(s []string) {
	if s != nil {
		StringSlicePool.Put(s)
	}
}

// GetFloat64Slice retrieves a float64 slice from the global pool.
func GetFloat64Slice() []float64 {
	return Float64SlicePool.Get()[:0]
}

// PutFloat64Slice returns a float64 slice to the global pool for reuse.
// Safe to call with nil slices.
func PutFloat64Slice(s []float64) {
	if s != nil {
		Float64SlicePool.Put(s)
	}
}

// GetByteSlice retrieves a byte slice from the global pool.
func GetByteSlice() []byte {
	return ByteSlicePool.Get()[:0]
}

// PutByteSlice returns a byte slice to the global pool for reuse.
// Safe to call with nil slices.
func PutByteSlice(b []byte) {
	if b != nil {
		ByteSlicePool.Put(b)
	}
}

// BufferPool manages byte buffer pooling with size-based buckets.
// It maintains multiple pools for different buffer sizes, automatically
// selecting the appropriate pool based on requested size. Compression and
// archive I/O draw their working buffers from here.
type BufferPool struct {
	pools []*Pool[[]byte]
	sizes []int
}

// NewBufferPool creates a new buffer pool with predefined size buckets.
// The pool uses power-of-2 sizes from 512 bytes to 16MB. Buffers larger
// than 16MB are allocated directly without pooling.
func NewBufferPool() *BufferPool {
	sizes := []int{
		512,      // 512B
		1024,     // 1KB
		4096,     // 4KB
		16384,    // 16KB
		65536,    // 64KB
		262144,   // 256KB
		1048576,  // 1MB
		4194304,  // 4MB
		16777216, // 16MB
	}

	pools := make([]*Pool[[]byte], len(sizes))
	for i, size := range sizes {
		size := size // capture loop variable
		pools[i] = New(
			func() []byte {
				return make([]byte, size)
			},
			func(b []byte) {
				// Contents overwritten on next Get
			},
		)
	}

	return &BufferPool{
		pools: pools,
		sizes: sizes,
	}
}

// Get returns a buffer of at least the requested size from the pool.
// It selects the smallest available bucket that can accommodate the
// request. For sizes larger than the largest bucket, a new buffer is
// allocated directly.
func (p *BufferPool) Get(size int) []byte {
	for i, s := range p.sizes {
		if s >= size {
			buf := p.pools[i].Get()
			return buf[:size]
		}
	}

	// Fallback to allocation for very large buffers
	return make([]byte, size)
}

// Put returns a buffer to the pool for reuse. Buffers that don't match
// any bucket size are released to garbage collection.
func (p *BufferPool) Put(buf []byte) {
	size := cap(buf)

	for i, s := range p.sizes {
		if s == size {
			p.pools[i].Put(buf)
			return
		}
	}
}

// GlobalBufferPool provides size-based byte buffer pooling for I/O paths.
var GlobalBufferPool = NewBufferPool()

// Stats represents pool statistics for monitoring.
type Stats struct {
	// Allocated is the total number of objects created by the pool
	Allocated int64
	// InUse is the current number of objects checked out from the pool
	InUse int64
	// Hits is the number of successful pool retrievals
	Hits int64
	// Misses is the number of times a new object had to be created
	Misses int64
}

// GetGlobalStats returns statistics for all global pools, keyed by pool
// name: "string_slice", "float64_slice", "byte_slice".
func GetGlobalStats() map[string]Stats {
	stringAlloc, stringInUse, stringHits, stringMisses := StringSlicePool.Stats()
	floatAlloc, floatInUse, floatHits, floatMisses := Float64SlicePool.Stats()
	byteAlloc, byteInUse, byteHits, byteMisses := ByteSlicePool.Stats()

	return map[string]Stats{
		"string_slice": {
			Allocated: stringAlloc,
			InUse:     stringInUse,
			Hits:      stringHits,
			Misses:    stringMisses,
		},
		"float64_slice": {
			Allocated: floatAlloc,
			InUse:     floatInUse,
			Hits:      floatHits,
			Misses:    floatMisses,
		},
		"byte_slice": {
			Allocated: byteAlloc,
			InUse:     byteInUse,
			Hits:      byteHits,
			Misses:    byteMisses,
		},
	}
}
