// Package pool implements type-safe object pooling for exfortab's hot
// parsing and rendering paths. A full EXFORTABLES library holds tens of
// thousands of small text files; without pooling, every file would churn
// token slices, row buffers, and I/O scratch space through the garbage
// collector.
//
// Architecture
//
// The pool package uses Go generics to provide type-safe pooling for any
// object type. It builds on sync.Pool but adds hit/miss statistics and
// automatic reset on return.
//
// Core Types:
//
//   - Pool[T]: Generic pool implementation for any type T
//   - BufferPool: Size-bucketed byte buffers for compression and archive I/O
//   - Global pools: Pre-configured pools for parser scratch space
//
// Global Pools
//
// Pre-configured pools are available for the common scratch types:
//
//	var (
//		StringSlicePool  = New(...) // tokenized line fields
//		Float64SlicePool = New(...) // numeric row buffers
//		ByteSlicePool    = New(...) // small byte scratch
//	)
//
// Usage Patterns
//
// Basic pool usage:
//
//	tokens := pool.GetStringSlice()
//	defer pool.PutStringSlice(tokens)
//
//	tokens = appendFields(tokens, line)
//
// Creating a custom pool:
//
//	rowPool := pool.New(
//		func() []float64 { return make([]float64, 0, 4) },
//		func(s []float64) {},
//	)
//
// Best Practices
//
// DO:
//   - Pair every Get with a Put, usually via defer
//   - Implement proper reset functions for custom pools
//   - Re-slice to zero length before reuse
//
// DON'T:
//   - Hold pool objects longer than necessary
//   - Retain references to pooled slices after Put
//   - Share pool objects between goroutines without sync
//
// Metrics
//
// Pool statistics are exposed via Stats() and GetGlobalStats() to help
// identify pool efficiency and potential leaks.
package pool
