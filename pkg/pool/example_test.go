// Package pool provides example usage of the object pool system.
package pool_test

import (
	"fmt"
	"strconv"

	"github.com/exfortools/exfortab/pkg/pool"
)

// Example demonstrates pooled token buffers, the pattern the experiment
// parser uses on every line it tokenizes.
func Example() {
	tokens := pool.GetStringSlice()
	defer pool.PutStringSlice(tokens)

	tokens = append(tokens, "1.500000E+00", "2.500000E-01")

	fmt.Printf("tokens: %d\n", len(tokens))

	// Output:
	// tokens: 2
}

// ExampleNew demonstrates creating and using a generic pool.
func ExampleNew() {
	// Define a simple struct to pool
	type rowBuffer struct {
		values []float64
	}

	rowPool := pool.New(
		func() *rowBuffer {
			return &rowBuffer{
				values: make([]float64, 0, 4),
			}
		},
		func(b *rowBuffer) {
			b.values = b.values[:0]
		},
	)

	row := rowPool.Get()
	defer rowPool.Put(row)

	row.values = append(row.values, 1.5, 0.25)
	fmt.Printf("row has %d cells\n", len(row.values))

	// Output:
	// row has 2 cells
}

// ExampleGetStringSlice shows string slice pool usage.
func ExampleGetStringSlice() {
	slice := pool.GetStringSlice()
	defer pool.PutStringSlice(slice)

	slice = append(slice, "E", "xs", "dxs", "dE")

	fmt.Printf("columns: %v\n", slice)

	// Output:
	// columns: [E xs dxs dE]
}

// ExampleGetFloat64Slice shows numeric buffer pool usage.
func ExampleGetFloat64Slice() {
	values := pool.GetFloat64Slice()
	defer pool.PutFloat64Slice(values)

	for i := 0; i < 3; i++ {
		values = append(values, float64(i)*1.5)
	}

	fmt.Printf("values: %d\n", len(values))

	// Output:
	// values: 3
}

// ExampleGetByteSlice demonstrates byte slice pool usage for I/O paths.
func ExampleGetByteSlice() {
	buffer := pool.GetByteSlice()
	defer pool.PutByteSlice(buffer)

	buffer = append(buffer, "# Data points : "...)
	buffer = strconv.AppendInt(buffer, 42, 10)

	fmt.Printf("line: %s\n", string(buffer))

	// Output:
	// line: # Data points : 42
}
