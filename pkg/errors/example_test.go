// Package errors provides examples of structured error handling in exfortab.
package errors_test

import (
	"fmt"
	"io"

	"github.com/exfortools/exfortab/pkg/errors"
)

// Example demonstrates basic error creation and wrapping.
func Example() {
	// Create a new error with type
	err := errors.New(errors.ErrorTypeFormat, "data row has 5 values, want 2-4")

	// Add context details
	err = err.WithDetail("path", "Mg/026/p-026-MG-12-xs.txt").
		WithDetail("line", 12)

	// Print the error
	fmt.Println(err.Error())

	// Output:
	// format: data row has 5 values, want 2-4
}

// ExampleWrap shows how to wrap existing errors with context.
func ExampleWrap() {
	// Simulate an underlying error
	originalErr := io.EOF

	// Wrap the error with context
	err := errors.Wrap(originalErr, errors.ErrorTypeFile, "failed to read experiment file").
		WithDetail("path", "p-056-FE-26-xs.txt")

	// Check the error type
	if errors.IsType(err, errors.ErrorTypeFile) {
		fmt.Println("This is a file error")
	}

	// Output:
	// This is a file error
}

// ExampleIsType demonstrates checking error types through wrapping.
func ExampleIsType() {
	parseErr := errors.New(errors.ErrorTypeFormat, "header row has 3 columns, want 4")
	wrappedErr := errors.Wrap(parseErr, errors.ErrorTypeFile, "ingest failed")

	fmt.Printf("Is format error: %v\n", errors.IsType(parseErr, errors.ErrorTypeFormat))
	fmt.Printf("Wrapped error is file type: %v\n", errors.IsType(wrappedErr, errors.ErrorTypeFile))
	fmt.Printf("Wrapped error is format type: %v\n", errors.IsType(wrappedErr, errors.ErrorTypeFormat))

	// Output:
	// Is format error: true
	// Wrapped error is file type: true
	// Wrapped error is format type: false
}

// ExampleDetail shows reading context details back from an error.
func ExampleDetail() {
	err := errors.New(errors.ErrorTypeNotFound, "unknown record field").
		WithDetail("field", "detector").
		WithDetail("known_fields", "author, frame, quantity, ...")

	if field, ok := errors.Detail(err, "field"); ok {
		fmt.Printf("offending field: %v\n", field)
	}

	// Output:
	// offending field: detector
}
