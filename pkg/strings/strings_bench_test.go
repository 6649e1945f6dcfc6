// Package strings provides benchmarks for string building optimizations
package strings

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
)

// Generate test data shaped like rendered experiment tables
func generateCellStrings(count int) []string {
	strs := make([]string, count)
	for i := 0; i < count; i++ {
		strs[i] = strconv.FormatFloat(float64(i)*1.5, 'f', -1, 64)
	}
	return strs
}

func generateTableRows(rows, cols int) [][]string {
	data := make([][]string, rows)
	for i := 0; i < rows; i++ {
		row := make([]string, cols)
		for j := 0; j < cols; j++ {
			row[j] = fmt.Sprintf("%.4f", float64(i*cols+j)*0.25)
		}
		data[i] = row
	}
	return data
}

// Benchmark string concatenation
func BenchmarkStringConcatenation(b *testing.B) {
	cells := generateCellStrings(100)

	b.Run("StandardConcatenation", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			result := ""
			for _, s := range cells {
				result += s + " "
			}
			_ = result
		}
	})

	b.Run("PooledConcat", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			result := Concat(cells...)
			_ = result
		}
	})

	b.Run("PooledJoin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			result := JoinPooled(cells, " ")
			_ = result
		}
	})

	b.Run("StandardJoin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			result := strings.Join(cells, " ")
			_ = result
		}
	})
}

// Benchmark sprintf vs pooled sprintf
func BenchmarkSprintfComparison(b *testing.B) {
	values := []interface{}{"p-026-MG-12.txt", 3, true, 14.1}
	format := "path: %s, line: %d, header: %t, energy: %.2f"

	b.Run("StandardSprintf", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			result := fmt.Sprintf(format, values...)
			_ = result
		}
	})

	b.Run("PooledSprintf", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			result := Sprintf(format, values...)
			_ = result
		}
	})
}

// Benchmark CSV building
func BenchmarkCSVBuilding(b *testing.B) {
	rows := generateTableRows(100, 10)
	headers := []string{"E", "xs", "dxs", "dE", "target_Z", "target_A", "MF", "MT", "frame_C", "frame_L"}

	b.Run("ManualCSVBuilding", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			result := strings.Join(headers, ",") + "\n"
			for _, row := range rows {
				result += strings.Join(row, ",") + "\n"
			}
			_ = result
		}
	})

	b.Run("PooledCSVBuilder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			builder := NewCSVBuilder(len(rows), len(headers))

			builder.WriteHeader(headers)
			for _, row := range rows {
				builder.WriteRow(row)
			}
			result := builder.String()
			builder.Close()
			_ = result
		}
	})
}

// Benchmark builder pool reuse against fresh allocation
func BenchmarkBuilderPoolEfficiency(b *testing.B) {
	b.Run("FreshBuilder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			builder := NewBuilder(1024)
			builder.WriteString("# Reaction    : (p,x)")
			_ = builder.String()
		}
	})

	b.Run("PooledBuilder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			builder := GetBuilder(Small)
			builder.WriteString("# Reaction    : (p,x)")
			_ = Clone(builder.String())
			PutBuilder(builder, Small)
		}
	})
}
