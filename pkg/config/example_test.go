package config_test

import (
	"fmt"

	"github.com/exfortools/exfortab/pkg/config"
)

// ExampleDefault shows the built-in defaults used when no file is given.
func ExampleDefault() {
	cfg := config.Default()

	fmt.Printf("Version: %d\n", cfg.Version)
	fmt.Printf("Export format: %s\n", cfg.Export.Format)
	fmt.Printf("Tracing enabled: %v\n", cfg.Tracing.Enabled)

	// Output:
	// Version: 1
	// Export format: csv
	// Tracing enabled: false
}

// ExampleConfig_Validate demonstrates validation of a hand-built
// configuration.
func ExampleConfig_Validate() {
	cfg := config.Default()
	cfg.Export.Format = "parquet"

	if err := cfg.Validate(); err != nil {
		fmt.Printf("invalid: %v\n", err)
		return
	}
	fmt.Println("Configuration is valid!")

	cfg.Export.Format = "xlsx"
	err := cfg.Validate()
	fmt.Println(err)

	// Output:
	// Configuration is valid!
	// unknown export format "xlsx"
}
