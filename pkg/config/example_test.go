package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walteh/replacetext/pkg/config"
)

func ExampleLoad_toml() {
	dir, err := os.MkdirTemp("", "replacetext-config")
	if err != nil {
		fmt.Printf("Error creating temp dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	configTOML := `
include = ["**/*.go"]
exclude = ["vendor/**"]
jobs = 2
dry_run = true
`
	configPath := filepath.Join(dir, "replacetext.toml")
	if err := os.WriteFile(configPath, []byte(configTOML), 0o644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Printf("Include: %v\n", cfg.Include)
	fmt.Printf("Exclude: %v\n", cfg.Exclude)
	fmt.Printf("Jobs: %d\n", cfg.Jobs)
	fmt.Printf("Dry run: %v\n", cfg.DryRun)
	fmt.Printf("Color: %s\n", cfg.Color)

	// Output:
	// Include: [**/*.go]
	// Exclude: [vendor/**]
	// Jobs: 2
	// Dry run: true
	// Color: auto
}
