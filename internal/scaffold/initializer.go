// Package scaffold writes a starter axero.yml.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/axero/internal/config"
	"github.com/dyluth/axero/internal/printer"
)

//go:embed templates/*
var templatesFS embed.FS

// Template returns the starter configuration.
func Template() ([]byte, error) {
	data, err := templatesFS.ReadFile("templates/axero.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read axero.yml template: %w", err)
	}
	return data, nil
}

// Initialize writes the starter configuration to path. Without force an
// existing file is left untouched and reported as an error.
func Initialize(path string, force bool) error {
	if !force {
		if err := CheckExisting(path); err != nil {
			return err
		}
	}

	content, err := Template()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	// The written file must load exactly like a hand-edited one.
	if _, err := config.Load(path); err != nil {
		return fmt.Errorf("created %s does not load: %w", path, err)
	}
	return nil
}

// PrintSuccess prints the created file and next steps.
func PrintSuccess(path string) {
	printer.Success("Created %s\n", path)
	printer.Println("\nNext steps:")
	printer.Println("  1. Tune feed, roster and focus settings in " + path)
	printer.Println("  2. Run 'axero-simulator' to publish the feed and roster to Redis")
	printer.Println("  3. Run 'axero dashboard --store redis' to follow it")
}
