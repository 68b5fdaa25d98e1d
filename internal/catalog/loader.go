package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

//go:embed catalog.json
var embeddedCatalog embed.FS

// LoadConfig returns the catalog to run with:
// 1. The external file at path, when path is set and the file parses
// 2. The embedded catalog.json
func LoadConfig(path string) (*Catalog, error) {
	if path != "" {
		c, err := Load(path)
		if err == nil {
			slog.Info("Loaded catalog from external file", "path", path, "items", c.Len())
			return c, nil
		}
		slog.Warn("Failed to load external catalog, falling back to embedded", "path", path, "error", err)
	}
	return Default()
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) {
	data, err := embeddedCatalog.ReadFile("catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}
	return LoadFromBytes(data)
}

// Load reads a catalog JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses catalog JSON.
func LoadFromBytes(data []byte) (*Catalog, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return New(f)
}
