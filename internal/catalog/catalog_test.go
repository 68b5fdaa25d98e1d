package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pauljones0/garden-stock-bot/internal/models"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		name     string
		category models.Category
		rare     bool
	}{
		{"Carrot", models.CategorySeed, false},
		{"Beanstalk", models.CategorySeed, true},
		{"Mango", models.CategorySeed, true},
		{"Common Egg", models.CategoryEgg, false},
		{"Mythical Egg", models.CategoryEgg, true},
		{"Watering Can", models.CategoryGear, false},
		{"Lightning Rod", models.CategoryGear, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := c.Lookup(tt.name)
			if !ok {
				t.Fatalf("Expected %s to be in the catalog", tt.name)
			}
			if item.Category != tt.category {
				t.Errorf("Category = %v, want %v", item.Category, tt.category)
			}
			if item.Rare != tt.rare {
				t.Errorf("Rare = %v, want %v", item.Rare, tt.rare)
			}
			if c.IsRare(tt.name) != tt.rare {
				t.Errorf("IsRare() = %v, want %v", c.IsRare(tt.name), tt.rare)
			}
		})
	}

	if c.Len() != 35 {
		t.Errorf("Expected 35 items, got %d", c.Len())
	}
	if got := len(c.Items(models.CategoryEgg)); got != 6 {
		t.Errorf("Expected 6 eggs, got %d", got)
	}
}

func TestDefault_Noise(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	for _, n := range []string{"Cookie Policy", "&nbsp;VulcanValues", "|"} {
		if !c.IsNoise(n) {
			t.Errorf("Expected %q to be noise", n)
		}
	}
	if c.IsNoise("Carrot") {
		t.Error("Carrot should not be noise")
	}
}

func TestGlyph_FallsBackToCategoryDefault(t *testing.T) {
	c, err := New(File{
		DefaultGlyphs: map[string]string{"seeds": "S", "gear": "G"},
		Seeds:         []FileItem{{Name: "Carrot", Glyph: "C"}, {Name: "Plain"}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.Glyph(models.CategorySeed, "Carrot"); got != "C" {
		t.Errorf("Glyph(Carrot) = %q, want C", got)
	}
	if got := c.Glyph(models.CategorySeed, "Plain"); got != "S" {
		t.Errorf("Glyph(Plain) = %q, want S", got)
	}
	if got := c.Glyph(models.CategoryGear, "Unknown"); got != "G" {
		t.Errorf("Glyph(Unknown) = %q, want G", got)
	}
}

func TestNew_RejectsDuplicates(t *testing.T) {
	_, err := New(File{
		Seeds: []FileItem{{Name: "Mango"}},
		Gear:  []FileItem{{Name: "Mango"}},
	})
	if !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("Expected ErrDuplicateItem, got %v", err)
	}
}

func TestNew_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{"empty name", File{Eggs: []FileItem{{Name: "  "}}}},
		{"unknown default glyph category", File{DefaultGlyphs: map[string]string{"fruit": "F"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.file); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadConfig_ExternalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{"seeds":[{"name":"Moonflower","glyph":"M","rare":true}]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Len() != 1 || !c.IsRare("Moonflower") {
		t.Errorf("Expected the external catalog with a single rare Moonflower, got %d items", c.Len())
	}
}

func TestLoadConfig_FallsBackToEmbedded(t *testing.T) {
	c, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if _, ok := c.Lookup("Carrot"); !ok {
		t.Error("Expected the embedded catalog after fallback")
	}
}

func TestLoadFromBytes_InvalidJSON(t *testing.T) {
	if _, err := LoadFromBytes([]byte("{not json")); err == nil {
		t.Error("Expected an error for invalid JSON")
	}
}
