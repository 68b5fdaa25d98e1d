// Package catalog holds the static set of shop items the bot recognizes.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pauljones0/garden-stock-bot/internal/models"
)

// ErrDuplicateItem is returned when an item name appears more than once in a catalog.
var ErrDuplicateItem = errors.New("duplicate catalog item")

// Item is a recognized shop item.
type Item struct {
	Name     string
	Glyph    string
	Rare     bool
	Category models.Category
}

// Catalog classifies item names into categories. It is immutable after construction.
type Catalog struct {
	items         map[string]Item
	noise         map[string]struct{}
	defaultGlyphs map[models.Category]string
}

// File is the on-disk JSON shape of a catalog.
type File struct {
	Noise         []string          `json:"noise"`
	DefaultGlyphs map[string]string `json:"default_glyphs"`
	Seeds         []FileItem        `json:"seeds"`
	Eggs          []FileItem        `json:"eggs"`
	Gear          []FileItem        `json:"gear"`
}

// FileItem is one item entry in a catalog file.
type FileItem struct {
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
	Rare  bool   `json:"rare,omitempty"`
}

func (f File) section(c models.Category) []FileItem {
	switch c {
	case models.CategorySeed:
		return f.Seeds
	case models.CategoryEgg:
		return f.Eggs
	case models.CategoryGear:
		return f.Gear
	}
	return nil
}

// New builds a catalog. Names must be unique across all three categories.
func New(f File) (*Catalog, error) {
	c := &Catalog{
		items:         make(map[string]Item),
		noise:         make(map[string]struct{}, len(f.Noise)),
		defaultGlyphs: make(map[models.Category]string, len(f.DefaultGlyphs)),
	}

	for key, glyph := range f.DefaultGlyphs {
		cat, err := models.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("default_glyphs: %w", err)
		}
		c.defaultGlyphs[cat] = glyph
	}

	for _, cat := range models.Categories {
		for _, fi := range f.section(cat) {
			name := strings.TrimSpace(fi.Name)
			if name == "" {
				return nil, fmt.Errorf("empty item name in %s", cat)
			}
			if prev, exists := c.items[name]; exists {
				return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateItem, name, prev.Category, cat)
			}
			c.items[name] = Item{Name: name, Glyph: fi.Glyph, Rare: fi.Rare, Category: cat}
		}
	}

	for _, n := range f.Noise {
		c.noise[n] = struct{}{}
	}
	return c, nil
}

// Lookup classifies an exact item name.
func (c *Catalog) Lookup(name string) (Item, bool) {
	item, ok := c.items[name]
	return item, ok
}

// IsNoise reports whether a token is known page chrome.
func (c *Catalog) IsNoise(token string) bool {
	_, ok := c.noise[token]
	return ok
}

// IsRare reports whether name is a known rare item.
func (c *Catalog) IsRare(name string) bool {
	return c.items[name].Rare
}

// Glyph returns the display glyph for a name, falling back to the category default.
func (c *Catalog) Glyph(cat models.Category, name string) string {
	if item, ok := c.items[name]; ok && item.Glyph != "" {
		return item.Glyph
	}
	return c.defaultGlyphs[cat]
}

// Items lists the items of a category sorted by name.
func (c *Catalog) Items(cat models.Category) []Item {
	var out []Item
	for _, item := range c.items {
		if item.Category == cat {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len is the number of recognized items.
func (c *Catalog) Len() int {
	return len(c.items)
}
