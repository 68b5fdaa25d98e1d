package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrUnknownCategory is returned when a category name cannot be resolved.
var ErrUnknownCategory = errors.New("unknown category")

// Category identifies one of the three shop sections.
type Category int

const (
	CategorySeed Category = iota
	CategoryEgg
	CategoryGear
)

// Categories lists every category in render order.
var Categories = []Category{CategorySeed, CategoryEgg, CategoryGear}

func (c Category) String() string {
	switch c {
	case CategorySeed:
		return "seeds"
	case CategoryEgg:
		return "eggs"
	case CategoryGear:
		return "gear"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory resolves the names used in catalog files ("seeds", "eggs", "gear").
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Snapshot is a point-in-time record of shop stock, item name -> quantity per category.
type Snapshot struct {
	Seeds map[string]int `firestore:"seeds" json:"seeds"`
	Eggs  map[string]int `firestore:"eggs" json:"eggs"`
	Gear  map[string]int `firestore:"gear" json:"gear"`
}

// NewSnapshot returns a snapshot with all three maps allocated.
func NewSnapshot() Snapshot {
	return Snapshot{
		Seeds: make(map[string]int),
		Eggs:  make(map[string]int),
		Gear:  make(map[string]int),
	}
}

// Items returns the map for a category. The returned map may be nil.
func (s Snapshot) Items(c Category) map[string]int {
	switch c {
	case CategorySeed:
		return s.Seeds
	case CategoryEgg:
		return s.Eggs
	case CategoryGear:
		return s.Gear
	}
	return nil
}

// Set records a quantity, replacing any earlier value for the same name.
func (s *Snapshot) Set(c Category, name string, quantity int) {
	var m *map[string]int
	switch c {
	case CategorySeed:
		m = &s.Seeds
	case CategoryEgg:
		m = &s.Eggs
	case CategoryGear:
		m = &s.Gear
	default:
		return
	}
	if *m == nil {
		*m = make(map[string]int)
	}
	(*m)[name] = quantity
}

// SortedNames returns the item names of a category in lexicographic order.
func (s Snapshot) SortedNames(c Category) []string {
	return slices.Sorted(maps.Keys(s.Items(c)))
}

// Len is the total number of item entries across categories.
func (s Snapshot) Len() int {
	return len(s.Seeds) + len(s.Eggs) + len(s.Gear)
}

// IsEmpty reports whether no category holds any item.
func (s Snapshot) IsEmpty() bool {
	return s.Len() == 0
}

// Equal compares two snapshots structurally. A nil map and an empty map are equal.
func (s Snapshot) Equal(other Snapshot) bool {
	for _, c := range Categories {
		if !maps.Equal(s.Items(c), other.Items(c)) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy with all maps allocated.
func (s Snapshot) Clone() Snapshot {
	out := NewSnapshot()
	for _, c := range Categories {
		for name, qty := range s.Items(c) {
			out.Set(c, name, qty)
		}
	}
	return out
}
