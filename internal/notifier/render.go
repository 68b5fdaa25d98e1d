package notifier

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pauljones0/garden-stock-bot/internal/catalog"
	"github.com/pauljones0/garden-stock-bot/internal/models"
)

const (
	embedTitle  = "🌱 Garden Stock Update"
	embedColor  = 0x00FF00
	embedFooter = "Grow a Garden Stock Tracker"

	emptyStockLine = "No items currently in stock."
	rareHeader     = "🚨 **RARE ITEMS IN STOCK** 🚨"
	rarePrefix     = "⭐ "
	rareSuffix     = " ⭐"
	rareAlert      = "🚨 RARE ITEMS DETECTED! 🚨"

	// JavaScript-style ISO timestamp, which Discord accepts.
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

var sectionHeaders = map[models.Category]string{
	models.CategorySeed: "🌱 **Seed Stock**",
	models.CategoryEgg:  "🥚 **Egg Stock**",
	models.CategoryGear: "⚙️ **Gear Stock**",
}

// Payload is the Discord webhook request body.
type Payload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds"`
}

// Embed is one Discord message embed.
type Embed struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Color       int         `json:"color,omitempty"`
	Timestamp   string      `json:"timestamp,omitempty"`
	Footer      EmbedFooter `json:"footer,omitempty"`
}

// EmbedFooter is the small text line under an embed.
type EmbedFooter struct {
	Text string `json:"text,omitempty"`
}

// Renderer formats snapshots into webhook payloads. It performs no I/O.
type Renderer struct {
	catalog  *catalog.Catalog
	mentions []string
	now      func() time.Time
}

// NewRenderer creates a renderer; mentions are pinged when rare items are in stock.
func NewRenderer(c *catalog.Catalog, mentions []string) *Renderer {
	return &Renderer{catalog: c, mentions: mentions, now: time.Now}
}

// RareItems lists every rare item in stock as "Name (xN)", seeds then eggs then
// gear, by name within each category.
func (r *Renderer) RareItems(s models.Snapshot) []string {
	var found []string
	for _, cat := range models.Categories {
		items := s.Items(cat)
		for _, name := range s.SortedNames(cat) {
			if r.catalog.IsRare(name) {
				found = append(found, fmt.Sprintf("%s (x%d)", name, items[name]))
			}
		}
	}
	return found
}

// Render builds the notification for s.
func (r *Renderer) Render(s models.Snapshot) Payload {
	rare := r.RareItems(s)

	payload := Payload{
		Embeds: []Embed{{
			Title:       embedTitle,
			Description: r.body(s, rare),
			Color:       embedColor,
			Timestamp:   r.now().UTC().Format(isoMillis),
			Footer:      EmbedFooter{Text: embedFooter},
		}},
	}

	switch {
	case len(rare) > 0 && len(r.mentions) > 0:
		payload.Content = strings.Join(r.mentions, " ") + " " + rareAlert
		slog.Info("Adding ping for rare items", "roles", r.mentions, "items", rare)
	case len(rare) > 0:
		slog.Info("Rare items detected, but no roles configured for ping", "items", rare)
	}
	return payload
}

func (r *Renderer) body(s models.Snapshot, rare []string) string {
	var lines []string

	if len(rare) > 0 {
		lines = append(lines, rareHeader)
		for _, item := range rare {
			lines = append(lines, rarePrefix+item)
		}
		lines = append(lines, "")
	}

	for _, cat := range models.Categories {
		items := s.Items(cat)
		if len(items) == 0 {
			continue
		}
		lines = append(lines, sectionHeaders[cat])
		for _, name := range s.SortedNames(cat) {
			line := fmt.Sprintf("%s %s - %d units", r.catalog.Glyph(cat, name), name, items[name])
			if r.catalog.IsRare(name) {
				line += rareSuffix
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	if len(lines) == 0 {
		return emptyStockLine
	}
	return strings.Join(lines, "\n")
}
