package scraper

import (
	"log/slog"
	"strings"

	"github.com/pauljones0/garden-stock-bot/internal/catalog"
	"github.com/pauljones0/garden-stock-bot/internal/models"
	"github.com/pauljones0/garden-stock-bot/internal/util"
)

// quantityPrefix marks a count token, e.g. "x5".
const quantityPrefix = "x"

// Parser turns scraped fragments into a stock snapshot using a catalog.
type Parser struct {
	catalog *catalog.Catalog
}

func NewParser(c *catalog.Catalog) *Parser {
	return &Parser{catalog: c}
}

// Parse scans fragments as (name, quantity) pairs. A matched pair advances the
// scan by two tokens; anything else advances by one so noise tokens between
// pairs are skipped. Names outside the catalog are dropped; a repeated name
// keeps its last quantity.
func (p *Parser) Parse(fragments []string) models.Snapshot {
	snapshot := models.NewSnapshot()
	var dropped int

	i := 0
	for i < len(fragments)-1 {
		name := strings.TrimSpace(fragments[i])
		quantityText := strings.TrimSpace(fragments[i+1])

		quantity, ok := p.quantity(name, quantityText)
		if !ok {
			i++
			continue
		}

		item, known := p.catalog.Lookup(name)
		if !known {
			dropped++
			i++
			continue
		}

		snapshot.Set(item.Category, item.Name, quantity)
		i += 2
	}

	slog.Info("Parsed stock items",
		"seeds", len(snapshot.Seeds),
		"eggs", len(snapshot.Eggs),
		"gear", len(snapshot.Gear),
		"unrecognized", dropped,
	)
	return snapshot
}

// quantity validates a candidate pair and returns its count.
func (p *Parser) quantity(name, quantityText string) (int, bool) {
	if p.catalog.IsNoise(name) || !strings.HasPrefix(quantityText, quantityPrefix) {
		return 0, false
	}
	n, ok := util.ParseLeadingInt(strings.TrimPrefix(quantityText, quantityPrefix))
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}
