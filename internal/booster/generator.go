package booster

import (
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
)

const (
	PackSize = 14

	commonSlots   = 6
	uncommonSlots = 3

	// resample budget when a catalog id is already in the pack
	maxUniqueAttempts = 10

	bonusChance = 0.125
)

// Generator opens packs. It keeps no state between calls besides its random source.
type Generator struct {
	catalog *Catalog
	bonus   []card.Record
	rand    rng.Source
}

func NewGenerator(catalog *Catalog, bonus []card.Record, source rng.Source) *Generator {
	return &Generator{catalog: catalog, bonus: bonus, rand: source}
}

type pack struct {
	cards []card.Card
	ids   map[string]struct{}
}

// drawUnique samples pool, resampling while the catalog id is already in the pack.
// After maxUniqueAttempts draws the duplicate is kept.
func (g *Generator) drawUnique(p *pack, pool []card.Record) (card.Card, bool) {
	if len(pool) == 0 {
		return card.Card{}, false
	}
	var r card.Record
	for attempts := 0; attempts < maxUniqueAttempts; attempts++ {
		r = pool[g.rand.IntN(len(pool))]
		if _, dup := p.ids[r.ID]; !dup {
			break
		}
	}
	p.ids[r.ID] = struct{}{}
	return card.New(r), true
}

func (g *Generator) add(p *pack, pool []card.Record) {
	if c, ok := g.drawUnique(p, pool); ok {
		p.cards = append(p.cards, c)
	}
}

// Generate opens one pack. Slots whose tier is empty are left out, so the pack can be
// shorter than PackSize.
func (g *Generator) Generate() []card.Card {
	p := &pack{cards: make([]card.Card, 0, PackSize), ids: make(map[string]struct{}, PackSize)}
	cat := g.catalog

	for i := 0; i < commonSlots; i++ {
		g.add(p, cat.Commons)
	}

	if len(g.bonus) > 0 && g.rand.Float64() < bonusChance {
		c := card.New(g.bonus[g.rand.IntN(len(g.bonus))])
		c.Bonus = true
		p.ids[c.CatalogID] = struct{}{}
		p.cards = append(p.cards, c)
	} else {
		g.add(p, cat.Commons)
	}

	for i := 0; i < uncommonSlots; i++ {
		g.add(p, cat.Uncommons)
	}

	g.add(p, cat.Rares)

	if len(cat.BasicLands) > 0 {
		g.add(p, cat.BasicLands)
	} else {
		g.add(p, cat.Commons)
	}

	g.add(p, g.wildcardTier())

	if foil, ok := g.drawUnique(p, g.foilTier()); ok {
		foil.Foil = true
		p.cards = append(p.cards, foil)
	}

	return p.cards
}

func (g *Generator) wildcardTier() []card.Record {
	roll := g.rand.Float64()
	switch {
	case roll < 0.5:
		return g.catalog.Commons
	case roll < 0.75:
		return g.catalog.Uncommons
	default:
		return g.catalog.Rares
	}
}

func (g *Generator) foilTier() []card.Record {
	roll := g.rand.Float64()
	switch {
	case roll < 0.6:
		return g.catalog.Commons
	case roll < 0.9:
		return g.catalog.Uncommons
	default:
		return g.catalog.Rares
	}
}
