// Package booster partitions a set catalog into rarity tiers and opens fixed-slot packs from it.
package booster

import (
	"errors"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
)

var ErrEmptyCatalog = errors.New("catalog has no booster-eligible cards")

// Catalog is the booster-eligible part of a set, split into the tiers packs draw from.
type Catalog struct {
	BasicLands []card.Record
	Commons    []card.Record
	Uncommons  []card.Record
	Rares      []card.Record // rares and mythics share one pool
}

func NewCatalog(records []card.Record) *Catalog {
	c := &Catalog{}
	for _, r := range records {
		if !r.BoosterEligible() {
			continue
		}
		if r.IsBasicLand() {
			c.BasicLands = append(c.BasicLands, r)
			continue
		}
		switch card.ParseRarity(r.Rarity) {
		case card.Common:
			c.Commons = append(c.Commons, r)
		case card.Uncommon:
			c.Uncommons = append(c.Uncommons, r)
		case card.Rare, card.Mythic:
			c.Rares = append(c.Rares, r)
		}
	}
	return c
}

func (c *Catalog) Size() int {
	return len(c.BasicLands) + len(c.Commons) + len(c.Uncommons) + len(c.Rares)
}

func (c *Catalog) Validate() error {
	if c.Size() == 0 {
		return ErrEmptyCatalog
	}
	return nil
}
