// Package card holds the catalog record shape and the drafted card instances minted from it.
package card

import (
	"strings"

	"github.com/google/uuid"
)

type Rarity string

const (
	Common   Rarity = "common"
	Uncommon Rarity = "uncommon"
	Rare     Rarity = "rare"
	Mythic   Rarity = "mythic"
	Unknown  Rarity = "unknown"
)

// ParseRarity maps a catalog rarity string onto a Rarity, Unknown for anything unrecognized.
func ParseRarity(s string) Rarity {
	switch Rarity(strings.ToLower(strings.TrimSpace(s))) {
	case Common:
		return Common
	case Uncommon:
		return Uncommon
	case Rare:
		return Rare
	case Mythic:
		return Mythic
	default:
		return Unknown
	}
}

type Color string

const (
	White Color = "W"
	Blue  Color = "U"
	Black Color = "B"
	Red   Color = "R"
	Green Color = "G"
)

// AllColors lists the five colors in WUBRG order.
var AllColors = []Color{White, Blue, Black, Red, Green}

// Card is one physical copy handed out by the pack generator.
type Card struct {
	CatalogID       string  `json:"id"`
	InstanceID      string  `json:"instanceId"`
	Name            string  `json:"name"`
	Set             string  `json:"set,omitempty"`
	CollectorNumber string  `json:"collectorNumber,omitempty"`
	Rarity          Rarity  `json:"rarity"`
	TypeLine        string  `json:"typeLine"`
	ManaCost        string  `json:"manaCost,omitempty"`
	Colors          []Color `json:"colors"`
	ManaValue       float64 `json:"cmc"`
	Layout          string  `json:"layout,omitempty"`
	Image           string  `json:"image,omitempty"`
	BackImage       string  `json:"backImage,omitempty"`
	Foil            bool    `json:"foil"`
	Bonus           bool    `json:"bonus"`
}

// New materializes a record into a card with a fresh instance id.
func New(r Record) Card {
	colors := make([]Color, 0, len(r.Colors))
	for _, c := range r.Colors {
		colors = append(colors, Color(strings.ToUpper(c)))
	}
	var mv float64
	switch {
	case r.ManaValue != nil:
		mv = *r.ManaValue
	case r.ManaValueAlt != nil:
		mv = *r.ManaValueAlt
	}
	if mv < 0 {
		mv = 0
	}
	return Card{
		CatalogID:       r.ID,
		InstanceID:      uuid.NewString(),
		Name:            r.Name,
		Set:             r.Set,
		CollectorNumber: r.CollectorNumber,
		Rarity:          ParseRarity(r.Rarity),
		TypeLine:        r.TypeLine,
		ManaCost:        r.ManaCost,
		Colors:          colors,
		ManaValue:       mv,
		Layout:          r.Layout,
		Image:           r.Image,
		BackImage:       r.BackImage,
		Foil:            r.Foil,
	}
}

func (c Card) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}

func (c Card) IsBasicLand() bool {
	return strings.Contains(c.TypeLine, "Basic Land")
}

func (c Card) IsCreature() bool {
	return strings.Contains(c.TypeLine, "Creature")
}

func (c Card) IsColorless() bool {
	return len(c.Colors) == 0
}

func (c Card) IsMulticolor() bool {
	return len(c.Colors) > 1
}

// IndexOf returns the position of the card with the given instance id, or -1.
func IndexOf(cards []Card, instanceID string) int {
	for i, c := range cards {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// Remove returns the card at i and the slice without it. The input slice is reused.
func Remove(cards []Card, i int) (Card, []Card) {
	picked := cards[i]
	return picked, append(cards[:i], cards[i+1:]...)
}
