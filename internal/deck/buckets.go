package deck

import (
	"math"
	"sort"
	"strings"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
)

type SortMode string

const (
	SortCMC   SortMode = "cmc"
	SortColor SortMode = "color"
	SortType  SortMode = "type"
)

// Bucket is one labelled column of the main deck view.
type Bucket struct {
	Label string      `json:"label"`
	Cards []card.Card `json:"cards"`
}

var bucketLabels = map[SortMode][]string{
	SortCMC:   {"Basics", "0", "1", "2", "3", "4", "5", "6+"},
	SortColor: {"Basics", "White", "Blue", "Black", "Red", "Green", "Multi", "Colorless", "Land"},
	SortType:  {"Basics", "Creature", "Instant/Sorc", "Artifact/Ench", "Planeswalker", "Land"},
}

var colorColumn = map[card.Color]int{card.White: 1, card.Blue: 2, card.Black: 3, card.Red: 4, card.Green: 5}

func cmcBucket(mv float64) int {
	v := int(math.Floor(mv))
	if v > 6 {
		v = 6
	}
	if v < 0 {
		v = 0
	}
	return v
}

func (b *Builder) bucketFor(mode SortMode, c card.Card) int {
	if b.isBasic(c) {
		return 0
	}
	switch mode {
	case SortColor:
		switch {
		case c.IsLand() && c.IsColorless():
			return 8
		case c.IsColorless():
			return 7
		case c.IsMulticolor():
			return 6
		}
		if col, ok := colorColumn[c.Colors[0]]; ok {
			return col
		}
		return 7
	case SortType:
		t := c.TypeLine
		switch {
		case strings.Contains(t, "Land"):
			return 5
		case strings.Contains(t, "Creature"):
			return 1
		case strings.Contains(t, "Instant"), strings.Contains(t, "Sorcery"):
			return 2
		case strings.Contains(t, "Planeswalker"):
			return 4
		default:
			return 3
		}
	default:
		if c.IsLand() {
			return 1
		}
		return cmcBucket(c.ManaValue) + 1
	}
}

// Buckets groups the main deck into columns for mode, each column sorted by name.
// Unknown modes fall back to SortCMC.
func (b *Builder) Buckets(mode SortMode) []Bucket {
	labels, ok := bucketLabels[mode]
	if !ok {
		mode = SortCMC
		labels = bucketLabels[SortCMC]
	}
	buckets := make([]Bucket, len(labels))
	for i, label := range labels {
		buckets[i] = Bucket{Label: label, Cards: []card.Card{}}
	}
	for _, c := range b.main {
		i := b.bucketFor(mode, c)
		buckets[i].Cards = append(buckets[i].Cards, c)
	}
	for _, bucket := range buckets {
		sort.SliceStable(bucket.Cards, func(i, j int) bool {
			return bucket.Cards[i].Name < bucket.Cards[j].Name
		})
	}
	return buckets
}

// Curve groups a pool into mana value columns 0 through 6+.
func Curve(pool []card.Card) [7][]card.Card {
	var curve [7][]card.Card
	for _, c := range pool {
		i := cmcBucket(c.ManaValue)
		curve[i] = append(curve[i], c)
	}
	return curve
}

// ColorCode is the single-letter tag used for pool slivers: L for lands, C for
// colorless, M for multicolor, otherwise the card's color.
func ColorCode(c card.Card) string {
	switch {
	case c.IsLand():
		return "L"
	case c.IsColorless():
		return "C"
	case c.IsMulticolor():
		return "M"
	default:
		return string(c.Colors[0])
	}
}
