// Package bot implements the pick heuristic used by the algorithmic seats.
//
// A bot reads its own pool to find the two colors it has invested most rarity weight
// into, then scores every card in the offered pack on rarity, mana value, land-ness and
// fit with those colors. How hard the color fit is enforced depends on how far into the
// draft the pool is.
package bot

import (
	"sort"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
)

const (
	highCostThreshold = 6
	highCostPenalty   = -1.0
	landBonus         = 0.5
	colorlessSynergy  = 0.5
	maxJitter         = 0.5

	// pool sizes where the middle and late phases begin
	middlePhaseStart = 14
	latePhaseStart   = 28
)

type Phase int

const (
	Early Phase = iota
	Middle
	Late
)

func (p Phase) String() string {
	switch p {
	case Early:
		return "early"
	case Middle:
		return "middle"
	default:
		return "late"
	}
}

// PhaseFor classifies a pool size into a draft phase.
func PhaseFor(poolSize int) Phase {
	switch {
	case poolSize < middlePhaseStart:
		return Early
	case poolSize < latePhaseStart:
		return Middle
	default:
		return Late
	}
}

func RarityWeight(r card.Rarity) float64 {
	switch r {
	case card.Mythic:
		return 4.5
	case card.Rare:
		return 4.0
	case card.Uncommon:
		return 2.5
	default:
		return 1.0
	}
}

type ColorWeight struct {
	Color  card.Color
	Weight float64
}

// Affinity is a pool's per-color rarity weight, heaviest first.
type Affinity []ColorWeight

// ComputeAffinity totals rarity weight per color over the colored cards of pool.
// Ties keep WUBRG order.
func ComputeAffinity(pool []card.Card) Affinity {
	totals := make(map[card.Color]float64, len(card.AllColors))
	for _, c := range pool {
		w := RarityWeight(c.Rarity)
		for _, color := range c.Colors {
			totals[color] += w
		}
	}
	a := make(Affinity, 0, len(card.AllColors))
	for _, color := range card.AllColors {
		a = append(a, ColorWeight{Color: color, Weight: totals[color]})
	}
	sort.SliceStable(a, func(i, j int) bool {
		return a[i].Weight > a[j].Weight
	})
	return a
}

func (a Affinity) Primary() card.Color {
	return a[0].Color
}

func (a Affinity) Secondary() card.Color {
	return a[1].Color
}

// Evaluation is the score breakdown of one candidate.
type Evaluation struct {
	Index  int
	Base   float64 // everything except the jitter
	Jitter float64
}

func (e Evaluation) Total() float64 {
	return e.Base + e.Jitter
}

// Bot scores packs for a single seat. Its affinity is recomputed from the pool on every
// call; nothing carries over between picks.
type Bot struct {
	rand     rng.Source
	affinity Affinity
}

func New(source rng.Source) *Bot {
	return &Bot{rand: source}
}

// Affinity returns the color ranking computed during the last Pick or Evaluate.
func (b *Bot) Affinity() Affinity {
	return b.affinity
}

// Pick returns the index of the chosen card. pack must not be empty.
func (b *Bot) Pick(pack, pool []card.Card) int {
	best := 0
	bestScore := 0.0
	for i, e := range b.Evaluate(pack, pool) {
		if total := e.Total(); i == 0 || total > bestScore {
			best, bestScore = i, total
		}
	}
	return best
}

// Evaluate scores every card of pack against pool.
func (b *Bot) Evaluate(pack, pool []card.Card) []Evaluation {
	b.affinity = ComputeAffinity(pool)
	evals := make([]Evaluation, len(pack))
	for i, c := range pack {
		evals[i] = Evaluation{
			Index:  i,
			Base:   BaseScore(c, b.affinity, len(pool)),
			Jitter: b.rand.Float64() * maxJitter,
		}
	}
	return evals
}

// BaseScore is the deterministic part of a card's score.
func BaseScore(c card.Card, a Affinity, poolSize int) float64 {
	score := RarityWeight(c.Rarity)
	if c.ManaValue > highCostThreshold {
		score += highCostPenalty
	}
	if c.IsLand() {
		score += landBonus
	}
	return score + ColorSynergy(c, a, poolSize)
}

func ColorSynergy(c card.Card, a Affinity, poolSize int) float64 {
	if c.IsColorless() {
		return colorlessSynergy
	}
	primary, secondary := a.Primary(), a.Secondary()
	matches := 0
	for _, color := range c.Colors {
		if color == primary || color == secondary {
			matches++
		}
	}
	total := len(c.Colors)

	var synergy float64
	switch PhaseFor(poolSize) {
	case Early:
		if matches > 0 {
			synergy += 2.0
		}
		if matches == total {
			synergy += 1.0
		}
	case Middle:
		if matches > 0 {
			synergy += 4.0
		}
		if c.IsMulticolor() && matches < total {
			synergy -= 5.0
		}
		if matches == 0 {
			synergy -= 2.0
		}
	case Late:
		if matches > 0 {
			synergy += 6.0
		} else {
			synergy -= 10.0
		}
	}
	return synergy
}
