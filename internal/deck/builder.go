// Package deck turns a finished draft pool into a main deck and sideboard.
package deck

import (
	"errors"
	"fmt"
	"sort"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
)

var ErrNoTemplate = errors.New("no basic land template")

// Builder starts with the whole pool in the sideboard. Basic lands added from templates
// live only in the main deck.
type Builder struct {
	main      []card.Card
	side      []card.Card
	added     map[string]bool // instance ids of basics added from templates
	templates map[string]card.Record
}

func NewBuilder(pool []card.Card, templates map[string]card.Record) *Builder {
	return &Builder{
		side:      append([]card.Card(nil), pool...),
		added:     make(map[string]bool),
		templates: templates,
	}
}

func (b *Builder) MoveToMain(instanceID string) bool {
	i := card.IndexOf(b.side, instanceID)
	if i < 0 {
		return false
	}
	var c card.Card
	c, b.side = card.Remove(b.side, i)
	b.main = append(b.main, c)
	return true
}

// MoveToSideboard takes a card out of the main deck. Added basics are dropped instead.
func (b *Builder) MoveToSideboard(instanceID string) bool {
	i := card.IndexOf(b.main, instanceID)
	if i < 0 {
		return false
	}
	var c card.Card
	c, b.main = card.Remove(b.main, i)
	if b.added[c.InstanceID] {
		delete(b.added, c.InstanceID)
		return true
	}
	b.side = append(b.side, c)
	return true
}

func (b *Builder) AddBasicLand(name string) (card.Card, error) {
	template, ok := b.templates[name]
	if !ok {
		return card.Card{}, fmt.Errorf("%w: %s", ErrNoTemplate, name)
	}
	c := card.New(template)
	b.added[c.InstanceID] = true
	b.main = append(b.main, c)
	return c, nil
}

// RemoveBasicLand removes the most recently added basic with the given name.
func (b *Builder) RemoveBasicLand(name string) bool {
	for i := len(b.main) - 1; i >= 0; i-- {
		c := b.main[i]
		if b.added[c.InstanceID] && c.Name == name {
			b.main = append(b.main[:i], b.main[i+1:]...)
			delete(b.added, c.InstanceID)
			return true
		}
	}
	return false
}

func (b *Builder) Main() []card.Card {
	return append([]card.Card(nil), b.main...)
}

// Sideboard returns the sideboard ordered by mana value, color count, then name.
func (b *Builder) Sideboard() []card.Card {
	side := append([]card.Card(nil), b.side...)
	sort.SliceStable(side, func(i, j int) bool {
		a, c := side[i], side[j]
		if a.ManaValue != c.ManaValue {
			return a.ManaValue < c.ManaValue
		}
		if len(a.Colors) != len(c.Colors) {
			return len(a.Colors) < len(c.Colors)
		}
		return a.Name < c.Name
	})
	return side
}

func (b *Builder) isBasic(c card.Card) bool {
	return b.added[c.InstanceID] || c.IsBasicLand()
}

type Stats struct {
	MainCount int            `json:"mainCount"`
	SideCount int            `json:"sideCount"`
	Lands     int            `json:"lands"`
	Basics    map[string]int `json:"basics"`
}

func (b *Builder) Stats() Stats {
	s := Stats{
		MainCount: len(b.main),
		SideCount: len(b.side),
		Basics:    make(map[string]int, len(basicNames)),
	}
	for _, name := range basicNames {
		s.Basics[name] = 0
	}
	for _, c := range b.main {
		if _, known := s.Basics[c.Name]; known && b.added[c.InstanceID] {
			s.Basics[c.Name]++
			s.Lands++
		} else if c.IsLand() {
			s.Lands++
		}
	}
	return s
}

var basicNames = []string{"Plains", "Island", "Swamp", "Mountain", "Forest"}
