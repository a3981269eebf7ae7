package models

import (
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/deck"
)

type DeckMoveJson struct {
	InstanceID string `json:"instanceId"`
	To         string `json:"to"`
}

// DeckBasicJson adds (positive Delta) or removes (negative Delta) basic lands by name.
type DeckBasicJson struct {
	Name  string `json:"name"`
	Delta int    `json:"delta"`
}

type DeckViewJson struct {
	Sort deck.SortMode `json:"sort"`
}

// DeckContentJson is the deck_content payload: the main deck in sorted columns plus the
// sideboard and counts.
type DeckContentJson struct {
	Sort      deck.SortMode `json:"sort"`
	Buckets   []deck.Bucket `json:"buckets"`
	Sideboard []card.Card   `json:"sideboard"`
	Stats     deck.Stats    `json:"stats"`
	Deck      deck.List     `json:"deck"`
	Arena     string        `json:"arena"`
}

func NewDeckContent(b *deck.Builder, mode deck.SortMode) DeckContentJson {
	return DeckContentJson{
		Sort:      mode,
		Buckets:   b.Buckets(mode),
		Sideboard: b.Sideboard(),
		Stats:     b.Stats(),
		Deck:      b.Export(),
		Arena:     b.ExportArena(),
	}
}
