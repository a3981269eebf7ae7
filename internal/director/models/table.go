package models

import (
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/deck"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
)

type SeatSummary struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Control   draft.Control `json:"control"`
	PackCount int           `json:"packCount"`
	PoolCount int           `json:"poolCount"`
}

// Table is the table_content payload.
type Table struct {
	Round int           `json:"round"`
	Turn  int           `json:"turn"`
	State draft.State   `json:"state"`
	Seats []SeatSummary `json:"seats"`
}

func NewTable(s *draft.Session) Table {
	seats := s.Seats()
	t := Table{Round: s.Round(), Turn: s.Turn(), State: s.State(), Seats: make([]SeatSummary, len(seats))}
	for i, seat := range seats {
		t.Seats[i] = SeatSummary{
			ID:        seat.ID,
			Name:      seat.Name,
			Control:   seat.Control,
			PackCount: len(seat.Pack),
			PoolCount: len(seat.Pool),
		}
	}
	return t
}

// Pool is the pool_content payload with the mana curve precomputed.
type Pool struct {
	Cards []card.Card    `json:"cards"`
	Curve [7][]card.Card `json:"curve"`
	Stats map[string]int `json:"colors"`
}

func NewPool(cards []card.Card) Pool {
	p := Pool{Cards: cards, Curve: deck.Curve(cards), Stats: make(map[string]int)}
	for _, c := range cards {
		p.Stats[deck.ColorCode(c)]++
	}
	return p
}

// GameEndJson is the end_game payload.
type GameEndJson struct {
	DraftID string      `json:"draftId"`
	SetCode string      `json:"setCode"`
	Pool    []card.Card `json:"pool"`
	Deck    deck.List   `json:"deck"`
	Arena   string      `json:"arena"`
}
