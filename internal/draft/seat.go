package draft

import (
	"fmt"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal/bot"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
)

type Control int

const (
	External Control = iota
	Algorithmic
)

func (c Control) String() string {
	if c == External {
		return "external"
	}
	return "algorithmic"
}

func (c Control) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Control) UnmarshalText(text []byte) error {
	switch string(text) {
	case "external":
		*c = External
	case "algorithmic":
		*c = Algorithmic
	default:
		return fmt.Errorf("unknown seat control %q", text)
	}
	return nil
}

// Seat is one place at the table. Pool only grows; Pack loses one card per turn.
type Seat struct {
	ID      int
	Control Control
	Name    string
	Pool    []card.Card
	Pack    []card.Card
	brain   *bot.Bot
}

func seatName(id int) string {
	if id == ExternalSeat {
		return "You"
	}
	return fmt.Sprintf("Bot %d", id)
}

// take moves the card at index i of the seat's pack into its pool.
func (s *Seat) take(i int) card.Card {
	var picked card.Card
	picked, s.Pack = card.Remove(s.Pack, i)
	s.Pool = append(s.Pool, picked)
	return picked
}

// SeatSnapshot is a copy of a seat that callers may keep or modify.
type SeatSnapshot struct {
	ID      int         `json:"id"`
	Control Control     `json:"control"`
	Name    string      `json:"name"`
	Pool    []card.Card `json:"pool"`
	Pack    []card.Card `json:"pack"`
}

func (s *Seat) snapshot() SeatSnapshot {
	return SeatSnapshot{
		ID:      s.ID,
		Control: s.Control,
		Name:    s.Name,
		Pool:    append([]card.Card(nil), s.Pool...),
		Pack:    append([]card.Card(nil), s.Pack...),
	}
}
