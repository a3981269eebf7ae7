// Package draft runs an eight-seat booster draft: one externally controlled seat and seven
// bots open packs, pick one card a turn and pass the rest around the table for three rounds.
//
// A Session is not safe for concurrent use. Callers that accept picks from several
// goroutines must serialize their calls.
package draft

import (
	"errors"
	"fmt"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/bot"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
)

const (
	NumSeats     = 8
	Rounds       = 3
	ExternalSeat = 0
)

var ErrInvalidTransition = errors.New("invalid draft transition")

type State int

const (
	Idle State = iota
	RoundActive
	RoundTransition
	DraftComplete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case RoundActive:
		return "round_active"
	case RoundTransition:
		return "round_transition"
	default:
		return "draft_complete"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st := Idle; st <= DraftComplete; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown draft state %q", text)
}

// PackSource opens one pack per call. *booster.Generator implements it.
type PackSource interface {
	Generate() []card.Card
}

// PickEvent records a card moving from a pack into a seat's pool.
type PickEvent struct {
	Round  int       `json:"round"`
	Turn   int       `json:"turn"`
	SeatID int       `json:"seatId"`
	Card   card.Card `json:"card"`
}

type Session struct {
	seats     []*Seat
	packs     PackSource
	round     int
	turn      int
	direction Direction
	state     State
	observers []Observer
	picks     []PickEvent
}

// NewSession seats one external player and seven bots. All bots draw their jitter from
// source, the same source the pack generator should be built with.
func NewSession(packs PackSource, source rng.Source) *Session {
	s := &Session{
		seats: make([]*Seat, NumSeats),
		packs: packs,
		state: Idle,
	}
	for id := range s.seats {
		seat := &Seat{ID: id, Control: Algorithmic, Name: seatName(id)}
		if id == ExternalSeat {
			seat.Control = External
		} else {
			seat.brain = bot.New(source)
		}
		s.seats[id] = seat
	}
	return s
}

// Register adds an observer for round and draft completion.
func (s *Session) Register(o Observer) {
	s.observers = append(s.observers, o)
}

// StartRound opens a fresh pack for every seat. Round 1 starts from Idle; later rounds
// start from the transition that follows the previous round.
func (s *Session) StartRound(round int) error {
	switch {
	case s.state == Idle && round == 1:
	case s.state == RoundTransition && round == s.round+1 && round <= Rounds:
	default:
		return fmt.Errorf("%w: cannot start round %d from %s after round %d", ErrInvalidTransition, round, s.state, s.round)
	}

	s.round = round
	s.turn = 1
	s.direction = DirectionFor(round)
	for _, seat := range s.seats {
		seat.Pack = s.packs.Generate()
	}
	s.state = RoundActive

	internal.GetLogger().Debugw("round started", "round", round, "direction", s.direction.String(), "pack_size", len(s.seats[ExternalSeat].Pack))
	return nil
}

// SubmitPick takes the external seat's card with the given instance id, lets every bot
// pick, passes the packs and checks whether the round or draft is over. It reports false
// and changes nothing when no round is active or the card is not in the external pack.
func (s *Session) SubmitPick(instanceID string) bool {
	if s.state != RoundActive {
		return false
	}
	external := s.seats[ExternalSeat]
	i := card.IndexOf(external.Pack, instanceID)
	if i < 0 {
		return false
	}
	s.record(external, external.take(i))

	for _, seat := range s.seats {
		if seat.Control != Algorithmic || len(seat.Pack) == 0 {
			continue
		}
		choice := seat.brain.Pick(seat.Pack, seat.Pool)
		s.record(seat, seat.take(choice))
	}

	s.rotate()
	s.turn++

	if len(external.Pack) == 0 {
		s.finishRound()
	}
	return true
}

func (s *Session) record(seat *Seat, c card.Card) {
	s.picks = append(s.picks, PickEvent{Round: s.round, Turn: s.turn, SeatID: seat.ID, Card: c})
}

func (s *Session) rotate() {
	packs := make([][]card.Card, len(s.seats))
	for i, seat := range s.seats {
		packs[i] = seat.Pack
	}
	for i, p := range Rotate(packs, s.direction) {
		s.seats[i].Pack = p
	}
}

func (s *Session) finishRound() {
	logger := internal.GetLogger()
	if s.round < Rounds {
		s.state = RoundTransition
		logger.Debugw("round complete", "round", s.round)
		for _, o := range s.observers {
			o.RoundComplete(s.round)
		}
		return
	}
	s.state = DraftComplete
	logger.Debugw("draft complete", "picks", len(s.picks))
	for _, o := range s.observers {
		o.DraftComplete()
	}
}

func (s *Session) Round() int { return s.round }

func (s *Session) Turn() int { return s.turn }

func (s *Session) Direction() Direction { return s.direction }

func (s *Session) State() State { return s.state }

// ExternalPack returns a copy of the pack the external seat is choosing from.
func (s *Session) ExternalPack() []card.Card {
	return append([]card.Card(nil), s.seats[ExternalSeat].Pack...)
}

// Seats returns a snapshot of every seat in seat order.
func (s *Session) Seats() []SeatSnapshot {
	out := make([]SeatSnapshot, len(s.seats))
	for i, seat := range s.seats {
		out[i] = seat.snapshot()
	}
	return out
}

func (s *Session) Seat(id int) (SeatSnapshot, bool) {
	if id < 0 || id >= len(s.seats) {
		return SeatSnapshot{}, false
	}
	return s.seats[id].snapshot(), true
}

// Picks returns every pick made so far in the order they happened.
func (s *Session) Picks() []PickEvent {
	return append([]PickEvent(nil), s.picks...)
}
