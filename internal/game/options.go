// Package game wires a catalog set into a ready-to-start draft session.
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/booster"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/catalog"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/deck"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/storage"
)

// Options is what the host may choose when starting a game.
type Options struct {
	GameTitle string `json:"gameTitle"`
	SetCode   string `json:"setCode"`
	UseBonus  *bool  `json:"useBonus,omitempty"` // defaults to true
}

// Game is one draft of one set.
type Game struct {
	ID        string
	Title     string
	SetCode   string
	Session   *draft.Session
	Templates map[string]card.Record
}

// New loads opts.SetCode from store and seats a fresh session. The same source feeds
// both the pack generator and the bots.
func New(store *catalog.Store, opts Options, source rng.Source) (*Game, error) {
	logger := internal.GetLogger()
	code := strings.ToLower(strings.TrimSpace(opts.SetCode))

	records, err := store.LoadSet(code)
	if err != nil {
		return nil, err
	}
	cat := booster.NewCatalog(records)
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("set %s: %w", code, err)
	}

	var bonus []card.Record
	if opts.UseBonus == nil || *opts.UseBonus {
		bonus = store.LoadBonus()
	}

	gen := booster.NewGenerator(cat, bonus, source)
	g := &Game{
		ID:        uuid.NewString(),
		Title:     opts.GameTitle,
		SetCode:   code,
		Session:   draft.NewSession(gen, source),
		Templates: catalog.BasicLandTemplates(records),
	}
	if g.Title == "" {
		g.Title = strings.ToUpper(code) + " draft"
	}
	logger.Infow("game ready",
		"game", g.ID,
		"set", code,
		"commons", len(cat.Commons),
		"uncommons", len(cat.Uncommons),
		"rares", len(cat.Rares),
		"basics", len(cat.BasicLands),
		"bonus", len(bonus))
	return g, nil
}

// Deck returns a deck builder over a seat's pool with the set's basic lands available.
func (g *Game) Deck(seatID int) *deck.Builder {
	seat, _ := g.Session.Seat(seatID)
	return deck.NewBuilder(seat.Pool, g.Templates)
}

// Archiver stores finished drafts. *storage.Store implements it.
type Archiver interface {
	SaveDraft(ctx context.Context, d storage.Draft) error
}

// Archive writes the full pick log of a completed game.
func (g *Game) Archive(ctx context.Context, a Archiver) error {
	if g.Session.State() != draft.DraftComplete {
		return fmt.Errorf("archive game %s: %w: draft is %s", g.ID, draft.ErrInvalidTransition, g.Session.State())
	}
	events := g.Session.Picks()
	picks := make([]storage.Pick, len(events))
	for i, e := range events {
		picks[i] = storage.Pick{Round: e.Round, Turn: e.Turn, SeatID: e.SeatID, Card: e.Card}
	}
	return a.SaveDraft(ctx, storage.Draft{
		ID:          g.ID,
		SetCode:     g.SetCode,
		CompletedAt: time.Now(),
		Picks:       picks,
	})
}
