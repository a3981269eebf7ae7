// Command draftsim runs a whole draft without a browser, letting a bot pick for the
// external seat, and prints the resulting pool as a deck list.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/bot"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/catalog"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/config"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/game"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/storage"
)

func main() {
	log.SetFlags(log.Lshortfile)

	configPath := flag.String("config", "godr4ft.toml", "path to the TOML config file")
	setCode := flag.String("set", "", "set code to draft (overrides config)")
	seed := flag.Uint64("seed", 0, "random seed, 0 for real entropy (overrides config)")
	format := flag.String("format", "arena", "output format: arena or json")
	archive := flag.Bool("archive", false, "store the finished draft in the configured archive")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *setCode != "" {
		cfg.Draft.SetCode = *setCode
	}
	if *seed != 0 {
		cfg.Draft.Seed = *seed
	}
	internal.SetDebug(cfg.Log.Debug)
	logger := internal.GetLogger()
	defer func() { _ = logger.Sync() }()

	source := rng.FromSeed(cfg.Draft.Seed)
	store := catalog.NewStore(cfg.Draft.DataDir, cfg.Draft.BonusFile)
	g, err := game.New(store, game.Options{SetCode: cfg.Draft.SetCode}, source)
	if err != nil {
		logger.Fatalw("cannot load set", "set", cfg.Draft.SetCode, "error", err.Error())
	}

	if err := autopilot(g.Session, bot.New(source)); err != nil {
		logger.Fatalw("draft failed", "game", g.ID, "error", err.Error())
	}

	if *archive {
		db, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			logger.Fatalw("cannot open draft archive", "path", cfg.Storage.Path, "error", err.Error())
		}
		defer func() { _ = db.Close() }()
		if err := g.Archive(context.Background(), db); err != nil {
			logger.Errorw("cannot archive draft", "game", g.ID, "error", err.Error())
		}
	}

	builder := g.Deck(draft.ExternalSeat)
	for _, c := range builder.Sideboard() {
		builder.MoveToMain(c.InstanceID)
	}
	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(builder.Export()); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Print(builder.ExportArena())
	}
}

// autopilot plays the external seat with pilot until the draft completes.
func autopilot(s *draft.Session, pilot *bot.Bot) error {
	for round := 1; round <= draft.Rounds; round++ {
		if err := s.StartRound(round); err != nil {
			return err
		}
		for s.State() == draft.RoundActive {
			seat, _ := s.Seat(draft.ExternalSeat)
			choice := seat.Pack[pilot.Pick(seat.Pack, seat.Pool)]
			if !s.SubmitPick(choice.InstanceID) {
				return fmt.Errorf("pick %s rejected in round %d", choice.InstanceID, round)
			}
		}
	}
	return nil
}
