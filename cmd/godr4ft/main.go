package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/catalog"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/config"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/director"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/storage"
)

func main() {
	log.SetFlags(log.Lshortfile)

	configPath := flag.String("config", "godr4ft.toml", "path to the TOML config file")
	port := flag.Int("port", 0, "the port the server will open a socket server on (overrides config)")
	gameId := flag.String("gameId", "", "Four byte url safe hex string")
	setCode := flag.String("set", "", "set code to draft (overrides config)")
	seed := flag.Uint64("seed", 0, "random seed, 0 for real entropy (overrides config)")
	writeConfig := flag.Bool("write-config", false, "write the effective config to -config and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *setCode != "" {
		cfg.Draft.SetCode = *setCode
	}
	if *seed != 0 {
		cfg.Draft.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *writeConfig {
		if err := cfg.Save(*configPath); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", *configPath)
		return
	}
	intermission, err := cfg.IntermissionDuration()
	if err != nil {
		log.Fatal(err)
	}

	internal.SetDebug(cfg.Log.Debug)
	logger := internal.GetLogger()
	defer func() { _ = logger.Sync() }()

	if *gameId == "" {
		*gameId = uuid.NewString()[:8]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore(cfg.Draft.DataDir, cfg.Draft.BonusFile)
	if cfg.Draft.WatchData {
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Warnw("catalog watcher stopped", "error", err.Error())
			}
		}()
	}

	opts := director.Options{
		Port:         cfg.Server.Port,
		GameId:       *gameId,
		SetCode:      cfg.Draft.SetCode,
		Catalog:      store,
		Source:       rng.FromSeed(cfg.Draft.Seed),
		Intermission: intermission,
		MessageRate:  cfg.Server.MessageRate,
		MessageBurst: cfg.Server.MessageBurst,
		StaticDir:    cfg.Server.StaticDir,
	}
	if cfg.Storage.Enabled {
		archive, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			logger.Fatalw("cannot open draft archive", "path", cfg.Storage.Path, "error", err.Error())
		}
		defer func() { _ = archive.Close() }()
		opts.Archive = archive
	}

	if err := director.StartDraftServer(ctx, opts); err != nil {
		logger.Errorw("server stopped", "game", *gameId, "error", err.Error())
	}
}
