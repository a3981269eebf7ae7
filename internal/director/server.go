package director

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/deck"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/director/models"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/director/utils"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/game"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/storage"
)

const defaultDraftListLimit = 50

var errArchiveDisabled = errors.New("draft archive is disabled")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Router serves the websocket, the read-only API and the static client.
func (director *GameDirector) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeSuccess(w, map[string]string{"status": "ok", "game": director.GameId})
	})
	r.Get("/ws", director.newClient)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sets", director.handleSets)
		r.Get("/drafts", director.handleListDrafts)
		r.Get("/drafts/{draftID}/picks", director.handleDraftPicks)
		r.Get("/drafts/{draftID}/deck", director.handleDraftDeck)
	})

	if dir := director.options.StaticDir; dir != "" {
		r.Handle("/*", http.FileServer(http.Dir(dir)))
	}
	return r
}

func (director *GameDirector) newClient(w http.ResponseWriter, r *http.Request) {
	previousID := utils.ClientIDFromRequest(r, models.DraftCookieName)
	client, err := NewClient(director, previousID)
	if err != nil {
		director.Error(err)
		return
	}

	header := utils.ClientIDCookieHeader(client.Id, models.DraftCookieName, models.HostCookieTTL)
	ws, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		// the upgrader has already replied
		director.Error(err)
		return
	}
	client.Websocket = ws

	director.AddNewClient(client)
	go client.Listen()
}

func (director *GameDirector) handleSets(w http.ResponseWriter, _ *http.Request) {
	sets, err := director.options.Catalog.Manifest()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, sets)
}

func (director *GameDirector) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	if director.options.Archive == nil {
		writeError(w, http.StatusServiceUnavailable, errArchiveDisabled)
		return
	}
	limit := defaultDraftListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}
	drafts, err := director.options.Archive.ListDrafts(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeSuccess(w, drafts)
}

// seatParam reads ?seat=, defaulting to the external seat. "all" selects every seat.
func seatParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("seat")
	switch v {
	case "":
		return draft.ExternalSeat, nil
	case "all":
		return -1, nil
	}
	seat, err := strconv.Atoi(v)
	if err != nil || seat < 0 || seat >= draft.NumSeats {
		return 0, fmt.Errorf("invalid seat %q", v)
	}
	return seat, nil
}

func (director *GameDirector) loadPicks(w http.ResponseWriter, r *http.Request, seat int) ([]storage.Pick, bool) {
	if director.options.Archive == nil {
		writeError(w, http.StatusServiceUnavailable, errArchiveDisabled)
		return nil, false
	}
	picks, err := director.options.Archive.GetPicks(r.Context(), chi.URLParam(r, "draftID"), seat)
	switch {
	case errors.Is(err, storage.ErrDraftNotFound):
		writeError(w, http.StatusNotFound, err)
		return nil, false
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return picks, true
}

func (director *GameDirector) handleDraftPicks(w http.ResponseWriter, r *http.Request) {
	seat, err := seatParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if picks, ok := director.loadPicks(w, r, seat); ok {
		writeSuccess(w, picks)
	}
}

// handleDraftDeck exports a seat's archived pool as a deck list. ?format=arena returns the
// plain-text import format.
func (director *GameDirector) handleDraftDeck(w http.ResponseWriter, r *http.Request) {
	seat, err := seatParam(r)
	if err != nil || seat < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("deck export needs a single seat"))
		return
	}
	picks, ok := director.loadPicks(w, r, seat)
	if !ok {
		return
	}
	pool := make([]card.Card, len(picks))
	for i, p := range picks {
		pool[i] = p.Card
	}
	builder := deck.NewBuilder(pool, nil)
	for _, c := range pool {
		builder.MoveToMain(c.InstanceID)
	}

	if r.URL.Query().Get("format") == "arena" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(builder.ExportArena()))
		return
	}
	writeSuccess(w, builder.Export())
}

// StartDraftServer loads the default set, serves HTTP and runs the director until ctx is
// cancelled.
func StartDraftServer(ctx context.Context, opts Options) error {
	logger := internal.GetLogger()
	director := NewGameDirector(opts)
	if err := director.prepare(game.Options{SetCode: opts.SetCode}); err != nil {
		return fmt.Errorf("load set %s: %w", opts.SetCode, err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           director.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go director.Listen(loopCtx)

	serveErr := make(chan error, 1)
	go func() {
		logger.Infow("serving", "addr", srv.Addr, "static", opts.StaticDir)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-director.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	return srv.Shutdown(shutdownCtx)
}
