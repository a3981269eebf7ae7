package director

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/bot"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/catalog"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/deck"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/director/models"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/draft"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/game"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/rng"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/storage"
)

const archiveTimeout = 10 * time.Second

// Archive is the completed-draft store the director writes to and serves from.
type Archive interface {
	game.Archiver
	ListDrafts(ctx context.Context, limit int) ([]storage.Summary, error)
	GetPicks(ctx context.Context, draftID string, seatID int) ([]storage.Pick, error)
}

type Options struct {
	Port         int
	GameId       string
	SetCode      string
	Catalog      *catalog.Store
	Archive      Archive // nil disables archiving
	Source       rng.Source
	Intermission time.Duration
	MessageRate  float64
	MessageBurst int
	StaticDir    string
}

type incomingMessage struct {
	clientID string
	msg      *models.Message
}

// GameDirector hosts one draft. Every session call happens on the Listen goroutine.
type GameDirector struct {
	Port    int
	GameId  string
	options Options
	game    *game.Game

	gameStarted bool
	finished    bool
	deck        *deck.Builder // set once the draft is complete
	deckSort    deck.SortMode
	host        string
	owner       string // client that first held the external seat
	clientSeq   atomic.Int64

	Clients  map[string]*Client
	messages []*models.Message

	messageRate  rate.Limit
	messageBurst int
	afterFunc    func(time.Duration, func()) *time.Timer

	addClientCh      chan *Client
	delClientCh      chan *Client
	incomingCh       chan incomingMessage
	startNextRoundCh chan int
	errCh            chan error
	quit             chan struct{}
}

func NewGameDirector(opts Options) *GameDirector {
	if opts.Source == nil {
		opts.Source = rng.NewEntropy()
	}
	if opts.MessageBurst < 1 {
		opts.MessageBurst = 1
	}
	limit := rate.Inf
	if opts.MessageRate > 0 {
		limit = rate.Limit(opts.MessageRate)
	}
	return &GameDirector{
		Port:             opts.Port,
		GameId:           opts.GameId,
		options:          opts,
		host:             models.NoHostSentinel,
		deckSort:         deck.SortCMC,
		Clients:          make(map[string]*Client),
		messages:         []*models.Message{},
		messageRate:      limit,
		messageBurst:     opts.MessageBurst,
		afterFunc:        time.AfterFunc,
		addClientCh:      make(chan *Client),
		delClientCh:      make(chan *Client),
		incomingCh:       make(chan incomingMessage),
		startNextRoundCh: make(chan int),
		errCh:            make(chan error),
		quit:             make(chan struct{}),
	}
}

func (director *GameDirector) nextClientID() string {
	return fmt.Sprintf("%s_%d", director.GameId, director.clientSeq.Add(1))
}

// prepare loads a fresh game for opts, keeping the currently loaded one when opts asks
// for the same set and it has not started.
func (director *GameDirector) prepare(opts game.Options) error {
	if opts.SetCode == "" {
		opts.SetCode = director.options.SetCode
	}
	if director.game != nil && !director.gameStarted && director.game.SetCode == opts.SetCode {
		if opts.GameTitle != "" {
			director.game.Title = opts.GameTitle
		}
		return nil
	}
	g, err := game.New(director.options.Catalog, opts, director.options.Source)
	if err != nil {
		return err
	}
	if director.GameId != "" {
		g.ID = director.GameId
	}
	g.Session.Register(director)
	director.game = g
	return nil
}

// The send helpers below are for goroutines other than Listen. They give up once the
// director has stopped.

func (director *GameDirector) AddNewClient(c *Client) {
	select {
	case director.addClientCh <- c:
	case <-director.quit:
		c.Done()
	}
}

func (director *GameDirector) DeleteClient(c *Client) {
	select {
	case director.delClientCh <- c:
	case <-director.quit:
	}
}

func (director *GameDirector) Receive(clientID string, msg *models.Message) {
	select {
	case director.incomingCh <- incomingMessage{clientID: clientID, msg: msg}:
	case <-director.quit:
	}
}

func (director *GameDirector) Error(err error) {
	select {
	case director.errCh <- err:
	case <-director.quit:
	}
}

func (director *GameDirector) queueRound(round int) {
	select {
	case director.startNextRoundCh <- round:
	case <-director.quit:
	}
}

// Done is closed once Listen has returned.
func (director *GameDirector) Done() <-chan struct{} {
	return director.quit
}

// RoundComplete announces the break and schedules the next round after the intermission.
func (director *GameDirector) RoundComplete(round int) {
	director.broadcastPayload(models.RoundEnd, models.RoundEndJson{Round: round, Next: round + 1})
	director.afterFunc(director.options.Intermission, func() {
		director.queueRound(round + 1)
	})
}

func (director *GameDirector) DraftComplete() {
	director.finished = true
}

func (director *GameDirector) sendPastMessages(c *Client) {
	for _, msg := range director.messages {
		c.Write(msg)
	}
}

func (director *GameDirector) sendAll(msg *models.Message) {
	for _, c := range director.Clients {
		c.Write(msg)
	}
}

// broadcast sends msg to everyone and keeps it for late joiners.
func (director *GameDirector) broadcast(msg *models.Message) {
	director.messages = append(director.messages, msg)
	director.sendAll(msg)
}

func (director *GameDirector) broadcastPayload(t models.GameMessageType, payload any) {
	msg, err := models.NewMessage(t, payload)
	if err != nil {
		director.logError(err)
		return
	}
	director.broadcast(msg)
}

func (director *GameDirector) sendHostMessage(msg *models.Message) {
	if host := director.Clients[director.host]; host != nil {
		host.Write(msg)
	}
}

func (director *GameDirector) sendHostPayload(t models.GameMessageType, payload any) {
	msg, err := models.NewMessage(t, payload)
	if err != nil {
		director.logError(err)
		return
	}
	director.sendHostMessage(msg)
}

func (director *GameDirector) sendClientError(clientID, text string) {
	if c := director.Clients[clientID]; c != nil {
		c.writeError(text)
	}
}

func (director *GameDirector) logError(err error) {
	internal.GetLogger().Errorw("error occurred", "game", director.GameId, "error", err.Error())
}

func hostChange(isHost bool) *models.Message {
	flag := 0
	if isHost {
		flag = 1
	}
	return &models.Message{Type: models.HostChange, Data: strconv.Itoa(flag)}
}

func (director *GameDirector) addClient(c *Client) {
	logger := internal.GetLogger()
	director.Clients[c.Id] = c
	logger.Debugw("Added new client", "client", c.Id, "total", len(director.Clients))

	reclaim := c.previousID != "" && c.previousID == director.owner && director.host != c.Id
	switch {
	case director.host == models.NoHostSentinel:
		director.host = c.Id
		if director.owner == "" || reclaim {
			director.owner = c.Id
		}
		c.Write(hostChange(true))
	case reclaim:
		logger.Infow("seat owner reconnected", "client", c.Id, "previous", c.previousID)
		director.sendHostMessage(hostChange(false))
		director.host = c.Id
		director.owner = c.Id
		c.Write(hostChange(true))
	}

	director.sendAll(&models.Message{
		Type: models.NewPlayer,
		Data: strconv.Itoa(len(director.Clients)),
	})
	director.sendPastMessages(c)
	if director.gameStarted {
		director.sendTable(c)
		if c.Id == director.host {
			director.sendPool()
			director.sendRoundContent()
			director.sendDeck()
		}
	}
}

func (director *GameDirector) removeClient(c *Client) {
	logger := internal.GetLogger()
	if director.Clients[c.Id] != c {
		return
	}
	delete(director.Clients, c.Id)
	logger.Debugw("Removing client", "client", c.Id, "total", len(director.Clients))

	if c.Id == director.host {
		director.promoteNewHost()
	}
	director.sendAll(&models.Message{
		Type: models.NewPlayer,
		Data: strconv.Itoa(len(director.Clients)),
	})
}

func (director *GameDirector) promoteNewHost() {
	var nextHostId string
	for id := range director.Clients {
		if nextHostId == "" || id < nextHostId {
			nextHostId = id
		}
	}
	if nextHostId == "" {
		director.host = models.NoHostSentinel
		return
	}
	director.host = nextHostId
	director.sendHostMessage(hostChange(true))
	if director.gameStarted {
		director.sendPool()
		director.sendRoundContent()
		director.sendDeck()
	}
}

func (director *GameDirector) handleClientMessage(clientID string, msg *models.Message) {
	logger := internal.GetLogger()
	switch msg.Type {
	case models.ChatMessage:
		director.broadcast(msg)
	case models.GameStart:
		if clientID != director.host {
			director.sendClientError(clientID, "only the host can start the game")
			return
		}
		if director.gameStarted {
			director.sendClientError(clientID, "game already started")
			return
		}
		if err := director.startGame(msg.Data); err != nil {
			logger.Warnw("cannot start game", "game", director.GameId, "error", err.Error())
			director.sendClientError(clientID, err.Error())
		}
	case models.ChooseCard:
		if clientID != director.host {
			director.sendClientError(clientID, "only the host picks for the seat")
			return
		}
		if !director.gameStarted {
			director.sendClientError(clientID, "game has not started")
			return
		}
		if err := director.handleChooseCard(msg); err != nil {
			logger.Debugw("pick rejected", "client", clientID, "error", err.Error())
			director.sendClientError(clientID, err.Error())
		}
	case models.DeckMove, models.DeckBasic, models.DeckView:
		if clientID != director.host {
			director.sendClientError(clientID, "only the host builds the deck")
			return
		}
		if director.deck == nil {
			director.sendClientError(clientID, "deck building starts when the draft is complete")
			return
		}
		if err := director.handleDeckMessage(msg); err != nil {
			logger.Debugw("deck change rejected", "client", clientID, "type", msg.Type, "error", err.Error())
			director.sendClientError(clientID, err.Error())
		}
	default:
		logger.Debugw("ignoring message", "client", clientID, "type", msg.Type)
	}
}

func (director *GameDirector) startGame(data string) error {
	var opts game.Options
	if data != "" {
		if err := json.Unmarshal([]byte(data), &opts); err != nil {
			return fmt.Errorf("decode start_game: %w", err)
		}
	}
	if err := director.prepare(opts); err != nil {
		return err
	}
	if err := director.game.Session.StartRound(1); err != nil {
		return err
	}
	director.gameStarted = true
	internal.GetLogger().Infow("Starting Game!", "game", director.game.ID, "set", director.game.SetCode)

	director.broadcastPayload(models.GameStart, game.Options{
		GameTitle: director.game.Title,
		SetCode:   director.game.SetCode,
	})
	director.sendRoundContent()
	director.sendTable(nil)
	return nil
}

var (
	errNotInPack = errors.New("card is not in your pack")
	errNotInZone = errors.New("card is not in that part of the deck")
)

func (director *GameDirector) handleChooseCard(msg *models.Message) error {
	var choice models.ChooseCardJson
	if err := json.Unmarshal([]byte(msg.Data), &choice); err != nil {
		return fmt.Errorf("decode choose_card: %w", err)
	}
	if !director.game.Session.SubmitPick(choice.InstanceID) {
		return errNotInPack
	}
	director.sendPool()
	director.sendTable(nil)
	if director.game.Session.State() == draft.RoundActive {
		director.sendRoundContent()
	}
	return nil
}

func (director *GameDirector) sendRoundContent() {
	s := director.game.Session
	if s.State() != draft.RoundActive {
		return
	}
	seat, _ := s.Seat(draft.ExternalSeat)
	affinity := bot.ComputeAffinity(seat.Pool)
	hints := make([]models.PickHint, len(seat.Pack))
	for i, c := range seat.Pack {
		hints[i] = models.PickHint{InstanceID: c.InstanceID, Score: bot.BaseScore(c, affinity, len(seat.Pool))}
	}
	director.sendHostPayload(models.RoundContent, models.CardPack{
		SetName:   director.game.SetCode,
		Round:     s.Round(),
		Pick:      s.Turn(),
		Direction: s.Direction(),
		Pack:      seat.Pack,
		Hints:     hints,
	})
}

func (director *GameDirector) sendPool() {
	seat, _ := director.game.Session.Seat(draft.ExternalSeat)
	director.sendHostPayload(models.PoolContent, models.NewPool(seat.Pool))
}

// sendTable sends the seat summaries to c, or to everyone when c is nil.
func (director *GameDirector) sendTable(c *Client) {
	msg, err := models.NewMessage(models.TableContent, models.NewTable(director.game.Session))
	if err != nil {
		director.logError(err)
		return
	}
	if c != nil {
		c.Write(msg)
		return
	}
	director.sendAll(msg)
}

func (director *GameDirector) startNextRound(round int) {
	if err := director.game.Session.StartRound(round); err != nil {
		director.logError(err)
		return
	}
	director.sendRoundContent()
	director.sendTable(nil)
}

// handleDeckMessage applies one deck builder change and replies with the new deck.
func (director *GameDirector) handleDeckMessage(msg *models.Message) error {
	b := director.deck
	switch msg.Type {
	case models.DeckMove:
		var move models.DeckMoveJson
		if err := json.Unmarshal([]byte(msg.Data), &move); err != nil {
			return fmt.Errorf("decode deck_move: %w", err)
		}
		var moved bool
		switch move.To {
		case models.DeckZoneMain:
			moved = b.MoveToMain(move.InstanceID)
		case models.DeckZoneSideboard:
			moved = b.MoveToSideboard(move.InstanceID)
		default:
			return fmt.Errorf("unknown deck zone %q", move.To)
		}
		if !moved {
			return errNotInZone
		}
	case models.DeckBasic:
		var basic models.DeckBasicJson
		if err := json.Unmarshal([]byte(msg.Data), &basic); err != nil {
			return fmt.Errorf("decode deck_basic: %w", err)
		}
		if basic.Delta > models.MaxBasicDelta || basic.Delta < -models.MaxBasicDelta {
			return fmt.Errorf("basic land change %d is out of range", basic.Delta)
		}
		for i := 0; i < basic.Delta; i++ {
			if _, err := b.AddBasicLand(basic.Name); err != nil {
				return err
			}
		}
		for i := 0; i > basic.Delta; i-- {
			if !b.RemoveBasicLand(basic.Name) {
				break
			}
		}
	case models.DeckView:
		var view models.DeckViewJson
		if err := json.Unmarshal([]byte(msg.Data), &view); err != nil {
			return fmt.Errorf("decode deck_view: %w", err)
		}
		switch view.Sort {
		case deck.SortCMC, deck.SortColor, deck.SortType:
			director.deckSort = view.Sort
		default:
			return fmt.Errorf("unknown sort %q", view.Sort)
		}
	}
	director.sendDeck()
	return nil
}

func (director *GameDirector) sendDeck() {
	if director.deck == nil {
		return
	}
	director.sendHostPayload(models.DeckContent, models.NewDeckContent(director.deck, director.deckSort))
}

// endGame publishes the final pool, archives the draft and opens the deck builder for the
// host. Clients stay connected.
func (director *GameDirector) endGame() {
	logger := internal.GetLogger()
	g := director.game
	seat, _ := g.Session.Seat(draft.ExternalSeat)
	builder := g.Deck(draft.ExternalSeat)
	director.deck = builder
	director.broadcastPayload(models.GameEnd, models.GameEndJson{
		DraftID: g.ID,
		SetCode: g.SetCode,
		Pool:    seat.Pool,
		Deck:    builder.Export(),
		Arena:   builder.ExportArena(),
	})

	if director.options.Archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := g.Archive(ctx, director.options.Archive); err != nil {
			director.logError(err)
		} else {
			logger.Infow("draft archived", "draft", g.ID)
		}
	}
	director.sendDeck()
}

// Listen runs the event loop until ctx is cancelled. After the draft the loop keeps
// serving deck building and chat.
func (director *GameDirector) Listen(ctx context.Context) {
	logger := internal.GetLogger()
	logger.Infow("Listening", "game", director.GameId, "port", director.Port)
	defer func() {
		for _, c := range director.Clients {
			c.Done()
		}
		close(director.quit)
		logger.Infow("Ended Game.", "game", director.GameId)
	}()

	for {
		select {
		case c := <-director.addClientCh:
			director.addClient(c)
		case c := <-director.delClientCh:
			director.removeClient(c)
		case in := <-director.incomingCh:
			director.handleClientMessage(in.clientID, in.msg)
		case round := <-director.startNextRoundCh:
			director.startNextRound(round)
		case err := <-director.errCh:
			director.logError(err)
		case <-ctx.Done():
			logger.Infow("shutting down", "game", director.GameId)
			return
		}

		if director.finished && director.deck == nil {
			director.endGame()
		}
	}
}
