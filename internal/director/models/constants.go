package models

import "time"

const DraftCookieName = "pwr9_botdraft"
const NoHostSentinel = "-999"

const (
	NewPlayer    GameMessageType = "new_player"
	ChatMessage  GameMessageType = "chat_message"
	HostChange   GameMessageType = "host_change"
	GameStart    GameMessageType = "start_game"
	GameEnd      GameMessageType = "end_game"
	RoundContent GameMessageType = "round_content"
	PoolContent  GameMessageType = "pool_content"
	TableContent GameMessageType = "table_content"
	RoundEnd     GameMessageType = "round_end"
	ChooseCard   GameMessageType = "choose_card"
	ErrorMessage GameMessageType = "error_message"
	DeckMove     GameMessageType = "deck_move"
	DeckBasic    GameMessageType = "deck_basic"
	DeckView     GameMessageType = "deck_view"
	DeckContent  GameMessageType = "deck_content"
)

// Deck zones accepted by deck_move.
const (
	DeckZoneMain      = "main"
	DeckZoneSideboard = "sideboard"
)

// Largest basic land change a single deck_basic may ask for.
const MaxBasicDelta = 40

const ChannelBufSize = 100

const (
	// Time allowed to write a message to the peer
	WriteWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	PongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than PongWait
	PingPeriod = (PongWait * 9) / 10

	// Maximum message size allowed from peer
	MaxMessageSize = 2048

	// How long a disconnected host keeps the external seat for a cookie reconnect
	HostCookieTTL = 30 * time.Minute
)
