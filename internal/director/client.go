package director

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/director/models"
)

var errRateLimited = errors.New("rate limited, resend the message")

type Client struct {
	Id         string
	previousID string // id presented by the reconnect cookie
	director   *GameDirector
	Websocket  *websocket.Conn
	ch         chan *models.Message
	doneCh     chan struct{}
	doneOnce   sync.Once
	limiter    *rate.Limiter
}

// NewClient creates a client with the director's per-client message limit. previousID is
// the id from a reconnect cookie, if any.
func NewClient(director *GameDirector, previousID string) (*Client, error) {
	if director == nil {
		return nil, errors.New("cannot add client with nil GameDirector")
	}
	return &Client{
		Id:         director.nextClientID(),
		previousID: previousID,
		director:   director,
		ch:         make(chan *models.Message, models.ChannelBufSize),
		doneCh:     make(chan struct{}),
		limiter:    rate.NewLimiter(director.messageRate, director.messageBurst),
	}, nil
}

// Write queues msg. A client that falls a full buffer behind is disconnected.
func (c *Client) Write(msg *models.Message) {
	select {
	case c.ch <- msg:
	default:
		internal.GetLogger().Warnw("client buffer full, disconnecting", "client", c.Id)
		c.Done()
	}
}

func (c *Client) Listen() {
	go c.listenWrite()
	c.listenRead()
}

func (c *Client) listenRead() {
	logger := internal.GetLogger()
	c.Websocket.SetReadLimit(models.MaxMessageSize)
	_ = c.Websocket.SetReadDeadline(time.Now().Add(models.PongWait))
	c.Websocket.SetPongHandler(func(string) error {
		return c.Websocket.SetReadDeadline(time.Now().Add(models.PongWait))
	})
	logger.Debugw("listening to read", "client", c.Id)
	for {
		select {
		case <-c.doneCh:
			logger.Debugw("client done reading", "client", c.Id)
			return
		default:
		}

		_, raw, err := c.Websocket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.director.Error(err)
			}
			c.Done()
			return
		}
		if !c.admit() {
			continue
		}
		var msg models.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.director.Error(err)
			c.writeError("malformed message")
			continue
		}
		c.director.Receive(c.Id, &msg)
	}
}

func (c *Client) listenWrite() {
	logger := internal.GetLogger()
	logger.Debugw("listening to write", "client", c.Id)
	ticker := time.NewTicker(models.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Websocket.Close()
		c.director.DeleteClient(c)
	}()
	for {
		select {
		case msg := <-c.ch:
			_ = c.Websocket.SetWriteDeadline(time.Now().Add(models.WriteWait))
			if err := c.Websocket.WriteJSON(msg); err != nil {
				c.director.Error(err)
				c.Done()
			}
		case <-c.doneCh:
			logger.Debugw("client done writing", "client", c.Id)
			c.flush()
			_ = c.Websocket.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(models.WriteWait))
			return
		case <-ticker.C:
			_ = c.Websocket.SetWriteDeadline(time.Now().Add(models.WriteWait))
			if err := c.Websocket.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Done()
			}
		}
	}
}

// flush writes whatever is still queued, such as the end_game message.
func (c *Client) flush() {
	for {
		select {
		case msg := <-c.ch:
			_ = c.Websocket.SetWriteDeadline(time.Now().Add(models.WriteWait))
			if err := c.Websocket.WriteJSON(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// admit reports whether the limiter lets another message through. Dropped messages are
// answered with an error so the client can resend.
func (c *Client) admit() bool {
	if c.limiter.Allow() {
		return true
	}
	internal.GetLogger().Debugw("client rate limited, dropping message", "client", c.Id)
	c.writeError(errRateLimited.Error())
	return false
}

func (c *Client) Done() {
	c.doneOnce.Do(func() { close(c.doneCh) })
}

func (c *Client) writeError(text string) {
	msg, err := models.NewMessage(models.ErrorMessage, models.ErrorJson{Error: text})
	if err != nil {
		c.director.Error(err)
		return
	}
	c.Write(msg)
}
