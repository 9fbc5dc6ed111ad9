// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/tomtom215/taskpulse/internal/logging"
	"github.com/tomtom215/taskpulse/internal/metrics"
	"github.com/tomtom215/taskpulse/internal/validation"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024 // 512 KB

	// handshakeCloseReason is sent in the policy-violation close frame.
	// Close frame reasons are limited to 123 bytes.
	handshakeCloseReason = "invalid handshake"

	connectedGreeting = "Connected to TaskPulse realtime updates"
)

// Client is a middleman between the websocket connection and the hub.
//
// The read pump is the connection's actor: it performs the handshake and
// then handles inbound messages one at a time. The write pump owns all
// data frame writes.
type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter

	// ctx carries the connection ID for logging and is canceled on close.
	ctx    context.Context
	cancel context.CancelFunc

	// Set once by the handshake before the client enters the registry.
	userID   int64
	username string

	mu     sync.Mutex
	closed bool
}

// NewClient creates a Client with a fresh connection ID.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(logging.ContextWithConnectionID(context.Background(), id))
	return &Client{
		id:      id,
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, hub.sendBuffer),
		limiter: rate.NewLimiter(hub.messageRate, hub.messageBurst),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ID returns the connection ID.
func (c *Client) ID() string {
	return c.id
}

// UserID returns the authenticated user ID, or 0 before the handshake.
func (c *Client) UserID() int64 {
	return c.userID
}

// Username returns the authenticated display name.
func (c *Client) Username() string {
	return c.username
}

// Start places the client in the hub's pending bucket and begins reading.
func (c *Client) Start() {
	c.hub.addPending(c)
	go c.readPump()
}

// readPump performs the handshake and then dispatches inbound messages to
// the hub until the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Ctx(c.ctx).Error().Err(err).Msg("failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	if !c.handshake() {
		return
	}

	go c.writePump()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				logging.Ctx(c.ctx).Warn().Err(err).Msg("unexpected websocket close error")
			}
			return
		}

		if err := c.limiter.Wait(c.ctx); err != nil {
			return
		}

		c.hub.handleMessage(c, data)
	}
}

// handshake reads and validates the first message. On failure the
// connection receives a policy-violation close frame and false is returned.
func (c *Client) handshake() bool {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		logging.Ctx(c.ctx).Debug().Err(err).Msg("connection closed before handshake")
		return false
	}

	var hs Handshake
	if err := json.Unmarshal(data, &hs); err != nil {
		c.rejectHandshake("malformed JSON")
		return false
	}
	if verr := validation.ValidateStruct(&hs); verr != nil {
		c.rejectHandshake(verr.Error())
		return false
	}

	c.userID = hs.UserID
	c.username = hs.Username
	if !c.hub.authenticate(c) {
		return false
	}

	logging.Ctx(c.ctx).Info().
		Int64("user_id", c.userID).
		Str("username", logging.SanitizeValue(c.username)).
		Msg("websocket client authenticated")
	return true
}

func (c *Client) rejectHandshake(reason string) {
	metrics.RecordWSError("handshake")
	logging.Ctx(c.ctx).Warn().Str("reason", reason).Msg("websocket handshake rejected")

	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, handshakeCloseReason)
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		logging.Ctx(c.ctx).Debug().Err(err).Msg("failed to write close frame")
	}
}

// writePump pumps messages from the send channel to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Explicitly ignore error - best-effort cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Ctx(c.ctx).Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if !ok {
				// The hub closed the channel
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logging.Ctx(c.ctx).Debug().Err(err).Msg("failed to write close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				metrics.RecordWSError("write")
				logging.Ctx(c.ctx).Warn().Err(err).Msg("failed to write message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Ctx(c.ctx).Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// enqueue hands an encoded message to the write pump without blocking.
// A full buffer drops the message; the client stays registered.
func (c *Client) enqueue(msgType string, payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- payload:
		metrics.RecordWSSent(msgType)
		return true
	default:
		metrics.RecordWSError("send_buffer_full")
		logging.Ctx(c.ctx).Warn().Str("message_type", msgType).Msg("send buffer full, dropping message")
		return false
	}
}

// close closes the send channel and cancels the client context. Safe to
// call more than once.
func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	c.cancel()
}
