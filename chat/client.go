package chat

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"plume/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Event is the wire format for every frame on the chat channel.
type Event struct {
	Event    string `json:"event"`
	Text     string `json:"text,omitempty"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Client is one authenticated chat connection. Its identity comes from the
// session resolved at handshake time and never changes afterwards.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	user utils.SessionUser
}

func newClient(hub *Hub, conn *websocket.Conn, user utils.SessionUser) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 16),
		user: user,
	}
}

// welcome sends the one-time greeting carrying the user's public profile to
// this connection only.
func (c *Client) welcome() {
	payload, err := json.Marshal(Event{
		Event:    "welcome",
		Username: c.user.Username,
		Avatar:   c.user.Avatar,
	})
	if err != nil {
		return
	}
	c.send <- payload
}

// readPump consumes inbound frames. Messages from one sender relay in the
// order received; malformed payloads are silently dropped.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var in Event
		if err := json.Unmarshal(raw, &in); err != nil || in.Event != "message-in" {
			continue
		}

		payload, ok := outboundMessage(c.user, in.Text)
		if !ok {
			continue
		}
		c.hub.Relay(c, payload)
	}
}

// outboundMessage builds the relayed frame for an inbound chat text. Chat is a
// plain-text-only channel, stricter than post bodies; a message that is empty
// after stripping is dropped.
func outboundMessage(user utils.SessionUser, rawText string) ([]byte, bool) {
	text := utils.SanitizeText(rawText)
	if text == "" {
		return nil, false
	}
	payload, err := json.Marshal(Event{
		Event:    "message-out",
		Text:     text,
		Username: user.Username,
		Avatar:   user.Avatar,
	})
	if err != nil {
		return nil, false
	}
	return payload, true
}

// writePump is the single writer for the connection, draining the send queue
// and keeping the peer alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
