// Package telemetry provides the websocket client for the robot's push
// feed. Messages arrive as {type, data, timestamp} JSON envelopes;
// clients subscribe to topics and receive matching broadcasts until the
// context is cancelled. The editor core never depends on this package —
// it is the collaborator boundary made concrete.
package telemetry

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// Message is one push-feed envelope.
type Message struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp float64         `json:"timestamp"`
}

// Handler receives decoded messages. It runs on the client's read
// goroutine and must not block.
type Handler func(Message)

// Client maintains a subscribed websocket connection, reconnecting with
// backoff when the feed drops.
type Client struct {
	url    string
	topics []string

	onMessage Handler
	onState   func(connected bool)
}

// New creates a client for the given websocket URL and topic list.
func New(url string, topics ...string) *Client {
	return &Client{url: url, topics: topics}
}

// OnMessage sets the message handler.
func (c *Client) OnMessage(h Handler) {
	c.onMessage = h
}

// OnStateChange sets a connect/disconnect notification callback.
func (c *Client) OnStateChange(fn func(connected bool)) {
	c.onState = fn
}

// Run connects and reads until ctx is cancelled, reconnecting with
// exponential backoff capped at 30 seconds.
func (c *Client) Run(ctx context.Context) {
	backoff := time.Second

	for {
		if err := c.runOnce(ctx); err != nil {
			log.Printf("telemetry: connection lost: %v", err)
		}
		if c.onState != nil {
			c.onState(false)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > 30*time.Second {
			backoff = 30 * time.Second
		}
	}
}

func (c *Client) runOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	if len(c.topics) > 0 {
		sub := map[string]any{"type": "subscribe", "topics": c.topics}
		if err := conn.WriteJSON(sub); err != nil {
			return err
		}
	}

	if c.onState != nil {
		c.onState(true)
	}
	log.Printf("telemetry: connected to %s, topics %v", c.url, c.topics)

	// Unblock ReadMessage when the context is cancelled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("telemetry: malformed message: %v", err)
			continue
		}
		if c.onMessage != nil {
			c.onMessage(msg)
		}
	}
}
