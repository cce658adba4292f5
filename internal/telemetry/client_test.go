package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var upgrader = websocket.Upgrader{}

// feedServer upgrades one connection, records the subscribe envelope and
// pushes the given messages.
func feedServer(t *testing.T, push []Message, gotSubscribe chan<- map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var sub map[string]any
		if err := conn.ReadJSON(&sub); err != nil {
			return
		}
		gotSubscribe <- sub

		for _, msg := range push {
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
		// Hold the connection open until the client drops it.
		conn.ReadMessage()
	}))
}

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

func TestClientSubscribesAndReceives(t *testing.T) {
	pose, _ := json.Marshal(map[string]float64{"x": 1.5, "y": 2.0})
	subscribes := make(chan map[string]any, 1)
	srv := feedServer(t, []Message{
		{Type: "pose", Data: pose, Timestamp: 1000},
		{Type: "map", Timestamp: 1001},
	}, subscribes)
	defer srv.Close()

	received := make(chan Message, 2)
	c := New(wsURL(srv.URL), "pose", "map")
	c.OnMessage(func(msg Message) { received <- msg })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	select {
	case sub := <-subscribes:
		assert.Equal(t, "subscribe", sub["type"])
		assert.ElementsMatch(t, []any{"pose", "map"}, sub["topics"])
	case <-time.After(2 * time.Second):
		t.Fatal("no subscribe envelope received")
	}

	var msgs []Message
	for len(msgs) < 2 {
		select {
		case m := <-received:
			msgs = append(msgs, m)
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 2 messages received", len(msgs))
		}
	}
	assert.Equal(t, "pose", msgs[0].Type)
	assert.JSONEq(t, string(pose), string(msgs[0].Data))
	assert.Equal(t, "map", msgs[1].Type)
}

func TestClientStateCallbacks(t *testing.T) {
	subscribes := make(chan map[string]any, 1)
	srv := feedServer(t, nil, subscribes)
	defer srv.Close()

	states := make(chan bool, 4)
	c := New(wsURL(srv.URL), "pose")
	c.OnStateChange(func(connected bool) { states <- connected })

	ctx, cancel := context.WithCancel(context.Background())
	go c.Run(ctx)

	select {
	case connected := <-states:
		assert.True(t, connected)
	case <-time.After(2 * time.Second):
		t.Fatal("never connected")
	}

	cancel()
	select {
	case connected := <-states:
		assert.False(t, connected)
	case <-time.After(2 * time.Second):
		t.Fatal("no disconnect notification")
	}
}

func TestClientStopsOnCancel(t *testing.T) {
	// No server at this address: Run keeps retrying until cancelled.
	c := New("ws://127.0.0.1:1/ws", "pose")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestMalformedMessageSkipped(t *testing.T) {
	subscribes := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var sub map[string]any
		require.NoError(t, conn.ReadJSON(&sub))
		subscribes <- sub

		conn.WriteMessage(websocket.TextMessage, []byte("{not json"))
		conn.WriteJSON(Message{Type: "pose", Timestamp: 5})
		conn.ReadMessage()
	}))
	defer srv.Close()

	received := make(chan Message, 1)
	c := New(wsURL(srv.URL), "pose")
	c.OnMessage(func(msg Message) { received <- msg })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	<-subscribes
	select {
	case m := <-received:
		// The malformed frame is skipped, not fatal.
		assert.Equal(t, "pose", m.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("valid message after malformed one never arrived")
	}
}
