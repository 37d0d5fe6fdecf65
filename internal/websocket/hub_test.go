package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRoutesBroadcastsByRound(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcher := &Client{RoundID: "round-1", Send: make(chan []byte, 4)}
	other := &Client{RoundID: "round-2", Send: make(chan []byte, 4)}
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastToRound("round-1", []byte(`{"type":"bet_state"}`))

	select {
	case msg := <-watcher.Send:
		assert.JSONEq(t, `{"type":"bet_state"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("watcher never received the broadcast")
	}

	// The other round's client must not see it.
	select {
	case msg := <-other.Send:
		t.Fatalf("client on another round received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{RoundID: "round-1", Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, open := <-client.Send:
		require.False(t, open, "Send should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("Send was never closed")
	}
}
