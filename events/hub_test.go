package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = hub.Run(ctx) }()
	t.Cleanup(cancel)
	return hub, cancel
}

func dialRoom(t *testing.T, hub *Hub, room string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, room)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_PublishReachesRoomSubscribers(t *testing.T) {
	hub, _ := newTestHub(t)
	conn := dialRoom(t, hub, "teams")

	require.Eventually(t, func() bool { return hub.RoomSize("teams") == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish("tournaments", "tournament.created", map[string]any{"id": 1})
	hub.Publish("teams", "team.created", map[string]any{"id": "t1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
		RoomID  string         `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "team.created", msg.Type)
	assert.Equal(t, "teams", msg.RoomID)
	assert.Equal(t, "t1", msg.Payload["id"])
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, _ := newTestHub(t)
	conn := dialRoom(t, hub, "tournament_7")

	require.Eventually(t, func() bool { return hub.RoomSize("tournament_7") == 1 }, time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return hub.RoomSize("tournament_7") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub, _ := newTestHub(t)

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			hub.Publish("nobody", "noop", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked")
	}
}

func TestHub_StopClosesConnections(t *testing.T) {
	hub, cancel := newTestHub(t)
	conn := dialRoom(t, hub, "teams")
	require.Eventually(t, func() bool { return hub.RoomSize("teams") == 1 }, time.Second, 10*time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived, websocket.CloseAbnormalClosure))

	// после остановки Publish тоже не блокирует
	hub.Publish("teams", "team.created", nil)
}
