package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

func fakeClient(hub *Hub, roomID uint, buffer int) *Client {
	return &Client{hub: hub, send: make(chan []byte, buffer), roomID: roomID}
}

func decode(t *testing.T, frame []byte) Event {
	t.Helper()
	var ev Event
	require.NoError(t, json.Unmarshal(frame, &ev))
	return ev
}

func TestHub_BroadcastOnlyToRoom(t *testing.T) {
	hub := startHub(t)

	inRoom := fakeClient(hub, 1, 4)
	elsewhere := fakeClient(hub, 2, 4)
	require.True(t, hub.enqueue(inRoom))
	require.True(t, hub.enqueue(elsewhere))
	require.Eventually(t, func() bool { return hub.RoomSize(1) == 1 && hub.RoomSize(2) == 1 },
		time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(1, EventMessageCreated, map[string]string{"body": "hi"})

	select {
	case frame := <-inRoom.send:
		ev := decode(t, frame)
		assert.Equal(t, EventMessageCreated, ev.Type)
		assert.Equal(t, uint(1), ev.RoomID)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not receive event")
	}
	assert.Empty(t, elsewhere.send)
}

func TestHub_UnregisterCleansUp(t *testing.T) {
	hub := startHub(t)

	c := fakeClient(hub, 3, 1)
	require.True(t, hub.enqueue(c))
	require.Eventually(t, func() bool { return hub.RoomSize(3) == 1 }, time.Second, 5*time.Millisecond)

	hub.dequeue(c)
	require.Eventually(t, func() bool { return hub.RoomSize(3) == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.send
	assert.False(t, open, "send channel should be closed")

	// A second unregister is a no-op.
	hub.dequeue(c)
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub := startHub(t)

	slow := fakeClient(hub, 1, 1)
	require.True(t, hub.enqueue(slow))
	require.Eventually(t, func() bool { return hub.RoomSize(1) == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(1, EventRoomUpdated, nil)
	hub.BroadcastToRoom(1, EventRoomUpdated, nil)

	assert.Equal(t, 0, hub.RoomSize(1))
	<-slow.send // the buffered frame
	_, open := <-slow.send
	assert.False(t, open)
}

func TestHub_StopDisconnectsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	go hub.Run(ctx)

	c := fakeClient(hub, 1, 1)
	require.True(t, hub.enqueue(c))
	require.Eventually(t, func() bool { return hub.RoomSize(1) == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-hub.done

	_, open := <-c.send
	assert.False(t, open)
	assert.False(t, hub.enqueue(fakeClient(hub, 1, 1)), "registration after stop must fail fast")
}

func TestServe_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	hub := startHub(t)

	app := gin.New()
	app.GET("/ws/room/:id/", func(c *gin.Context) { hub.Serve(c, 7, 0) })
	srv := httptest.NewServer(app)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/room/7/"
	conn, resp, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return hub.RoomSize(7) == 1 }, time.Second, 5*time.Millisecond)

	hub.BroadcastToRoom(7, EventMessageDeleted, map[string]uint{"id": 3})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventMessageDeleted, ev.Type)
	assert.Equal(t, uint(7), ev.RoomID)

	conn.Close()
	require.Eventually(t, func() bool { return hub.RoomSize(7) == 0 }, 2*time.Second, 10*time.Millisecond)
}
