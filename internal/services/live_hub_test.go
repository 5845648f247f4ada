package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"breeder-site-backend/internal/models"
)

func liveServer(t *testing.T, hub *LiveHub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		if err := hub.Register(r.URL.Query().Get("user"), conn); err != nil {
			hub.Unregister(conn)
			return
		}
		defer hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dialLive(t *testing.T, url, user string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url+"?user="+user, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello models.LiveEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, EventHello, hello.Type)
	return conn
}

func (h *LiveHub) connFor(userID string) *liveConn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, lc := range h.connections {
		if lc.userID == userID {
			return lc
		}
	}
	return nil
}

func TestLiveHub_SlowConnectionDoesNotStallOthers(t *testing.T) {
	hub := NewLiveHub()
	url := liveServer(t, hub)
	slow := dialLive(t, url, "slow")
	fast := dialLive(t, url, "fast")
	require.Equal(t, 2, hub.Connected())

	stalled := hub.connFor("slow")
	require.NotNil(t, stalled)
	stalled.writeMu.Lock()

	done := make(chan struct{})
	go func() {
		hub.Broadcast(models.LiveEvent{Type: EventInquiryCreated})
		close(done)
	}()

	var event models.LiveEvent
	require.NoError(t, fast.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, fast.ReadJSON(&event), "fast dashboard waits on the stalled one")
	assert.Equal(t, EventInquiryCreated, event.Type)
	assert.NotZero(t, event.Timestamp)

	stalled.writeMu.Unlock()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("broadcast did not finish")
	}

	require.NoError(t, slow.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, slow.ReadJSON(&event))
	assert.Equal(t, EventInquiryCreated, event.Type)
}

func TestLiveHub_DropsClosedConnections(t *testing.T) {
	hub := NewLiveHub()
	url := liveServer(t, hub)
	gone := dialLive(t, url, "gone")
	stay := dialLive(t, url, "stay")

	hub.Unregister(hub.connFor("gone").conn)
	gone.Close()
	assert.Equal(t, 1, hub.Connected())

	hub.Broadcast(models.LiveEvent{Type: EventInquiryCreated})

	var event models.LiveEvent
	require.NoError(t, stay.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, stay.ReadJSON(&event))
	assert.Equal(t, EventInquiryCreated, event.Type)
}
