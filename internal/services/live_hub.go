package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"breeder-site-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Live event types
const (
	EventHello          = "hello"
	EventInquiryCreated = "inquiry_created"
)

const liveWriteTimeout = 5 * time.Second

// liveConn is one dashboard socket. gorilla connections allow a single
// concurrent writer, so each carries its own write lock.
type liveConn struct {
	conn    *websocket.Conn
	userID  string
	writeMu sync.Mutex
}

// LiveHub fans live events out to connected admin dashboards
type LiveHub struct {
	mu          sync.RWMutex
	connections map[*websocket.Conn]*liveConn
	now         func() time.Time
}

// NewLiveHub creates a new live hub
func NewLiveHub() *LiveHub {
	return &LiveHub{
		connections: make(map[*websocket.Conn]*liveConn),
		now:         time.Now,
	}
}

// Register adds a connection for an admin and greets it
func (h *LiveHub) Register(userID string, conn *websocket.Conn) error {
	lc := &liveConn{conn: conn, userID: userID}
	h.mu.Lock()
	h.connections[conn] = lc
	h.mu.Unlock()

	log.Info().Str("user_id", userID).Msg("Live feed connection registered")

	return lc.send(models.LiveEvent{Type: EventHello, Timestamp: h.now().UnixMilli()})
}

// Unregister closes and forgets a connection
func (h *LiveHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if lc, exists := h.connections[conn]; exists {
		conn.Close()
		delete(h.connections, conn)
		log.Info().Str("user_id", lc.userID).Msg("Live feed connection unregistered")
	}
}

// Connected is the number of open dashboards
func (h *LiveHub) Connected() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast sends event to every connection in parallel, dropping the ones
// that fail. A slow socket delays only its own delivery.
func (h *LiveHub) Broadcast(event models.LiveEvent) {
	if event.Timestamp == 0 {
		event.Timestamp = h.now().UnixMilli()
	}

	h.mu.RLock()
	conns := make([]*liveConn, 0, len(h.connections))
	for _, lc := range h.connections {
		conns = append(conns, lc)
	}
	h.mu.RUnlock()

	var wg sync.WaitGroup
	for _, lc := range conns {
		wg.Add(1)
		go func(lc *liveConn) {
			defer wg.Done()
			if err := lc.send(event); err != nil {
				log.Error().Err(err).Str("type", event.Type).Str("user_id", lc.userID).Msg("Failed to push live event")
				h.Unregister(lc.conn)
			}
		}(lc)
	}
	wg.Wait()
}

func (lc *liveConn) send(event models.LiveEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	lc.writeMu.Lock()
	defer lc.writeMu.Unlock()

	lc.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := lc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
