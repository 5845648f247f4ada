package handlers

import (
	"net/http"
	"time"

	"breeder-site-backend/internal/middleware"
	"breeder-site-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	livePongWait   = 60 * time.Second
	livePingPeriod = 50 * time.Second
)

// LiveFeedHandler streams live events to admin dashboards
type LiveFeedHandler struct {
	hub      *services.LiveHub
	upgrader websocket.Upgrader
}

// NewLiveFeedHandler creates a new live feed handler. An empty origins list
// accepts any origin.
func NewLiveFeedHandler(hub *services.LiveHub, origins []string) *LiveFeedHandler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &LiveFeedHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

// HandleWebSocket handles GET /api/ws. It must sit behind middleware.RequireAdmin.
func (h *LiveFeedHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFrom(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	if err := h.hub.Register(session.UserID, conn); err != nil {
		log.Error().Err(err).Str("user_id", session.UserID).Msg("Failed to register WebSocket connection")
		h.hub.Unregister(conn)
		return
	}
	defer h.hub.Unregister(conn)

	conn.SetReadDeadline(time.Now().Add(livePongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(livePingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
					return
				}
			}
		}
	}()

	// the feed is one-way; reading only drives control frames and detects close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("user_id", session.UserID).Msg("WebSocket error")
			}
			return
		}
	}
}
