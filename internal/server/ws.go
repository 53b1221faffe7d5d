package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

const writeWait = time.Second

// EventsHandler pushes game snapshots to websocket clients at a fixed rate.
type EventsHandler struct {
	hub      *Hub
	interval time.Duration
	clock    quartz.Clock
	logger   *log.Logger
}

// NewEventsHandler creates a new EventsHandler sending at most one snapshot per interval.
func NewEventsHandler(hub *Hub, interval time.Duration, clock quartz.Clock, logger *log.Logger) *EventsHandler {
	return &EventsHandler{
		hub:      hub,
		interval: interval,
		clock:    clock,
		logger:   logger,
	}
}

// ServeHTTP upgrades the connection and streams snapshots until either side closes.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	// Drain client messages so close frames are noticed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := h.clock.NewTicker(h.interval, "events")
	defer ticker.Stop()

	var sent uint64
	for {
		if snap, version := h.hub.Snapshot(); version != sent {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				h.logger.Debug("websocket write", "err", err)
				return
			}
			sent = version
		}

		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
