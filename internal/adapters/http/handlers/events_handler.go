package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/edulab/projhub/internal/app/events"
)

// EventsHandler streams store change events to websocket clients so the
// dashboard can refresh without polling.
type EventsHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewEventsHandler creates a new EventsHandler over the given hub.
func NewEventsHandler(hub *events.Hub, logger *slog.Logger) *EventsHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// Stream handles GET /api/v1/events. It upgrades the connection and writes
// each published event as a JSON text message until the client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	subID := uuid.NewString()
	ch := h.hub.Subscribe(subID)
	defer h.hub.Unsubscribe(subID)

	h.logger.InfoContext(r.Context(), "event stream opened", slog.String("subscriber_id", subID))

	// Drain the reader so close frames and pings are processed; a read
	// error means the client went away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				h.logger.WarnContext(r.Context(), "event stream write failed",
					slog.String("subscriber_id", subID),
					slog.Any("error", err),
				)
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
