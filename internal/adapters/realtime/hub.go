package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/fintrack_app/internal/core/domain"
	portsevt "github.com/SscSPs/fintrack_app/internal/core/ports/events"
	"github.com/olahol/melody"
)

const sessionUserKey = "user_id"

// Message is what a connected client receives for each ledger event.
type Message struct {
	Type       domain.LedgerEventType `json:"type"`
	EntityID   string                 `json:"entityID"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Hub pushes ledger events to the websocket sessions of the event's owner.
type Hub struct {
	m *melody.Melody
}

var _ portsevt.EventPublisher = (*Hub)(nil)

func NewHub() *Hub {
	m := melody.New()
	m.Config.MaxMessageSize = 4096
	// Keep-alive for proxies that drop idle connections.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleConnect(func(s *melody.Session) {
		userID, _ := s.Get(sessionUserKey)
		slog.Debug("Websocket client connected", "user_id", userID)
	})
	m.HandleDisconnect(func(s *melody.Session) {
		userID, _ := s.Get(sessionUserKey)
		slog.Debug("Websocket client disconnected", "user_id", userID)
	})
	m.HandleError(func(s *melody.Session, err error) {
		slog.Warn("Websocket error", "error", err)
	})

	return &Hub{m: m}
}

// HandleRequest upgrades the request and tags the session with userID.
func (h *Hub) HandleRequest(w http.ResponseWriter, r *http.Request, userID string) error {
	return h.m.HandleRequestWithKeys(w, r, map[string]any{sessionUserKey: userID})
}

// Publish broadcasts event to the owner's sessions only.
func (h *Hub) Publish(ctx context.Context, event domain.LedgerEvent) error {
	body, err := json.Marshal(Message{Type: event.Type, EntityID: event.EntityID, OccurredAt: event.OccurredAt})
	if err != nil {
		return fmt.Errorf("marshal realtime message: %w", err)
	}
	err = h.m.BroadcastFilter(body, func(s *melody.Session) bool {
		id, exists := s.Get(sessionUserKey)
		return exists && id == event.UserID
	})
	if err != nil && err != melody.ErrClosed {
		return fmt.Errorf("broadcast realtime message: %w", err)
	}
	return nil
}

// Close disconnects every session.
func (h *Hub) Close() error {
	return h.m.Close()
}
