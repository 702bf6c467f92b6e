// Package shop serves the embedded shop channel: one websocket per
// character over which the shop requests gold and submits purchases.
package shop

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	maxMessageBytes = 4096
	sendBuffer      = 16
)

// Config holds dependencies for the shop channel
type Config struct {
	InventoryService inventory.Service
	CharacterRepo    characterrepo.Repository
	// EventBus delivers gold changes; nil disables pushes
	EventBus events.EventBus
	// AllowedOrigins lists browser origins allowed to connect. Empty
	// allows any origin.
	AllowedOrigins []string
}

// Validate ensures all required dependencies are present
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.InventoryService == nil {
		vb.RequiredField("InventoryService")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}

	return vb.Build()
}

// Handler upgrades /characters/{id}/shop requests to websockets
type Handler struct {
	inventoryService inventory.Service
	characterRepo    characterrepo.Repository
	bus              events.EventBus
	allowedOrigins   []string
	upgrader         websocket.Upgrader
}

// NewHandler creates a new shop channel handler
func NewHandler(cfg *Config) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	h := &Handler{
		inventoryService: cfg.InventoryService,
		characterRepo:    cfg.CharacterRepo,
		bus:              cfg.EventBus,
		allowedOrigins:   cfg.AllowedOrigins,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h, nil
}

// checkOrigin allows requests without an Origin header, which only
// non-browser clients send.
func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if strings.EqualFold(strings.TrimSpace(allowed), origin) {
			return true
		}
	}
	return false
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	characterID := mux.Vars(r)["id"]
	if characterID == "" {
		http.Error(w, "character id is required", http.StatusBadRequest)
		return
	}

	if _, err := h.characterRepo.GetVitals(r.Context(), characterrepo.GetVitalsInput{ID: characterID}); err != nil {
		status := errors.GetCode(err).HTTPStatus()
		http.Error(w, errors.GetMessage(err), status)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		slog.Warn("shop upgrade failed", "character_id", characterID, "error", err)
		return
	}

	s := newSession(h, conn, characterID)
	slog.Info("shop connected", "character_id", characterID)

	if h.bus != nil {
		subIDs := h.subscribe(s)
		defer func() {
			for _, id := range subIDs {
				if err := h.bus.Unsubscribe(id); err != nil {
					slog.Warn("failed to unsubscribe shop session", "character_id", characterID, "error", err)
				}
			}
		}()
	}

	s.run(context.WithoutCancel(r.Context()))
	slog.Info("shop disconnected", "character_id", characterID)
}

// subscribe pushes CHARACTER_GOLD to s after every inventory event for
// its character.
func (h *Handler) subscribe(s *session) []string {
	push := func(_ context.Context, e events.Event) error {
		characterID, gold, ok := inventory.GoldChange(e)
		if !ok || characterID != s.characterID {
			return nil
		}
		s.send(goldMessage{Type: TypeCharacterGold, Gold: gold})
		return nil
	}

	eventTypes := inventory.EventTypes()
	ids := make([]string, 0, len(eventTypes))
	for _, eventType := range eventTypes {
		ids = append(ids, h.bus.SubscribeFunc(eventType, 0, push))
	}
	return ids
}
