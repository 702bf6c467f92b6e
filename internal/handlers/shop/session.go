package shop

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
)

// session is one open shop socket. The read loop handles requests in
// order; writePump is the only writer.
type session struct {
	handler     *Handler
	conn        *websocket.Conn
	characterID string

	out        chan any
	done       chan struct{}
	writerDone chan struct{}
	closeOnce  sync.Once
}

func newSession(h *Handler, conn *websocket.Conn, characterID string) *session {
	return &session{
		handler:     h,
		conn:        conn,
		characterID: characterID,
		out:         make(chan any, sendBuffer),
		done:        make(chan struct{}),
		writerDone:  make(chan struct{}),
	}
}

// run blocks until the socket closes
func (s *session) run(ctx context.Context) {
	go s.writePump()
	defer func() {
		s.close()
		<-s.writerDone
	}()

	s.conn.SetReadLimit(maxMessageBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("shop read failed", "character_id", s.characterID, "error", err)
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Debug("ignoring malformed shop message", "character_id", s.characterID, "error", err)
			continue
		}

		s.handle(ctx, &msg)
	}
}

func (s *session) handle(ctx context.Context, msg *inbound) {
	switch msg.Type {
	case TypeRequestGold:
		s.sendGold(ctx)
	case TypeItemSelected:
		s.purchase(ctx, msg)
	default:
		slog.Debug("ignoring shop message", "character_id", s.characterID, "type", msg.Type)
	}
}

func (s *session) sendGold(ctx context.Context) {
	gold := 0
	out, err := s.handler.characterRepo.GetVitals(ctx, characterrepo.GetVitalsInput{ID: s.characterID})
	if err != nil {
		slog.WarnContext(ctx, "failed to read gold for shop", "character_id", s.characterID, "error", err)
	} else {
		gold = out.Vitals.Gold
	}
	s.send(goldMessage{Type: TypeCharacterGold, Gold: gold})
}

// purchase ignores selections without an item or for another character.
// BUY_PENDING brackets the buy so the host can lock its buttons.
func (s *session) purchase(ctx context.Context, msg *inbound) {
	if msg.Item == nil || msg.Item.ID == "" || msg.CharacterID != s.characterID {
		return
	}

	s.send(pendingMessage{Type: TypeBuyPending, Pending: true, ItemID: msg.Item.ID})
	outcome := s.buy(ctx, msg.Item)
	s.send(pendingMessage{Type: TypeBuyPending, Pending: false, ItemID: msg.Item.ID})
	s.send(outcome)
}

func (s *session) buy(ctx context.Context, item *selectedItem) any {
	out, err := s.handler.inventoryService.BuyItem(ctx, &inventory.BuyItemInput{
		CharacterID: s.characterID,
		ItemID:      item.ID,
	})
	if err != nil {
		slog.WarnContext(ctx, "shop purchase failed",
			"character_id", s.characterID,
			"item_id", item.ID,
			"error", err,
		)
		return failedMessage{Type: TypePurchaseFailed, Error: DefaultFailure}
	}

	if out.Result == nil || !out.Result.OK {
		reason := DefaultFailure
		if out.Result != nil && out.Result.Error != "" {
			reason = out.Result.Error
		}
		return failedMessage{Type: TypePurchaseFailed, Error: reason}
	}

	name := item.Name
	if out.Item != nil && out.Item.Name != "" {
		name = out.Item.Name
	}
	return completeMessage{Type: TypePurchaseComplete, ItemName: name, Gold: out.Result.Gold}
}

// send queues msg without blocking. Messages to a closed or backed up
// session are dropped.
func (s *session) send(msg any) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.out <- msg:
	case <-s.done:
	default:
		slog.Warn("shop send buffer full", "character_id", s.characterID)
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}

func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
		close(s.writerDone)
	}()

	for {
		select {
		case msg := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				slog.Warn("shop write failed", "character_id", s.characterID, "error", err)
				s.close()
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.close()
				return
			}

		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
