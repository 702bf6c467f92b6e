package shop_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/handlers/shop"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory"
	inventorymock "github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory/mock"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
	characterrepomock "github.com/KirkDiggler/rpg-companion/internal/repositories/character/mock"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	inventory     *inventorymock.MockService
	characterRepo *characterrepomock.MockRepository
	bus           events.EventBus
	server        *httptest.Server
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.inventory = inventorymock.NewMockService(s.ctrl)
	s.characterRepo = characterrepomock.NewMockRepository(s.ctrl)
	s.bus = events.NewBus()
	s.server = s.newServer(nil)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) newServer(origins []string) *httptest.Server {
	h, err := shop.NewHandler(&shop.Config{
		InventoryService: s.inventory,
		CharacterRepo:    s.characterRepo,
		EventBus:         s.bus,
		AllowedOrigins:   origins,
	})
	s.Require().NoError(err)

	r := mux.NewRouter()
	r.Handle("/v1/characters/{id}/shop", h)
	return httptest.NewServer(r)
}

func (s *HandlerTestSuite) expectVitals(gold int) {
	s.characterRepo.EXPECT().
		GetVitals(gomock.Any(), characterrepo.GetVitalsInput{ID: testutils.TestCharacterID}).
		Return(&characterrepo.GetVitalsOutput{Vitals: characterrepo.Vitals{Gold: gold, HitPointsCurrent: 10, HitPointsMax: 10}}, nil).
		AnyTimes()
}

func (s *HandlerTestSuite) dial(server *httptest.Server, header http.Header) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/characters/" + testutils.TestCharacterID + "/shop"
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *HandlerTestSuite) read(conn *websocket.Conn) map[string]any {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var msg map[string]any
	s.Require().NoError(conn.ReadJSON(&msg))
	return msg
}

func (s *HandlerTestSuite) selectItem(conn *websocket.Conn, characterID, itemID, name string) {
	s.Require().NoError(conn.WriteJSON(map[string]any{
		"type":        shop.TypeItemSelected,
		"item":        map[string]any{"id": itemID, "name": name},
		"characterId": characterID,
	}))
}

// expectPendingBracket reads the BUY_PENDING true/false pair around a buy
func (s *HandlerTestSuite) expectPendingBracket(conn *websocket.Conn) {
	first := s.read(conn)
	s.Equal(shop.TypeBuyPending, first["type"])
	s.Equal(true, first["pending"])

	second := s.read(conn)
	s.Equal(shop.TypeBuyPending, second["type"])
	s.Equal(false, second["pending"])
}

func (s *HandlerTestSuite) TestNewHandlerValidatesConfig() {
	_, err := shop.NewHandler(&shop.Config{})
	s.Require().Error(err)

	fields := errors.ValidationFields(err)
	s.Contains(fields, "InventoryService")
	s.Contains(fields, "CharacterRepo")
	s.NotContains(fields, "EventBus")
}

func (s *HandlerTestSuite) TestUnknownCharacterIsRejectedBeforeUpgrade() {
	s.characterRepo.EXPECT().
		GetVitals(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("character not found"))

	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/v1/characters/ghost/shop"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().ErrorIs(err, websocket.ErrBadHandshake)
	s.Require().NotNil(resp)
	defer func() { _ = resp.Body.Close() }()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *HandlerTestSuite) TestRequestGold() {
	s.expectVitals(85)
	conn := s.dial(s.server, nil)

	s.Require().NoError(conn.WriteJSON(map[string]string{"type": shop.TypeRequestGold}))
	s.Equal(map[string]any{"type": shop.TypeCharacterGold, "gold": float64(85)}, s.read(conn))
}

func (s *HandlerTestSuite) TestPurchaseComplete() {
	s.expectVitals(100)
	s.inventory.EXPECT().
		BuyItem(gomock.Any(), &inventory.BuyItemInput{CharacterID: testutils.TestCharacterID, ItemID: "longsword"}).
		Return(&inventory.BuyItemOutput{
			Result: &inventoryrepo.Result{OK: true, Gold: 85, CharacterItemID: "ci_1"},
			Item:   testutils.Longsword(),
		}, nil)

	conn := s.dial(s.server, nil)
	s.selectItem(conn, testutils.TestCharacterID, "longsword", "ignored")

	s.Equal(map[string]any{"type": shop.TypeBuyPending, "pending": true, "itemId": "longsword"}, s.read(conn))
	s.Equal(map[string]any{"type": shop.TypeBuyPending, "pending": false, "itemId": "longsword"}, s.read(conn))
	s.Equal(map[string]any{"type": shop.TypePurchaseComplete, "itemName": "Longsword", "gold": float64(85)}, s.read(conn))
}

func (s *HandlerTestSuite) TestPurchaseRejected() {
	s.expectVitals(10)
	s.inventory.EXPECT().
		BuyItem(gomock.Any(), gomock.Any()).
		Return(&inventory.BuyItemOutput{
			Result: &inventoryrepo.Result{Error: inventoryrepo.ReasonNotEnoughGold, Gold: 10},
		}, nil)

	conn := s.dial(s.server, nil)
	s.selectItem(conn, testutils.TestCharacterID, "chain-mail", "Chain Mail")

	s.expectPendingBracket(conn)
	s.Equal(map[string]any{"type": shop.TypePurchaseFailed, "error": inventoryrepo.ReasonNotEnoughGold}, s.read(conn))
}

func (s *HandlerTestSuite) TestPurchaseErrorUsesDefaultMessage() {
	s.expectVitals(100)
	s.inventory.EXPECT().
		BuyItem(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("redis down"))

	conn := s.dial(s.server, nil)
	s.selectItem(conn, testutils.TestCharacterID, "longsword", "Longsword")

	s.expectPendingBracket(conn)
	s.Equal(map[string]any{"type": shop.TypePurchaseFailed, "error": shop.DefaultFailure}, s.read(conn))
}

func (s *HandlerTestSuite) TestIgnoredSelections() {
	s.expectVitals(42)
	conn := s.dial(s.server, nil)

	// No BuyItem expectation: either of these reaching the service fails the test
	s.selectItem(conn, "someone-else", "longsword", "Longsword")
	s.selectItem(conn, testutils.TestCharacterID, "", "Nameless")
	s.Require().NoError(conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	s.Require().NoError(conn.WriteJSON(map[string]string{"type": shop.TypeRequestGold}))
	s.Equal(map[string]any{"type": shop.TypeCharacterGold, "gold": float64(42)}, s.read(conn))
}

func (s *HandlerTestSuite) TestGoldPushedOnInventoryEvents() {
	s.expectVitals(100)
	conn := s.dial(s.server, nil)

	// the first reply proves the session is subscribed
	s.Require().NoError(conn.WriteJSON(map[string]string{"type": shop.TypeRequestGold}))
	s.Equal(float64(100), s.read(conn)["gold"])

	s.publish("char_other", 7)
	s.publish(testutils.TestCharacterID, 125)

	s.Equal(map[string]any{"type": shop.TypeCharacterGold, "gold": float64(125)}, s.read(conn))
}

func (s *HandlerTestSuite) publish(characterID string, gold int) {
	e := events.NewGameEvent(inventory.EventItemSold, &entities.Character{ID: characterID}, nil)
	e.Context().Set(inventory.KeyCharacterID, characterID)
	e.Context().Set(inventory.KeyGold, gold)
	s.Require().NoError(s.bus.Publish(context.Background(), e))
}

func (s *HandlerTestSuite) TestOriginCheck() {
	s.expectVitals(100)
	server := s.newServer([]string{"https://app.example"})
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/v1/characters/" + testutils.TestCharacterID + "/shop"

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://evil.example"}})
	s.Require().ErrorIs(err, websocket.ErrBadHandshake)
	s.Require().NotNil(resp)
	_ = resp.Body.Close()
	s.Equal(http.StatusForbidden, resp.StatusCode)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": []string{"https://app.example"}})
	s.Require().NoError(err)
	_ = conn.Close()
}
