package inventory_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
	catalogmock "github.com/KirkDiggler/rpg-companion/internal/repositories/catalog/mock"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
	characterrepomock "github.com/KirkDiggler/rpg-companion/internal/repositories/character/mock"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
	inventorymock "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory/mock"
	"github.com/KirkDiggler/rpg-companion/internal/testutils"
)

const charID = testutils.TestCharacterID

// midSource lands every die on its middle face: a d4 rolls 3.
type midSource struct{}

func (midSource) Float64() float64 { return 0.5 }

type published struct {
	eventType string
	character string
	gold      int
	itemID    any
}

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	inventoryRepo *inventorymock.MockRepository
	catalogRepo   *catalogmock.MockRepository
	characterRepo *characterrepomock.MockRepository
	bus           events.EventBus
	events        []published
	orchestrator  *inventory.Orchestrator
	ctx           context.Context
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.inventoryRepo = inventorymock.NewMockRepository(s.ctrl)
	s.catalogRepo = catalogmock.NewMockRepository(s.ctrl)
	s.characterRepo = characterrepomock.NewMockRepository(s.ctrl)
	s.bus = events.NewBus()
	s.events = nil

	for _, eventType := range inventory.EventTypes() {
		s.bus.SubscribeFunc(eventType, 100, func(_ context.Context, e events.Event) error {
			id, gold, ok := inventory.GoldChange(e)
			s.Require().True(ok)
			itemID, _ := e.Context().Get(inventory.KeyItemID)
			s.events = append(s.events, published{
				eventType: e.Type(),
				character: id,
				gold:      gold,
				itemID:    itemID,
			})
			return nil
		})
	}

	o, err := inventory.New(&inventory.Config{
		InventoryRepo: s.inventoryRepo,
		CatalogRepo:   s.catalogRepo,
		CharacterRepo: s.characterRepo,
		Roller:        dice.New(midSource{}),
		IDGenerator:   idgen.NewSequential("ci"),
		EventBus:      s.bus,
	})
	s.Require().NoError(err)
	s.orchestrator = o
	s.ctx = context.Background()
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) expectEntry(entry *inventoryrepo.Entry) {
	s.inventoryRepo.EXPECT().
		GetEntry(s.ctx, inventoryrepo.GetEntryInput{CharacterID: charID, CharacterItemID: entry.CharacterItemID}).
		Return(&inventoryrepo.GetEntryOutput{Entry: entry}, nil)
}

func (s *OrchestratorTestSuite) expectGold(gold int) {
	s.characterRepo.EXPECT().
		GetVitals(s.ctx, characterrepo.GetVitalsInput{ID: charID}).
		Return(&characterrepo.GetVitalsOutput{Vitals: characterrepo.Vitals{Gold: gold, HitPointsCurrent: 20, HitPointsMax: 28}}, nil)
}

func weaponEntry(slot entities.EquipSlot) *inventoryrepo.Entry {
	return &inventoryrepo.Entry{
		CharacterItemID: "ci_1",
		CharacterID:     charID,
		ItemID:          "longsword",
		ItemType:        entities.ItemTypeWeapon,
		Price:           15,
		Quantity:        1,
		EquippedSlot:    slot,
	}
}

func potionEntry() *inventoryrepo.Entry {
	return &inventoryrepo.Entry{
		CharacterItemID: "ci_2",
		CharacterID:     charID,
		ItemID:          "potion-of-healing",
		ItemType:        entities.ItemTypeConsumable,
		Price:           50,
		Quantity:        2,
	}
}

func (s *OrchestratorTestSuite) TestNewValidatesConfig() {
	_, err := inventory.New(&inventory.Config{})
	s.Require().Error(err)

	fields := errors.ValidationFields(err)
	for _, name := range []string{"InventoryRepo", "CatalogRepo", "CharacterRepo", "Roller", "IDGenerator"} {
		s.Assert().Contains(fields, name)
	}
	s.Assert().NotContains(fields, "EventBus")
}

func (s *OrchestratorTestSuite) TestBuyItem() {
	s.catalogRepo.EXPECT().
		GetItem(s.ctx, catalog.GetItemInput{ID: "longsword"}).
		Return(&catalog.GetItemOutput{Item: testutils.Longsword()}, nil)
	s.inventoryRepo.EXPECT().
		Buy(s.ctx, inventoryrepo.BuyInput{
			CharacterID:     charID,
			CharacterItemID: "ci_000001",
			ItemID:          "longsword",
			ItemType:        entities.ItemTypeWeapon,
			Price:           15,
		}).
		Return(&inventoryrepo.Result{OK: true, Gold: 85, CharacterItemID: "ci_000001"}, nil)

	out, err := s.orchestrator.BuyItem(s.ctx, &inventory.BuyItemInput{CharacterID: charID, ItemID: "longsword"})
	s.Require().NoError(err)
	s.Assert().True(out.Result.OK)
	s.Assert().Equal(85, out.Result.Gold)
	s.Assert().Equal("Longsword", out.Item.Name)

	s.Require().Len(s.events, 1)
	s.Assert().Equal(published{
		eventType: inventory.EventItemBought,
		character: charID,
		gold:      85,
		itemID:    "longsword",
	}, s.events[0])
}

func (s *OrchestratorTestSuite) TestBuyItemNotEnoughGoldPublishesNothing() {
	s.catalogRepo.EXPECT().
		GetItem(s.ctx, catalog.GetItemInput{ID: "chain-mail"}).
		Return(&catalog.GetItemOutput{Item: testutils.ChainMail()}, nil)
	s.inventoryRepo.EXPECT().
		Buy(s.ctx, gomock.Any()).
		Return(&inventoryrepo.Result{Error: inventoryrepo.ReasonNotEnoughGold, Gold: 10}, nil)

	out, err := s.orchestrator.BuyItem(s.ctx, &inventory.BuyItemInput{CharacterID: charID, ItemID: "chain-mail"})
	s.Require().NoError(err)
	s.Assert().False(out.Result.OK)
	s.Assert().Equal(inventoryrepo.ReasonNotEnoughGold, out.Result.Error)
	s.Assert().Empty(s.events)
}

func (s *OrchestratorTestSuite) TestBuyItemUnknownItem() {
	s.catalogRepo.EXPECT().
		GetItem(s.ctx, catalog.GetItemInput{ID: "vorpal-sword"}).
		Return(nil, errors.NotFound("item not found"))

	_, err := s.orchestrator.BuyItem(s.ctx, &inventory.BuyItemInput{CharacterID: charID, ItemID: "vorpal-sword"})
	s.Require().Error(err)
	s.Assert().True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestBuyItemValidation() {
	_, err := s.orchestrator.BuyItem(s.ctx, &inventory.BuyItemInput{})
	s.Require().Error(err)
	fields := errors.ValidationFields(err)
	s.Assert().Contains(fields, "character_id")
	s.Assert().Contains(fields, "item_id")

	_, err = s.orchestrator.BuyItem(s.ctx, nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSellItem() {
	s.expectEntry(potionEntry())
	s.inventoryRepo.EXPECT().
		Sell(s.ctx, inventoryrepo.SellInput{CharacterID: charID, CharacterItemID: "ci_2"}).
		Return(&inventoryrepo.Result{OK: true, Gold: 125, CharacterItemID: "ci_2"}, nil)

	out, err := s.orchestrator.SellItem(s.ctx, &inventory.SellItemInput{CharacterID: charID, CharacterItemID: "ci_2"})
	s.Require().NoError(err)
	s.Assert().True(out.Result.OK)

	s.Require().Len(s.events, 1)
	s.Assert().Equal(inventory.EventItemSold, s.events[0].eventType)
	s.Assert().Equal(125, s.events[0].gold)
	s.Assert().Equal("potion-of-healing", s.events[0].itemID)
}

func (s *OrchestratorTestSuite) TestSellMissingEntryIsRejected() {
	s.inventoryRepo.EXPECT().
		GetEntry(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("entry not found"))
	s.expectGold(40)

	out, err := s.orchestrator.SellItem(s.ctx, &inventory.SellItemInput{CharacterID: charID, CharacterItemID: "ci_9"})
	s.Require().NoError(err)
	s.Assert().False(out.Result.OK)
	s.Assert().Equal(inventoryrepo.ReasonEntryNotFound, out.Result.Error)
	s.Assert().Equal(40, out.Result.Gold)
}

func (s *OrchestratorTestSuite) TestRejectionForMissingCharacter() {
	s.inventoryRepo.EXPECT().
		GetEntry(s.ctx, gomock.Any()).
		Return(nil, errors.NotFound("entry not found"))
	s.characterRepo.EXPECT().
		GetVitals(s.ctx, characterrepo.GetVitalsInput{ID: charID}).
		Return(nil, errors.NotFound("character not found"))

	out, err := s.orchestrator.DropItem(s.ctx, &inventory.DropItemInput{CharacterID: charID, CharacterItemID: "ci_9"})
	s.Require().NoError(err)
	s.Assert().Equal(inventoryrepo.ReasonCharacterNotFound, out.Result.Error)
}

func (s *OrchestratorTestSuite) TestStoreErrorsAreReturned() {
	testCases := []struct {
		name string
		call func() (any, error)
	}{
		{name: "sell", call: func() (any, error) {
			out, err := s.orchestrator.SellItem(s.ctx, &inventory.SellItemInput{CharacterID: charID, CharacterItemID: "ci_1"})
			return out, err
		}},
		{name: "equip", call: func() (any, error) {
			out, err := s.orchestrator.EquipItem(s.ctx, &inventory.EquipItemInput{CharacterID: charID, CharacterItemID: "ci_1"})
			return out, err
		}},
		{name: "unequip", call: func() (any, error) {
			out, err := s.orchestrator.UnequipItem(s.ctx, &inventory.UnequipItemInput{CharacterID: charID, CharacterItemID: "ci_1"})
			return out, err
		}},
		{name: "drop", call: func() (any, error) {
			out, err := s.orchestrator.DropItem(s.ctx, &inventory.DropItemInput{CharacterID: charID, CharacterItemID: "ci_1"})
			return out, err
		}},
		{name: "use consumable", call: func() (any, error) {
			out, err := s.orchestrator.UseConsumable(s.ctx, &inventory.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_1"})
			return out, err
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.inventoryRepo.EXPECT().
				GetEntry(s.ctx, gomock.Any()).
				Return(nil, errors.Unavailable("redis down"))

			out, err := tc.call()
			s.Require().Error(err)
			s.Assert().Equal(errors.CodeUnavailable, errors.GetCode(err))
			s.Assert().Nil(out)
		})
	}
}

func (s *OrchestratorTestSuite) TestEquipItemDefaultSlot() {
	s.expectEntry(weaponEntry(entities.SlotNone))
	s.inventoryRepo.EXPECT().
		Equip(s.ctx, inventoryrepo.EquipInput{CharacterID: charID, CharacterItemID: "ci_1", Slot: entities.SlotWeapon}).
		Return(&inventoryrepo.Result{OK: true, Gold: 100, CharacterItemID: "ci_1"}, nil)

	out, err := s.orchestrator.EquipItem(s.ctx, &inventory.EquipItemInput{CharacterID: charID, CharacterItemID: "ci_1"})
	s.Require().NoError(err)
	s.Assert().True(out.Result.OK)
	s.Require().Len(s.events, 1)
	s.Assert().Equal(inventory.EventItemEquipped, s.events[0].eventType)
}

func (s *OrchestratorTestSuite) TestEquipItemRejections() {
	testCases := []struct {
		name   string
		entry  *inventoryrepo.Entry
		slot   string
		reason string
	}{
		{
			name:   "invalid slot",
			entry:  weaponEntry(entities.SlotNone),
			slot:   "ring",
			reason: inventoryrepo.ReasonInvalidSlot,
		},
		{
			name:   "weapon into armor slot",
			entry:  weaponEntry(entities.SlotNone),
			slot:   "armor",
			reason: inventoryrepo.ReasonSlotMismatch,
		},
		{
			name:   "already equipped",
			entry:  weaponEntry(entities.SlotWeapon),
			slot:   "weapon",
			reason: inventory.ReasonAlreadyEquipped,
		},
		{
			name:   "consumable",
			entry:  potionEntry(),
			reason: inventoryrepo.ReasonSlotMismatch,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.expectEntry(tc.entry)
			s.expectGold(100)

			out, err := s.orchestrator.EquipItem(s.ctx, &inventory.EquipItemInput{
				CharacterID:     charID,
				CharacterItemID: tc.entry.CharacterItemID,
				Slot:            tc.slot,
			})
			s.Require().NoError(err)
			s.Assert().False(out.Result.OK)
			s.Assert().Equal(tc.reason, out.Result.Error)
			s.Assert().Equal(100, out.Result.Gold)
		})
	}
	s.Assert().Empty(s.events)
}

func (s *OrchestratorTestSuite) TestUnequipItem() {
	s.expectEntry(weaponEntry(entities.SlotWeapon))
	s.inventoryRepo.EXPECT().
		Unequip(s.ctx, inventoryrepo.UnequipInput{CharacterID: charID, CharacterItemID: "ci_1"}).
		Return(&inventoryrepo.Result{OK: true, Gold: 100, CharacterItemID: "ci_1"}, nil)

	out, err := s.orchestrator.UnequipItem(s.ctx, &inventory.UnequipItemInput{CharacterID: charID, CharacterItemID: "ci_1"})
	s.Require().NoError(err)
	s.Assert().True(out.Result.OK)
	s.Require().Len(s.events, 1)
	s.Assert().Equal(inventory.EventItemUnequipped, s.events[0].eventType)
}

func (s *OrchestratorTestSuite) TestUnequipNotEquipped() {
	s.expectEntry(weaponEntry(entities.SlotNone))
	s.expectGold(100)

	out, err := s.orchestrator.UnequipItem(s.ctx, &inventory.UnequipItemInput{CharacterID: charID, CharacterItemID: "ci_1"})
	s.Require().NoError(err)
	s.Assert().Equal(inventory.ReasonNotEquipped, out.Result.Error)
}

func (s *OrchestratorTestSuite) TestDropItem() {
	s.expectEntry(potionEntry())
	s.inventoryRepo.EXPECT().
		Drop(s.ctx, inventoryrepo.DropInput{CharacterID: charID, CharacterItemID: "ci_2", Quantity: 1}).
		Return(&inventoryrepo.Result{OK: true, Gold: 100, CharacterItemID: "ci_2"}, nil)

	out, err := s.orchestrator.DropItem(s.ctx, &inventory.DropItemInput{CharacterID: charID, CharacterItemID: "ci_2", Quantity: 1})
	s.Require().NoError(err)
	s.Assert().True(out.Result.OK)
	s.Require().Len(s.events, 1)
	s.Assert().Equal(inventory.EventItemDropped, s.events[0].eventType)
}

func (s *OrchestratorTestSuite) TestDropNegativeQuantity() {
	_, err := s.orchestrator.DropItem(s.ctx, &inventory.DropItemInput{CharacterID: charID, CharacterItemID: "ci_2", Quantity: -1})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestUseConsumableRollsDefaultHeal() {
	s.expectEntry(potionEntry())
	s.catalogRepo.EXPECT().
		GetItem(s.ctx, catalog.GetItemInput{ID: "potion-of-healing"}).
		Return(&catalog.GetItemOutput{Item: testutils.PotionOfHealing()}, nil)
	// 2d4+2 with both dice on 3
	s.inventoryRepo.EXPECT().
		UseConsumable(s.ctx, inventoryrepo.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_2", HealAmount: 8}).
		Return(&inventoryrepo.Result{OK: true, Gold: 100, Healed: 8, CharacterItemID: "ci_2"}, nil)

	out, err := s.orchestrator.UseConsumable(s.ctx, &inventory.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_2"})
	s.Require().NoError(err)
	s.Assert().True(out.Result.OK)
	s.Require().NotNil(out.HealRoll)
	s.Assert().Equal([]int{3, 3}, out.HealRoll.Rolls)
	s.Assert().Equal(8, out.HealRoll.Total)
	s.Require().Len(s.events, 1)
	s.Assert().Equal(inventory.EventConsumableUsed, s.events[0].eventType)
}

func (s *OrchestratorTestSuite) TestUseConsumableItemHealNotation() {
	potion := testutils.PotionOfHealing()
	potion.Stats = &entities.ItemStats{Heal: "4d4+4"}
	s.expectEntry(potionEntry())
	s.catalogRepo.EXPECT().
		GetItem(s.ctx, gomock.Any()).
		Return(&catalog.GetItemOutput{Item: potion}, nil)
	s.inventoryRepo.EXPECT().
		UseConsumable(s.ctx, inventoryrepo.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_2", HealAmount: 16}).
		Return(&inventoryrepo.Result{OK: true, Gold: 100, Healed: 8}, nil)

	out, err := s.orchestrator.UseConsumable(s.ctx, &inventory.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_2"})
	s.Require().NoError(err)
	s.Assert().Equal(16, out.HealRoll.Total)
	s.Assert().Equal(8, out.Result.Healed)
}

func (s *OrchestratorTestSuite) TestUseConsumableExplicitHeal() {
	heal := 5
	s.expectEntry(potionEntry())
	s.inventoryRepo.EXPECT().
		UseConsumable(s.ctx, inventoryrepo.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_2", HealAmount: 5}).
		Return(&inventoryrepo.Result{OK: true, Gold: 100, Healed: 5}, nil)

	out, err := s.orchestrator.UseConsumable(s.ctx, &inventory.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_2", HealAmount: &heal})
	s.Require().NoError(err)
	s.Assert().Nil(out.HealRoll)
	s.Assert().Equal(5, out.Result.Healed)
}

func (s *OrchestratorTestSuite) TestUseConsumableOnWeapon() {
	s.expectEntry(weaponEntry(entities.SlotNone))
	s.expectGold(100)

	out, err := s.orchestrator.UseConsumable(s.ctx, &inventory.UseConsumableInput{CharacterID: charID, CharacterItemID: "ci_1"})
	s.Require().NoError(err)
	s.Assert().False(out.Result.OK)
	s.Assert().Equal(inventoryrepo.ReasonNotConsumable, out.Result.Error)
}

func (s *OrchestratorTestSuite) TestListInventory() {
	s.inventoryRepo.EXPECT().
		List(s.ctx, inventoryrepo.ListInput{CharacterID: charID}).
		Return(&inventoryrepo.ListOutput{Entries: []*inventoryrepo.Entry{potionEntry(), weaponEntry(entities.SlotWeapon)}}, nil)
	s.catalogRepo.EXPECT().
		GetItems(s.ctx, catalog.GetItemsInput{IDs: []string{"potion-of-healing", "longsword"}}).
		Return(&catalog.GetItemsOutput{Items: map[string]*entities.Item{
			"longsword": testutils.Longsword(),
		}}, nil)

	out, err := s.orchestrator.ListInventory(s.ctx, &inventory.ListInventoryInput{CharacterID: charID})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)

	s.Assert().Equal("ci_1", out.Entries[0].CharacterItemID)
	s.Assert().Equal("Longsword", out.Entries[0].Name)
	s.Assert().Equal(entities.SlotWeapon, out.Entries[0].EquippedSlot)

	s.Assert().Equal("ci_2", out.Entries[1].CharacterItemID)
	s.Assert().Equal("potion-of-healing", out.Entries[1].Name)
	s.Assert().Equal(2, out.Entries[1].Quantity)
}

func (s *OrchestratorTestSuite) TestListInventoryEmpty() {
	s.inventoryRepo.EXPECT().
		List(s.ctx, inventoryrepo.ListInput{CharacterID: charID}).
		Return(&inventoryrepo.ListOutput{}, nil)

	out, err := s.orchestrator.ListInventory(s.ctx, &inventory.ListInventoryInput{CharacterID: charID})
	s.Require().NoError(err)
	s.Assert().Empty(out.Entries)
}

func TestOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}
