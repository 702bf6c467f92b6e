package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-companion/internal/redis"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/character"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/testutils"
)

const testCharID = "char_1"

type RedisRepositoryTestSuite struct {
	suite.Suite
	client  redisclient.Client
	cleanup func()
	repo    inventory.Repository
	ids     idgen.Generator
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.client, s.cleanup = testutils.CreateTestRedisClient(s.T())
	s.ctx = context.Background()
	s.ids = idgen.NewSequential("ci")

	repo, err := inventory.NewRedisRepository(&inventory.Config{
		Client: s.client,
		Clock:  &clock.Fixed{At: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	})
	s.Require().NoError(err)
	s.repo = repo

	s.setVitals(100, 5, 12)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) setVitals(gold, hpCurrent, hpMax int) {
	s.Require().NoError(s.client.HSet(s.ctx, character.VitalsKey(testCharID),
		character.VitalsFieldGold, gold,
		character.VitalsFieldHPCurrent, hpCurrent,
		character.VitalsFieldHPMax, hpMax,
	).Err())
}

func (s *RedisRepositoryTestSuite) vitals() (gold, hpCurrent int) {
	gold, err := s.client.HGet(s.ctx, character.VitalsKey(testCharID), character.VitalsFieldGold).Int()
	s.Require().NoError(err)
	hpCurrent, err = s.client.HGet(s.ctx, character.VitalsKey(testCharID), character.VitalsFieldHPCurrent).Int()
	s.Require().NoError(err)
	return gold, hpCurrent
}

func (s *RedisRepositoryTestSuite) buy(itemID string, t entities.ItemType, price int) *inventory.Result {
	res, err := s.repo.Buy(s.ctx, inventory.BuyInput{
		CharacterID:     testCharID,
		CharacterItemID: s.ids.Generate(),
		ItemID:          itemID,
		ItemType:        t,
		Price:           price,
	})
	s.Require().NoError(err)
	return res
}

func (s *RedisRepositoryTestSuite) entry(ciid string) *inventory.Entry {
	out, err := s.repo.GetEntry(s.ctx, inventory.GetEntryInput{CharacterID: testCharID, CharacterItemID: ciid})
	s.Require().NoError(err)
	return out.Entry
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepositoryValidation() {
	_, err := inventory.NewRedisRepository(&inventory.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestBuyCreatesAndStacks() {
	first := s.buy("item_potion", entities.ItemTypeConsumable, 50)
	s.Require().True(first.OK, first.Error)
	s.Assert().Equal("ci_000001", first.CharacterItemID)
	s.Assert().Equal(50, first.Gold)

	second := s.buy("item_potion", entities.ItemTypeConsumable, 50)
	s.Require().True(second.OK, second.Error)
	s.Assert().Equal("ci_000001", second.CharacterItemID, "stacks onto the existing entry")
	s.Assert().Equal(0, second.Gold)

	e := s.entry("ci_000001")
	s.Assert().Equal(2, e.Quantity)
	s.Assert().Equal("item_potion", e.ItemID)
	s.Assert().Equal(entities.ItemTypeConsumable, e.ItemType)
	s.Assert().Equal(50, e.Price)
	s.Assert().Equal(entities.SlotNone, e.EquippedSlot)
}

func (s *RedisRepositoryTestSuite) TestBuyNotEnoughGold() {
	res := s.buy("item_plate", entities.ItemTypeArmor, 1500)
	s.Assert().False(res.OK)
	s.Assert().Equal(inventory.ReasonNotEnoughGold, res.Error)
	s.Assert().Equal(100, res.Gold)

	list, err := s.repo.List(s.ctx, inventory.ListInput{CharacterID: testCharID})
	s.Require().NoError(err)
	s.Assert().Empty(list.Entries)
}

func (s *RedisRepositoryTestSuite) TestBuyExactGold() {
	res := s.buy("item_chain", entities.ItemTypeArmor, 100)
	s.Require().True(res.OK)
	s.Assert().Equal(0, res.Gold)
}

func (s *RedisRepositoryTestSuite) TestUnknownCharacter() {
	res, err := s.repo.Buy(s.ctx, inventory.BuyInput{
		CharacterID:     "ghost",
		CharacterItemID: "ci_x",
		ItemID:          "item_potion",
		ItemType:        entities.ItemTypeConsumable,
		Price:           1,
	})
	s.Require().NoError(err)
	s.Assert().False(res.OK)
	s.Assert().Equal(inventory.ReasonCharacterNotFound, res.Error)
}

func (s *RedisRepositoryTestSuite) TestUnknownEntry() {
	res, err := s.repo.Sell(s.ctx, inventory.SellInput{CharacterID: testCharID, CharacterItemID: "ci_missing"})
	s.Require().NoError(err)
	s.Assert().False(res.OK)
	s.Assert().Equal(inventory.ReasonEntryNotFound, res.Error)

	_, err = s.repo.GetEntry(s.ctx, inventory.GetEntryInput{CharacterID: testCharID, CharacterItemID: "ci_missing"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestSellRefundsHalfRoundedDown() {
	s.setVitals(100, 5, 12)
	bought := s.buy("item_dagger", entities.ItemTypeWeapon, 15)
	s.Require().True(bought.OK)
	s.buy("item_dagger", entities.ItemTypeWeapon, 15)

	res, err := s.repo.Sell(s.ctx, inventory.SellInput{CharacterID: testCharID, CharacterItemID: bought.CharacterItemID})
	s.Require().NoError(err)
	s.Require().True(res.OK)
	s.Assert().Equal(77, res.Gold) // 100 - 30 + 7
	s.Assert().Equal(1, s.entry(bought.CharacterItemID).Quantity)
}

func (s *RedisRepositoryTestSuite) TestSellLastUnitRemovesEntryAndEquipState() {
	bought := s.buy("item_sword", entities.ItemTypeWeapon, 10)
	_, err := s.repo.Equip(s.ctx, inventory.EquipInput{
		CharacterID: testCharID, CharacterItemID: bought.CharacterItemID, Slot: entities.SlotWeapon,
	})
	s.Require().NoError(err)

	res, err := s.repo.Sell(s.ctx, inventory.SellInput{CharacterID: testCharID, CharacterItemID: bought.CharacterItemID})
	s.Require().NoError(err)
	s.Require().True(res.OK)

	_, err = s.repo.GetEntry(s.ctx, inventory.GetEntryInput{CharacterID: testCharID, CharacterItemID: bought.CharacterItemID})
	s.Assert().True(errors.IsNotFound(err))

	// buying again starts a fresh, unequipped entry
	again := s.buy("item_sword", entities.ItemTypeWeapon, 10)
	s.Require().True(again.OK)
	s.Assert().NotEqual(bought.CharacterItemID, again.CharacterItemID)
	s.Assert().Equal(entities.SlotNone, s.entry(again.CharacterItemID).EquippedSlot)
}

func (s *RedisRepositoryTestSuite) TestEquipReplacesSameSlotOnly() {
	sword := s.buy("item_sword", entities.ItemTypeWeapon, 10)
	axe := s.buy("item_axe", entities.ItemTypeWeapon, 10)
	mail := s.buy("item_mail", entities.ItemTypeArmor, 10)

	for _, in := range []inventory.EquipInput{
		{CharacterID: testCharID, CharacterItemID: sword.CharacterItemID, Slot: entities.SlotWeapon},
		{CharacterID: testCharID, CharacterItemID: mail.CharacterItemID, Slot: entities.SlotArmor},
		{CharacterID: testCharID, CharacterItemID: axe.CharacterItemID, Slot: entities.SlotWeapon},
	} {
		res, err := s.repo.Equip(s.ctx, in)
		s.Require().NoError(err)
		s.Require().True(res.OK, res.Error)
	}

	s.Assert().Equal(entities.SlotNone, s.entry(sword.CharacterItemID).EquippedSlot)
	s.Assert().Equal(entities.SlotWeapon, s.entry(axe.CharacterItemID).EquippedSlot)
	s.Assert().Equal(entities.SlotArmor, s.entry(mail.CharacterItemID).EquippedSlot)
}

func (s *RedisRepositoryTestSuite) TestEquipRejectsMismatch() {
	potion := s.buy("item_potion", entities.ItemTypeConsumable, 10)
	mail := s.buy("item_mail", entities.ItemTypeArmor, 10)

	testCases := []struct {
		name   string
		ciid   string
		slot   entities.EquipSlot
		reason string
	}{
		{name: "consumable as weapon", ciid: potion.CharacterItemID, slot: entities.SlotWeapon, reason: inventory.ReasonSlotMismatch},
		{name: "armor as weapon", ciid: mail.CharacterItemID, slot: entities.SlotWeapon, reason: inventory.ReasonSlotMismatch},
		{name: "unknown slot", ciid: mail.CharacterItemID, slot: entities.EquipSlot("ring"), reason: inventory.ReasonInvalidSlot},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			res, err := s.repo.Equip(s.ctx, inventory.EquipInput{CharacterID: testCharID, CharacterItemID: tc.ciid, Slot: tc.slot})
			s.Require().NoError(err)
			s.Assert().False(res.OK)
			s.Assert().Equal(tc.reason, res.Error)
		})
	}
}

func (s *RedisRepositoryTestSuite) TestUnequip() {
	mail := s.buy("item_mail", entities.ItemTypeArmor, 10)
	_, err := s.repo.Equip(s.ctx, inventory.EquipInput{CharacterID: testCharID, CharacterItemID: mail.CharacterItemID, Slot: entities.SlotArmor})
	s.Require().NoError(err)

	res, err := s.repo.Unequip(s.ctx, inventory.UnequipInput{CharacterID: testCharID, CharacterItemID: mail.CharacterItemID})
	s.Require().NoError(err)
	s.Require().True(res.OK)
	s.Assert().Equal(entities.SlotNone, s.entry(mail.CharacterItemID).EquippedSlot)
}

func (s *RedisRepositoryTestSuite) TestDrop() {
	arrows := s.buy("item_arrows", entities.ItemTypeOther, 1)
	for i := 0; i < 4; i++ {
		s.buy("item_arrows", entities.ItemTypeOther, 1)
	}
	s.Require().Equal(5, s.entry(arrows.CharacterItemID).Quantity)

	res, err := s.repo.Drop(s.ctx, inventory.DropInput{CharacterID: testCharID, CharacterItemID: arrows.CharacterItemID, Quantity: 2})
	s.Require().NoError(err)
	s.Require().True(res.OK)
	s.Assert().Equal(3, s.entry(arrows.CharacterItemID).Quantity)

	res, err = s.repo.Drop(s.ctx, inventory.DropInput{CharacterID: testCharID, CharacterItemID: arrows.CharacterItemID, Quantity: 10})
	s.Require().NoError(err)
	s.Require().True(res.OK)

	_, err = s.repo.GetEntry(s.ctx, inventory.GetEntryInput{CharacterID: testCharID, CharacterItemID: arrows.CharacterItemID})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDropDefaultQuantityDropsAll() {
	rope := s.buy("item_rope", entities.ItemTypeOther, 1)
	s.buy("item_rope", entities.ItemTypeOther, 1)

	res, err := s.repo.Drop(s.ctx, inventory.DropInput{CharacterID: testCharID, CharacterItemID: rope.CharacterItemID})
	s.Require().NoError(err)
	s.Require().True(res.OK)

	list, err := s.repo.List(s.ctx, inventory.ListInput{CharacterID: testCharID})
	s.Require().NoError(err)
	s.Assert().Empty(list.Entries)
}

func (s *RedisRepositoryTestSuite) TestUseConsumableCapsHealing() {
	s.setVitals(100, 5, 12)
	potion := s.buy("item_potion", entities.ItemTypeConsumable, 10)
	s.buy("item_potion", entities.ItemTypeConsumable, 10)

	res, err := s.repo.UseConsumable(s.ctx, inventory.UseConsumableInput{
		CharacterID: testCharID, CharacterItemID: potion.CharacterItemID, HealAmount: 4,
	})
	s.Require().NoError(err)
	s.Require().True(res.OK)
	s.Assert().Equal(4, res.Healed)

	res, err = s.repo.UseConsumable(s.ctx, inventory.UseConsumableInput{
		CharacterID: testCharID, CharacterItemID: potion.CharacterItemID, HealAmount: 9,
	})
	s.Require().NoError(err)
	s.Require().True(res.OK)
	s.Assert().Equal(3, res.Healed, "capped at max hit points")

	_, hp := s.vitals()
	s.Assert().Equal(12, hp)

	_, err = s.repo.GetEntry(s.ctx, inventory.GetEntryInput{CharacterID: testCharID, CharacterItemID: potion.CharacterItemID})
	s.Assert().True(errors.IsNotFound(err), "last unit consumed")
}

func (s *RedisRepositoryTestSuite) TestUseConsumableDefaultsToNoHealing() {
	potion := s.buy("item_potion", entities.ItemTypeConsumable, 10)

	res, err := s.repo.UseConsumable(s.ctx, inventory.UseConsumableInput{CharacterID: testCharID, CharacterItemID: potion.CharacterItemID})
	s.Require().NoError(err)
	s.Require().True(res.OK)
	s.Assert().Zero(res.Healed)
}

func (s *RedisRepositoryTestSuite) TestUseConsumableRejectsOtherTypes() {
	sword := s.buy("item_sword", entities.ItemTypeWeapon, 10)

	res, err := s.repo.UseConsumable(s.ctx, inventory.UseConsumableInput{CharacterID: testCharID, CharacterItemID: sword.CharacterItemID, HealAmount: 5})
	s.Require().NoError(err)
	s.Assert().False(res.OK)
	s.Assert().Equal(inventory.ReasonNotConsumable, res.Error)
	s.Assert().Equal(1, s.entry(sword.CharacterItemID).Quantity)
}

func (s *RedisRepositoryTestSuite) TestListSortedByCharacterItemID() {
	s.buy("item_c", entities.ItemTypeOther, 1)
	s.buy("item_a", entities.ItemTypeOther, 1)
	s.buy("item_b", entities.ItemTypeOther, 1)

	out, err := s.repo.List(s.ctx, inventory.ListInput{CharacterID: testCharID})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 3)
	s.Assert().Equal("ci_000001", out.Entries[0].CharacterItemID)
	s.Assert().Equal("item_c", out.Entries[0].ItemID)
	s.Assert().Equal("ci_000003", out.Entries[2].CharacterItemID)
}

func (s *RedisRepositoryTestSuite) TestDeleteAll() {
	s.buy("item_a", entities.ItemTypeOther, 1)
	s.buy("item_b", entities.ItemTypeOther, 1)

	out, err := s.repo.DeleteAll(s.ctx, inventory.DeleteAllInput{CharacterID: testCharID})
	s.Require().NoError(err)
	s.Assert().Equal(2, out.EntriesDeleted)

	list, err := s.repo.List(s.ctx, inventory.ListInput{CharacterID: testCharID})
	s.Require().NoError(err)
	s.Assert().Empty(list.Entries)
}

func (s *RedisRepositoryTestSuite) TestInputValidation() {
	_, err := s.repo.Buy(s.ctx, inventory.BuyInput{CharacterID: testCharID})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Equip(s.ctx, inventory.EquipInput{CharacterID: testCharID})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.List(s.ctx, inventory.ListInput{})
	s.Assert().True(errors.IsInvalidArgument(err))
}
