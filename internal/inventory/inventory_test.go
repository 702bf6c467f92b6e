package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/inventory"
)

type InventoryTestSuite struct {
	suite.Suite

	sword  *entities.InventoryEntry
	mail   *entities.InventoryEntry
	potion *entities.InventoryEntry
	rope   *entities.InventoryEntry
}

func TestInventorySuite(t *testing.T) {
	suite.Run(t, new(InventoryTestSuite))
}

func entry(id string, t entities.ItemType, slot entities.EquipSlot) *entities.InventoryEntry {
	return &entities.InventoryEntry{
		Item:            entities.Item{ID: "item_" + id, Name: id, Type: t},
		CharacterItemID: id,
		Quantity:        1,
		EquippedSlot:    slot,
	}
}

func (s *InventoryTestSuite) SetupTest() {
	s.sword = entry("ci_03", entities.ItemTypeWeapon, entities.SlotNone)
	s.mail = entry("ci_01", entities.ItemTypeArmor, entities.SlotArmor)
	s.potion = entry("ci_02", entities.ItemTypeConsumable, entities.SlotNone)
	s.rope = entry("ci_04", entities.ItemTypeOther, entities.SlotNone)
}

func (s *InventoryTestSuite) TestStateOf() {
	s.Assert().Equal(inventory.StateUnequipped, inventory.StateOf(s.sword))
	s.Assert().Equal(inventory.StateEquippedAsArmor, inventory.StateOf(s.mail))
	s.Assert().Equal(inventory.StateNone, inventory.StateOf(s.potion))
	s.Assert().Equal(inventory.StateNone, inventory.StateOf(s.rope))

	s.sword.EquippedSlot = entities.SlotWeapon
	s.Assert().Equal(inventory.StateEquippedAsWeapon, inventory.StateOf(s.sword))
}

func (s *InventoryTestSuite) TestCanEquip() {
	s.Assert().True(inventory.CanEquip(s.sword, entities.SlotWeapon))
	s.Assert().False(inventory.CanEquip(s.sword, entities.SlotArmor))
	s.Assert().False(inventory.CanEquip(s.sword, entities.SlotNone))

	s.Assert().False(inventory.CanEquip(s.mail, entities.SlotArmor), "already equipped")
	s.mail.EquippedSlot = entities.SlotNone
	s.Assert().True(inventory.CanEquip(s.mail, entities.SlotArmor))
	s.Assert().False(inventory.CanEquip(s.mail, entities.SlotWeapon))

	s.Assert().False(inventory.CanEquip(s.potion, entities.SlotWeapon))
	s.Assert().False(inventory.CanEquip(s.rope, entities.SlotArmor))
	s.Assert().False(inventory.CanEquip(nil, entities.SlotWeapon))
}

func (s *InventoryTestSuite) TestCanUnequip() {
	s.Assert().True(inventory.CanUnequip(s.mail))
	s.Assert().False(inventory.CanUnequip(s.sword))
	s.Assert().False(inventory.CanUnequip(s.potion))
}

func (s *InventoryTestSuite) TestCanUseConsumable() {
	s.Assert().True(inventory.CanUseConsumable(s.potion))
	s.Assert().False(inventory.CanUseConsumable(s.sword))
	s.Assert().False(inventory.CanUseConsumable(s.rope))
}

func (s *InventoryTestSuite) TestAvailableActions() {
	testCases := []struct {
		name     string
		entry    func() *entities.InventoryEntry
		expected []inventory.Action
	}{
		{
			name:     "unequipped weapon",
			entry:    func() *entities.InventoryEntry { return s.sword },
			expected: []inventory.Action{inventory.ActionEquip, inventory.ActionSell, inventory.ActionDrop},
		},
		{
			name:     "equipped armor",
			entry:    func() *entities.InventoryEntry { return s.mail },
			expected: []inventory.Action{inventory.ActionUnequip, inventory.ActionSell, inventory.ActionDrop},
		},
		{
			name:     "consumable",
			entry:    func() *entities.InventoryEntry { return s.potion },
			expected: []inventory.Action{inventory.ActionUse, inventory.ActionSell, inventory.ActionDrop},
		},
		{
			name:     "other",
			entry:    func() *entities.InventoryEntry { return s.rope },
			expected: []inventory.Action{inventory.ActionSell, inventory.ActionDrop},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Assert().Equal(tc.expected, inventory.AvailableActions(tc.entry()))
		})
	}
}

func (s *InventoryTestSuite) TestEquippedLookups() {
	// a weapon-typed entry sitting in the armor slot counts as neither
	odd := entry("ci_00", entities.ItemTypeWeapon, entities.SlotArmor)
	entries := []*entities.InventoryEntry{odd, s.sword, s.mail, s.potion}

	s.Assert().Nil(inventory.EquippedWeapon(entries))
	s.Assert().Equal(s.mail, inventory.EquippedArmor(entries))

	s.sword.EquippedSlot = entities.SlotWeapon
	s.Assert().Equal(s.sword, inventory.EquippedWeapon(entries))
	s.Assert().Nil(inventory.EquippedArmor(nil))
}

func (s *InventoryTestSuite) TestSortEntries() {
	entries := []*entities.InventoryEntry{s.rope, s.sword, s.mail, s.potion}
	inventory.SortEntries(entries)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.CharacterItemID
	}
	s.Assert().Equal([]string{"ci_01", "ci_02", "ci_03", "ci_04"}, ids)
}
