// Package inventory is the client-side inventory state machine. It decides
// which transitions an entry allows so callers can reject impossible
// requests before reaching the store. The store stays authoritative.
package inventory

import (
	"sort"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

// EquipState is where an equippable entry currently sits.
type EquipState string

// Equip states
const (
	StateNone             EquipState = ""
	StateUnequipped       EquipState = "unequipped"
	StateEquippedAsWeapon EquipState = "equipped-as-weapon"
	StateEquippedAsArmor  EquipState = "equipped-as-armor"
)

// Action is an operation a player may take on an inventory entry.
type Action string

// Actions
const (
	ActionEquip   Action = "equip"
	ActionUnequip Action = "unequip"
	ActionUse     Action = "use"
	ActionSell    Action = "sell"
	ActionDrop    Action = "drop"
)

// StateOf reports an entry's equip state. Consumables and other items
// have no equip state.
func StateOf(entry *entities.InventoryEntry) EquipState {
	if entry == nil {
		return StateNone
	}

	switch entry.Type {
	case entities.ItemTypeWeapon, entities.ItemTypeArmor:
	default:
		return StateNone
	}

	switch entry.EquippedSlot {
	case entities.SlotWeapon:
		return StateEquippedAsWeapon
	case entities.SlotArmor:
		return StateEquippedAsArmor
	default:
		return StateUnequipped
	}
}

// SlotFor is the slot an item type equips into, or SlotNone.
func SlotFor(t entities.ItemType) entities.EquipSlot {
	switch t {
	case entities.ItemTypeWeapon:
		return entities.SlotWeapon
	case entities.ItemTypeArmor:
		return entities.SlotArmor
	default:
		return entities.SlotNone
	}
}

// CanEquip allows weapon->weapon and armor->armor from the unequipped state.
func CanEquip(entry *entities.InventoryEntry, slot entities.EquipSlot) bool {
	if StateOf(entry) != StateUnequipped {
		return false
	}
	return slot != entities.SlotNone && SlotFor(entry.Type) == slot
}

// CanUnequip allows leaving either equipped state.
func CanUnequip(entry *entities.InventoryEntry) bool {
	switch StateOf(entry) {
	case StateEquippedAsWeapon, StateEquippedAsArmor:
		return true
	default:
		return false
	}
}

// CanUseConsumable allows use only on consumables.
func CanUseConsumable(entry *entities.InventoryEntry) bool {
	return entry != nil && entry.Type == entities.ItemTypeConsumable
}

// AvailableActions lists the actions offered for an entry. Weapons and
// armor offer equip or unequip, consumables offer use, and every entry can
// be sold or dropped.
func AvailableActions(entry *entities.InventoryEntry) []Action {
	if entry == nil {
		return nil
	}

	var actions []Action
	switch StateOf(entry) {
	case StateUnequipped:
		actions = append(actions, ActionEquip)
	case StateEquippedAsWeapon, StateEquippedAsArmor:
		actions = append(actions, ActionUnequip)
	}
	if CanUseConsumable(entry) {
		actions = append(actions, ActionUse)
	}
	return append(actions, ActionSell, ActionDrop)
}

// EquippedWeapon is the first weapon equipped in the weapon slot.
func EquippedWeapon(entries []*entities.InventoryEntry) *entities.InventoryEntry {
	return firstEquipped(entries, entities.ItemTypeWeapon, entities.SlotWeapon)
}

// EquippedArmor is the first armor equipped in the armor slot.
func EquippedArmor(entries []*entities.InventoryEntry) *entities.InventoryEntry {
	return firstEquipped(entries, entities.ItemTypeArmor, entities.SlotArmor)
}

func firstEquipped(entries []*entities.InventoryEntry, t entities.ItemType, slot entities.EquipSlot) *entities.InventoryEntry {
	for _, e := range entries {
		if e != nil && e.Type == t && e.EquippedSlot == slot {
			return e
		}
	}
	return nil
}

// SortEntries orders entries by character item ID in place.
func SortEntries(entries []*entities.InventoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CharacterItemID < entries[j].CharacterItemID
	})
}
