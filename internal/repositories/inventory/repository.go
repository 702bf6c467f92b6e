// Package inventory persists character inventories and performs the
// inventory transactions (buy, sell, equip, unequip, drop, use) atomically.
//
// Each transaction reports its outcome as a Result. A rejected transaction
// such as buying without enough gold is a Result with OK false and a
// reason, not an error. Errors are reserved for storage failures.
package inventory

//go:generate mockgen -destination=mock/mock_repository.go -package=inventorymock github.com/KirkDiggler/rpg-companion/internal/repositories/inventory Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

// Rejection reasons reported in Result.Error
const (
	ReasonCharacterNotFound = "Character not found"
	ReasonEntryNotFound     = "Item not in inventory"
	ReasonNotEnoughGold     = "Not enough gold"
	ReasonSlotMismatch      = "Item cannot be equipped in that slot"
	ReasonNotConsumable     = "Item is not a consumable"
	ReasonInvalidSlot       = "Invalid equipment slot"
)

// Result is the outcome of an inventory transaction.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	// Healed is the hit points restored by a consumable.
	Healed int `json:"healed,omitempty"`
	// Gold is the character's gold after the transaction.
	Gold int `json:"gold"`
	// CharacterItemID is the entry the transaction touched.
	CharacterItemID string `json:"character_item_id,omitempty"`
}

// Entry is a stored inventory row. Type and price are captured at purchase.
type Entry struct {
	CharacterItemID string
	CharacterID     string
	ItemID          string
	ItemType        entities.ItemType
	Price           int
	Quantity        int
	EquippedSlot    entities.EquipSlot
	CreatedAt       time.Time
}

// Repository defines the interface for inventory storage operations
type Repository interface {
	// Buy deducts the price and adds one unit, stacking onto an existing
	// entry for the same item.
	Buy(ctx context.Context, input BuyInput) (*Result, error)

	// Sell removes one unit and refunds half the price, rounded down.
	Sell(ctx context.Context, input SellInput) (*Result, error)

	// Equip puts an entry in a slot, clearing whatever held it before.
	Equip(ctx context.Context, input EquipInput) (*Result, error)

	// Unequip clears an entry's slot
	Unequip(ctx context.Context, input UnequipInput) (*Result, error)

	// Drop removes Quantity units, or the whole entry when Quantity is 0
	// or at least the owned amount.
	Drop(ctx context.Context, input DropInput) (*Result, error)

	// UseConsumable spends one unit and heals up to HealAmount, capped at
	// the character's maximum hit points.
	UseConsumable(ctx context.Context, input UseConsumableInput) (*Result, error)

	// GetEntry retrieves one entry
	// Returns errors.NotFound if the entry doesn't exist
	GetEntry(ctx context.Context, input GetEntryInput) (*GetEntryOutput, error)

	// List returns a character's entries ordered by character item ID
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// DeleteAll removes every entry a character owns
	DeleteAll(ctx context.Context, input DeleteAllInput) (*DeleteAllOutput, error)
}

// BuyInput defines the input for buying an item. CharacterItemID is used
// only when no entry for the item exists yet.
type BuyInput struct {
	CharacterID     string
	CharacterItemID string
	ItemID          string
	ItemType        entities.ItemType
	Price           int
}

// SellInput defines the input for selling one unit of an entry
type SellInput struct {
	CharacterID     string
	CharacterItemID string
}

// EquipInput defines the input for equipping an entry
type EquipInput struct {
	CharacterID     string
	CharacterItemID string
	Slot            entities.EquipSlot
}

// UnequipInput defines the input for unequipping an entry
type UnequipInput struct {
	CharacterID     string
	CharacterItemID string
}

// DropInput defines the input for dropping units of an entry
type DropInput struct {
	CharacterID     string
	CharacterItemID string
	Quantity        int
}

// UseConsumableInput defines the input for using a consumable
type UseConsumableInput struct {
	CharacterID     string
	CharacterItemID string
	HealAmount      int
}

// GetEntryInput defines the input for getting one entry
type GetEntryInput struct {
	CharacterID     string
	CharacterItemID string
}

// GetEntryOutput defines the output for getting one entry
type GetEntryOutput struct {
	Entry *Entry
}

// ListInput defines the input for listing a character's inventory
type ListInput struct {
	CharacterID string
}

// ListOutput defines the output for listing a character's inventory
type ListOutput struct {
	Entries []*Entry
}

// DeleteAllInput defines the input for clearing a character's inventory
type DeleteAllInput struct {
	CharacterID string
}

// DeleteAllOutput defines the output for clearing a character's inventory
type DeleteAllOutput struct {
	EntriesDeleted int
}

// ToInventoryEntry joins the stored row with its catalog item. Type and
// price come from the row since the store acts on those. A nil item
// yields a placeholder named after the item ID.
func (e *Entry) ToInventoryEntry(item *entities.Item) *entities.InventoryEntry {
	var base entities.Item
	if item != nil {
		base = *item
	} else {
		base = entities.Item{ID: e.ItemID, Name: e.ItemID}
	}
	base.Type = e.ItemType
	base.Price = e.Price

	return &entities.InventoryEntry{
		Item:            base,
		CharacterItemID: e.CharacterItemID,
		Quantity:        e.Quantity,
		EquippedSlot:    e.EquippedSlot,
	}
}
