package inventory

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
)

//go:generate mockgen -destination=mock/mock_service.go -package=inventorymock github.com/KirkDiggler/rpg-companion/internal/orchestrators/inventory Service

// Service defines the inventory orchestrator interface. Rejected
// transactions come back as a Result with OK false, not as errors.
type Service interface {
	BuyItem(ctx context.Context, input *BuyItemInput) (*BuyItemOutput, error)
	SellItem(ctx context.Context, input *SellItemInput) (*TransactionOutput, error)
	EquipItem(ctx context.Context, input *EquipItemInput) (*TransactionOutput, error)
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*TransactionOutput, error)
	DropItem(ctx context.Context, input *DropItemInput) (*TransactionOutput, error)
	UseConsumable(ctx context.Context, input *UseConsumableInput) (*UseConsumableOutput, error)
	ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error)
}

// BuyItemInput defines the request for buying one unit of a catalog item
type BuyItemInput struct {
	CharacterID string
	ItemID      string
}

// BuyItemOutput defines the response for buying an item
type BuyItemOutput struct {
	Result *inventoryrepo.Result
	Item   *entities.Item
}

// TransactionOutput is the response for transactions that only report a
// result.
type TransactionOutput struct {
	Result *inventoryrepo.Result
}

// SellItemInput defines the request for selling one unit of an entry
type SellItemInput struct {
	CharacterID     string
	CharacterItemID string
}

// EquipItemInput defines the request for equipping an entry. An empty
// slot means the slot the item type equips into.
type EquipItemInput struct {
	CharacterID     string
	CharacterItemID string
	Slot            string
}

// UnequipItemInput defines the request for unequipping an entry
type UnequipItemInput struct {
	CharacterID     string
	CharacterItemID string
}

// DropItemInput defines the request for dropping units of an entry.
// Quantity 0 drops the whole entry.
type DropItemInput struct {
	CharacterID     string
	CharacterItemID string
	Quantity        int
}

// UseConsumableInput defines the request for using a consumable. When
// HealAmount is nil the item's heal notation is rolled.
type UseConsumableInput struct {
	CharacterID     string
	CharacterItemID string
	HealAmount      *int
}

// UseConsumableOutput defines the response for using a consumable
type UseConsumableOutput struct {
	Result *inventoryrepo.Result
	// HealRoll is set when the heal amount was rolled
	HealRoll *dice.Result
}

// ListInventoryInput defines the request for listing an inventory
type ListInventoryInput struct {
	CharacterID string
}

// ListInventoryOutput defines the response for listing an inventory
type ListInventoryOutput struct {
	Entries []*entities.InventoryEntry
}
