// Package inventory implements the inventory orchestrator. It checks each
// request against the inventory state machine, delegates the transition to
// the store and publishes an event for every accepted transaction.
package inventory

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	statemachine "github.com/KirkDiggler/rpg-companion/internal/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/rules"
)

// Rejection reasons decided before reaching the store
const (
	ReasonAlreadyEquipped = "Item is already equipped"
	ReasonNotEquipped     = "Item is not equipped"
)

// Config holds the dependencies for the inventory orchestrator
type Config struct {
	InventoryRepo inventoryrepo.Repository
	CatalogRepo   catalog.Repository
	CharacterRepo characterrepo.Repository
	Roller        *dice.Roller
	IDGenerator   idgen.Generator
	// EventBus is optional; nil disables events
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.InventoryRepo == nil {
		vb.RequiredField("InventoryRepo")
	}
	if c.CatalogRepo == nil {
		vb.RequiredField("CatalogRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the inventory.Service interface
type Orchestrator struct {
	inventoryRepo inventoryrepo.Repository
	catalogRepo   catalog.Repository
	characterRepo characterrepo.Repository
	roller        *dice.Roller
	idGen         idgen.Generator
	bus           events.EventBus
}

// New creates a new inventory orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		inventoryRepo: cfg.InventoryRepo,
		catalogRepo:   cfg.CatalogRepo,
		characterRepo: cfg.CharacterRepo,
		roller:        cfg.Roller,
		idGen:         cfg.IDGenerator,
		bus:           cfg.EventBus,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// BuyItem buys one unit of a catalog item at its current price
// Returns errors.NotFound when the item is not in the catalog
func (o *Orchestrator) BuyItem(ctx context.Context, input *BuyItemInput) (*BuyItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", input.CharacterID, vb)
	errors.ValidateRequired("item_id", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	item, err := o.catalogRepo.GetItem(ctx, catalog.GetItemInput{ID: input.ItemID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get item")
	}

	result, err := o.inventoryRepo.Buy(ctx, inventoryrepo.BuyInput{
		CharacterID:     input.CharacterID,
		CharacterItemID: o.idGen.Generate(),
		ItemID:          item.Item.ID,
		ItemType:        item.Item.Type,
		Price:           item.Item.Price,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to buy item")
	}

	o.logResult(ctx, "buy", input.CharacterID, result)
	o.publish(ctx, EventItemBought, input.CharacterID, item.Item.ID, result)

	return &BuyItemOutput{Result: result, Item: item.Item}, nil
}

// SellItem sells one unit of an entry for half its purchase price
func (o *Orchestrator) SellItem(ctx context.Context, input *SellItemInput) (*TransactionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	entry, rejected, err := o.getEntry(ctx, input.CharacterID, input.CharacterItemID)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return &TransactionOutput{Result: rejected}, nil
	}

	result, err := o.inventoryRepo.Sell(ctx, inventoryrepo.SellInput{
		CharacterID:     input.CharacterID,
		CharacterItemID: input.CharacterItemID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sell item")
	}

	o.logResult(ctx, "sell", input.CharacterID, result)
	o.publish(ctx, EventItemSold, input.CharacterID, entry.ItemID, result)

	return &TransactionOutput{Result: result}, nil
}

// EquipItem equips an entry after checking the slot fits its type
func (o *Orchestrator) EquipItem(ctx context.Context, input *EquipItemInput) (*TransactionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	entry, rejected, err := o.getEntry(ctx, input.CharacterID, input.CharacterItemID)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return &TransactionOutput{Result: rejected}, nil
	}

	slot := statemachine.SlotFor(entry.ItemType)
	if input.Slot != "" {
		var ok bool
		if slot, ok = entities.EquipSlotFromString(input.Slot); !ok {
			return o.reject(ctx, input.CharacterID, inventoryrepo.ReasonInvalidSlot)
		}
	}

	state := entry.ToInventoryEntry(nil)
	if !statemachine.CanEquip(state, slot) {
		if statemachine.CanUnequip(state) && state.EquippedSlot == slot {
			return o.reject(ctx, input.CharacterID, ReasonAlreadyEquipped)
		}
		return o.reject(ctx, input.CharacterID, inventoryrepo.ReasonSlotMismatch)
	}

	result, err := o.inventoryRepo.Equip(ctx, inventoryrepo.EquipInput{
		CharacterID:     input.CharacterID,
		CharacterItemID: input.CharacterItemID,
		Slot:            slot,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to equip item")
	}

	o.logResult(ctx, "equip", input.CharacterID, result)
	o.publish(ctx, EventItemEquipped, input.CharacterID, entry.ItemID, result)

	return &TransactionOutput{Result: result}, nil
}

// UnequipItem clears an equipped entry's slot
func (o *Orchestrator) UnequipItem(ctx context.Context, input *UnequipItemInput) (*TransactionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	entry, rejected, err := o.getEntry(ctx, input.CharacterID, input.CharacterItemID)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return &TransactionOutput{Result: rejected}, nil
	}

	if !statemachine.CanUnequip(entry.ToInventoryEntry(nil)) {
		return o.reject(ctx, input.CharacterID, ReasonNotEquipped)
	}

	result, err := o.inventoryRepo.Unequip(ctx, inventoryrepo.UnequipInput{
		CharacterID:     input.CharacterID,
		CharacterItemID: input.CharacterItemID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to unequip item")
	}

	o.logResult(ctx, "unequip", input.CharacterID, result)
	o.publish(ctx, EventItemUnequipped, input.CharacterID, entry.ItemID, result)

	return &TransactionOutput{Result: result}, nil
}

// DropItem discards units of an entry without a refund
func (o *Orchestrator) DropItem(ctx context.Context, input *DropItemInput) (*TransactionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Quantity < 0 {
		return nil, errors.InvalidArgument("quantity must not be negative")
	}

	entry, rejected, err := o.getEntry(ctx, input.CharacterID, input.CharacterItemID)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return &TransactionOutput{Result: rejected}, nil
	}

	result, err := o.inventoryRepo.Drop(ctx, inventoryrepo.DropInput{
		CharacterID:     input.CharacterID,
		CharacterItemID: input.CharacterItemID,
		Quantity:        input.Quantity,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to drop item")
	}

	o.logResult(ctx, "drop", input.CharacterID, result)
	o.publish(ctx, EventItemDropped, input.CharacterID, entry.ItemID, result)

	return &TransactionOutput{Result: result}, nil
}

// UseConsumable spends one unit of a consumable. Without an explicit heal
// amount the item's heal notation is rolled, falling back to a standard
// healing potion.
func (o *Orchestrator) UseConsumable(ctx context.Context, input *UseConsumableInput) (*UseConsumableOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.HealAmount != nil && *input.HealAmount < 0 {
		return nil, errors.InvalidArgument("heal amount must not be negative")
	}

	entry, rejected, err := o.getEntry(ctx, input.CharacterID, input.CharacterItemID)
	if err != nil {
		return nil, err
	}
	if rejected != nil {
		return &UseConsumableOutput{Result: rejected}, nil
	}

	if !statemachine.CanUseConsumable(entry.ToInventoryEntry(nil)) {
		out, err := o.reject(ctx, input.CharacterID, inventoryrepo.ReasonNotConsumable)
		if err != nil {
			return nil, err
		}
		return &UseConsumableOutput{Result: out.Result}, nil
	}

	var (
		heal     int
		healRoll *dice.Result
	)
	if input.HealAmount != nil {
		heal = *input.HealAmount
	} else {
		notation, err := o.healNotation(ctx, entry.ItemID)
		if err != nil {
			return nil, err
		}
		roll := o.roller.RollNotation(notation)
		healRoll = &roll
		heal = max(roll.Total, 0)
	}

	result, err := o.inventoryRepo.UseConsumable(ctx, inventoryrepo.UseConsumableInput{
		CharacterID:     input.CharacterID,
		CharacterItemID: input.CharacterItemID,
		HealAmount:      heal,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to use consumable")
	}

	o.logResult(ctx, "use", input.CharacterID, result)
	o.publish(ctx, EventConsumableUsed, input.CharacterID, entry.ItemID, result)

	return &UseConsumableOutput{Result: result, HealRoll: healRoll}, nil
}

// ListInventory lists a character's entries joined to the catalog
func (o *Orchestrator) ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	listed, err := o.inventoryRepo.List(ctx, inventoryrepo.ListInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	ids := make([]string, 0, len(listed.Entries))
	for _, e := range listed.Entries {
		ids = append(ids, e.ItemID)
	}

	items := map[string]*entities.Item{}
	if len(ids) > 0 {
		got, err := o.catalogRepo.GetItems(ctx, catalog.GetItemsInput{IDs: ids})
		if err != nil {
			return nil, errors.Wrap(err, "failed to load inventory items")
		}
		items = got.Items
	}

	entries := make([]*entities.InventoryEntry, 0, len(listed.Entries))
	for _, e := range listed.Entries {
		entries = append(entries, e.ToInventoryEntry(items[e.ItemID]))
	}
	statemachine.SortEntries(entries)

	return &ListInventoryOutput{Entries: entries}, nil
}

// getEntry loads the entry a transaction targets. A missing entry is a
// rejection, matching what the store reports.
func (o *Orchestrator) getEntry(ctx context.Context, characterID, characterItemID string) (*inventoryrepo.Entry, *inventoryrepo.Result, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", characterID, vb)
	errors.ValidateRequired("character_item_id", characterItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, nil, err
	}

	out, err := o.inventoryRepo.GetEntry(ctx, inventoryrepo.GetEntryInput{
		CharacterID:     characterID,
		CharacterItemID: characterItemID,
	})
	if err != nil {
		if errors.IsNotFound(err) {
			rejected, rerr := o.reject(ctx, characterID, inventoryrepo.ReasonEntryNotFound)
			if rerr != nil {
				return nil, nil, rerr
			}
			return nil, rejected.Result, nil
		}
		return nil, nil, errors.Wrap(err, "failed to get inventory entry")
	}

	return out.Entry, nil, nil
}

// reject builds a rejection carrying the character's current gold.
func (o *Orchestrator) reject(ctx context.Context, characterID, reason string) (*TransactionOutput, error) {
	vitals, err := o.characterRepo.GetVitals(ctx, characterrepo.GetVitalsInput{ID: characterID})
	if err != nil {
		if errors.IsNotFound(err) {
			return &TransactionOutput{Result: &inventoryrepo.Result{Error: inventoryrepo.ReasonCharacterNotFound}}, nil
		}
		return nil, errors.Wrap(err, "failed to get character vitals")
	}

	slog.DebugContext(ctx, "inventory request rejected",
		"character_id", characterID,
		"reason", reason,
	)

	return &TransactionOutput{Result: &inventoryrepo.Result{
		Error: reason,
		Gold:  vitals.Vitals.Gold,
	}}, nil
}

func (o *Orchestrator) healNotation(ctx context.Context, itemID string) (string, error) {
	item, err := o.catalogRepo.GetItem(ctx, catalog.GetItemInput{ID: itemID})
	if err != nil {
		if errors.IsNotFound(err) {
			return rules.HealingPotion, nil
		}
		return "", errors.Wrap(err, "failed to get consumable")
	}
	if item.Item.Stats != nil && item.Item.Stats.Heal != "" {
		return item.Item.Stats.Heal, nil
	}
	return rules.HealingPotion, nil
}

func (o *Orchestrator) logResult(ctx context.Context, action, characterID string, result *inventoryrepo.Result) {
	if result.OK {
		slog.InfoContext(ctx, "inventory transaction accepted",
			"action", action,
			"character_id", characterID,
			"character_item_id", result.CharacterItemID,
			"gold", result.Gold,
		)
		return
	}
	slog.InfoContext(ctx, "inventory transaction rejected",
		"action", action,
		"character_id", characterID,
		"reason", result.Error,
	)
}
