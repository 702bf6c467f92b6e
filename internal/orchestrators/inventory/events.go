package inventory

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
)

// Event types published after an accepted transaction
const (
	EventItemBought     = "inventory.item_bought"
	EventItemSold       = "inventory.item_sold"
	EventItemEquipped   = "inventory.item_equipped"
	EventItemUnequipped = "inventory.item_unequipped"
	EventItemDropped    = "inventory.item_dropped"
	EventConsumableUsed = "inventory.consumable_used"
)

// EventTypes lists every inventory event type.
func EventTypes() []string {
	return []string{
		EventItemBought,
		EventItemSold,
		EventItemEquipped,
		EventItemUnequipped,
		EventItemDropped,
		EventConsumableUsed,
	}
}

// Event context keys
const (
	KeyCharacterID     = "character_id"
	KeyCharacterItemID = "character_item_id"
	KeyItemID          = "item_id"
	KeyGold            = "gold"
	KeyHealed          = "healed"
)

// GoldChange reads the character and its gold after the transaction from
// an inventory event.
func GoldChange(e events.Event) (characterID string, gold int, ok bool) {
	if e == nil {
		return "", 0, false
	}
	rawID, found := e.Context().Get(KeyCharacterID)
	if !found {
		return "", 0, false
	}
	rawGold, found := e.Context().Get(KeyGold)
	if !found {
		return "", 0, false
	}
	characterID, idOK := rawID.(string)
	gold, goldOK := rawGold.(int)
	return characterID, gold, idOK && goldOK
}

// publish announces an accepted transaction. The store has already
// committed, so handler failures are logged and swallowed.
func (o *Orchestrator) publish(ctx context.Context, eventType, characterID, itemID string, result *inventoryrepo.Result) {
	if o.bus == nil || result == nil || !result.OK {
		return
	}

	var target core.Entity
	if itemID != "" {
		target = &entities.Item{ID: itemID}
	}

	event := events.NewGameEvent(eventType, &entities.Character{ID: characterID}, target)
	event.Context().Set(KeyCharacterID, characterID)
	event.Context().Set(KeyCharacterItemID, result.CharacterItemID)
	event.Context().Set(KeyItemID, itemID)
	event.Context().Set(KeyGold, result.Gold)
	if result.Healed > 0 {
		event.Context().Set(KeyHealed, result.Healed)
	}

	if err := o.bus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish inventory event",
			"event", eventType,
			"character_id", characterID,
			"error", err,
		)
	}
}
