package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ItemType classifies shop items
type ItemType string

// Item types
const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeOther      ItemType = "other"
)

// ItemTypes lists every valid item type.
func ItemTypes() []ItemType {
	return []ItemType{ItemTypeWeapon, ItemTypeArmor, ItemTypeConsumable, ItemTypeOther}
}

// IsValid reports whether t is a known item type
func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeArmor, ItemTypeConsumable, ItemTypeOther:
		return true
	default:
		return false
	}
}

// EquipSlot is where an inventory entry is equipped. The zero value means
// not equipped.
type EquipSlot string

// Equip slots
const (
	SlotNone   EquipSlot = ""
	SlotWeapon EquipSlot = "weapon"
	SlotArmor  EquipSlot = "armor"
)

// EquipSlotFromString converts a string to an EquipSlot.
// Returns the slot and true if valid, empty slot and false if invalid
func EquipSlotFromString(s string) (EquipSlot, bool) {
	switch EquipSlot(s) {
	case SlotWeapon, SlotArmor:
		return EquipSlot(s), true
	default:
		return SlotNone, false
	}
}

// ArmorRating is an item's armor class, either a plain number or text such
// as "11 + Dex".
type ArmorRating struct {
	Number *int
	Text   string
}

// NumericAC builds a numeric armor rating.
func NumericAC(n int) *ArmorRating {
	return &ArmorRating{Number: &n}
}

// TextAC builds a textual armor rating.
func TextAC(s string) *ArmorRating {
	return &ArmorRating{Text: s}
}

// String renders the rating as stored.
func (a *ArmorRating) String() string {
	if a == nil {
		return ""
	}
	if a.Number != nil {
		return strconv.Itoa(*a.Number)
	}
	return a.Text
}

// MarshalJSON writes a number or a string.
func (a ArmorRating) MarshalJSON() ([]byte, error) {
	if a.Number != nil {
		return json.Marshal(*a.Number)
	}
	return json.Marshal(a.Text)
}

// UnmarshalJSON accepts a number or a string.
func (a *ArmorRating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		a.Number = nil
		return json.Unmarshal(data, &a.Text)
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("armor class must be a number or string: %w", err)
	}
	n := int(f)
	a.Number = &n
	a.Text = ""
	return nil
}

// ItemStats are the optional mechanics attached to an item.
type ItemStats struct {
	Damage              string       `json:"damage,omitempty"`
	DamageType          string       `json:"damage_type,omitempty"`
	AC                  *ArmorRating `json:"ac,omitempty"`
	Properties          string       `json:"properties,omitempty"`
	Heal                string       `json:"heal,omitempty"`
	StrengthMinimum     int          `json:"str_minimum,omitempty"`
	StealthDisadvantage bool         `json:"stealth_disadvantage,omitempty"`
}

// Item is a catalog item that can be bought in the shop.
type Item struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        ItemType   `json:"type"`
	Price       int        `json:"price"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	Stats       *ItemStats `json:"stats,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GetID returns the item's ID
func (i *Item) GetID() string {
	return i.ID
}

// GetType returns the entity type for rpg-toolkit
func (i *Item) GetType() string {
	return EntityTypeItem
}

// InventoryEntry is an item owned by a character together with the
// ownership record's ID, quantity and equip state.
type InventoryEntry struct {
	Item
	CharacterItemID string    `json:"character_item_id"`
	Quantity        int       `json:"quantity"`
	EquippedSlot    EquipSlot `json:"equipped_slot,omitempty"`
}

// IsEquipped reports whether the entry occupies a slot.
func (e *InventoryEntry) IsEquipped() bool {
	return e.EquippedSlot != SlotNone
}
