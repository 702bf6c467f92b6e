package testutils

import (
	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

// Fixture IDs
const (
	TestCharacterID   = "char_test_001"
	TestPlayerID      = "player_test_001"
	TestCharacterName = "Thorin Oakenshield"
)

// CreateTestCharacter returns a level 3 dwarf fighter with 100 gold
func CreateTestCharacter(id, playerID string) *entities.Character {
	return &entities.Character{
		ID:       id,
		PlayerID: playerID,
		Name:     TestCharacterName,
		ClassID:  "fighter",
		RaceID:   "dwarf",
		Level:    3,
		Stats: entities.Stats{
			Strength:     16,
			Dexterity:    14,
			Constitution: 15,
			Intelligence: 10,
			Wisdom:       12,
			Charisma:     8,
		},
		ArmorClass:         10,
		HitPointsMax:       28,
		HitPointsCurrent:   28,
		SpeedFt:            25,
		SkillProficiencies: []string{"athletics", "perception"},
		Gold:               100,
		Inventory:          []*entities.InventoryEntry{},
	}
}

// Longsword is a 15 gp versatile martial weapon
func Longsword() *entities.Item {
	return &entities.Item{
		ID:          "longsword",
		Name:        "Longsword",
		Type:        entities.ItemTypeWeapon,
		Price:       15,
		Description: "A versatile martial blade.",
		Stats: &entities.ItemStats{
			Damage:     "1d8",
			DamageType: "slashing",
			Properties: "Versatile",
		},
	}
}

// Rapier is a finesse weapon
func Rapier() *entities.Item {
	return &entities.Item{
		ID:          "rapier",
		Name:        "Rapier",
		Type:        entities.ItemTypeWeapon,
		Price:       25,
		Description: "A slender thrusting sword.",
		Stats: &entities.ItemStats{
			Damage:     "1d8",
			DamageType: "piercing",
			Properties: "Finesse",
		},
	}
}

// LeatherArmor is light armor whose AC adds the dexterity modifier
func LeatherArmor() *entities.Item {
	return &entities.Item{
		ID:          "leather-armor",
		Name:        "Leather Armor",
		Type:        entities.ItemTypeArmor,
		Price:       10,
		Description: "Boiled and stiffened leather.",
		Stats: &entities.ItemStats{
			AC: entities.TextAC("11 + Dex"),
		},
	}
}

// ChainMail is heavy armor with a flat AC
func ChainMail() *entities.Item {
	return &entities.Item{
		ID:          "chain-mail",
		Name:        "Chain Mail",
		Type:        entities.ItemTypeArmor,
		Price:       75,
		Description: "Interlocking metal rings.",
		Stats: &entities.ItemStats{
			AC:                  entities.NumericAC(16),
			StrengthMinimum:     13,
			StealthDisadvantage: true,
		},
	}
}

// PotionOfHealing is a consumable without a heal notation, so it heals 2d4+2
func PotionOfHealing() *entities.Item {
	return &entities.Item{
		ID:          "potion-of-healing",
		Name:        "Potion of Healing",
		Type:        entities.ItemTypeConsumable,
		Price:       50,
		Description: "A red liquid that glimmers when agitated.",
	}
}

// Rope is an "other" item with no actions beyond sell and drop
func Rope() *entities.Item {
	return &entities.Item{
		ID:          "rope-hempen",
		Name:        "Rope, hempen (50 feet)",
		Type:        entities.ItemTypeOther,
		Price:       1,
		Description: "Fifty feet of hempen rope.",
	}
}

// MagicMissile is a first level evocation spell
func MagicMissile() *entities.Spell {
	return &entities.Spell{
		ID:          "magic-missile",
		Name:        "Magic Missile",
		Level:       1,
		School:      entities.SchoolEvocation,
		Description: "Three glowing darts of magical force.",
		CastingTime: "1 action",
		Range:       "120 feet",
		Duration:    "Instantaneous",
		Components:  "V, S",
	}
}

// FireBolt is an evocation cantrip
func FireBolt() *entities.Spell {
	return &entities.Spell{
		ID:          "fire-bolt",
		Name:        "Fire Bolt",
		Level:       0,
		School:      entities.SchoolEvocation,
		Description: "A mote of fire hurled at a creature or object.",
		CastingTime: "1 action",
		Range:       "120 feet",
		Duration:    "Instantaneous",
		Components:  "V, S",
	}
}

// Shield is a first level abjuration reaction spell
func Shield() *entities.Spell {
	return &entities.Spell{
		ID:          "shield",
		Name:        "Shield",
		Level:       1,
		School:      entities.SchoolAbjuration,
		Description: "An invisible barrier of magical force appears and protects you.",
		CastingTime: "1 reaction",
		Range:       "Self",
		Duration:    "1 round",
		Components:  "V, S",
	}
}
