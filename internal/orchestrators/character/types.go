package character

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/rules"
)

//go:generate mockgen -destination=mock/mock_service.go -package=charactermock github.com/KirkDiggler/rpg-companion/internal/orchestrators/character Service

// Service defines the character orchestrator interface
type Service interface {
	// Character lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Derived views and rolls
	GetCharacterSheet(ctx context.Context, input *GetCharacterSheetInput) (*GetCharacterSheetOutput, error)
	RollSkillCheck(ctx context.Context, input *RollSkillCheckInput) (*RollSkillCheckOutput, error)
	RollAbilityCheck(ctx context.Context, input *RollAbilityCheckInput) (*RollAbilityCheckOutput, error)
	RollWeaponAttack(ctx context.Context, input *RollWeaponAttackInput) (*RollWeaponAttackOutput, error)
}

// Fields carries character attributes. A nil field takes its default on
// create and is left unchanged on update.
type Fields struct {
	Name               *string
	ClassID            *string
	RaceID             *string
	Level              *int
	Background         *string
	Stats              *entities.Stats
	ArmorClass         *int
	HitPointsMax       *int
	HitPointsCurrent   *int
	SpeedFt            *int
	SkillProficiencies []string
	Gold               *int
	Description        *string
	Notes              *string
	AvatarURL          *string
}

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	PlayerID string
	Fields   Fields
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Character *entities.Character
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character.
// Inventory is populated and sorted by character item ID.
type GetCharacterOutput struct {
	Character *entities.Character
}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Characters []*entities.Character
}

// UpdateCharacterInput defines the request for a partial character update
type UpdateCharacterInput struct {
	CharacterID string
	Fields      Fields
}

// UpdateCharacterOutput defines the response for updating a character
type UpdateCharacterOutput struct {
	Character *entities.Character
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct {
	EntriesDeleted int
	SpellsRemoved  int
}

// GetCharacterSheetInput defines the request for a character sheet
type GetCharacterSheetInput struct {
	CharacterID string
}

// GetCharacterSheetOutput defines the response for a character sheet
type GetCharacterSheetOutput struct {
	Sheet *Sheet
}

// Sheet is the derived view of a character.
type Sheet struct {
	Character        *entities.Character           `json:"character"`
	AbilityModifiers map[entities.Ability]int      `json:"ability_modifiers"`
	ProficiencyBonus int                           `json:"proficiency_bonus"`
	Skills           []SkillLine                   `json:"skills"`
	ArmorClass       int                           `json:"armor_class"`
	EquippedWeapon   *entities.InventoryEntry      `json:"equipped_weapon,omitempty"`
	EquippedArmor    *entities.InventoryEntry      `json:"equipped_armor,omitempty"`
	Actions          map[string][]inventory.Action `json:"actions"`
}

// SkillLine is one skill's total modifier on a sheet.
type SkillLine struct {
	rules.Skill
	Modifier   int  `json:"modifier"`
	Proficient bool `json:"proficient"`
}

// RollSkillCheckInput defines the request for a skill check
type RollSkillCheckInput struct {
	CharacterID string
	Skill       string
}

// RollSkillCheckOutput defines the response for a skill check
type RollSkillCheckOutput struct {
	Check rules.D20Check
}

// RollAbilityCheckInput defines the request for an ability check
type RollAbilityCheckInput struct {
	CharacterID string
	Ability     entities.Ability
}

// RollAbilityCheckOutput defines the response for an ability check
type RollAbilityCheckOutput struct {
	Check rules.D20Check
}

// RollWeaponAttackInput defines the request for a weapon attack
type RollWeaponAttackInput struct {
	CharacterID string
}

// RollWeaponAttackOutput defines the response for a weapon attack
type RollWeaponAttackOutput struct {
	Weapon *entities.InventoryEntry
	Result rules.WeaponAttackResult
}
