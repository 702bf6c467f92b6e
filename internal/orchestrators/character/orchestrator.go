// Package character implements the character orchestrator
package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
	inventoryrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/inventory"
	"github.com/KirkDiggler/rpg-companion/internal/rules"
)

// Defaults applied to fields a new character leaves unset
const (
	DefaultLevel     = 1
	DefaultGold      = 100
	DefaultHitPoints = 10
	DefaultSpeedFt   = 30

	MinLevel = 1
	MaxLevel = 20
	MinStat  = 1
	MaxStat  = 30
)

// Config holds the dependencies for the character orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	InventoryRepo inventoryrepo.Repository
	CatalogRepo   catalog.Repository
	Roller        *dice.Roller
	IDGenerator   idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.InventoryRepo == nil {
		vb.RequiredField("InventoryRepo")
	}
	if c.CatalogRepo == nil {
		vb.RequiredField("CatalogRepo")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the character.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	inventoryRepo inventoryrepo.Repository
	catalogRepo   catalog.Repository
	roller        *dice.Roller
	idGen         idgen.Generator
}

// New creates a new character orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		inventoryRepo: cfg.InventoryRepo,
		catalogRepo:   cfg.CatalogRepo,
		roller:        cfg.Roller,
		idGen:         cfg.IDGenerator,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// CreateCharacter validates the fields, fills defaults and stores a new
// character with an empty inventory.
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char := &entities.Character{
		ID:                 o.idGen.Generate(),
		PlayerID:           input.PlayerID,
		Level:              DefaultLevel,
		Stats:              entities.DefaultStats(),
		ArmorClass:         rules.DefaultArmorClass,
		HitPointsMax:       DefaultHitPoints,
		HitPointsCurrent:   DefaultHitPoints,
		SpeedFt:            DefaultSpeedFt,
		SkillProficiencies: []string{},
		Gold:               DefaultGold,
	}
	applyFields(char, input.Fields)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("player_id", input.PlayerID, vb)
	validateCharacter(char, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	created, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Character: char})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create character")
	}

	slog.Info("Character created",
		"character_id", created.Character.ID,
		"player_id", created.Character.PlayerID,
		"name", created.Character.Name,
	)

	result := created.Character
	result.Inventory = []*entities.InventoryEntry{}
	return &CreateCharacterOutput{Character: result}, nil
}

// GetCharacter loads a character with its inventory joined to the catalog
func (o *Orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{Character: char}, nil
}

// ListCharacters lists a player's characters without their inventories
func (o *Orchestrator) ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player ID is required")
	}

	out, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{PlayerID: input.PlayerID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}

	return &ListCharactersOutput{Characters: out.Characters}, nil
}

// UpdateCharacter applies the set fields and revalidates the whole character
func (o *Orchestrator) UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	existing, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character")
	}

	char := existing.Character
	applyFields(char, input.Fields)

	vb := errors.NewValidationBuilder()
	validateCharacter(char, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	updated, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{
		Character:    char,
		VitalsFields: vitalsFieldsSet(input.Fields),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update character")
	}

	result := updated.Character
	entries, err := o.loadInventory(ctx, result.ID)
	if err != nil {
		return nil, err
	}
	result.Inventory = entries

	return &UpdateCharacterOutput{Character: result}, nil
}

// DeleteCharacter removes the character, its inventory and its spellbook
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, errors.Wrap(err, "failed to delete character")
	}

	inv, err := o.inventoryRepo.DeleteAll(ctx, inventoryrepo.DeleteAllInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear inventory")
	}

	book, err := o.catalogRepo.DeleteSpellbook(ctx, catalog.DeleteSpellbookInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to clear spellbook")
	}

	slog.Info("Character deleted",
		"character_id", input.CharacterID,
		"entries_deleted", inv.EntriesDeleted,
		"spells_removed", book.Removed,
	)

	return &DeleteCharacterOutput{
		EntriesDeleted: inv.EntriesDeleted,
		SpellsRemoved:  book.Removed,
	}, nil
}

func (o *Orchestrator) loadCharacter(ctx context.Context, characterID string) (*entities.Character, error) {
	if characterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: characterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character")
	}

	entries, err := o.loadInventory(ctx, characterID)
	if err != nil {
		return nil, err
	}

	char := out.Character
	char.Inventory = entries
	return char, nil
}

func (o *Orchestrator) loadInventory(ctx context.Context, characterID string) ([]*entities.InventoryEntry, error) {
	listed, err := o.inventoryRepo.List(ctx, inventoryrepo.ListInput{CharacterID: characterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list inventory")
	}

	entries := make([]*entities.InventoryEntry, 0, len(listed.Entries))
	if len(listed.Entries) == 0 {
		return entries, nil
	}

	ids := make([]string, 0, len(listed.Entries))
	for _, e := range listed.Entries {
		ids = append(ids, e.ItemID)
	}
	items, err := o.catalogRepo.GetItems(ctx, catalog.GetItemsInput{IDs: ids})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load inventory items")
	}

	for _, e := range listed.Entries {
		item := items.Items[e.ItemID]
		if item == nil {
			slog.WarnContext(ctx, "inventory item missing from catalog",
				"character_id", characterID,
				"item_id", e.ItemID,
			)
		}
		entries = append(entries, e.ToInventoryEntry(item))
	}
	inventory.SortEntries(entries)

	return entries, nil
}

func applyFields(c *entities.Character, f Fields) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.ClassID != nil {
		c.ClassID = *f.ClassID
	}
	if f.RaceID != nil {
		c.RaceID = *f.RaceID
	}
	if f.Level != nil {
		c.Level = *f.Level
	}
	if f.Background != nil {
		c.Background = *f.Background
	}
	if f.Stats != nil {
		c.Stats = *f.Stats
	}
	if f.ArmorClass != nil {
		c.ArmorClass = *f.ArmorClass
	}
	if f.HitPointsMax != nil {
		c.HitPointsMax = *f.HitPointsMax
	}
	if f.HitPointsCurrent != nil {
		c.HitPointsCurrent = *f.HitPointsCurrent
	}
	if f.SpeedFt != nil {
		c.SpeedFt = *f.SpeedFt
	}
	if f.SkillProficiencies != nil {
		c.SkillProficiencies = append([]string{}, f.SkillProficiencies...)
	}
	if f.Gold != nil {
		c.Gold = *f.Gold
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	if f.Notes != nil {
		c.Notes = *f.Notes
	}
	if f.AvatarURL != nil {
		c.AvatarURL = *f.AvatarURL
	}
}

// vitalsFieldsSet lists the vitals an update explicitly sets
func vitalsFieldsSet(f Fields) []string {
	var names []string
	if f.Gold != nil {
		names = append(names, characterrepo.VitalsFieldGold)
	}
	if f.HitPointsCurrent != nil {
		names = append(names, characterrepo.VitalsFieldHPCurrent)
	}
	if f.HitPointsMax != nil {
		names = append(names, characterrepo.VitalsFieldHPMax)
	}
	return names
}

func validateCharacter(c *entities.Character, vb *errors.ValidationBuilder) {
	errors.ValidateRequired("name", c.Name, vb)
	errors.ValidateRange("level", c.Level, MinLevel, MaxLevel, vb)
	errors.ValidateMin("gold", c.Gold, 0, vb)
	errors.ValidateMin("armor_class", c.ArmorClass, 0, vb)
	errors.ValidateMin("hit_points_max", c.HitPointsMax, 1, vb)
	errors.ValidateMin("hit_points_current", c.HitPointsCurrent, 0, vb)
	errors.ValidateMin("speed_ft", c.SpeedFt, 0, vb)

	for _, ability := range entities.Abilities() {
		errors.ValidateRange("stats."+string(ability), c.Stats.Score(ability), MinStat, MaxStat, vb)
	}

	seen := make(map[string]bool, len(c.SkillProficiencies))
	for _, skill := range c.SkillProficiencies {
		if _, ok := rules.LookupSkill(skill); !ok {
			vb.Fieldf("skill_proficiencies", "unknown skill %q", skill)
			continue
		}
		if seen[skill] {
			vb.Fieldf("skill_proficiencies", "duplicate skill %q", skill)
		}
		seen[skill] = true
	}
}
