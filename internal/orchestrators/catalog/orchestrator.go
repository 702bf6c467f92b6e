// Package catalog implements the catalog orchestrator: shop listings,
// spells, classes, races, character spellbooks and the SRD import.
package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-companion/internal/clients/external"
	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	catalogrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
)

// Config holds the dependencies for the catalog orchestrator
type Config struct {
	CatalogRepo   catalogrepo.Repository
	CharacterRepo characterrepo.Repository
	IDGenerator   idgen.Generator
	// ExternalClient is only needed by Import
	ExternalClient external.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CatalogRepo == nil {
		vb.RequiredField("CatalogRepo")
	}
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Orchestrator implements the catalog.Service interface
type Orchestrator struct {
	catalogRepo    catalogrepo.Repository
	characterRepo  characterrepo.Repository
	idGen          idgen.Generator
	externalClient external.Client
}

// New creates a new catalog orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Orchestrator{
		catalogRepo:    cfg.CatalogRepo,
		characterRepo:  cfg.CharacterRepo,
		idGen:          cfg.IDGenerator,
		externalClient: cfg.ExternalClient,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ Service = (*Orchestrator)(nil)

// ListItems returns one page of the shop
func (o *Orchestrator) ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validatePage(input.Page, input.PageSize); err != nil {
		return nil, err
	}

	out, err := o.catalogRepo.ListItems(ctx, catalogrepo.ListItemsInput{
		Search:   input.Search,
		Type:     entities.ItemType(strings.ToLower(input.Type)),
		Sort:     catalogrepo.ItemSort(input.Sort),
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list items")
	}

	return &ListItemsOutput{Items: out.Items, NextPage: out.NextPage}, nil
}

// GetItem retrieves a single catalog item
func (o *Orchestrator) GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ItemID == "" {
		return nil, errors.InvalidArgument("item ID is required")
	}

	out, err := o.catalogRepo.GetItem(ctx, catalogrepo.GetItemInput{ID: input.ItemID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get item")
	}

	return &GetItemOutput{Item: out.Item}, nil
}

// ListSpells returns one page of spells
func (o *Orchestrator) ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validatePage(input.Page, input.PageSize); err != nil {
		return nil, err
	}

	out, err := o.catalogRepo.ListSpells(ctx, catalogrepo.ListSpellsInput{
		Search:     input.Search,
		School:     entities.SpellSchool(strings.ToLower(input.School)),
		Components: input.Components,
		Range:      input.Range,
		Sort:       catalogrepo.SpellSort(input.Sort),
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spells")
	}

	return &ListSpellsOutput{Spells: out.Spells, NextPage: out.NextPage}, nil
}

// GetSpell retrieves a single spell
func (o *Orchestrator) GetSpell(ctx context.Context, input *GetSpellInput) (*GetSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SpellID == "" {
		return nil, errors.InvalidArgument("spell ID is required")
	}

	out, err := o.catalogRepo.GetSpell(ctx, catalogrepo.GetSpellInput{ID: input.SpellID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get spell")
	}

	return &GetSpellOutput{Spell: out.Spell}, nil
}

// ListClasses lists every class
func (o *Orchestrator) ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.catalogRepo.ListClasses(ctx, catalogrepo.ListClassesInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list classes")
	}

	return &ListClassesOutput{Classes: out.Classes}, nil
}

// GetClass retrieves a single class
func (o *Orchestrator) GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ClassID == "" {
		return nil, errors.InvalidArgument("class ID is required")
	}

	out, err := o.catalogRepo.GetClass(ctx, catalogrepo.GetClassInput{ID: input.ClassID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get class")
	}

	return &GetClassOutput{Class: out.Class}, nil
}

// ListRaces lists every race
func (o *Orchestrator) ListRaces(ctx context.Context, input *ListRacesInput) (*ListRacesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.catalogRepo.ListRaces(ctx, catalogrepo.ListRacesInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list races")
	}

	return &ListRacesOutput{Races: out.Races}, nil
}

// GetRace retrieves a single race
func (o *Orchestrator) GetRace(ctx context.Context, input *GetRaceInput) (*GetRaceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.RaceID == "" {
		return nil, errors.InvalidArgument("race ID is required")
	}

	out, err := o.catalogRepo.GetRace(ctx, catalogrepo.GetRaceInput{ID: input.RaceID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get race")
	}

	return &GetRaceOutput{Race: out.Race}, nil
}

// AddSpell adds a catalog spell to a character's spellbook
// Returns errors.NotFound for an unknown character or spell and
// errors.AlreadyExists when the spell is already in the book
func (o *Orchestrator) AddSpell(ctx context.Context, input *AddSpellInput) (*AddSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSpellbookRef(input.CharacterID, input.SpellID); err != nil {
		return nil, err
	}
	if err := o.requireCharacter(ctx, input.CharacterID); err != nil {
		return nil, err
	}

	out, err := o.catalogRepo.AddSpell(ctx, catalogrepo.AddSpellInput{
		ID:          o.idGen.Generate(),
		CharacterID: input.CharacterID,
		SpellID:     input.SpellID,
		Prepared:    input.Prepared,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add spell")
	}

	slog.Info("Spell added to spellbook",
		"character_id", input.CharacterID,
		"spell_id", input.SpellID,
		"prepared", input.Prepared,
	)

	return &AddSpellOutput{CharacterSpell: out.CharacterSpell}, nil
}

// RemoveSpell removes a spell from a character's spellbook
func (o *Orchestrator) RemoveSpell(ctx context.Context, input *RemoveSpellInput) (*RemoveSpellOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSpellbookRef(input.CharacterID, input.SpellID); err != nil {
		return nil, err
	}

	if _, err := o.catalogRepo.RemoveSpell(ctx, catalogrepo.RemoveSpellInput{
		CharacterID: input.CharacterID,
		SpellID:     input.SpellID,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to remove spell")
	}

	return &RemoveSpellOutput{}, nil
}

// SetPrepared marks a spellbook entry prepared or unprepared
func (o *Orchestrator) SetPrepared(ctx context.Context, input *SetPreparedInput) (*SetPreparedOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateSpellbookRef(input.CharacterID, input.SpellID); err != nil {
		return nil, err
	}

	if _, err := o.catalogRepo.SetPrepared(ctx, catalogrepo.SetPreparedInput{
		CharacterID: input.CharacterID,
		SpellID:     input.SpellID,
		Prepared:    input.Prepared,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to set prepared")
	}

	return &SetPreparedOutput{}, nil
}

// ListSpellbook lists a character's spellbook with the spells attached
func (o *Orchestrator) ListSpellbook(ctx context.Context, input *ListSpellbookInput) (*ListSpellbookOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.catalogRepo.ListSpellbook(ctx, catalogrepo.ListSpellbookInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list spellbook")
	}

	return &ListSpellbookOutput{Spells: out.Spells}, nil
}

func (o *Orchestrator) requireCharacter(ctx context.Context, characterID string) error {
	if _, err := o.characterRepo.GetVitals(ctx, characterrepo.GetVitalsInput{ID: characterID}); err != nil {
		return errors.Wrap(err, "failed to get character")
	}
	return nil
}

func validatePage(page, pageSize int) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateMin("page", page, 0, vb)
	errors.ValidateRange("page_size", pageSize, 0, catalogrepo.MaxPageSize, vb)
	return vb.Build()
}

func validateSpellbookRef(characterID, spellID string) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("character_id", characterID, vb)
	errors.ValidateRequired("spell_id", spellID, vb)
	return vb.Build()
}
