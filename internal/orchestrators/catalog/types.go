package catalog

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

//go:generate mockgen -destination=mock/mock_service.go -package=catalogmock github.com/KirkDiggler/rpg-companion/internal/orchestrators/catalog Service

// Service defines the catalog orchestrator interface
type Service interface {
	ListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error)
	GetItem(ctx context.Context, input *GetItemInput) (*GetItemOutput, error)
	ListSpells(ctx context.Context, input *ListSpellsInput) (*ListSpellsOutput, error)
	GetSpell(ctx context.Context, input *GetSpellInput) (*GetSpellOutput, error)
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)
	GetClass(ctx context.Context, input *GetClassInput) (*GetClassOutput, error)
	ListRaces(ctx context.Context, input *ListRacesInput) (*ListRacesOutput, error)
	GetRace(ctx context.Context, input *GetRaceInput) (*GetRaceOutput, error)
	AddSpell(ctx context.Context, input *AddSpellInput) (*AddSpellOutput, error)
	RemoveSpell(ctx context.Context, input *RemoveSpellInput) (*RemoveSpellOutput, error)
	SetPrepared(ctx context.Context, input *SetPreparedInput) (*SetPreparedOutput, error)
	ListSpellbook(ctx context.Context, input *ListSpellbookInput) (*ListSpellbookOutput, error)
	Import(ctx context.Context, input *ImportInput) (*ImportOutput, error)
}

// ListItemsInput filters the shop listing. Pages are zero-based.
type ListItemsInput struct {
	Search   string
	Type     string
	Sort     string
	Page     int
	PageSize int
}

// ListItemsOutput holds one page of items. NextPage is 0 on the last page.
type ListItemsOutput struct {
	Items    []*entities.Item
	NextPage int
}

// GetItemInput defines the request for a single item
type GetItemInput struct {
	ItemID string
}

// GetItemOutput defines the response for a single item
type GetItemOutput struct {
	Item *entities.Item
}

// ListSpellsInput filters the spell listing
type ListSpellsInput struct {
	Search     string
	School     string
	Components string
	Range      string
	Sort       string
	Page       int
	PageSize   int
}

// ListSpellsOutput holds one page of spells
type ListSpellsOutput struct {
	Spells   []*entities.Spell
	NextPage int
}

// GetSpellInput defines the request for a single spell
type GetSpellInput struct {
	SpellID string
}

// GetSpellOutput defines the response for a single spell
type GetSpellOutput struct {
	Spell *entities.Spell
}

// ListClassesInput defines the request for listing classes
type ListClassesInput struct{}

// ListClassesOutput defines the response for listing classes
type ListClassesOutput struct {
	Classes []*entities.Class
}

// GetClassInput defines the request for a single class
type GetClassInput struct {
	ClassID string
}

// GetClassOutput defines the response for a single class
type GetClassOutput struct {
	Class *entities.Class
}

// ListRacesInput defines the request for listing races
type ListRacesInput struct{}

// ListRacesOutput defines the response for listing races
type ListRacesOutput struct {
	Races []*entities.Race
}

// GetRaceInput defines the request for a single race
type GetRaceInput struct {
	RaceID string
}

// GetRaceOutput defines the response for a single race
type GetRaceOutput struct {
	Race *entities.Race
}

// AddSpellInput adds a catalog spell to a character's spellbook
type AddSpellInput struct {
	CharacterID string
	SpellID     string
	Prepared    bool
}

// AddSpellOutput defines the response for adding a spell
type AddSpellOutput struct {
	CharacterSpell *entities.CharacterSpell
}

// RemoveSpellInput removes a spell from a character's spellbook
type RemoveSpellInput struct {
	CharacterID string
	SpellID     string
}

// RemoveSpellOutput defines the response for removing a spell
type RemoveSpellOutput struct{}

// SetPreparedInput marks a spellbook entry prepared or not
type SetPreparedInput struct {
	CharacterID string
	SpellID     string
	Prepared    bool
}

// SetPreparedOutput defines the response for SetPrepared
type SetPreparedOutput struct{}

// ListSpellbookInput defines the request for a character's spellbook
type ListSpellbookInput struct {
	CharacterID string
}

// ListSpellbookOutput defines the response for a character's spellbook
type ListSpellbookOutput struct {
	Spells []*entities.CharacterSpell
}

// ImportInput selects what the SRD import pulls. All false means
// everything.
type ImportInput struct {
	Items   bool
	Spells  bool
	Classes bool
	Races   bool
}

// ImportOutput counts the records written and skipped per kind
type ImportOutput struct {
	Items   int
	Spells  int
	Classes int
	Races   int
	Skipped int
}
