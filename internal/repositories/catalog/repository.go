// Package catalog stores the reference data the shop and spellbook read:
// items, spells, classes and races, plus each character's spellbook.
package catalog

//go:generate mockgen -destination=mock/mock_repository.go -package=catalogmock github.com/KirkDiggler/rpg-companion/internal/repositories/catalog Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

// DefaultPageSize is the page size used when a list request leaves it unset
const DefaultPageSize = 20

// MaxPageSize caps the page size a caller may ask for
const MaxPageSize = 100

// ItemSort orders item listings
type ItemSort string

// Item sorts
const (
	ItemSortNameAsc   ItemSort = "name-asc"
	ItemSortNameDesc  ItemSort = "name-desc"
	ItemSortPriceAsc  ItemSort = "price-asc"
	ItemSortPriceDesc ItemSort = "price-desc"
)

// SpellSort orders spell listings
type SpellSort string

// Spell sorts
const (
	SpellSortLevelAsc  SpellSort = "level-asc"
	SpellSortLevelDesc SpellSort = "level-desc"
	SpellSortNameAsc   SpellSort = "name-asc"
	SpellSortNameDesc  SpellSort = "name-desc"
)

// Repository defines the interface for catalog storage operations
type Repository interface {
	// ListItems returns one page of items matching the filters
	ListItems(ctx context.Context, input ListItemsInput) (*ListItemsOutput, error)

	// GetItem retrieves an item by ID
	// Returns errors.NotFound if the item doesn't exist
	GetItem(ctx context.Context, input GetItemInput) (*GetItemOutput, error)

	// GetItems retrieves several items at once. Unknown IDs are skipped.
	GetItems(ctx context.Context, input GetItemsInput) (*GetItemsOutput, error)

	// UpsertItem inserts an item or replaces the one with the same ID
	UpsertItem(ctx context.Context, input UpsertItemInput) (*UpsertItemOutput, error)

	// ListSpells returns one page of spells matching the filters
	ListSpells(ctx context.Context, input ListSpellsInput) (*ListSpellsOutput, error)

	// GetSpell retrieves a spell by ID
	// Returns errors.NotFound if the spell doesn't exist
	GetSpell(ctx context.Context, input GetSpellInput) (*GetSpellOutput, error)

	// UpsertSpell inserts a spell or replaces the one with the same ID
	UpsertSpell(ctx context.Context, input UpsertSpellInput) (*UpsertSpellOutput, error)

	ListClasses(ctx context.Context, input ListClassesInput) (*ListClassesOutput, error)
	GetClass(ctx context.Context, input GetClassInput) (*GetClassOutput, error)
	UpsertClass(ctx context.Context, input UpsertClassInput) (*UpsertClassOutput, error)

	ListRaces(ctx context.Context, input ListRacesInput) (*ListRacesOutput, error)
	GetRace(ctx context.Context, input GetRaceInput) (*GetRaceOutput, error)
	UpsertRace(ctx context.Context, input UpsertRaceInput) (*UpsertRaceOutput, error)

	// AddSpell puts a spell in a character's spellbook
	// Returns errors.AlreadyExists if the spell is already there and
	// errors.NotFound if the spell is not in the catalog
	AddSpell(ctx context.Context, input AddSpellInput) (*AddSpellOutput, error)

	// RemoveSpell takes a spell out of a character's spellbook
	// Returns errors.NotFound if the spell wasn't there
	RemoveSpell(ctx context.Context, input RemoveSpellInput) (*RemoveSpellOutput, error)

	// SetPrepared marks a spellbook entry prepared or unprepared
	// Returns errors.NotFound if the spell isn't in the spellbook
	SetPrepared(ctx context.Context, input SetPreparedInput) (*SetPreparedOutput, error)

	// ListSpellbook returns a character's spells ordered by level then name
	ListSpellbook(ctx context.Context, input ListSpellbookInput) (*ListSpellbookOutput, error)

	// DeleteSpellbook removes every spellbook entry for a character
	DeleteSpellbook(ctx context.Context, input DeleteSpellbookInput) (*DeleteSpellbookOutput, error)
}

// ListItemsInput filters an item listing. Page is zero based.
type ListItemsInput struct {
	Search   string
	Type     entities.ItemType
	Sort     ItemSort
	Page     int
	PageSize int
}

// ListItemsOutput holds one page of items.
// NextPage is zero when the page came back short.
type ListItemsOutput struct {
	Items    []*entities.Item
	NextPage int
}

// GetItemInput defines the input for GetItem
type GetItemInput struct {
	ID string
}

// GetItemOutput defines the output for GetItem
type GetItemOutput struct {
	Item *entities.Item
}

// GetItemsInput defines the input for GetItems
type GetItemsInput struct {
	IDs []string
}

// GetItemsOutput maps item ID to item
type GetItemsOutput struct {
	Items map[string]*entities.Item
}

// UpsertItemInput defines the input for UpsertItem
type UpsertItemInput struct {
	Item *entities.Item
}

// UpsertItemOutput defines the output for UpsertItem
type UpsertItemOutput struct {
	Item *entities.Item
}

// ListSpellsInput filters a spell listing. Components and Range match
// exactly.
type ListSpellsInput struct {
	Search     string
	School     entities.SpellSchool
	Components string
	Range      string
	Sort       SpellSort
	Page       int
	PageSize   int
}

// ListSpellsOutput holds one page of spells
type ListSpellsOutput struct {
	Spells   []*entities.Spell
	NextPage int
}

// GetSpellInput defines the input for GetSpell
type GetSpellInput struct {
	ID string
}

// GetSpellOutput defines the output for GetSpell
type GetSpellOutput struct {
	Spell *entities.Spell
}

// UpsertSpellInput defines the input for UpsertSpell
type UpsertSpellInput struct {
	Spell *entities.Spell
}

// UpsertSpellOutput defines the output for UpsertSpell
type UpsertSpellOutput struct {
	Spell *entities.Spell
}

// ListClassesInput defines the input for ListClasses
type ListClassesInput struct{}

// ListClassesOutput defines the output for ListClasses
type ListClassesOutput struct {
	Classes []*entities.Class
}

// GetClassInput defines the input for GetClass
type GetClassInput struct {
	ID string
}

// GetClassOutput defines the output for GetClass
type GetClassOutput struct {
	Class *entities.Class
}

// UpsertClassInput defines the input for UpsertClass
type UpsertClassInput struct {
	Class *entities.Class
}

// UpsertClassOutput defines the output for UpsertClass
type UpsertClassOutput struct{}

// ListRacesInput defines the input for ListRaces
type ListRacesInput struct{}

// ListRacesOutput defines the output for ListRaces
type ListRacesOutput struct {
	Races []*entities.Race
}

// GetRaceInput defines the input for GetRace
type GetRaceInput struct {
	ID string
}

// GetRaceOutput defines the output for GetRace
type GetRaceOutput struct {
	Race *entities.Race
}

// UpsertRaceInput defines the input for UpsertRace
type UpsertRaceInput struct {
	Race *entities.Race
}

// UpsertRaceOutput defines the output for UpsertRace
type UpsertRaceOutput struct{}

// AddSpellInput defines the input for AddSpell
type AddSpellInput struct {
	ID          string
	CharacterID string
	SpellID     string
	Prepared    bool
}

// AddSpellOutput defines the output for AddSpell
type AddSpellOutput struct {
	CharacterSpell *entities.CharacterSpell
}

// RemoveSpellInput defines the input for RemoveSpell
type RemoveSpellInput struct {
	CharacterID string
	SpellID     string
}

// RemoveSpellOutput defines the output for RemoveSpell
type RemoveSpellOutput struct{}

// SetPreparedInput defines the input for SetPrepared
type SetPreparedInput struct {
	CharacterID string
	SpellID     string
	Prepared    bool
}

// SetPreparedOutput defines the output for SetPrepared
type SetPreparedOutput struct{}

// ListSpellbookInput defines the input for ListSpellbook
type ListSpellbookInput struct {
	CharacterID string
}

// ListSpellbookOutput defines the output for ListSpellbook
type ListSpellbookOutput struct {
	Spells []*entities.CharacterSpell
}

// DeleteSpellbookInput defines the input for DeleteSpellbook
type DeleteSpellbookInput struct {
	CharacterID string
}

// DeleteSpellbookOutput defines the output for DeleteSpellbook
type DeleteSpellbookOutput struct {
	Removed int
}

// ValidItemSort reports whether s is a known item sort. Empty is allowed.
func ValidItemSort(s ItemSort) bool {
	_, ok := itemOrder[s]
	return ok || s == ""
}

// ValidSpellSort reports whether s is a known spell sort. Empty is allowed.
func ValidSpellSort(s SpellSort) bool {
	_, ok := spellOrder[s]
	return ok || s == ""
}

var itemOrder = map[ItemSort]string{
	ItemSortNameAsc:   "name ASC, id ASC",
	ItemSortNameDesc:  "name DESC, id ASC",
	ItemSortPriceAsc:  "price ASC, name ASC, id ASC",
	ItemSortPriceDesc: "price DESC, name ASC, id ASC",
}

// Spells sorted by level break ties on name, and the other way around.
var spellOrder = map[SpellSort]string{
	SpellSortLevelAsc:  "level ASC, name ASC, id ASC",
	SpellSortLevelDesc: "level DESC, name ASC, id ASC",
	SpellSortNameAsc:   "name ASC, level ASC, id ASC",
	SpellSortNameDesc:  "name DESC, level ASC, id ASC",
}
