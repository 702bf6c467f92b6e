// Package external is the location for the dnd5e-api client
package external

//go:generate mockgen -destination=mock/mock_client.go -package=externalmock github.com/KirkDiggler/rpg-companion/internal/clients/external Client

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

// defaultConcurrency bounds the detail lookups issued per listing
const defaultConcurrency = 8

// Client defines the interface for external API interactions
type Client interface {
	// ListEquipment returns all available equipment with full details
	ListEquipment(ctx context.Context) ([]*EquipmentData, error)

	// GetEquipment fetches one equipment item
	GetEquipment(ctx context.Context, equipmentID string) (*EquipmentData, error)

	// ListSpells returns all spells matching the input with full details
	ListSpells(ctx context.Context, input *ListSpellsInput) ([]*SpellData, error)

	// GetSpell fetches one spell
	GetSpell(ctx context.Context, spellID string) (*SpellData, error)

	// ListClasses returns all available classes with full details
	ListClasses(ctx context.Context) ([]*ClassData, error)

	// ListRaces returns all available races with full details
	ListRaces(ctx context.Context) ([]*RaceData, error)
}

type client struct {
	dnd5eClient dnd5e.Interface
	concurrency int
}

// Config contains configuration options for the external client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Concurrency bounds parallel detail requests (optional, defaults to 8)
	Concurrency int
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.HTTPTimeout < 0 {
		vb.Field("http_timeout", "cannot be negative")
	}
	if cfg.Concurrency < 0 {
		vb.Field("concurrency", "cannot be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return nil
}

// New creates a new external client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create D&D 5e API client")
	}

	// Wrap with caching so repeated imports don't refetch details
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{
		dnd5eClient: cachedClient,
		concurrency: cfg.Concurrency,
	}, nil
}

// loadDetails fetches details for every reference concurrently, keeping
// the reference order. A nil result from load drops the entry.
func loadDetails[T any](
	ctx context.Context,
	limit int,
	refs []*entities.ReferenceItem,
	load func(key string) (*T, error),
) ([]*T, error) {
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([]*T, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, ref := range refs {
		if ref == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item, err := load(ref.Key)
			if err != nil {
				slog.ErrorContext(gctx, "Failed to load details", "key", ref.Key, "error", err)
				return err
			}
			results[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*T, 0, len(results))
	for _, item := range results {
		if item != nil {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *client) ListEquipment(ctx context.Context) ([]*EquipmentData, error) {
	refs, err := c.dnd5eClient.ListEquipment()
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment from D&D 5e API: %w", err)
	}

	slog.InfoContext(ctx, "Loading equipment details", "count", len(refs))
	return loadDetails(ctx, c.concurrency, refs, func(key string) (*EquipmentData, error) {
		equipment, err := c.dnd5eClient.GetEquipment(key)
		if err != nil {
			return nil, fmt.Errorf("failed to get equipment %s: %w", key, err)
		}
		return convertEquipmentToEquipmentData(equipment), nil
	})
}

func (c *client) GetEquipment(_ context.Context, equipmentID string) (*EquipmentData, error) {
	equipment, err := c.dnd5eClient.GetEquipment(equipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment %s: %w", equipmentID, err)
	}

	data := convertEquipmentToEquipmentData(equipment)
	if data == nil {
		return nil, errors.NotFoundf("equipment %s not found", equipmentID)
	}
	return data, nil
}

func (c *client) ListSpells(ctx context.Context, input *ListSpellsInput) ([]*SpellData, error) {
	var dnd5eInput *dnd5e.ListSpellsInput
	if input != nil {
		dnd5eInput = &dnd5e.ListSpellsInput{
			Level: input.Level,
			Class: input.ClassID,
		}
	}

	refs, err := c.dnd5eClient.ListSpells(dnd5eInput)
	if err != nil {
		return nil, fmt.Errorf("failed to list spells from D&D 5e API: %w", err)
	}

	slog.InfoContext(ctx, "Loading spell details", "count", len(refs))
	return loadDetails(ctx, c.concurrency, refs, func(key string) (*SpellData, error) {
		spell, err := c.dnd5eClient.GetSpell(key)
		if err != nil {
			return nil, fmt.Errorf("failed to get spell %s: %w", key, err)
		}
		return convertSpellToSpellData(spell), nil
	})
}

func (c *client) GetSpell(_ context.Context, spellID string) (*SpellData, error) {
	spell, err := c.dnd5eClient.GetSpell(spellID)
	if err != nil {
		return nil, fmt.Errorf("failed to get spell %s: %w", spellID, err)
	}

	data := convertSpellToSpellData(spell)
	if data == nil {
		return nil, errors.NotFoundf("spell %s not found", spellID)
	}
	return data, nil
}

func (c *client) ListClasses(ctx context.Context) ([]*ClassData, error) {
	refs, err := c.dnd5eClient.ListClasses()
	if err != nil {
		return nil, fmt.Errorf("failed to list classes from D&D 5e API: %w", err)
	}

	return loadDetails(ctx, c.concurrency, refs, func(key string) (*ClassData, error) {
		class, err := c.dnd5eClient.GetClass(key)
		if err != nil {
			return nil, fmt.Errorf("failed to get class %s: %w", key, err)
		}
		return convertClassToClassData(class), nil
	})
}

func (c *client) ListRaces(ctx context.Context) ([]*RaceData, error) {
	refs, err := c.dnd5eClient.ListRaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list races from D&D 5e API: %w", err)
	}

	return loadDetails(ctx, c.concurrency, refs, func(key string) (*RaceData, error) {
		race, err := c.dnd5eClient.GetRace(key)
		if err != nil {
			return nil, fmt.Errorf("failed to get race %s: %w", key, err)
		}
		return convertRaceToRaceData(race), nil
	})
}

// Conversion functions

// convertEquipmentToEquipmentData converts dnd5e-api equipment to our internal format
func convertEquipmentToEquipmentData(equipment dnd5e.EquipmentInterface) *EquipmentData {
	if equipment == nil {
		return nil
	}

	data := &EquipmentData{}

	switch eq := equipment.(type) {
	case *entities.Weapon:
		if eq == nil {
			return nil
		}
		data.ID = eq.Key
		data.Name = eq.Name
		data.WeaponCategory = eq.WeaponCategory
		data.WeaponRange = eq.WeaponRange
		data.Weight = eq.Weight
		data.Category = categoryKey(eq.EquipmentCategory)
		data.Cost = convertCost(eq.Cost)
		if eq.Damage != nil {
			data.Damage = &DamageData{DamageDice: eq.Damage.DamageDice}
			if eq.Damage.DamageType != nil {
				data.Damage.DamageType = eq.Damage.DamageType.Name
			}
		}
		if eq.Properties != nil {
			data.Properties = make([]string, 0, len(eq.Properties))
			for _, prop := range eq.Properties {
				if prop != nil {
					data.Properties = append(data.Properties, prop.Name)
				}
			}
		}

	case *entities.Armor:
		if eq == nil {
			return nil
		}
		data.ID = eq.Key
		data.Name = eq.Name
		data.ArmorCategory = eq.ArmorCategory
		data.Weight = eq.Weight
		data.StrengthMinimum = eq.StrMinimum
		data.StealthDisadvantage = eq.StealthDisadvantage
		data.Category = categoryKey(eq.EquipmentCategory)
		data.Cost = convertCost(eq.Cost)
		if eq.ArmorClass != nil {
			data.ArmorClass = &ArmorClassData{
				Base:     eq.ArmorClass.Base,
				DexBonus: eq.ArmorClass.DexBonus,
			}
		}

	case *entities.Equipment:
		if eq == nil {
			return nil
		}
		data.ID = eq.Key
		data.Name = eq.Name
		data.Weight = eq.Weight
		data.Category = categoryKey(eq.EquipmentCategory)
		data.Cost = convertCost(eq.Cost)

	default:
		return nil
	}

	data.EquipmentType = equipment.GetType()
	return data
}

func categoryKey(ref *entities.ReferenceItem) string {
	if ref == nil {
		return ""
	}
	return ref.Key
}

func convertCost(cost *entities.Cost) *CostData {
	if cost == nil {
		return nil
	}
	return &CostData{
		Quantity: cost.Quantity,
		Unit:     cost.Unit,
	}
}

// convertSpellToSpellData converts a dnd5e-api spell entity to our internal SpellData format
func convertSpellToSpellData(spell *entities.Spell) *SpellData {
	if spell == nil {
		return nil
	}

	school := ""
	if spell.SpellSchool != nil {
		school = strings.ToLower(spell.SpellSchool.Name)
	}

	return &SpellData{
		ID:            spell.Key,
		Name:          spell.Name,
		Level:         spell.SpellLevel,
		School:        school,
		CastingTime:   spell.CastingTime,
		Range:         spell.Range,
		Duration:      spell.Duration,
		Ritual:        spell.Ritual,
		Concentration: spell.Concentration,
		Description:   buildSpellDescription(spell),
	}
}

// buildSpellDescription summarizes the fields the API exposes. The SRD
// prose itself is not part of the spell entity.
func buildSpellDescription(spell *entities.Spell) string {
	levelStr := "Cantrip"
	if spell.SpellLevel > 0 {
		levelStr = fmt.Sprintf("Level %d", spell.SpellLevel)
	}
	schoolName := "unknown school"
	if spell.SpellSchool != nil {
		schoolName = strings.ToLower(spell.SpellSchool.Name)
	}
	parts := []string{fmt.Sprintf("%s %s spell", levelStr, schoolName)}

	var properties []string
	if spell.Ritual {
		properties = append(properties, "ritual")
	}
	if spell.Concentration {
		properties = append(properties, "concentration")
	}
	if len(properties) > 0 {
		parts = append(parts, "Requires "+strings.Join(properties, " and "))
	}

	if spell.SpellDamage != nil && spell.SpellDamage.SpellDamageType != nil {
		parts = append(parts, fmt.Sprintf("Deals %s damage", strings.ToLower(spell.SpellDamage.SpellDamageType.Name)))
	}

	if spell.DC != nil && spell.DC.DCType != nil {
		save := fmt.Sprintf("%s save", spell.DC.DCType.Name)
		if spell.DC.DCSuccess != "" {
			save += fmt.Sprintf(" (%s on success)", spell.DC.DCSuccess)
		}
		parts = append(parts, save)
	}

	if spell.AreaOfEffect != nil {
		parts = append(parts, fmt.Sprintf("Area: %d ft %s", spell.AreaOfEffect.Size, spell.AreaOfEffect.Type))
	}

	return strings.Join(parts, ". ") + "."
}

func convertClassToClassData(class *entities.Class) *ClassData {
	if class == nil {
		return nil
	}
	return &ClassData{
		ID:          class.Key,
		Name:        class.Name,
		HitDie:      class.HitDie,
		Description: class.Description,
	}
}

func convertRaceToRaceData(race *entities.Race) *RaceData {
	if race == nil {
		return nil
	}
	return &RaceData{
		ID:      race.Key,
		Name:    race.Name,
		Size:    race.Size,
		SpeedFt: race.Speed,
	}
}
