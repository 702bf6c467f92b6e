package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-companion/internal/clients/external"
	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	catalogrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/catalog"
	"github.com/KirkDiggler/rpg-companion/internal/rules"
)

// copper per unit of each SRD currency
var copperPerUnit = map[string]int{
	"cp": 1,
	"sp": 10,
	"ep": 50,
	"gp": 100,
	"pp": 1000,
}

// Import pulls the SRD reference data through the external client and
// upserts it into the catalog. Records that do not fit the catalog are
// skipped and counted.
func (o *Orchestrator) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if o.externalClient == nil {
		return nil, errors.FailedPrecondition("no external client configured")
	}

	all := !input.Items && !input.Spells && !input.Classes && !input.Races

	var (
		equipment []*external.EquipmentData
		spells    []*external.SpellData
		classes   []*external.ClassData
		races     []*external.RaceData
	)

	g, gctx := errgroup.WithContext(ctx)
	if all || input.Items {
		g.Go(func() error {
			listed, err := o.externalClient.ListEquipment(gctx)
			if err != nil {
				return errors.Wrap(err, "failed to list equipment")
			}
			equipment = listed
			return nil
		})
	}
	if all || input.Spells {
		g.Go(func() error {
			listed, err := o.externalClient.ListSpells(gctx, &external.ListSpellsInput{})
			if err != nil {
				return errors.Wrap(err, "failed to list spells")
			}
			spells = listed
			return nil
		})
	}
	if all || input.Classes {
		g.Go(func() error {
			listed, err := o.externalClient.ListClasses(gctx)
			if err != nil {
				return errors.Wrap(err, "failed to list classes")
			}
			classes = listed
			return nil
		})
	}
	if all || input.Races {
		g.Go(func() error {
			listed, err := o.externalClient.ListRaces(gctx)
			if err != nil {
				return errors.Wrap(err, "failed to list races")
			}
			races = listed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ImportOutput{}

	for _, data := range equipment {
		item := ItemFromEquipment(data)
		if item == nil {
			out.Skipped++
			continue
		}
		if _, err := o.catalogRepo.UpsertItem(ctx, catalogrepo.UpsertItemInput{Item: item}); err != nil {
			return nil, errors.Wrapf(err, "failed to import item %s", item.ID)
		}
		out.Items++
	}

	for _, data := range spells {
		spell := SpellFromData(data)
		if spell == nil {
			out.Skipped++
			continue
		}
		if _, err := o.catalogRepo.UpsertSpell(ctx, catalogrepo.UpsertSpellInput{Spell: spell}); err != nil {
			return nil, errors.Wrapf(err, "failed to import spell %s", spell.ID)
		}
		out.Spells++
	}

	for _, data := range classes {
		if data == nil || data.ID == "" || data.Name == "" || !entities.ValidHitDie(data.HitDie) {
			out.Skipped++
			continue
		}
		class := &entities.Class{
			ID:          data.ID,
			Name:        data.Name,
			HitDie:      data.HitDie,
			Description: data.Description,
		}
		if _, err := o.catalogRepo.UpsertClass(ctx, catalogrepo.UpsertClassInput{Class: class}); err != nil {
			return nil, errors.Wrapf(err, "failed to import class %s", class.ID)
		}
		out.Classes++
	}

	for _, data := range races {
		if data == nil || data.ID == "" || data.Name == "" {
			out.Skipped++
			continue
		}
		race := &entities.Race{
			ID:      data.ID,
			Name:    data.Name,
			SpeedFt: data.SpeedFt,
		}
		if data.Size != "" {
			race.Description = fmt.Sprintf("Size %s", data.Size)
		}
		if _, err := o.catalogRepo.UpsertRace(ctx, catalogrepo.UpsertRaceInput{Race: race}); err != nil {
			return nil, errors.Wrapf(err, "failed to import race %s", race.ID)
		}
		out.Races++
	}

	slog.Info("Catalog import finished",
		"items", out.Items,
		"spells", out.Spells,
		"classes", out.Classes,
		"races", out.Races,
		"skipped", out.Skipped,
	)

	return out, nil
}

// ItemFromEquipment maps SRD equipment onto a shop item. Shields count as
// other since they stack with body armor. Returns nil for equipment
// without an ID or name.
func ItemFromEquipment(data *external.EquipmentData) *entities.Item {
	if data == nil || data.ID == "" || data.Name == "" {
		return nil
	}

	item := &entities.Item{
		ID:    data.ID,
		Name:  data.Name,
		Price: PriceInGold(data.Cost),
	}

	switch {
	case data.EquipmentType == "weapon":
		item.Type = entities.ItemTypeWeapon
		item.Stats = &entities.ItemStats{Properties: strings.Join(data.Properties, ", ")}
		if data.Damage != nil {
			item.Stats.Damage = data.Damage.DamageDice
			item.Stats.DamageType = strings.ToLower(data.Damage.DamageType)
		}
		item.Description = joinNonEmpty(data.WeaponCategory, data.WeaponRange, "weapon")

	case data.EquipmentType == "armor" && !strings.EqualFold(data.ArmorCategory, "shield"):
		item.Type = entities.ItemTypeArmor
		item.Stats = &entities.ItemStats{
			StrengthMinimum:     data.StrengthMinimum,
			StealthDisadvantage: data.StealthDisadvantage,
		}
		if data.ArmorClass != nil {
			if data.ArmorClass.DexBonus {
				item.Stats.AC = entities.TextAC(fmt.Sprintf("%d + Dex", data.ArmorClass.Base))
			} else {
				item.Stats.AC = entities.NumericAC(data.ArmorClass.Base)
			}
		}
		item.Description = joinNonEmpty(data.ArmorCategory, "armor")

	case isPotion(data):
		item.Type = entities.ItemTypeConsumable
		item.Stats = &entities.ItemStats{Heal: rules.HealingPotion}
		item.Description = "A consumable potion."

	default:
		item.Type = entities.ItemTypeOther
		item.Description = strings.ReplaceAll(data.Category, "-", " ")
	}

	return item
}

// SpellFromData maps an SRD spell onto a catalog spell. Returns nil when
// the school is not one of the eight schools or the level is out of range.
func SpellFromData(data *external.SpellData) *entities.Spell {
	if data == nil || data.ID == "" || data.Name == "" {
		return nil
	}
	school := entities.SpellSchool(strings.ToLower(data.School))
	if !school.IsValid() || data.Level < 0 || data.Level > 9 {
		return nil
	}

	duration := data.Duration
	if data.Concentration && !strings.HasPrefix(strings.ToLower(duration), "concentration") {
		duration = "Concentration, " + duration
	}

	return &entities.Spell{
		ID:          data.ID,
		Name:        data.Name,
		Level:       data.Level,
		School:      school,
		Description: data.Description,
		CastingTime: data.CastingTime,
		Range:       data.Range,
		Duration:    duration,
	}
}

// PriceInGold converts an SRD cost to whole gold pieces, rounding up.
// Everything costs at least 1 gp.
func PriceInGold(cost *external.CostData) int {
	if cost == nil || cost.Quantity <= 0 {
		return 1
	}
	rate, ok := copperPerUnit[strings.ToLower(cost.Unit)]
	if !ok {
		rate = copperPerUnit["gp"]
	}
	copper := cost.Quantity * rate
	return max((copper+99)/100, 1)
}

func isPotion(data *external.EquipmentData) bool {
	return strings.HasPrefix(data.ID, "potion") ||
		strings.Contains(strings.ToLower(data.Name), "potion")
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, strings.ToLower(p))
		}
	}
	return strings.Join(kept, " ")
}
