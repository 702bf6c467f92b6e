package character

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/inventory"
	characterrepo "github.com/KirkDiggler/rpg-companion/internal/repositories/character"
	"github.com/KirkDiggler/rpg-companion/internal/rules"
)

// GetCharacterSheet derives modifiers, skills, armor class and the actions
// each inventory entry offers.
func (o *Orchestrator) GetCharacterSheet(ctx context.Context, input *GetCharacterSheetInput) (*GetCharacterSheetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	return &GetCharacterSheetOutput{Sheet: BuildSheet(char)}, nil
}

// BuildSheet derives a sheet from a loaded character.
func BuildSheet(char *entities.Character) *Sheet {
	mods := make(map[entities.Ability]int, 6)
	for _, a := range entities.Abilities() {
		mods[a] = rules.AbilityModifier(char.Stats.Score(a))
	}

	skills := rules.Skills()
	lines := make([]SkillLine, 0, len(skills))
	for _, sk := range skills {
		proficient := char.IsProficient(sk.Key)
		lines = append(lines, SkillLine{
			Skill:      sk,
			Modifier:   rules.SkillModifier(char.Stats, char.Level, sk.Ability, proficient),
			Proficient: proficient,
		})
	}

	armor := inventory.EquippedArmor(char.Inventory)
	actions := make(map[string][]inventory.Action, len(char.Inventory))
	for _, e := range char.Inventory {
		actions[e.CharacterItemID] = inventory.AvailableActions(e)
	}

	return &Sheet{
		Character:        char,
		AbilityModifiers: mods,
		ProficiencyBonus: rules.ProficiencyBonus(char.Level),
		Skills:           lines,
		ArmorClass:       rules.CharacterArmorClass(char, armor),
		EquippedWeapon:   inventory.EquippedWeapon(char.Inventory),
		EquippedArmor:    armor,
		Actions:          actions,
	}
}

// RollSkillCheck rolls d20 plus the character's skill modifier
func (o *Orchestrator) RollSkillCheck(ctx context.Context, input *RollSkillCheckInput) (*RollSkillCheckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	skill, ok := rules.LookupSkill(input.Skill)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown skill: %s", input.Skill)
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character")
	}
	char := out.Character

	check := rules.SkillCheck(o.roller, char.Stats, char.Level, skill, char.IsProficient(skill.Key))

	slog.Debug("Skill check rolled",
		"character_id", char.ID,
		"skill", skill.Key,
		"roll", check.Roll,
		"total", check.Total,
	)

	return &RollSkillCheckOutput{Check: check}, nil
}

// RollAbilityCheck rolls d20 plus an ability modifier
func (o *Orchestrator) RollAbilityCheck(ctx context.Context, input *RollAbilityCheckInput) (*RollAbilityCheckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !validAbility(input.Ability) {
		return nil, errors.InvalidArgumentf("unknown ability: %s", input.Ability)
	}
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get character")
	}

	return &RollAbilityCheckOutput{
		Check: rules.AbilityCheck(o.roller, out.Character.Stats, input.Ability),
	}, nil
}

// RollWeaponAttack rolls an attack with the equipped weapon
// Returns errors.FailedPrecondition when no weapon is equipped
func (o *Orchestrator) RollWeaponAttack(ctx context.Context, input *RollWeaponAttackInput) (*RollWeaponAttackOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	char, err := o.loadCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}

	weapon := inventory.EquippedWeapon(char.Inventory)
	if weapon == nil {
		return nil, errors.FailedPrecondition("no weapon equipped")
	}

	result := rules.WeaponAttack(o.roller, weapon.Name, char.Stats, weapon.Stats)

	slog.Debug("Weapon attack rolled",
		"character_id", char.ID,
		"weapon", weapon.ID,
		"attack_total", result.Attack.Total,
		"damage_total", result.DamageTotal,
	)

	return &RollWeaponAttackOutput{Weapon: weapon, Result: result}, nil
}

func validAbility(a entities.Ability) bool {
	for _, known := range entities.Abilities() {
		if a == known {
			return true
		}
	}
	return false
}
