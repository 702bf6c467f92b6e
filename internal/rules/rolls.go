package rules

import (
	"strings"

	"github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

// HealingPotion is the heal notation used for consumables that do not
// carry their own.
const HealingPotion = "2d4+2"

// Critical marks a natural 1 or 20 on a d20.
type Critical string

// Critical outcomes
const (
	CriticalNone    Critical = ""
	CriticalSuccess Critical = "success"
	CriticalFail    Critical = "fail"
)

// D20Check is a d20 roll plus a flat modifier.
type D20Check struct {
	Label    string   `json:"label"`
	Roll     int      `json:"roll"`
	Modifier int      `json:"modifier"`
	Total    int      `json:"total"`
	Critical Critical `json:"critical,omitempty"`
}

// WeaponAttackResult is an attack roll and, when the weapon has damage
// dice, a damage roll.
type WeaponAttackResult struct {
	Attack         D20Check     `json:"attack"`
	Finesse        bool         `json:"finesse"`
	Damage         *dice.Result `json:"damage,omitempty"`
	DamageTotal    int          `json:"damage_total"`
	DamageNotation string       `json:"damage_notation,omitempty"`
}

// RollD20Check rolls d20 + modifier.
func RollD20Check(roller *dice.Roller, label string, modifier int) D20Check {
	roll := roller.RollD20()
	check := D20Check{
		Label:    label,
		Roll:     roll,
		Modifier: modifier,
		Total:    roll + modifier,
	}
	switch roll {
	case 1:
		check.Critical = CriticalFail
	case 20:
		check.Critical = CriticalSuccess
	}
	return check
}

// SkillCheck rolls d20 plus the skill modifier.
func SkillCheck(roller *dice.Roller, stats entities.Stats, level int, skill Skill, proficient bool) D20Check {
	return RollD20Check(roller, skill.Label, SkillModifier(stats, level, skill.Ability, proficient))
}

// AbilityCheck rolls d20 plus an ability modifier.
func AbilityCheck(roller *dice.Roller, stats entities.Stats, ability entities.Ability) D20Check {
	label := string(ability)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return RollD20Check(roller, label, AbilityModifier(stats.Score(ability)))
}

// WeaponAttackModifier is the STR modifier, or the better of STR and DEX
// for finesse weapons.
func WeaponAttackModifier(stats entities.Stats, weapon *entities.ItemStats) (int, bool) {
	strMod := AbilityModifier(stats.Strength)
	finesse := weapon != nil && strings.Contains(strings.ToLower(weapon.Properties), "finesse")
	if finesse {
		return max(strMod, AbilityModifier(stats.Dexterity)), true
	}
	return strMod, false
}

// WeaponAttack rolls an attack and its damage. The damage roll adds the
// attack modifier to the rolled notation.
func WeaponAttack(roller *dice.Roller, label string, stats entities.Stats, weapon *entities.ItemStats) WeaponAttackResult {
	mod, finesse := WeaponAttackModifier(stats, weapon)

	result := WeaponAttackResult{
		Attack:  RollD20Check(roller, label, mod),
		Finesse: finesse,
	}

	if weapon != nil && weapon.Damage != "" {
		dmg := roller.RollNotation(weapon.Damage)
		result.Damage = &dmg
		result.DamageNotation = weapon.Damage
		result.DamageTotal = dmg.Total + mod
	}

	return result
}
