// Package rules derives D&D 5e sheet numbers from a character: ability
// modifiers, proficiency, skill modifiers and effective armor class. The
// functions are pure and never fail.
package rules

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

// DefaultArmorClass applies when a character has no base AC of its own.
const DefaultArmorClass = 10

var dexArmorPattern = regexp.MustCompile(`(?i)^(\d+)\s*\+\s*Dex`)

// AbilityModifier is floor((score-10)/2), rounding toward negative infinity.
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// ProficiencyBonus is +2 at levels 1-4 rising by one every four levels to a
// cap of +6.
func ProficiencyBonus(level int) int {
	return min(6, floorDiv(level-1, 4)+2)
}

// SkillModifier is the linked ability's modifier plus the proficiency bonus
// when proficient.
func SkillModifier(stats entities.Stats, level int, ability entities.Ability, proficient bool) int {
	mod := AbilityModifier(stats.Score(ability))
	if proficient {
		mod += ProficiencyBonus(level)
	}
	return mod
}

// EffectiveArmorClass resolves the AC granted by equipped armor.
//
// No armor, or armor without an AC, leaves baseAC. A numeric AC is used as
// is. Text starting "N + Dex" adds the dexterity modifier to N. Any other
// text uses its leading integer, falling back to baseAC when there is none
// or it is zero.
func EffectiveArmorClass(baseAC int, armor *entities.ItemStats, dexterity int) int {
	if armor == nil || armor.AC == nil {
		return baseAC
	}
	if armor.AC.Number != nil {
		return *armor.AC.Number
	}

	text := armor.AC.Text
	if m := dexArmorPattern.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n + AbilityModifier(dexterity)
		}
	}

	if n, ok := leadingInt(text); ok && n != 0 {
		return n
	}
	return baseAC
}

// CharacterArmorClass applies EffectiveArmorClass with the character's base
// AC and dexterity. equippedArmor may be nil.
func CharacterArmorClass(char *entities.Character, equippedArmor *entities.InventoryEntry) int {
	if char == nil {
		return EffectiveArmorClass(DefaultArmorClass, armorStats(equippedArmor), 10)
	}
	return EffectiveArmorClass(char.ArmorClass, armorStats(equippedArmor), char.Stats.Dexterity)
}

func armorStats(entry *entities.InventoryEntry) *entities.ItemStats {
	if entry == nil {
		return nil
	}
	return entry.Stats
}

// leadingInt reads an optionally signed run of digits after leading
// whitespace, ignoring whatever follows.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
