package rules

import "github.com/KirkDiggler/rpg-companion/internal/entities"

// Skill is an SRD skill and the ability it keys off.
type Skill struct {
	Key     string           `json:"key"`
	Label   string           `json:"label"`
	Ability entities.Ability `json:"ability"`
}

var skills = []Skill{
	{Key: "acrobatics", Label: "Acrobatics", Ability: entities.AbilityDexterity},
	{Key: "animal_handling", Label: "Animal Handling", Ability: entities.AbilityWisdom},
	{Key: "arcana", Label: "Arcana", Ability: entities.AbilityIntelligence},
	{Key: "athletics", Label: "Athletics", Ability: entities.AbilityStrength},
	{Key: "deception", Label: "Deception", Ability: entities.AbilityCharisma},
	{Key: "history", Label: "History", Ability: entities.AbilityIntelligence},
	{Key: "insight", Label: "Insight", Ability: entities.AbilityWisdom},
	{Key: "intimidation", Label: "Intimidation", Ability: entities.AbilityCharisma},
	{Key: "investigation", Label: "Investigation", Ability: entities.AbilityIntelligence},
	{Key: "medicine", Label: "Medicine", Ability: entities.AbilityWisdom},
	{Key: "nature", Label: "Nature", Ability: entities.AbilityIntelligence},
	{Key: "perception", Label: "Perception", Ability: entities.AbilityWisdom},
	{Key: "performance", Label: "Performance", Ability: entities.AbilityCharisma},
	{Key: "persuasion", Label: "Persuasion", Ability: entities.AbilityCharisma},
	{Key: "religion", Label: "Religion", Ability: entities.AbilityIntelligence},
	{Key: "sleight_of_hand", Label: "Sleight of Hand", Ability: entities.AbilityDexterity},
	{Key: "stealth", Label: "Stealth", Ability: entities.AbilityDexterity},
	{Key: "survival", Label: "Survival", Ability: entities.AbilityWisdom},
}

// Skills returns the 18 SRD skills in alphabetical order.
func Skills() []Skill {
	out := make([]Skill, len(skills))
	copy(out, skills)
	return out
}

// LookupSkill finds a skill by key.
func LookupSkill(key string) (Skill, bool) {
	for _, s := range skills {
		if s.Key == key {
			return s, true
		}
	}
	return Skill{}, false
}
