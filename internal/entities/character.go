// Package entities holds the domain records shared by repositories,
// orchestrators and handlers.
package entities

import (
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Entity types reported to the rpg-toolkit event bus
const (
	EntityTypeCharacter = "character"
	EntityTypeItem      = "item"
)

// Ability names a core ability score
type Ability string

// The six abilities
const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities returns the abilities in sheet order.
func Abilities() []Ability {
	return []Ability{
		AbilityStrength,
		AbilityDexterity,
		AbilityConstitution,
		AbilityIntelligence,
		AbilityWisdom,
		AbilityCharisma,
	}
}

// Stats holds the six ability scores
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// DefaultStats is the all-10s array new characters start with.
func DefaultStats() Stats {
	return Stats{Strength: 10, Dexterity: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 10}
}

// Score returns the score for an ability. Unknown abilities score 10.
func (s Stats) Score(a Ability) int {
	switch a {
	case AbilityStrength:
		return s.Strength
	case AbilityDexterity:
		return s.Dexterity
	case AbilityConstitution:
		return s.Constitution
	case AbilityIntelligence:
		return s.Intelligence
	case AbilityWisdom:
		return s.Wisdom
	case AbilityCharisma:
		return s.Charisma
	default:
		return 10
	}
}

// Character is a player character with its sheet, vitals and inventory.
type Character struct {
	ID                 string            `json:"id"`
	PlayerID           string            `json:"player_id"`
	Name               string            `json:"name"`
	ClassID            string            `json:"class_id"`
	RaceID             string            `json:"race_id"`
	Level              int               `json:"level"`
	Background         string            `json:"background,omitempty"`
	Stats              Stats             `json:"stats"`
	ArmorClass         int               `json:"armor_class"`
	HitPointsMax       int               `json:"hit_points_max"`
	HitPointsCurrent   int               `json:"hit_points_current"`
	SpeedFt            int               `json:"speed_ft"`
	SkillProficiencies []string          `json:"skill_proficiencies"`
	Gold               int               `json:"gold"`
	Description        string            `json:"description,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	AvatarURL          string            `json:"avatar_url,omitempty"`
	Inventory          []*InventoryEntry `json:"inventory"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

var _ core.Entity = (*Character)(nil)

// GetID returns the character's ID
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// IsProficient reports whether the character is proficient in skill.
func (c *Character) IsProficient(skill string) bool {
	for _, s := range c.SkillProficiencies {
		if s == skill {
			return true
		}
	}
	return false
}
