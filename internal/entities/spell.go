package entities

import "time"

// SpellSchool is one of the eight schools of magic
type SpellSchool string

// Spell schools
const (
	SchoolAbjuration    SpellSchool = "abjuration"
	SchoolConjuration   SpellSchool = "conjuration"
	SchoolDivination    SpellSchool = "divination"
	SchoolEnchantment   SpellSchool = "enchantment"
	SchoolEvocation     SpellSchool = "evocation"
	SchoolIllusion      SpellSchool = "illusion"
	SchoolNecromancy    SpellSchool = "necromancy"
	SchoolTransmutation SpellSchool = "transmutation"
)

// SpellSchools lists the schools in alphabetical order.
func SpellSchools() []SpellSchool {
	return []SpellSchool{
		SchoolAbjuration,
		SchoolConjuration,
		SchoolDivination,
		SchoolEnchantment,
		SchoolEvocation,
		SchoolIllusion,
		SchoolNecromancy,
		SchoolTransmutation,
	}
}

// IsValid reports whether s is one of the eight schools
func (s SpellSchool) IsValid() bool {
	for _, school := range SpellSchools() {
		if s == school {
			return true
		}
	}
	return false
}

// Spell is a catalog spell. Level 0 is a cantrip.
type Spell struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Level       int         `json:"level"`
	School      SpellSchool `json:"school"`
	Description string      `json:"description"`
	CastingTime string      `json:"casting_time"`
	Range       string      `json:"range"`
	Duration    string      `json:"duration"`
	Components  string      `json:"components"`
	Material    string      `json:"material,omitempty"`
	HigherLevel string      `json:"higher_level,omitempty"`
	ImageURL    string      `json:"image_url,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CharacterSpell is a spellbook entry
type CharacterSpell struct {
	ID          string    `json:"id"`
	CharacterID string    `json:"character_id"`
	SpellID     string    `json:"spell_id"`
	Prepared    bool      `json:"prepared"`
	CreatedAt   time.Time `json:"created_at"`
	Spell       *Spell    `json:"spell,omitempty"`
}
