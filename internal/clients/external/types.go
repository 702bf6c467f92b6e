package external

// EquipmentData represents equipment information from external source
type EquipmentData struct {
	ID            string
	Name          string
	EquipmentType string // "weapon", "armor" or "equipment"
	Category      string // "martial-weapons", "light-armor", "adventuring-gear", ...
	Cost          *CostData
	Weight        float32

	// Weapon-specific fields
	WeaponCategory string // "Simple", "Martial"
	WeaponRange    string // "Melee", "Ranged"
	Damage         *DamageData
	Properties     []string

	// Armor-specific fields
	ArmorCategory       string // "Light", "Medium", "Heavy", "Shield"
	ArmorClass          *ArmorClassData
	StrengthMinimum     int
	StealthDisadvantage bool
}

// CostData represents equipment cost
type CostData struct {
	Quantity int
	Unit     string
}

// DamageData represents weapon damage
type DamageData struct {
	DamageDice string
	DamageType string
}

// ArmorClassData represents armor class information
type ArmorClassData struct {
	Base     int
	DexBonus bool
}

// SpellData represents spell information from external source
type SpellData struct {
	ID            string
	Name          string
	Level         int
	School        string
	CastingTime   string
	Range         string
	Duration      string
	Ritual        bool
	Concentration bool
	Description   string
}

// ClassData represents class information from external source
type ClassData struct {
	ID          string
	Name        string
	HitDie      int
	Description string
}

// RaceData represents race information from external source
type RaceData struct {
	ID      string
	Name    string
	Size    string
	SpeedFt int
}

// ListSpellsInput filters the spell listing
type ListSpellsInput struct {
	Level   *int
	ClassID string
}
