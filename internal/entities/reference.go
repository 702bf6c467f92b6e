package entities

// Class is a character class reference record
type Class struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	HitDie      int    `json:"hit_die,omitempty"`
	Description string `json:"description,omitempty"`
}

// ValidHitDie reports whether d is a class hit die (d6, d8, d10 or d12).
func ValidHitDie(d int) bool {
	switch d {
	case 6, 8, 10, 12:
		return true
	default:
		return false
	}
}

// Race is a character race reference record
type Race struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SpeedFt     int    `json:"speed_ft,omitempty"`
	Description string `json:"description,omitempty"`
}
