// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=characterrepomock github.com/KirkDiggler/rpg-companion/internal/repositories/character Repository

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-companion/internal/entities"
)

// Vitals are the character fields mutated by inventory transactions. They
// live apart from the profile so inventory scripts can update them
// atomically.
type Vitals struct {
	Gold             int
	HitPointsCurrent int
	HitPointsMax     int
}

// Vitals hash fields shared with the inventory scripts
const (
	VitalsFieldGold      = "gold"
	VitalsFieldHPCurrent = "hp_current"
	VitalsFieldHPMax     = "hp_max"
)

// VitalsKey is the hash holding a character's gold and hit points. The
// braces are a cluster hash tag shared with the inventory keys.
func VitalsKey(characterID string) string {
	return fmt.Sprintf("vitals:{%s}", characterID)
}

// Repository defines the interface for character persistence
type Repository interface {
	// Create creates a new character
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if character with same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character's profile and vitals by ID. Inventory is
	// not loaded.
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetVitals retrieves only gold and hit points
	// Returns errors.NotFound if character doesn't exist
	GetVitals(ctx context.Context, input GetVitalsInput) (*GetVitalsOutput, error)

	// Update replaces a character's profile and overwrites only the named vitals fields
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a character by ID
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if character doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID retrieves all characters for a player
	// Returns errors.InvalidArgument for empty/invalid player IDs
	// Returns errors.Internal for storage failures
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *entities.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *entities.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *entities.Character
}

// GetVitalsInput defines the input for reading a character's vitals
type GetVitalsInput struct {
	ID string
}

// GetVitalsOutput defines the output for reading a character's vitals
type GetVitalsOutput struct {
	Vitals Vitals
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	Character *entities.Character
	// VitalsFields names the vitals hash fields to overwrite from Character.
	// Fields not listed keep the value the store holds.
	VitalsFields []string
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *entities.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct{}

// ListByPlayerIDInput defines the input for listing characters by player
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing characters by player
type ListByPlayerIDOutput struct {
	Characters []*entities.Character
}
