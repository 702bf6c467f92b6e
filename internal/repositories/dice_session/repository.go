// Package dicesession stores short-lived groups of dice rolls keyed by the
// entity that rolled them and the context they were rolled in.
package dicesession

//go:generate mockgen -destination=mock/mock_repository.go -package=dicesessionmock github.com/KirkDiggler/rpg-companion/internal/repositories/dice_session Repository

import (
	"context"
	"time"
)

// DefaultTTL is applied when a caller does not ask for a specific lifetime.
const DefaultTTL = 15 * time.Minute

// DiceSession is every roll an entity made in one context.
type DiceSession struct {
	EntityID  string     `json:"entity_id"`
	Context   string     `json:"context"`
	Rolls     []DiceRoll `json:"rolls"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// DiceRoll is one resolved notation. DiceTotal is the sum of the kept dice;
// Total adds the modifier on top.
type DiceRoll struct {
	RollID      string    `json:"roll_id"`
	Notation    string    `json:"notation"`
	Dice        []int     `json:"dice"`
	Dropped     []int     `json:"dropped,omitempty"`
	DiceTotal   int       `json:"dice_total"`
	Modifier    int       `json:"modifier"`
	Total       int       `json:"total"`
	Description string    `json:"description,omitempty"`
	RolledAt    time.Time `json:"rolled_at"`
}

// Repository persists dice sessions.
type Repository interface {
	// Create replaces any session for the entity and context.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Append adds rolls to the session, starting one when none exists.
	// An existing session keeps its original expiry.
	Append(ctx context.Context, input AppendInput) (*AppendOutput, error)

	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a session
type CreateInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration
}

// CreateOutput defines the output for creating a session
type CreateOutput struct {
	Session *DiceSession
}

// AppendInput defines the input for appending rolls
type AppendInput struct {
	EntityID string
	Context  string
	Rolls    []DiceRoll
	TTL      time.Duration
}

// AppendOutput defines the output for appending rolls
type AppendOutput struct {
	Session *DiceSession
}

// GetInput defines the input for getting a session
type GetInput struct {
	EntityID string
	Context  string
}

// GetOutput defines the output for getting a session
type GetOutput struct {
	Session *DiceSession
}

// DeleteInput defines the input for deleting a session
type DeleteInput struct {
	EntityID string
	Context  string
}

// DeleteOutput defines the output for deleting a session
type DeleteOutput struct {
	RollsDeleted int
}
