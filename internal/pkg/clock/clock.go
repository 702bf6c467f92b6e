// Package clock lets repositories and orchestrators stamp records with a
// time source tests can pin.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=mockclock github.com/KirkDiggler/rpg-companion/internal/pkg/clock Clock

// Clock provides time functionality
type Clock interface {
	Now() time.Time
}

// Real implements Clock using actual system time
type Real struct{}

// Now returns the current time in UTC.
func (c *Real) Now() time.Time {
	return time.Now().UTC()
}

// New returns a new real clock
func New() Clock {
	return &Real{}
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

// Now returns the pinned instant.
func (c *Fixed) Now() time.Time {
	return c.At
}

// Advance moves the pinned instant forward.
func (c *Fixed) Advance(d time.Duration) {
	c.At = c.At.Add(d)
}
