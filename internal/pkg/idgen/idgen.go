// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-companion/internal/pkg/idgen Generator

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates random UUIDs with an optional prefix.
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	return withPrefix(g.prefix, uuid.NewString())
}

// OrderedGenerator generates time-ordered UUIDv7 IDs. IDs from one process
// sort lexically in creation order, which inventory listing relies on.
type OrderedGenerator struct {
	prefix string
}

// NewOrdered creates a time-ordered generator with optional prefix
func NewOrdered(prefix string) *OrderedGenerator {
	return &OrderedGenerator{prefix: prefix}
}

// Generate creates a new UUIDv7-based ID. It falls back to a random UUID
// if the v7 clock read fails.
func (g *OrderedGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return withPrefix(g.prefix, uuid.NewString())
	}
	return withPrefix(g.prefix, id.String())
}

// SequentialGenerator generates zero-padded sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	return withPrefix(g.prefix, fmt.Sprintf("%06d", n))
}

func withPrefix(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
