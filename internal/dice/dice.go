// Package dice is the dice engine: single dice, pools and "NdM+K" notation
// rolled against an injectable uniform source.
//
// A die of S sides is floor(u*S)+1 for u drawn from [0,1). A source that
// returns 0 always rolls 1 and no source value below 1 can exceed S, so
// tests pin exact outcomes by supplying a fixed source.
package dice

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
)

const (
	// MaxCount bounds the number of dice in one notation roll.
	MaxCount = 100
	// MaxSides bounds the die size in one notation roll.
	MaxSides = 100
)

// Options is the die catalog offered to players.
var Options = []int{4, 6, 8, 10, 12, 20}

var notationPattern = regexp.MustCompile(`(?i)^(\d+)d(\d+)(?:\s*\+\s*(\d+))?$`)

// Source yields uniform values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Result is the outcome of a roll. Total includes Modifier.
type Result struct {
	Rolls    []int `json:"rolls"`
	Total    int   `json:"total"`
	Modifier int   `json:"modifier"`
}

// DiceTotal is the sum of the faces without the modifier.
func (r Result) DiceTotal() int {
	return r.Total - r.Modifier
}

// Notation is a parsed "NdM+K" expression after clamping.
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// String renders the notation back into canonical form.
func (n Notation) String() string {
	if n.Modifier != 0 {
		return fmt.Sprintf("%dd%d+%d", n.Count, n.Sides, n.Modifier)
	}
	return fmt.Sprintf("%dd%d", n.Count, n.Sides)
}

// ParseNotation parses "NdM" or "NdM+K" (case-insensitive, surrounding
// whitespace ignored). Count is clamped to [0,MaxCount] and sides to
// [1,MaxSides]. It reports false for anything else.
func ParseNotation(text string) (Notation, bool) {
	m := notationPattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return Notation{}, false
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		// digit runs too long for int
		count = MaxCount
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil {
		sides = MaxSides
	}

	var modifier int
	if m[3] != "" {
		if modifier, err = strconv.Atoi(m[3]); err != nil {
			return Notation{}, false
		}
	}

	return Notation{
		Count:    clamp(count, 0, MaxCount),
		Sides:    clamp(sides, 1, MaxSides),
		Modifier: modifier,
	}, true
}

// Roller rolls dice from a Source. It is safe for concurrent use.
type Roller struct {
	mu  sync.Mutex
	src Source
}

var _ toolkitdice.Roller = (*Roller)(nil)

// New creates a roller over src.
func New(src Source) *Roller {
	return &Roller{src: src}
}

// NewSeeded creates a deterministic roller.
func NewSeeded(seed int64) *Roller {
	s := uint64(seed) // #nosec G115 -- seed bits are reused verbatim
	return New(rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)))
}

// NewRandom creates a roller seeded from the runtime's random state.
func NewRandom() *Roller {
	return New(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))) // #nosec G404 -- game dice
}

// RollDie rolls one die. Sides below 1 are treated as 1.
func (r *Roller) RollDie(sides int) int {
	if sides < 1 {
		sides = 1
	}

	r.mu.Lock()
	u := r.src.Float64()
	r.mu.Unlock()

	face := int(u*float64(sides)) + 1
	if face > sides {
		face = sides
	}
	if face < 1 {
		face = 1
	}
	return face
}

// RollD20 rolls a twenty-sided die.
func (r *Roller) RollD20() int {
	return r.RollDie(20)
}

// RollMultiple rolls count dice in order. A non-positive count rolls nothing.
func (r *Roller) RollMultiple(count, sides int) Result {
	res := Result{Rolls: make([]int, 0, max(count, 0))}
	for i := 0; i < count; i++ {
		face := r.RollDie(sides)
		res.Rolls = append(res.Rolls, face)
		res.Total += face
	}
	return res
}

// RollNotation rolls a notation string. Input that does not parse yields an
// empty result with a zero total rather than an error.
func (r *Roller) RollNotation(text string) Result {
	n, ok := ParseNotation(text)
	if !ok {
		return Result{Rolls: []int{}}
	}
	return r.RollParsed(n)
}

// RollParsed rolls an already parsed notation.
func (r *Roller) RollParsed(n Notation) Result {
	res := r.RollMultiple(n.Count, n.Sides)
	res.Modifier = n.Modifier
	res.Total += n.Modifier
	return res
}

// Roll implements the rpg-toolkit dice.Roller interface.
func (r *Roller) Roll(size int) (int, error) {
	if size < 1 {
		return 0, errors.InvalidArgumentf("invalid die size: %d", size)
	}
	return r.RollDie(size), nil
}

// RollN implements the rpg-toolkit dice.Roller interface.
func (r *Roller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("invalid dice count: %d", count)
	}
	if size < 1 {
		return nil, errors.InvalidArgumentf("invalid die size: %d", size)
	}
	return r.RollMultiple(count, size).Rolls, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
