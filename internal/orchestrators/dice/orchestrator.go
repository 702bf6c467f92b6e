// Package dice implements the dice orchestrator for handling dice roll sessions
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-companion/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	toolkitdice "github.com/KirkDiggler/rpg-toolkit/dice"

	engine "github.com/KirkDiggler/rpg-companion/internal/dice"
	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-companion/internal/pkg/idgen"
	dicesession "github.com/KirkDiggler/rpg-companion/internal/repositories/dice_session"
)

const (
	// Default context for ability score rolling
	ContextAbilityScores = "ability_scores"

	// Default TTL for dice sessions
	DefaultSessionTTL = dicesession.DefaultTTL

	// Dice rolling methods
	MethodStandard = "4d6_drop_lowest"
	MethodClassic  = "3d6"
	MethodHeroic   = "4d6_reroll_1s"

	abilityScoreCount = 6
)

// Service defines the interface for dice operations
type Service interface {
	// Generic dice rolling
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)
	GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error)
	ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error)

	// Specialized ability score rolling for character creation
	RollAbilityScores(ctx context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	DiceSessionRepo dicesession.Repository
	IDGenerator     idgen.Generator
	Roller          *engine.Roller
	Clock           clock.Clock
	// SessionTTL defaults to DefaultSessionTTL
	SessionTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DiceSessionRepo == nil {
		vb.RequiredField("DiceSessionRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.SessionTTL < 0 {
		vb.Field("SessionTTL", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	diceSessionRepo dicesession.Repository
	idGen           idgen.Generator
	roller          *engine.Roller
	abilityRoller   toolkitdice.Roller
	clock           clock.Clock
	sessionTTL      time.Duration
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &orchestrator{
		diceSessionRepo: cfg.DiceSessionRepo,
		idGen:           cfg.IDGenerator,
		roller:          cfg.Roller,
		abilityRoller:   cfg.Roller,
		clock:           c,
		sessionTTL:      ttl,
	}, nil
}

// RollDice rolls the notation and appends the result to the entity's session
func (o *orchestrator) RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}
	if input.Notation == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	notation, ok := engine.ParseNotation(input.Notation)
	if !ok {
		return nil, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY or XdY+Z)", input.Notation)
	}
	if notation.Count == 0 {
		return nil, errors.InvalidArgumentf("dice count must be positive: %s", input.Notation)
	}

	result := o.roller.RollParsed(notation)
	roll := &dicesession.DiceRoll{
		RollID:      o.idGen.Generate(),
		Notation:    notation.String(),
		Dice:        result.Rolls,
		DiceTotal:   result.DiceTotal(),
		Modifier:    result.Modifier,
		Total:       result.Total,
		Description: input.Description,
		RolledAt:    o.clock.Now(),
	}

	ttl := input.TTL
	if ttl <= 0 {
		ttl = o.sessionTTL
	}

	appended, err := o.diceSessionRepo.Append(ctx, dicesession.AppendInput{
		EntityID: input.EntityID,
		Context:  input.Context,
		Rolls:    []dicesession.DiceRoll{*roll},
		TTL:      ttl,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store dice roll")
	}

	slog.Info("Dice rolled successfully",
		"entity_id", input.EntityID,
		"context", input.Context,
		"notation", roll.Notation,
		"total", roll.Total,
		"roll_id", roll.RollID,
	)

	return &RollDiceOutput{
		Roll:    roll,
		Session: appended.Session,
	}, nil
}

// GetRollSession retrieves an existing dice roll session
func (o *orchestrator) GetRollSession(ctx context.Context, input *GetRollSessionInput) (*GetRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	getOutput, err := o.diceSessionRepo.Get(ctx, dicesession.GetInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get dice session")
	}

	return &GetRollSessionOutput{
		Session: getOutput.Session,
	}, nil
}

// ClearRollSession removes a dice roll session
func (o *orchestrator) ClearRollSession(ctx context.Context, input *ClearRollSessionInput) (*ClearRollSessionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}
	if input.Context == "" {
		return nil, errors.InvalidArgument("context is required")
	}

	deleteOutput, err := o.diceSessionRepo.Delete(ctx, dicesession.DeleteInput{
		EntityID: input.EntityID,
		Context:  input.Context,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete dice session")
	}

	slog.Info("Dice session cleared",
		"entity_id", input.EntityID,
		"context", input.Context,
		"rolls_deleted", deleteOutput.RollsDeleted,
	)

	return &ClearRollSessionOutput{
		RollsDeleted: deleteOutput.RollsDeleted,
	}, nil
}

// RollAbilityScores rolls six ability scores and replaces the entity's
// ability score session with them.
func (o *orchestrator) RollAbilityScores(ctx context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.EntityID == "" {
		return nil, errors.InvalidArgument("entity ID is required")
	}

	method := input.Method
	if method == "" {
		method = MethodStandard
	}

	var notation string
	switch method {
	case MethodStandard, MethodHeroic:
		notation = "4d6"
	case MethodClassic:
		notation = "3d6"
	default:
		return nil, errors.InvalidArgumentf("unsupported rolling method: %s", method)
	}

	now := o.clock.Now()
	rolls := make([]*dicesession.DiceRoll, 0, abilityScoreCount)
	values := make([]dicesession.DiceRoll, 0, abilityScoreCount)
	for i := 0; i < abilityScoreCount; i++ {
		kept, dropped, err := rollAbilityScore(o.abilityRoller, method)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll ability score %d", i+1)
		}

		total := sum(kept)
		roll := &dicesession.DiceRoll{
			RollID:      o.idGen.Generate(),
			Notation:    notation,
			Dice:        kept,
			Dropped:     dropped,
			DiceTotal:   total,
			Total:       total,
			Description: fmt.Sprintf("Ability Score %d (%s)", i+1, method),
			RolledAt:    now,
		}
		rolls = append(rolls, roll)
		values = append(values, *roll)
	}

	createOutput, err := o.diceSessionRepo.Create(ctx, dicesession.CreateInput{
		EntityID: input.EntityID,
		Context:  ContextAbilityScores,
		Rolls:    values,
		TTL:      o.sessionTTL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ability score session")
	}

	slog.Info("Ability scores rolled successfully",
		"entity_id", input.EntityID,
		"method", method,
		"rolls_count", len(rolls),
	)

	return &RollAbilityScoresOutput{
		Rolls:   rolls,
		Session: createOutput.Session,
	}, nil
}

// rollAbilityScore returns the kept dice in rolled order and the dropped
// dice. The heroic method rerolls each 1 once before dropping the lowest.
func rollAbilityScore(roller toolkitdice.Roller, method string) (kept, dropped []int, err error) {
	switch method {
	case MethodClassic:
		kept, err = roller.RollN(3, 6)
		return kept, nil, err
	case MethodStandard, MethodHeroic:
	default:
		return nil, nil, errors.InvalidArgumentf("unsupported rolling method: %s", method)
	}

	faces, err := roller.RollN(4, 6)
	if err != nil {
		return nil, nil, err
	}
	if method == MethodHeroic {
		for i, f := range faces {
			if f != 1 {
				continue
			}
			if faces[i], err = roller.Roll(6); err != nil {
				return nil, nil, err
			}
		}
	}

	kept, lowest := dropLowest(faces)
	return kept, []int{lowest}, nil
}

// dropLowest removes the first occurrence of the lowest face.
func dropLowest(faces []int) ([]int, int) {
	idx := make([]int, len(faces))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return faces[idx[a]] < faces[idx[b]] })

	lowest := idx[0]
	kept := make([]int, 0, len(faces)-1)
	for i, f := range faces {
		if i != lowest {
			kept = append(kept, f)
		}
	}
	return kept, faces[lowest]
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
