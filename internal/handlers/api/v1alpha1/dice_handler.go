// Package v1alpha1 handles the generic API grpc service interface
package v1alpha1

import (
	"context"
	"log/slog"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"

	"github.com/KirkDiggler/rpg-companion/internal/errors"
	"github.com/KirkDiggler/rpg-companion/internal/orchestrators/dice"
	dicesession "github.com/KirkDiggler/rpg-companion/internal/repositories/dice_session"
)

// DiceHandlerConfig holds dependencies for the dice handler
type DiceHandlerConfig struct {
	DiceService dice.Service
}

// Validate ensures all required dependencies are present
func (c *DiceHandlerConfig) Validate() error {
	if c.DiceService == nil {
		return errors.InvalidArgument("dice service is required")
	}
	return nil
}

// DiceHandler implements the generic dice gRPC service
type DiceHandler struct {
	apiv1alpha1.UnimplementedDiceServiceServer
	diceService dice.Service
}

// NewDiceHandler creates a new dice handler with the given configuration
func NewDiceHandler(cfg *DiceHandlerConfig) (*DiceHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &DiceHandler{
		diceService: cfg.DiceService,
	}, nil
}

// RollDice rolls dice using the specified notation and stores the result in a session
func (h *DiceHandler) RollDice(
	ctx context.Context,
	req *apiv1alpha1.RollDiceRequest,
) (*apiv1alpha1.RollDiceResponse, error) {
	if err := validateSessionRef(req.GetEntityId(), req.GetContext()); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.GetNotation() == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("notation is required"))
	}

	diceOutput, err := h.diceService.RollDice(ctx, &dice.RollDiceInput{
		EntityID:    req.GetEntityId(),
		Context:     req.GetContext(),
		Notation:    req.GetNotation(),
		Description: req.GetModifierDescription(),
	})
	if err != nil {
		slog.DebugContext(ctx, "roll dice failed", "entity_id", req.GetEntityId(), "error", err)
		return nil, errors.ToGRPCError(err)
	}

	return &apiv1alpha1.RollDiceResponse{
		Rolls:     convertRolls(diceOutput.Session.Rolls),
		ExpiresAt: diceOutput.Session.ExpiresAt.Unix(),
	}, nil
}

// GetRollSession retrieves an existing dice roll session
func (h *DiceHandler) GetRollSession(
	ctx context.Context,
	req *apiv1alpha1.GetRollSessionRequest,
) (*apiv1alpha1.GetRollSessionResponse, error) {
	if err := validateSessionRef(req.GetEntityId(), req.GetContext()); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	diceOutput, err := h.diceService.GetRollSession(ctx, &dice.GetRollSessionInput{
		EntityID: req.GetEntityId(),
		Context:  req.GetContext(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &apiv1alpha1.GetRollSessionResponse{
		Rolls:     convertRolls(diceOutput.Session.Rolls),
		ExpiresAt: diceOutput.Session.ExpiresAt.Unix(),
		CreatedAt: diceOutput.Session.CreatedAt.Unix(),
	}, nil
}

// ClearRollSession removes a dice roll session
func (h *DiceHandler) ClearRollSession(
	ctx context.Context,
	req *apiv1alpha1.ClearRollSessionRequest,
) (*apiv1alpha1.ClearRollSessionResponse, error) {
	if err := validateSessionRef(req.GetEntityId(), req.GetContext()); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	diceOutput, err := h.diceService.ClearRollSession(ctx, &dice.ClearRollSessionInput{
		EntityID: req.GetEntityId(),
		Context:  req.GetContext(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &apiv1alpha1.ClearRollSessionResponse{
		Message:      "Roll session cleared successfully",
		RollsCleared: int32(diceOutput.RollsDeleted), // #nosec G115 -- session sizes are small
	}, nil
}

func validateSessionRef(entityID, rollContext string) error {
	if entityID == "" {
		return errors.InvalidArgument("entity_id is required")
	}
	if rollContext == "" {
		return errors.InvalidArgument("context is required")
	}
	return nil
}

func convertRolls(rolls []dicesession.DiceRoll) []*apiv1alpha1.DiceRoll {
	out := make([]*apiv1alpha1.DiceRoll, 0, len(rolls))
	for _, r := range rolls {
		out = append(out, &apiv1alpha1.DiceRoll{
			RollId:      r.RollID,
			Notation:    r.Notation,
			Dice:        toInt32s(r.Dice),
			Total:       int32(r.Total), // #nosec G115 -- bounded by dice limits
			Dropped:     toInt32s(r.Dropped),
			Description: r.Description,
			DiceTotal:   int32(r.DiceTotal), // #nosec G115 -- bounded by dice limits
			Modifier:    int32(r.Modifier),  // #nosec G115 -- bounded by dice limits
		})
	}
	return out
}

func toInt32s(values []int) []int32 {
	if values == nil {
		return nil
	}
	out := make([]int32, len(values))
	for i, v := range values {
		out[i] = int32(v) // #nosec G115 -- die faces
	}
	return out
}
