package client

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var rollDescription string

var rollDiceCmd = &cobra.Command{
	Use:   "roll-dice [notation] [entity-id] [context]",
	Short: "Roll dice into a session",
	Long: `Roll dice and add them to the entity's session. Examples:

  roll-dice 4d6 char-123 ability_scores
  roll-dice 1d20+5 char-456 attack
  roll-dice 2d8 char-789 damage --description "sneak attack"`,
	Args: cobra.ExactArgs(3),
	RunE: rollDice,
}

func init() {
	rollDiceCmd.Flags().StringVar(&rollDescription, "description", "", "Description stored with the roll")
}

func rollDice(_ *cobra.Command, args []string) error {
	notation := args[0]
	entityID := args[1]
	rollContext := args[2]

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Printf("Rolling %s for entity %s (context: %s)...\n", notation, entityID, rollContext)

	resp, err := client.RollDice(ctx, &apiv1alpha1.RollDiceRequest{
		EntityId:            entityID,
		Context:             rollContext,
		Notation:            notation,
		ModifierDescription: rollDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to roll dice: %w", err)
	}

	fmt.Printf("\nDice Roll Results:\n")
	fmt.Printf("==================\n")
	printRolls(resp.Rolls)

	fmt.Printf("\nSession expires at: %d\n", resp.ExpiresAt)
	fmt.Printf("Total rolls in session: %d\n", len(resp.Rolls))

	return nil
}
