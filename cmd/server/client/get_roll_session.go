package client

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apiv1alpha1 "github.com/KirkDiggler/rpg-api-protos/gen/go/clients/api/v1alpha1"
)

var getRollSessionCmd = &cobra.Command{
	Use:   "get-roll-session [entity-id] [context]",
	Short: "Show an existing dice roll session",
	Long: `Retrieve all dice rolls for a specific entity and context. Examples:

  get-roll-session char-123 ability_scores
  get-roll-session char-456 combat`,
	Args: cobra.ExactArgs(2),
	RunE: getRollSession,
}

var clearRollSessionCmd = &cobra.Command{
	Use:   "clear-roll-session [entity-id] [context]",
	Short: "Delete a dice roll session",
	Args:  cobra.ExactArgs(2),
	RunE:  clearRollSession,
}

func getRollSession(_ *cobra.Command, args []string) error {
	entityID := args[0]
	rollContext := args[1]

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fmt.Printf("Getting roll session for entity %s (context: %s)...\n", entityID, rollContext)

	resp, err := client.GetRollSession(ctx, &apiv1alpha1.GetRollSessionRequest{
		EntityId: entityID,
		Context:  rollContext,
	})
	if err != nil {
		return fmt.Errorf("failed to get roll session: %w", err)
	}

	fmt.Printf("\nRoll Session:\n")
	fmt.Printf("=============\n")

	createdAt := time.Unix(resp.CreatedAt, 0)
	expiresAt := time.Unix(resp.ExpiresAt, 0)

	fmt.Printf("Created: %s\n", createdAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Expires: %s\n", expiresAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Total Rolls: %d\n", len(resp.Rolls))
	printRolls(resp.Rolls)

	return nil
}

func clearRollSession(_ *cobra.Command, args []string) error {
	entityID := args[0]
	rollContext := args[1]

	client, cleanup, err := createDiceClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.ClearRollSession(ctx, &apiv1alpha1.ClearRollSessionRequest{
		EntityId: entityID,
		Context:  rollContext,
	})
	if err != nil {
		return fmt.Errorf("failed to clear roll session: %w", err)
	}

	fmt.Printf("%s (%d rolls cleared)\n", resp.Message, resp.RollsCleared)
	return nil
}
