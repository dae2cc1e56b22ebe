package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
)

var claimStarterCmd = &cobra.Command{
	Use:   "claim-starter [owner] [species-id]",
	Short: "Claim a level 5 starter creature",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.ClaimStarterResponse, error) {
			return c.ClaimStarter(ctx, &v1alpha1.ClaimStarterRequest{Owner: args[0], SpeciesID: args[1]})
		})
	},
}

var listCreaturesCmd = &cobra.Command{
	Use:   "list-creatures [owner]",
	Short: "List the creatures a wallet owns",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.ListCreaturesResponse, error) {
			return c.ListCreatures(ctx, &v1alpha1.ListCreaturesRequest{Owner: args[0]})
		})
	},
}

var getCreatureCmd = &cobra.Command{
	Use:   "get-creature [creature-id]",
	Short: "Show one creature",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.GetCreatureResponse, error) {
			return c.GetCreature(ctx, &v1alpha1.GetCreatureRequest{CreatureID: args[0]})
		})
	},
}

var healCmd = &cobra.Command{
	Use:   "heal [owner] [creature-id]",
	Short: "Restore a creature to full health",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.HealCreatureResponse, error) {
			return c.HealCreature(ctx, &v1alpha1.HealCreatureRequest{Owner: args[0], CreatureID: args[1]})
		})
	},
}
