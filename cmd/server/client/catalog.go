package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
)

var listSpeciesCmd = &cobra.Command{
	Use:   "list-species",
	Short: "List every species in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.ListSpeciesResponse, error) {
			return c.ListSpecies(ctx, &v1alpha1.ListSpeciesRequest{})
		})
	},
}

var listMovesCmd = &cobra.Command{
	Use:   "list-moves",
	Short: "List every move in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.ListMovesResponse, error) {
			return c.ListMoves(ctx, &v1alpha1.ListMovesRequest{})
		})
	},
}
