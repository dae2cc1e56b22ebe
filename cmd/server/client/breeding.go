package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
)

var incubatingOnly bool

var breedCmd = &cobra.Command{
	Use:   "breed [owner] [parent1-id] [parent2-id]",
	Short: "Breed two owned creatures into an egg",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.BreedResponse, error) {
			return c.Breed(ctx, &v1alpha1.BreedRequest{
				Owner:     args[0],
				Parent1ID: args[1],
				Parent2ID: args[2],
			})
		})
	},
}

var listEggsCmd = &cobra.Command{
	Use:   "list-eggs [owner]",
	Short: "List a wallet's eggs",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.ListEggsResponse, error) {
			return c.ListEggs(ctx, &v1alpha1.ListEggsRequest{Owner: args[0], IncubatingOnly: incubatingOnly})
		})
	},
}

var walkCmd = &cobra.Command{
	Use:   "walk [owner] [egg-id] [steps]",
	Short: "Add incubation steps to an egg",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		steps, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("steps must be a number: %w", err)
		}
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.AddStepsResponse, error) {
			return c.AddSteps(ctx, &v1alpha1.AddStepsRequest{Owner: args[0], EggID: args[1], Steps: steps})
		})
	},
}

var hatchCmd = &cobra.Command{
	Use:   "hatch [owner] [egg-id]",
	Short: "Hatch a ready egg",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.HatchEggResponse, error) {
			return c.HatchEgg(ctx, &v1alpha1.HatchEggRequest{Owner: args[0], EggID: args[1]})
		})
	},
}

func init() {
	listEggsCmd.Flags().BoolVar(&incubatingOnly, "incubating", false, "only show eggs still incubating")
}
