package client

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
)

var (
	encounterSpecies string
	encounterLevel   int32
)

var encounterCmd = &cobra.Command{
	Use:   "encounter [owner]",
	Short: "Start a wild encounter, or show the current one with --show",
	Long: `Start a wild encounter for a wallet. Examples:

  encounter 0xabc...
  encounter 0xabc... --species aquafin --level 7
  encounter 0xabc... --show`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		show, _ := cmd.Flags().GetBool("show") // nolint:errcheck // flag is registered below
		if show {
			return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.GetEncounterResponse, error) {
				return c.GetEncounter(ctx, &v1alpha1.GetEncounterRequest{Owner: args[0]})
			})
		}
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.StartEncounterResponse, error) {
			return c.StartEncounter(ctx, &v1alpha1.StartEncounterRequest{
				Owner:     args[0],
				SpeciesID: encounterSpecies,
				Level:     encounterLevel,
			})
		})
	},
}

var attackCmd = &cobra.Command{
	Use:   "attack [owner] [creature-id] [move]",
	Short: "Resolve one battle turn",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.ExecuteTurnResponse, error) {
			return c.ExecuteTurn(ctx, &v1alpha1.ExecuteTurnRequest{
				Owner:      args[0],
				CreatureID: args[1],
				Move:       args[2],
			})
		})
	},
}

var fleeCmd = &cobra.Command{
	Use:   "flee [owner]",
	Short: "Abandon the current encounter",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.FleeResponse, error) {
			return c.Flee(ctx, &v1alpha1.FleeRequest{Owner: args[0]})
		})
	},
}

var captureCmd = &cobra.Command{
	Use:   "capture [owner]",
	Short: "Try to capture the wild creature in the current encounter",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.AttemptCaptureResponse, error) {
			return c.AttemptCapture(ctx, &v1alpha1.AttemptCaptureRequest{Owner: args[0]})
		})
	},
}

func init() {
	encounterCmd.Flags().StringVar(&encounterSpecies, "species", "", "species to spawn (random when empty)")
	encounterCmd.Flags().Int32Var(&encounterLevel, "level", 0, "wild creature level (server default when 0)")
	encounterCmd.Flags().Bool("show", false, "show the current encounter instead of starting one")
}
