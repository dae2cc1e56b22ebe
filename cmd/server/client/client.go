// Package client provides commands that exercise the pokechain gRPC service
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the pokechain API",
	Long:  `Client commands make real gRPC requests against a running pokechain server and print the JSON response.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Catalog
	ClientCmd.AddCommand(listSpeciesCmd)
	ClientCmd.AddCommand(listMovesCmd)

	// Collection
	ClientCmd.AddCommand(claimStarterCmd)
	ClientCmd.AddCommand(listCreaturesCmd)
	ClientCmd.AddCommand(getCreatureCmd)
	ClientCmd.AddCommand(healCmd)

	// Battle and capture
	ClientCmd.AddCommand(encounterCmd)
	ClientCmd.AddCommand(attackCmd)
	ClientCmd.AddCommand(fleeCmd)
	ClientCmd.AddCommand(captureCmd)

	// Breeding
	ClientCmd.AddCommand(breedCmd)
	ClientCmd.AddCommand(listEggsCmd)
	ClientCmd.AddCommand(walkCmd)
	ClientCmd.AddCommand(hatchCmd)

	// Marketplace
	ClientCmd.AddCommand(listCmd)
	ClientCmd.AddCommand(buyCmd)
	ClientCmd.AddCommand(cancelCmd)
	ClientCmd.AddCommand(searchCmd)
	ClientCmd.AddCommand(salesCmd)
}

// createClient dials the server and returns a client plus its cleanup
func createClient() (*v1alpha1.Client, func(), error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}
	return v1alpha1.NewClient(conn), cleanup, nil
}

// call runs fn with a connected client under the request timeout and prints
// the response
func call[Resp any](fn func(ctx context.Context, c *v1alpha1.Client) (Resp, error)) error {
	c, cleanup, err := createClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := fn(ctx, c)
	if err != nil {
		return err
	}
	return printJSON(resp)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
