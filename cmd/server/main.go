// Package main is the entry point for the pokechain gRPC server and client
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokechain-api/cmd/server/client"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pokechain",
	Short: "Pokechain game-rules gRPC server",
	Long: `Pokechain resolves creature battles, captures, breeding and the
creature marketplace behind a gRPC interface.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
