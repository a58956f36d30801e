// Command restaurant runs the restaurant ordering and reservation API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/deppfellow/restaurant-backend/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "restaurant",
		Short:         "Multi-tenant restaurant ordering and reservation backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// loadConfig is shared by every subcommand; configuration only comes from
// RESTAURANT_* variables and an optional .env file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
