package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
	"github.com/ageborn-dev/architect-mcp-cli/internal/cli"

	"github.com/spf13/cobra"
)

// newStatusCmd creates the top-level status command. It shares its body with
// `architect server status`.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the Architect server is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServerStatus(cmd.Context())
		},
	}
}

// runServerStatus treats any successful overview fetch as "server running".
// A connection-kind failure gets a specific "not running" message; every
// other failure surfaces as-is.
func runServerStatus(ctx context.Context) error {
	client := newAPIClient()

	overview, err := cli.WithSpinner("Checking server...", func() (*api.Overview, error) {
		return client.Overview(ctx)
	})
	if err != nil {
		if errors.Is(err, &api.Error{Kind: api.ErrKindConnection}) {
			return fmt.Errorf("server is not running at %s (start it, or point the CLI elsewhere with --server)", client.BaseURL())
		}
		return err
	}

	cli.Success(fmt.Sprintf("Server running at %s", client.BaseURL()))
	cli.Label("Tools", fmt.Sprintf("%d (%d active)", overview.TotalTools, overview.ActiveTools))
	cli.Label("Calls", fmt.Sprintf("%d total, %d failed", overview.TotalCalls, overview.TotalFailed))
	cli.Label("Cache hit rate", formatPercent(overview.CacheHitRate))
	return nil
}

// formatPercent renders a 0..1 rate as a percentage with one decimal.
func formatPercent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}
