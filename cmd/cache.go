package cmd

import (
	"fmt"
	"sort"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
	"github.com/ageborn-dev/architect-mcp-cli/internal/cli"

	"github.com/spf13/cobra"
)

var cacheStatsJSON bool

func newCacheCmd() *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and clear the server result cache",
	}
	cacheCmd.AddCommand(newCacheStatsCmd())
	cacheCmd.AddCommand(newCacheClearCmd())
	return cacheCmd
}

func newCacheStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			stats, err := cli.WithSpinner("Fetching cache stats...", func() (*api.CacheStats, error) {
				return client.CacheStats(cmd.Context())
			})
			if err != nil {
				return err
			}

			if cacheStatsJSON {
				return cli.JSON(stats)
			}

			cli.Header("Cache stats")
			cli.Label("Entries", stats.TotalEntries)
			cli.Label("Hits", stats.Hits)
			cli.Label("Misses", stats.Misses)
			cli.Label("Hit rate", formatPercent(stats.HitRate))

			if len(stats.Entries) > 0 {
				names := make([]string, 0, len(stats.Entries))
				for name := range stats.Entries {
					names = append(names, name)
				}
				sort.Strings(names)

				rows := make([][]any, 0, len(names))
				for _, name := range names {
					rows = append(rows, []any{name, stats.Entries[name]})
				}
				cli.Table([]string{"Tool", "Entries"}, rows)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&cacheStatsJSON, "json", false, "Output raw JSON")
	return cmd
}

func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [tool]",
		Short: "Clear cached results, optionally for a single tool",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := ""
			if len(args) == 1 {
				tool = args[0]
			}
			client := newAPIClient()

			label := "Clearing cache..."
			if tool != "" {
				label = fmt.Sprintf("Clearing cache for %s...", tool)
			}
			result, err := cli.WithSpinner(label, func() (*api.ClearResult, error) {
				return client.ClearCache(cmd.Context(), tool)
			})
			if err != nil {
				return err
			}

			cli.Success(fmt.Sprintf("Cleared %s", cli.Count(result.Cleared, "cache entry", "cache entries")))
			return nil
		},
	}
}
