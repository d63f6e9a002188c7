package cmd

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
	"github.com/ageborn-dev/architect-mcp-cli/internal/cli"

	"github.com/spf13/cobra"
)

var (
	toolsListActive   bool
	toolsListCategory string
	toolsListTag      string
	toolsListJSON     bool
	toolsSourceJSON   bool
	toolsStatsJSON    bool
)

func newToolsCmd() *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect tools registered on the server",
	}
	toolsCmd.AddCommand(newToolsListCmd())
	toolsCmd.AddCommand(newToolsSourceCmd())
	toolsCmd.AddCommand(newToolsStatsCmd())
	toolsCmd.AddCommand(newToolsReloadCmd())
	return toolsCmd
}

// toolFilter holds the optional, composable client-side predicates for
// `tools list`. All set predicates must match (logical AND).
type toolFilter struct {
	activeOnly bool
	category   string
	tag        string
}

func (f toolFilter) isEmpty() bool {
	return !f.activeOnly && f.category == "" && f.tag == ""
}

func (f toolFilter) matches(tool api.Tool) bool {
	if f.activeOnly && !tool.Active {
		return false
	}
	if f.category != "" && tool.Category != f.category {
		return false
	}
	if f.tag != "" && !slices.Contains(tool.Tags, f.tag) {
		return false
	}
	return true
}

// filterTools applies the filter to the fetched list. Filtering is purely
// client-side; the server always returns the full list.
func filterTools(tools []api.Tool, f toolFilter) []api.Tool {
	if f.isEmpty() {
		return tools
	}
	filtered := make([]api.Tool, 0, len(tools))
	for _, tool := range tools {
		if f.matches(tool) {
			filtered = append(filtered, tool)
		}
	}
	return filtered
}

func newToolsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			tools, err := cli.WithSpinner("Fetching tools...", func() ([]api.Tool, error) {
				return client.ListTools(cmd.Context())
			})
			if err != nil {
				return err
			}

			filtered := filterTools(tools, toolFilter{
				activeOnly: toolsListActive,
				category:   toolsListCategory,
				tag:        toolsListTag,
			})

			if toolsListJSON {
				return cli.JSON(filtered)
			}
			if len(filtered) == 0 {
				cli.EmptyState("no tools match")
				return nil
			}

			cli.Header(fmt.Sprintf("Tools (%s)", cli.Count(len(filtered), "tool")))
			rows := make([][]any, 0, len(filtered))
			for _, tool := range filtered {
				rows = append(rows, []any{
					tool.Name,
					fmt.Sprintf("v%d", tool.Version),
					cli.StatusBadge(tool.Active),
					tool.Category,
					strings.Join(tool.Tags, ", "),
					tool.Description,
				})
			}
			cli.Table([]string{"Name", "Version", "Status", "Category", "Tags", "Description"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&toolsListActive, "active", "a", false, "Show only active tools")
	cmd.Flags().StringVarP(&toolsListCategory, "category", "c", "", "Filter by category")
	cmd.Flags().StringVarP(&toolsListTag, "tag", "t", "", "Filter by tag membership")
	cmd.Flags().BoolVar(&toolsListJSON, "json", false, "Output raw JSON")
	return cmd
}

// findTool linear-searches the fetched list for an exact name match.
func findTool(tools []api.Tool, name string) (*api.Tool, error) {
	for i := range tools {
		if tools[i].Name == name {
			return &tools[i], nil
		}
	}
	return nil, fmt.Errorf("tool %q not found on the server", name)
}

func newToolsSourceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "source <name>",
		Short: "Show the source code of a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			client := newAPIClient()

			// There is no single-tool endpoint; fetch the full list and look
			// the tool up by name.
			tools, err := cli.WithSpinner("Fetching tools...", func() ([]api.Tool, error) {
				return client.ListTools(cmd.Context())
			})
			if err != nil {
				return err
			}

			tool, err := findTool(tools, name)
			if err != nil {
				return err
			}

			if toolsSourceJSON {
				return cli.JSON(tool)
			}

			cli.Header(tool.Name)
			cli.Label("Version", fmt.Sprintf("v%d", tool.Version))
			cli.Label("Category", tool.Category)
			if tool.Author != "" {
				cli.Label("Author", tool.Author)
			}
			if tool.Code == "" {
				cli.Warning("No source code available for this tool")
				return nil
			}
			fmt.Println()
			fmt.Println(tool.Code)
			return nil
		},
	}
	cmd.Flags().BoolVar(&toolsSourceJSON, "json", false, "Output raw JSON")
	return cmd
}

func newToolsStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [name]",
		Short: "Show execution stats for tools",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			// The server only has an all-tools endpoint; a name argument
			// filters the returned mapping client-side.
			stats, err := cli.WithSpinner("Fetching stats...", func() (map[string]api.ToolStats, error) {
				return client.ToolStats(cmd.Context())
			})
			if err != nil {
				return err
			}

			if len(args) == 1 {
				name := args[0]
				single := map[string]api.ToolStats{}
				if entry, ok := stats[name]; ok {
					single[name] = entry
				}
				stats = single
			}

			if toolsStatsJSON {
				return cli.JSON(stats)
			}
			if len(stats) == 0 {
				cli.EmptyState("no execution stats recorded")
				return nil
			}

			names := make([]string, 0, len(stats))
			for name := range stats {
				names = append(names, name)
			}
			sort.Strings(names)

			cli.Header(fmt.Sprintf("Execution stats (%s)", cli.Count(len(names), "tool")))
			rows := make([][]any, 0, len(names))
			for _, name := range names {
				entry := stats[name]
				rows = append(rows, []any{
					name,
					entry.TotalCalls,
					entry.SuccessRate(),
					fmt.Sprintf("%.0fms", entry.AverageDurationMs),
					formatTimestamp(entry.LastExecutedAt),
				})
			}
			cli.Table([]string{"Tool", "Calls", "Success", "Avg Duration", "Last Run"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&toolsStatsJSON, "json", false, "Output raw JSON")
	return cmd
}

func newToolsReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload tools from the server's tool directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			summary, err := cli.WithSpinner("Reloading tools...", func() (*api.ReloadSummary, error) {
				return client.ReloadTools(cmd.Context())
			})
			if err != nil {
				return err
			}

			// The success line is advisory; the counts below make a partial
			// failure visible.
			cli.Success("Tool reload complete")
			cli.Label("Loaded", summary.Loaded)
			cli.Label("Skipped", summary.Skipped)
			cli.Label("Failed", summary.Failed)
			return nil
		},
	}
}

// formatTimestamp renders an optional server timestamp, "-" when absent.
func formatTimestamp(ts string) string {
	if ts == "" {
		return "-"
	}
	return ts
}
