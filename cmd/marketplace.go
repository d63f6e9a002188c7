package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
	"github.com/ageborn-dev/architect-mcp-cli/internal/cli"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	mpListJSON         bool
	mpBrowseQuery      string
	mpBrowseCategory   string
	mpBrowseJSON       bool
	mpSearchJSON       bool
	mpInstallOverwrite bool
)

func newMarketplaceCmd() *cobra.Command {
	mpCmd := &cobra.Command{
		Use:     "marketplace",
		Aliases: []string{"mp"},
		Short:   "Browse and install tools from the marketplace",
	}
	mpCmd.AddCommand(newMarketplaceListCmd())
	mpCmd.AddCommand(newMarketplaceBrowseCmd())
	mpCmd.AddCommand(newMarketplaceSearchCmd())
	mpCmd.AddCommand(newMarketplaceInstallCmd())
	return mpCmd
}

func marketplaceTable(entries []api.MarketplaceEntry) {
	rows := make([][]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []any{
			entry.Name,
			entry.Version,
			entry.Author,
			entry.Category,
			strings.Join(entry.Tags, ", "),
		})
	}
	cli.Table([]string{"Name", "Version", "Author", "Category", "Tags"}, rows)
}

func newMarketplaceListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List locally cached marketplace entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			entries, err := cli.WithSpinner("Fetching marketplace...", func() ([]api.MarketplaceEntry, error) {
				return client.MarketplaceLocal(cmd.Context())
			})
			if err != nil {
				return err
			}

			if mpListJSON {
				return cli.JSON(entries)
			}
			if len(entries) == 0 {
				cli.EmptyState("marketplace cache is empty")
				return nil
			}

			cli.Header(fmt.Sprintf("Marketplace (%s)", cli.Count(len(entries), "entry", "entries")))
			marketplaceTable(entries)
			return nil
		},
	}
	cmd.Flags().BoolVar(&mpListJSON, "json", false, "Output raw JSON")
	return cmd
}

func newMarketplaceBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the remote marketplace registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			// Query and category are only sent when the user provided them.
			entries, err := cli.WithSpinner("Browsing marketplace...", func() ([]api.MarketplaceEntry, error) {
				return client.MarketplaceRemote(cmd.Context(), mpBrowseQuery, mpBrowseCategory)
			})
			if err != nil {
				return err
			}

			if mpBrowseJSON {
				return cli.JSON(entries)
			}
			if len(entries) == 0 {
				cli.EmptyState("no marketplace entries found")
				return nil
			}

			cli.Header(fmt.Sprintf("Remote marketplace (%s)", cli.Count(len(entries), "entry", "entries")))
			marketplaceTable(entries)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mpBrowseQuery, "query", "q", "", "Search query")
	cmd.Flags().StringVarP(&mpBrowseCategory, "category", "c", "", "Filter by category")
	cmd.Flags().BoolVar(&mpBrowseJSON, "json", false, "Output raw JSON")
	return cmd
}

func newMarketplaceSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the remote marketplace registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			client := newAPIClient()

			entries, err := cli.WithSpinner("Searching marketplace...", func() ([]api.MarketplaceEntry, error) {
				return client.MarketplaceRemote(cmd.Context(), query, "")
			})
			if err != nil {
				return err
			}

			if mpSearchJSON {
				return cli.JSON(entries)
			}
			if len(entries) == 0 {
				cli.EmptyState("no matches for " + query)
				return nil
			}

			// Search renders detail blocks rather than a table.
			cli.Header(fmt.Sprintf("Results for %q (%s)", query, cli.Count(len(entries), "match", "matches")))
			for _, entry := range entries {
				fmt.Println()
				fmt.Printf("%s %s\n", text.Bold.Sprint(entry.Name), text.Faint.Sprint("v"+entry.Version))
				cli.Label("Author", entry.Author)
				cli.Label("Description", entry.Description)
				if len(entry.Tags) > 0 {
					cli.Label("Tags", strings.Join(entry.Tags, ", "))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&mpSearchJSON, "json", false, "Output raw JSON")
	return cmd
}

func newMarketplaceInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <name>",
		Short: "Install a tool from the marketplace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			client := newAPIClient()

			result, err := cli.WithSpinner(fmt.Sprintf("Installing %s...", name), func() (*api.InstallResult, error) {
				return client.InstallTool(cmd.Context(), name, mpInstallOverwrite)
			})
			if err != nil {
				return err
			}

			// The install outcome is the success flag in the body; a 200
			// response with success=false is still a failure.
			if !result.Success {
				if result.Message != "" {
					return errors.New(result.Message)
				}
				return fmt.Errorf("install of %q failed", name)
			}

			cli.Success(fmt.Sprintf("Installed %s", name))
			cli.Info("Run 'architect tools list' to see the new tool")
			return nil
		},
	}
	cmd.Flags().BoolVar(&mpInstallOverwrite, "overwrite", false, "Overwrite an existing tool with the same name")
	return cmd
}
