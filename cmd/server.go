package cmd

import (
	"fmt"
	"strings"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
	"github.com/ageborn-dev/architect-mcp-cli/internal/cli"

	"github.com/spf13/cobra"
)

var (
	serverOverviewJSON    bool
	serverLogsLimit       int
	serverLogsTool        string
	serverLogsJSON        bool
	serverPermissionsJSON bool
	serverSchedulesJSON   bool
	serverWebhooksJSON    bool
	serverPipelinesJSON   bool
	serverSecretsJSON     bool
)

func newServerCmd() *cobra.Command {
	serverCmd := &cobra.Command{
		Use:   "server",
		Short: "Inspect server state: overview, logs, cache, and records",
	}
	serverCmd.AddCommand(newServerStatusCmd())
	serverCmd.AddCommand(newServerOverviewCmd())
	serverCmd.AddCommand(newServerLogsCmd())
	serverCmd.AddCommand(newCacheCmd())
	serverCmd.AddCommand(newServerPermissionsCmd())
	serverCmd.AddCommand(newServerSchedulesCmd())
	serverCmd.AddCommand(newServerWebhooksCmd())
	serverCmd.AddCommand(newServerPipelinesCmd())
	serverCmd.AddCommand(newServerSecretsCmd())
	return serverCmd
}

func newServerStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check whether the Architect server is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServerStatus(cmd.Context())
		},
	}
}

func newServerOverviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the server-wide counter snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			overview, err := cli.WithSpinner("Fetching overview...", func() (*api.Overview, error) {
				return client.Overview(cmd.Context())
			})
			if err != nil {
				return err
			}

			if serverOverviewJSON {
				return cli.JSON(overview)
			}

			cli.Header("Server overview")
			cli.Label("Total tools", overview.TotalTools)
			cli.Label("Active tools", overview.ActiveTools)
			cli.Label("Total calls", overview.TotalCalls)
			cli.Label("Successful", overview.TotalSuccess)
			cli.Label("Failed", overview.TotalFailed)
			cli.Label("Cache hit rate", formatPercent(overview.CacheHitRate))
			cli.Label("Schedules", overview.SchedulesCount)
			cli.Label("Webhooks", overview.WebhooksCount)
			cli.Label("Pipelines", overview.PipelinesCount)
			cli.Label("Aliases", overview.AliasesCount)
			return nil
		},
	}
	cmd.Flags().BoolVar(&serverOverviewJSON, "json", false, "Output raw JSON")
	return cmd
}

func newServerLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the server audit log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			entries, err := cli.WithSpinner("Fetching audit log...", func() ([]api.AuditEntry, error) {
				return client.AuditLog(cmd.Context(), serverLogsLimit, serverLogsTool)
			})
			if err != nil {
				return err
			}

			if serverLogsJSON {
				return cli.JSON(entries)
			}
			if len(entries) == 0 {
				cli.EmptyState("no audit entries")
				return nil
			}

			// Entries are shown in server order.
			cli.Header(fmt.Sprintf("Audit log (%s)", cli.Count(len(entries), "entry", "entries")))
			rows := make([][]any, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []any{
					entry.Timestamp,
					entry.Action,
					entry.ToolName,
					formatDurationMs(entry.DurationMs),
				})
			}
			cli.Table([]string{"Timestamp", "Action", "Tool", "Duration"}, rows)
			return nil
		},
	}
	cmd.Flags().IntVarP(&serverLogsLimit, "limit", "n", 50, "Maximum number of entries")
	cmd.Flags().StringVarP(&serverLogsTool, "tool", "t", "", "Filter by tool name")
	cmd.Flags().BoolVar(&serverLogsJSON, "json", false, "Output raw JSON")
	return cmd
}

func newServerPermissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "List approved tool permissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			records, err := cli.WithSpinner("Fetching permissions...", func() ([]api.PermissionRecord, error) {
				return client.Permissions(cmd.Context())
			})
			if err != nil {
				return err
			}

			if serverPermissionsJSON {
				return cli.JSON(records)
			}
			if len(records) == 0 {
				cli.EmptyState("no permissions recorded")
				return nil
			}

			cli.Header(fmt.Sprintf("Permissions (%s)", cli.Count(len(records), "record")))
			rows := make([][]any, 0, len(records))
			for _, record := range records {
				rows = append(rows, []any{
					record.ToolName,
					record.Permission,
					record.Approved,
					record.ApprovedAt,
				})
			}
			cli.Table([]string{"Tool", "Permission", "Approved", "Approved At"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&serverPermissionsJSON, "json", false, "Output raw JSON")
	return cmd
}

func newServerSchedulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedules",
		Short: "List configured schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			records, err := cli.WithSpinner("Fetching schedules...", func() ([]api.ScheduleRecord, error) {
				return client.Schedules(cmd.Context())
			})
			if err != nil {
				return err
			}

			if serverSchedulesJSON {
				return cli.JSON(records)
			}
			if len(records) == 0 {
				cli.EmptyState("no schedules configured")
				return nil
			}

			cli.Header(fmt.Sprintf("Schedules (%s)", cli.Count(len(records), "schedule")))
			rows := make([][]any, 0, len(records))
			for _, record := range records {
				rows = append(rows, []any{
					record.ToolName,
					record.CronExpression,
					cli.StatusBadge(record.Enabled),
					formatTimestamp(record.LastRunAt),
					formatTimestamp(record.NextRunAt),
				})
			}
			cli.Table([]string{"Tool", "Cron", "Status", "Last Run", "Next Run"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&serverSchedulesJSON, "json", false, "Output raw JSON")
	return cmd
}

func newServerWebhooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "List registered webhooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			records, err := cli.WithSpinner("Fetching webhooks...", func() ([]api.WebhookRecord, error) {
				return client.Webhooks(cmd.Context())
			})
			if err != nil {
				return err
			}

			if serverWebhooksJSON {
				return cli.JSON(records)
			}
			if len(records) == 0 {
				cli.EmptyState("no webhooks registered")
				return nil
			}

			cli.Header(fmt.Sprintf("Webhooks (%s)", cli.Count(len(records), "webhook")))
			rows := make([][]any, 0, len(records))
			for _, record := range records {
				rows = append(rows, []any{
					record.Name,
					record.URL,
					strings.Join(record.Events, ", "),
					cli.StatusBadge(record.Active),
				})
			}
			cli.Table([]string{"Name", "URL", "Events", "Status"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&serverWebhooksJSON, "json", false, "Output raw JSON")
	return cmd
}

func newServerPipelinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipelines",
		Short: "List configured pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			records, err := cli.WithSpinner("Fetching pipelines...", func() ([]api.PipelineRecord, error) {
				return client.Pipelines(cmd.Context())
			})
			if err != nil {
				return err
			}

			if serverPipelinesJSON {
				return cli.JSON(records)
			}
			if len(records) == 0 {
				cli.EmptyState("no pipelines configured")
				return nil
			}

			cli.Header(fmt.Sprintf("Pipelines (%s)", cli.Count(len(records), "pipeline")))
			rows := make([][]any, 0, len(records))
			for _, record := range records {
				rows = append(rows, []any{
					record.Name,
					cli.Count(len(record.Steps), "step"),
					strings.Join(record.Steps, " → "),
					cli.StatusBadge(record.Active),
				})
			}
			cli.Table([]string{"Name", "Steps", "Sequence", "Status"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&serverPipelinesJSON, "json", false, "Output raw JSON")
	return cmd
}

func newServerSecretsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "List stored secret names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := newAPIClient()

			// Only names and timestamps are ever shown; SecretRecord cannot
			// carry a value.
			records, err := cli.WithSpinner("Fetching secrets...", func() ([]api.SecretRecord, error) {
				return client.Secrets(cmd.Context())
			})
			if err != nil {
				return err
			}

			if serverSecretsJSON {
				return cli.JSON(records)
			}
			if len(records) == 0 {
				cli.EmptyState("no secrets stored")
				return nil
			}

			cli.Header(fmt.Sprintf("Secrets (%s)", cli.Count(len(records), "secret")))
			rows := make([][]any, 0, len(records))
			for _, record := range records {
				rows = append(rows, []any{
					record.Name,
					record.CreatedAt,
					record.UpdatedAt,
				})
			}
			cli.Table([]string{"Name", "Created", "Updated"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&serverSecretsJSON, "json", false, "Output raw JSON")
	return cmd
}

// formatDurationMs renders an optional duration in milliseconds, "-" when the
// audit entry carries none.
func formatDurationMs(ms *float64) string {
	if ms == nil {
		return "-"
	}
	return fmt.Sprintf("%.0fms", *ms)
}
