package cmd

import (
	"os"
	"strings"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
	"github.com/ageborn-dev/architect-mcp-cli/internal/cli"
	"github.com/ageborn-dev/architect-mcp-cli/internal/config"
	"github.com/ageborn-dev/architect-mcp-cli/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
)

// Global flags shared by every command.
var (
	serverURL string
	debugMode bool
)

// rootCmd represents the base command for the architect application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "architect",
	Short: "Command-line client for the Architect MCP server",
	Long: `architect talks to a running Architect MCP server over its REST API
and renders tools, marketplace entries, and server state in the terminal.

The server URL is resolved from --server, the ` + config.ServerURLEnvVar + `
environment variable, the config file, or the default ` + config.DefaultServerURL + `.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application. SilenceErrors lets Execute render
	// every handled error as a single red line on stderr.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelWarn
		if debugMode {
			level = logging.LevelDebug
		}
		logging.Init(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the
// application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application. Every handled
// error prints as one red line on stderr and exits with code 1; empty results
// are not errors and exit 0.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "architect version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		cli.Error(err.Error())
		if strings.Contains(err.Error(), "unknown command") {
			cli.Error("Run 'architect --help' for usage.")
		}
		os.Exit(ExitCodeError)
	}
}

// newAPIClient resolves the effective configuration and constructs the REST
// client used for one command invocation. The client is built explicitly here
// and handed to the command body rather than living in package state.
func newAPIClient() *api.Client {
	cfg := config.Resolve(serverURL)
	return api.NewClient(cfg.ServerURL)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Architect server URL (env: "+config.ServerURLEnvVar+")")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging of HTTP requests")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newMarketplaceCmd())
	rootCmd.AddCommand(newServerCmd())
	rootCmd.AddCommand(newVersionCmd())
}
