package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ageborn-dev/architect-mcp-cli/internal/api"
	"github.com/ageborn-dev/architect-mcp-cli/internal/cli"
)

func TestSetVersion(t *testing.T) {
	testVersion := "1.2.3-test"
	SetVersion(testVersion)

	if rootCmd.Version != testVersion {
		t.Errorf("Expected version to be %s, got %s", testVersion, rootCmd.Version)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "architect" {
		t.Errorf("Expected Use to be 'architect', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}
	if !rootCmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}
	if !rootCmd.SilenceErrors {
		t.Error("Expected SilenceErrors to be true")
	}
}

func TestVersionTemplate(t *testing.T) {
	testCmd := &cobra.Command{
		Use:     "test",
		Version: "1.0.0",
	}
	testCmd.SetVersionTemplate(`{{printf "architect version %s\n" .Version}}`)

	var buf bytes.Buffer
	testCmd.SetOut(&buf)
	testCmd.SetArgs([]string{"--version"})
	if err := testCmd.Execute(); err != nil {
		t.Fatalf("Error executing version command: %v", err)
	}
	if got := buf.String(); got != "architect version 1.0.0\n" {
		t.Errorf("unexpected version output: %q", got)
	}
}

func TestExpectedSubcommandsRegistered(t *testing.T) {
	expected := []string{"status", "tools", "marketplace", "server", "version"}
	for _, name := range expected {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestMarketplaceAlias(t *testing.T) {
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "marketplace" {
			if !sub.HasAlias("mp") {
				t.Error("expected marketplace command to have alias mp")
			}
			return
		}
	}
	t.Fatal("marketplace command not registered")
}

// execute runs the root command with the given args and returns the error.
// Output assertions are covered in the internal/cli tests; here we care about
// the error/exit semantics of whole invocations.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	return rootCmd.Execute()
}

func TestInstallReportedUnsuccessfulIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"conflict"}`))
	}))
	defer srv.Close()

	err := execute(t, "marketplace", "install", "foo", "--server", srv.URL)
	if err == nil {
		t.Fatal("expected install to fail when the server reports success=false")
	}
	if err.Error() != "conflict" {
		t.Errorf("expected the server message %q, got %q", "conflict", err.Error())
	}
}

func TestInstallSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if err := execute(t, "marketplace", "install", "foo", "--server", srv.URL); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestToolsSourceMissingToolFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"other-tool","active":true}]`))
	}))
	defer srv.Close()

	err := execute(t, "tools", "source", "missing-tool", "--server", srv.URL)
	if err == nil {
		t.Fatal("expected an error for a missing tool")
	}
	if !strings.Contains(err.Error(), "missing-tool") {
		t.Errorf("expected error to mention the tool name, got %q", err.Error())
	}
}

func TestUnreachableServerFailsWithConnectMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	err := execute(t, "tools", "list", "--server", baseURL)
	if err == nil {
		t.Fatal("expected an error against an unreachable server")
	}
	if !strings.Contains(err.Error(), "Cannot connect") {
		t.Errorf("expected connection message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "Make sure the server is running") {
		t.Errorf("expected actionable hint, got %q", err.Error())
	}
}

func TestEmptyCollectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if err := execute(t, "tools", "list", "--server", srv.URL); err != nil {
		t.Errorf("expected empty list to exit cleanly, got %v", err)
	}
	if err := execute(t, "server", "secrets", "--server", srv.URL); err != nil {
		t.Errorf("expected empty secrets to exit cleanly, got %v", err)
	}
}

func TestToolsStatsUnknownToolShowsEmptyState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"fetch-url":{"totalCalls":3,"successfulCalls":2,"failedCalls":1,"averageDurationMs":12.5}}`))
	}))
	defer srv.Close()

	var out, errOut bytes.Buffer
	restore := cli.SetOutput(&out, &errOut)
	defer restore()

	if err := execute(t, "tools", "stats", "no-such-tool", "--server", srv.URL); err != nil {
		t.Fatalf("expected a missing stats entry to exit cleanly, got %v", err)
	}
	if !strings.Contains(out.String(), "(no execution stats recorded)") {
		t.Errorf("expected the empty state line, got %q", out.String())
	}
}

func TestToolsListJSONBypassesFormatting(t *testing.T) {
	payload := `[{"name":"fetch-url","version":2,"active":true,"category":"web","tags":["http"]},{"name":"scrape-page","version":1,"active":false,"category":"web","tags":["http"]}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	var out, errOut bytes.Buffer
	restore := cli.SetOutput(&out, &errOut)
	defer restore()
	defer func() {
		toolsListActive = false
		toolsListJSON = false
	}()

	if err := execute(t, "tools", "list", "--active", "--json", "--server", srv.URL); err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}

	// Stdout must be exactly the pretty-printed filtered slice: no header, no
	// table, no status lines around it.
	var all []api.Tool
	if err := json.Unmarshal([]byte(payload), &all); err != nil {
		t.Fatal(err)
	}
	want, err := json.MarshalIndent(all[:1], "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != string(want)+"\n" {
		t.Errorf("stdout is not exactly the filtered JSON\nwant:\n%s\ngot:\n%s", want, got)
	}
	if errOut.Len() != 0 {
		t.Errorf("expected nothing on stderr, got %q", errOut.String())
	}
}
