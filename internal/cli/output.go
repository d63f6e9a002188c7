package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/text"
)

// stdout and stderr are swappable for tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects the package writers and returns a function restoring
// the previous ones. Tests use it to capture command output.
func SetOutput(out, errOut io.Writer) func() {
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	return func() {
		stdout, stderr = prevOut, prevErr
	}
}

// Success prints a green checkmark status line.
func Success(msg string) {
	fmt.Fprintf(stdout, "%s %s\n", text.FgGreen.Sprint("✓"), msg)
}

// Error prints a red cross status line to stderr.
func Error(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", text.FgRed.Sprint("✗"), msg)
}

// Warning prints a yellow warning status line.
func Warning(msg string) {
	fmt.Fprintf(stdout, "%s %s\n", text.FgYellow.Sprint("⚠"), msg)
}

// Info prints a blue informational status line.
func Info(msg string) {
	fmt.Fprintf(stdout, "%s %s\n", text.FgBlue.Sprint("ℹ"), msg)
}

// Label prints a single dimmed-key value line.
func Label(key string, value any) {
	fmt.Fprintf(stdout, "%s %v\n", text.Faint.Sprintf("%s:", key), value)
}

// Header prints a bold section title with a dashed underline, preceded by a
// blank line.
func Header(title string) {
	fmt.Fprintf(stdout, "\n%s\n%s\n", text.Bold.Sprint(title), strings.Repeat("-", utf8.RuneCountInString(title)))
}

// JSON pretty-prints v with two-space indentation. Used by every --json path;
// nothing else may be written to stdout alongside it.
func JSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}

// StatusBadge returns a short colored label for an active/inactive flag.
func StatusBadge(active bool) string {
	if active {
		return text.FgGreen.Sprint("active")
	}
	return text.Faint.Sprint("inactive")
}

// EmptyState prints the neutral rendering for a successfully fetched but
// empty collection. Listing commands use this instead of an empty table.
func EmptyState(msg string) {
	fmt.Fprintln(stdout, text.Faint.Sprintf("  (%s)", msg))
}

// Count formats n with a pluralized noun. The plural defaults to the
// singular plus "s" when not given.
func Count(n int, singular string, plural ...string) string {
	noun := singular + "s"
	if len(plural) > 0 {
		noun = plural[0]
	}
	if n == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", n, noun)
}
