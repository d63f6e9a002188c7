// Package cli provides the terminal output helpers shared by all architect
// commands: colored status lines, labeled fields, headers, box-drawing
// tables, raw JSON dumps, and the progress spinner.
//
// The helpers are stateless and write straight to stdout (errors to stderr).
// Commands compose them per the fixed rendering template: --json bypasses all
// of them, empty collections render through EmptyState, everything else gets
// a Header with a Count followed by a Table or labeled blocks.
package cli
