// Package logging provides structured logging for the architect CLI built on
// Go's standard slog package.
//
// Log entries carry a subsystem identifier (for example "API" or "Config") so
// debug output from different parts of the client can be told apart. The CLI
// initializes the package once at startup; the --debug flag lowers the filter
// level to Debug, otherwise only warnings and errors are emitted.
//
// All log output goes to stderr so it never interferes with command output,
// in particular with --json dumps that may be piped into other tools.
package logging
