// Package api implements the REST client for the Architect MCP server.
//
// The server owns all state (tools, marketplace, cache, schedules, webhooks,
// pipelines, secrets, audit log); this package only serializes requests to
// /api/* endpoints and decodes the JSON responses into the typed views in
// types.go. Decoding happens at this boundary: a body that does not match the
// expected shape becomes an ErrKindInvalidResponse error instead of leaking
// undefined fields into command code.
//
// Every failure is reported as a single *Error carrying a message ready for
// terminal display. Connection failures get a distinct kind so commands can
// tell "server not running" apart from other errors.
package api
