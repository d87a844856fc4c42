// Package cmd implements the command-line interface for gcal.
//
// This package provides the following commands:
//   - calendars: List the calendars on the authenticated account
//   - events: List upcoming events across visible calendars
//   - version: Display version information
//
// Commands authenticate through the OAuth device-less flow: the
// authorization URL is printed to stderr and the pasted code is exchanged
// for a token. Client credentials come from the GOOGLE_CLIENT_ID and
// GOOGLE_CLIENT_SECRET environment variables.
package cmd
