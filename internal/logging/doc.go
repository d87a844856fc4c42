// Package logging provides slog helpers shared across the codebase:
// consistent attribute constructors, token sanitizing, and handler setup.
//
// Diagnostic output always goes to the error stream, never stdout, and is
// observational only.
package logging
