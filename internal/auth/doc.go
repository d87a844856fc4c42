// Package auth manages OAuth2 credentials for the Google Calendar API.
//
// It provides the shared token store used by the dispatch client, the
// refresher that exchanges stale credentials for fresh ones, and a naive
// authorization-code flow for CLI usage.
//
// The token acquisition UI beyond the stdin prompt is out of scope; callers
// supply client credentials at construction time.
package auth
