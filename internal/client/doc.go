// Package client implements the request-dispatch layer for the Google
// Calendar API.
//
// Every HTTP call flows through a single Client: it resolves a Sendable
// resource descriptor into a signed request, refreshes the shared credential
// before each dispatch, and classifies authentication failures distinctly
// from ordinary error responses. Typed resource clients in the resources
// package are thin façades over this one.
//
// The client never retries: a rejected credential surfaces as an
// InvalidToken error so the caller can decide between retry and
// re-authentication.
package client
