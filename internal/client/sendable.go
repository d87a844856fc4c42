package client

import (
	"fmt"
	"net/url"
)

// DefaultBaseURL is the fixed service endpoint requests are addressed
// against: host plus API version segment, with the resource path appended
// per descriptor.
const DefaultBaseURL = "https://www.googleapis.com/calendar/v3/"

// QueryParams is the query-parameter mapping a descriptor attaches to every
// request built from it. Insertion order is irrelevant; encoding sorts keys.
type QueryParams map[string]string

// Clone returns a copy so descriptor snapshots do not alias caller state.
func (q QueryParams) Clone() QueryParams {
	if q == nil {
		return nil
	}
	out := make(QueryParams, len(q))
	for k, v := range q {
		out[k] = v
	}
	return out
}

// Sendable is the resource-addressing capability: any value that can
// describe how to address and encode a single resource operation without
// performing I/O. Unrelated resource types share this contract and with it
// one transport path.
//
// All three methods must be pure data shaping: deterministic, side-effect
// free, never touching the network or the token store.
type Sendable interface {
	// Path returns the resource-relative path. A non-empty action is a
	// sub-operation name appended per resource-specific convention.
	Path(action string) string

	// Query returns query parameters attached to every request for this
	// descriptor instance.
	Query() QueryParams

	// BodyBytes produces the wire body for write verbs. GET and DELETE
	// ignore it.
	BodyBytes() ([]byte, error)
}

// resolveURL composes the absolute request URL from the base endpoint, the
// descriptor path, and the descriptor query. Only HTTPS endpoints are
// accepted.
func resolveURL(base *url.URL, target Sendable, action string) (*url.URL, error) {
	rel, err := url.Parse(target.Path(action))
	if err != nil {
		return nil, fmt.Errorf("invalid resource path: %w", err)
	}

	u := base.ResolveReference(rel)
	if u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q is not https", u.String())
	}

	q := u.Query()
	for k, v := range target.Query() {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u, nil
}
