package client

import (
	"errors"
	"fmt"
)

// Kind classifies a dispatch failure so callers can choose between retrying,
// re-authenticating, or aborting.
type Kind int

const (
	// KindTransportInit means the underlying transport could not be built.
	// Fatal, surfaced at construction.
	KindTransportInit Kind = iota + 1

	// KindTransport is a network-level failure. The caller may retry.
	KindTransport

	// KindURL means the base endpoint, path, and query could not be composed
	// into a valid URL.
	KindURL

	// KindSerialization means the descriptor body could not be encoded.
	KindSerialization

	// KindHeaderDecode means a response header was not valid text.
	KindHeaderDecode

	// KindInvalidToken means the remote service rejected the bearer
	// credential. A fresh negotiation is required; retrying with the same
	// token will not succeed.
	KindInvalidToken

	// KindAuth means the refresh exchange itself failed.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindTransportInit:
		return "transport init"
	case KindTransport:
		return "transport"
	case KindURL:
		return "url"
	case KindSerialization:
		return "serialization"
	case KindHeaderDecode:
		return "header decode"
	case KindInvalidToken:
		return "invalid token"
	case KindAuth:
		return "auth"
	}
	return "unknown"
}

// Error is the typed failure value returned by the dispatch client.
type Error struct {
	// Op is the HTTP method or operation that failed.
	Op string

	// Kind classifies the failure.
	Kind Kind

	// Err is the underlying cause, nil for pure classification errors such
	// as an invalid token.
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or zero if err is not a dispatch Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}

// IsInvalidToken reports whether err signals a credential rejected by the
// remote service.
func IsInvalidToken(err error) bool {
	return KindOf(err) == KindInvalidToken
}

// IsAuth reports whether err originated in the refresh exchange.
func IsAuth(err error) bool {
	return KindOf(err) == KindAuth
}
