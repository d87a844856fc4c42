package auth

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// expirySkew is subtracted from the expiry when deciding validity so that a
// token is never presented moments before the remote service rejects it.
const expirySkew = time.Minute

// Token is an OAuth2 access token with its refresh companion.
// It is owned by a Store; the refresher is the only writer.
type Token struct {
	// Access is the opaque bearer value sent in the Authorization header.
	Access string

	// Refresh is the long-lived token used by the refresh exchange.
	// Empty for static tokens that cannot be refreshed.
	Refresh string

	// Expiry is the access token expiration time. The zero value means the
	// expiry is unknown and the token is treated as valid.
	Expiry time.Time
}

// Valid reports whether the access value is present and not expired.
func (t Token) Valid() bool {
	if t.Access == "" {
		return false
	}
	if t.Expiry.IsZero() {
		return true
	}
	return time.Now().Before(t.Expiry.Add(-expirySkew))
}

// oauth2Token converts to the x/oauth2 representation for the refresh exchange.
func (t Token) oauth2Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  t.Access,
		TokenType:    "Bearer",
		RefreshToken: t.Refresh,
		Expiry:       t.Expiry,
	}
}

// fromOAuth2 replaces the token contents from an x/oauth2 token. The refresh
// value is kept when the exchange did not rotate it.
func (t *Token) fromOAuth2(tok *oauth2.Token) {
	t.Access = tok.AccessToken
	t.Expiry = tok.Expiry
	if tok.RefreshToken != "" {
		t.Refresh = tok.RefreshToken
	}
}

// Store is a read/write-guarded cell holding the current Token. One Store is
// shared by reference between a dispatch client and every typed resource
// client derived from it. Concurrent readers proceed simultaneously; a
// refresh is the single writer and excludes everything for the duration of
// the update.
type Store struct {
	mu  sync.RWMutex
	tok Token
}

// NewStore creates a Store holding the initial token.
func NewStore(tok Token) *Store {
	return &Store{tok: tok}
}

// Access returns the current bearer value under a read lock.
func (s *Store) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok.Access
}

// Current returns a snapshot of the stored token.
func (s *Store) Current() Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tok
}

// Replace swaps the stored token.
func (s *Store) Replace(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = tok
}

// Update runs fn with exclusive access to the stored token. The write lock is
// held for the whole callback, so no reader observes a token mid-refresh. If
// fn returns an error any mutation it made is still kept; a refresh that
// partially completed before failing leaves the previous token untouched by
// convention of the refresher.
func (s *Store) Update(fn func(*Token) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.tok)
}
