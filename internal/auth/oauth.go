package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CalendarScope grants read/write access to calendars and events.
const CalendarScope = "https://www.googleapis.com/auth/calendar"

// OOB is the out-of-band redirect used by the naive CLI flow.
const oobRedirect = "urn:ietf:wg:oauth:2.0:oob"

// OAuth performs the credential exchange with Google's token endpoint. It is
// the refresher collaborator of the dispatch client: Refresh is invoked
// before every dispatch and owns the "is refresh needed" decision.
type OAuth struct {
	conf *oauth2.Config
}

// NewOAuth creates an OAuth exchanger for the given client credentials.
func NewOAuth(clientID, clientSecret string) *OAuth {
	return &OAuth{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  oobRedirect,
			Scopes:       []string{CalendarScope},
		},
	}
}

// Refresh exchanges the token for a fresh one when it is stale. The x/oauth2
// token source returns the cached token unchanged while it is still valid, so
// calling this before every request only costs a network round trip when a
// refresh is actually due. The caller must hold exclusive access to tok.
func (o *OAuth) Refresh(ctx context.Context, tok *Token) error {
	if tok.Valid() && tok.Refresh == "" {
		// Static token, nothing to exchange.
		return nil
	}

	fresh, err := o.conf.TokenSource(ctx, tok.oauth2Token()).Token()
	if err != nil {
		return fmt.Errorf("token refresh exchange failed: %w", err)
	}

	tok.fromOAuth2(fresh)
	return nil
}

// AuthURL returns the authorization URL the user must visit to grant access.
func (o *OAuth) AuthURL() string {
	return o.conf.AuthCodeURL("state", oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token.
func (o *OAuth) Exchange(ctx context.Context, code string) (Token, error) {
	t, err := o.conf.Exchange(ctx, code)
	if err != nil {
		return Token{}, fmt.Errorf("failed to exchange auth code: %w", err)
	}

	var tok Token
	tok.fromOAuth2(t)
	return tok, nil
}

// Naive runs the authorization-code flow interactively: it prints the
// authorization URL, reads the code from in, and exchanges it. Prompts are
// written to the diagnostic stream, not stdout.
func (o *OAuth) Naive(ctx context.Context, in io.Reader) (Token, error) {
	fmt.Fprintf(os.Stderr, "Visit the following URL, authorize the application, then paste the code here:\n%s\n> ", o.AuthURL())

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return Token{}, fmt.Errorf("failed to read auth code: %w", err)
	}

	return o.Exchange(ctx, strings.TrimSpace(code))
}
