package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValid(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want bool
	}{
		{
			name: "empty token",
			tok:  Token{},
			want: false,
		},
		{
			name: "no expiry",
			tok:  Token{Access: "abc"},
			want: true,
		},
		{
			name: "expired",
			tok:  Token{Access: "abc", Expiry: time.Now().Add(-time.Hour)},
			want: false,
		},
		{
			name: "expiring within skew",
			tok:  Token{Access: "abc", Expiry: time.Now().Add(10 * time.Second)},
			want: false,
		},
		{
			name: "valid",
			tok:  Token{Access: "abc", Expiry: time.Now().Add(time.Hour)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tok.Valid())
		})
	}
}

func TestStoreReplaceAndRead(t *testing.T) {
	store := NewStore(Token{Access: "abc", Refresh: "r1"})

	assert.Equal(t, "abc", store.Access())

	store.Replace(Token{Access: "def"})
	assert.Equal(t, "def", store.Access())
	assert.Equal(t, Token{Access: "def"}, store.Current())
}

func TestStoreUpdateExcludesReaders(t *testing.T) {
	store := NewStore(Token{Access: "stale"})

	inUpdate := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = store.Update(func(tok *Token) error {
			close(inUpdate)
			<-release
			tok.Access = "fresh"
			return nil
		})
	}()

	<-inUpdate

	// A reader started while the writer holds the lock must observe the
	// fully updated token, never the intermediate state.
	done := make(chan string)
	go func() {
		done <- store.Access()
	}()

	select {
	case got := <-done:
		t.Fatalf("reader returned %q while writer held the lock", got)
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	assert.Equal(t, "fresh", <-done)
}

func TestStoreConcurrentReaders(t *testing.T) {
	store := NewStore(Token{Access: "abc"})

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				require.NotEmpty(t, store.Access())
			}
		}()
	}

	for range 10 {
		_ = store.Update(func(tok *Token) error {
			tok.Access = "abc"
			return nil
		})
	}
	wg.Wait()
}

func TestTokenFromOAuth2KeepsRefresh(t *testing.T) {
	tok := Token{Access: "old", Refresh: "keep-me"}

	tok.fromOAuth2(tok.oauth2Token())
	assert.Equal(t, "keep-me", tok.Refresh)

	fresh := tok.oauth2Token()
	fresh.AccessToken = "new"
	fresh.RefreshToken = ""
	tok.fromOAuth2(fresh)

	assert.Equal(t, "new", tok.Access)
	assert.Equal(t, "keep-me", tok.Refresh, "refresh value survives an exchange that did not rotate it")
}
