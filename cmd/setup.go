package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shadorain/gcal/internal/auth"
	"github.com/shadorain/gcal/internal/client"
	"github.com/shadorain/gcal/internal/instrumentation"
	"github.com/shadorain/gcal/internal/logging"
)

// session bundles the authenticated dispatch client with the
// instrumentation provider that must be shut down when the command ends.
type session struct {
	client   *client.Client
	provider *instrumentation.Provider
}

func (s *session) close(ctx context.Context) {
	if err := s.provider.Shutdown(ctx); err != nil {
		slog.Warn("instrumentation shutdown failed", logging.Err(err))
	}
}

// newSession authenticates interactively and builds the dispatch client all
// commands share. Client credentials come from the environment; the token is
// obtained through the pasted-code flow and held in memory only.
func newSession(ctx context.Context) (*session, error) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := logging.Setup(os.Stderr, level)

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set")
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	oauth := auth.NewOAuth(clientID, clientSecret)
	tok, err := oauth.Naive(ctx, os.Stdin)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	opts := []client.Option{
		client.WithLogger(logger),
		client.WithMetrics(provider.Metrics()),
		client.WithTracer(provider.Tracer("gcal")),
	}
	if debugMode {
		opts = append(opts, client.WithDebug())
	}

	c, err := client.New(tok, oauth, opts...)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	return &session{client: c, provider: provider}, nil
}
