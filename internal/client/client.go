package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/shadorain/gcal/internal/auth"
	"github.com/shadorain/gcal/internal/instrumentation"
	"github.com/shadorain/gcal/internal/logging"
)

// invalidTokenMarker is the WWW-Authenticate prefix Google sends when the
// bearer credential is no longer usable.
const invalidTokenMarker = `Bearer error="invalid_token"`

// Refresher exchanges a stale credential for a fresh one. It is invoked with
// exclusive access to the shared token before every dispatch; the refresher
// itself owns the "is refresh needed" decision.
type Refresher interface {
	Refresh(ctx context.Context, tok *auth.Token) error
}

// Client is the single chokepoint through which every Calendar API call
// flows. It owns the HTTP transport, the shared token store, and credential
// refresh orchestration. One Client is constructed per authenticated session
// and shared by reference across all typed resource clients derived from it.
//
// The transport negotiates gzip and accepts HTTPS endpoints only.
type Client struct {
	http      *http.Client
	baseURL   *url.URL
	headers   http.Header
	tokens    *auth.Store
	refresher Refresher

	debug   bool
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	tracer  trace.Tracer
}

// Option configures a Client at construction time.
type Option func(*Client) error

// WithBaseURL overrides the service endpoint. Must be HTTPS and end with a
// trailing slash so resource paths resolve underneath it.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller is
// responsible for the transport's TLS configuration.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.http = hc
		return nil
	}
}

// WithHeaders sets a fixed header set attached to every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) error {
		c.headers = h
		return nil
	}
}

// WithDebug enables the per-request diagnostic line on the error stream.
func WithDebug() Option {
	return func(c *Client) error {
		c.debug = true
		return nil
	}
}

// WithLogger sets the logger used for the debug diagnostic.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithMetrics enables per-request metrics recording.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(c *Client) error {
		c.metrics = m
		return nil
	}
}

// WithTracer enables span creation around each dispatch.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) error {
		c.tracer = t
		return nil
	}
}

// New creates a Client from an initial token. The refresher may be nil, in
// which case the token is used as-is for the lifetime of the client.
func New(tok auth.Token, refresher Refresher, opts ...Option) (*Client, error) {
	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, &Error{Op: "new", Kind: KindTransportInit, Err: err}
	}

	c := &Client{
		baseURL:   base,
		tokens:    auth.NewStore(tok),
		refresher: refresher,
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer("gcal"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, &Error{Op: "new", Kind: KindTransportInit, Err: err}
		}
	}

	if c.baseURL.Scheme != "https" {
		return nil, &Error{Op: "new", Kind: KindTransportInit, Err: fmt.Errorf("base URL %q is not https", c.baseURL)}
	}

	if c.http == nil {
		// The default transport negotiates gzip transparently. HTTP/1.1 is
		// forced to avoid HTTP/2 protocol errors against Google endpoints.
		c.http = &http.Client{
			Transport: &http.Transport{
				ForceAttemptHTTP2: false,
				Proxy:             http.ProxyFromEnvironment,
			},
		}
	}

	return c, nil
}

// TokenStore returns the shared token store. Derived typed resource clients
// hold the same owning reference through this Client.
func (c *Client) TokenStore() *auth.Store {
	return c.tokens
}

// Metrics returns the metrics recorder, which may be nil. The recorder is
// nil-safe, so derived clients can use it without checking.
func (c *Client) Metrics() *instrumentation.Metrics {
	return c.metrics
}

// Get performs a GET request for the target descriptor.
func (c *Client) Get(ctx context.Context, action string, target Sendable) (*http.Response, error) {
	return c.dispatch(ctx, http.MethodGet, action, target, false)
}

// Post performs a POST request with the descriptor body.
func (c *Client) Post(ctx context.Context, action string, target Sendable) (*http.Response, error) {
	return c.dispatch(ctx, http.MethodPost, action, target, true)
}

// Put performs a PUT request with the descriptor body.
func (c *Client) Put(ctx context.Context, action string, target Sendable) (*http.Response, error) {
	return c.dispatch(ctx, http.MethodPut, action, target, true)
}

// Patch performs a PATCH request with the descriptor body.
func (c *Client) Patch(ctx context.Context, action string, target Sendable) (*http.Response, error) {
	return c.dispatch(ctx, http.MethodPatch, action, target, true)
}

// Delete performs a DELETE request for the target descriptor.
func (c *Client) Delete(ctx context.Context, action string, target Sendable) (*http.Response, error) {
	return c.dispatch(ctx, http.MethodDelete, action, target, false)
}

// dispatch resolves the descriptor, refreshes the credential, and sends one
// request. It never retries; every failure is returned to the caller.
func (c *Client) dispatch(ctx context.Context, method, action string, target Sendable, withBody bool) (*http.Response, error) {
	u, err := resolveURL(c.baseURL, target, action)
	if err != nil {
		return nil, &Error{Op: method, Kind: KindURL, Err: err}
	}

	var body []byte
	if withBody {
		body, err = target.BodyBytes()
		if err != nil {
			return nil, &Error{Op: method, Kind: KindSerialization, Err: err}
		}
	}

	if c.debug {
		c.debugLine(ctx, method, u, body)
	}

	ctx, span := c.tracer.Start(ctx, "gcal.dispatch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", u.Path),
		),
	)
	defer span.End()

	// Refresh before every dispatch, not only on detected expiry: the
	// refresher decides whether an exchange is actually due. The write lock
	// excludes all readers until the update completes, so no request is sent
	// with a token known to be stale once a refresh finishes.
	if c.refresher != nil {
		start := time.Now()
		err := c.tokens.Update(func(tok *auth.Token) error {
			return c.refresher.Refresh(ctx, tok)
		})
		if err != nil {
			c.metrics.RecordTokenRefresh(ctx, instrumentation.OAuthResultFailure, time.Since(start))
			span.SetStatus(codes.Error, "token refresh failed")
			return nil, &Error{Op: method, Kind: KindAuth, Err: err}
		}
		c.metrics.RecordTokenRefresh(ctx, instrumentation.OAuthResultSuccess, time.Since(start))
	}

	var reader io.Reader
	if withBody {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, &Error{Op: method, Kind: KindURL, Err: err}
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if withBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+c.tokens.Access())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordRequest(ctx, method, u.Path, 0, time.Since(start))
		span.SetStatus(codes.Error, "transport failure")
		span.RecordError(err)
		return nil, &Error{Op: method, Kind: KindTransport, Err: err}
	}

	c.metrics.RecordRequest(ctx, method, u.Path, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		if header := resp.Header.Get("WWW-Authenticate"); header != "" {
			if !utf8.ValidString(header) {
				discard(resp)
				return nil, &Error{Op: method, Kind: KindHeaderDecode, Err: fmt.Errorf("WWW-Authenticate header is not valid text")}
			}
			if strings.HasPrefix(header, invalidTokenMarker) {
				discard(resp)
				span.SetStatus(codes.Error, "invalid token")
				return nil, &Error{Op: method, Kind: KindInvalidToken}
			}
		}
	}

	// Any other non-200 status is a normal response value for the caller to
	// interpret against resource semantics.
	return resp, nil
}

// debugLine emits one diagnostic line per request. Best-effort only: a body
// that is not valid text degrades to an empty string and the call proceeds.
func (c *Client) debugLine(ctx context.Context, method string, u *url.URL, body []byte) {
	text := ""
	if utf8.Valid(body) {
		text = string(body)
	}
	c.logger.DebugContext(ctx, "dispatch",
		logging.Method(method),
		logging.URL(u.String()),
		slog.String("body", text),
	)
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
