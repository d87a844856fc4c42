package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "gcal-test",
		ServiceVersion:  "0.0.0",
		Enabled:         true,
		MetricsExporter: ExporterStdout,
		TracingExporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = provider.Shutdown(shutdownCtx)
	})

	return provider
}

func TestMetrics_RecordRequest(t *testing.T) {
	metrics := newTestProvider(t).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	ctx := context.Background()

	// Should not panic
	metrics.RecordRequest(ctx, "GET", "users/me/calendarList", 200, 100*time.Millisecond)
	metrics.RecordRequest(ctx, "POST", "calendars/primary/events", 403, 50*time.Millisecond)
	metrics.RecordRequest(ctx, "GET", "users/me/calendarList", 0, 10*time.Millisecond)
}

func TestMetrics_RecordOperation(t *testing.T) {
	metrics := newTestProvider(t).Metrics()
	ctx := context.Background()

	metrics.RecordOperation(ctx, "calendar_list", StatusSuccess, 200*time.Millisecond)
	metrics.RecordOperation(ctx, "event_insert", StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordTokenRefresh(t *testing.T) {
	metrics := newTestProvider(t).Metrics()
	ctx := context.Background()

	metrics.RecordTokenRefresh(ctx, OAuthResultSuccess, 20*time.Millisecond)
	metrics.RecordTokenRefresh(ctx, OAuthResultFailure, 5*time.Millisecond)
}

func TestMetrics_NilSafe(t *testing.T) {
	ctx := context.Background()

	// A nil recorder must be safe to call from library code.
	var metrics *Metrics
	metrics.RecordRequest(ctx, "GET", "users/me/calendarList", 200, time.Millisecond)
	metrics.RecordOperation(ctx, "calendar_list", StatusSuccess, time.Millisecond)
	metrics.RecordTokenRefresh(ctx, OAuthResultSuccess, time.Millisecond)

	// So must the zero value returned by a disabled provider.
	zero := &Metrics{}
	zero.RecordRequest(ctx, "GET", "users/me/calendarList", 200, time.Millisecond)
}
