package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrResult    = "result"
)

// Metrics provides methods for recording observability metrics. A nil or
// zero Metrics records nothing, so callers never need to guard.
type Metrics struct {
	// Dispatch-level HTTP metrics
	requestsTotal   metric.Int64Counter
	requestDuration metric.Float64Histogram

	// Typed resource operation metrics
	operationsTotal   metric.Int64Counter
	operationDuration metric.Float64Histogram

	// Token refresh metrics
	tokenRefreshTotal    metric.Int64Counter
	tokenRefreshDuration metric.Float64Histogram
}

// NewMetrics creates a Metrics instance with all instruments initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.requestsTotal, err = meter.Int64Counter(
		"gcal_client_requests_total",
		metric.WithDescription("Total number of dispatched HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcal_client_requests_total counter: %w", err)
	}

	m.requestDuration, err = meter.Float64Histogram(
		"gcal_client_request_duration_seconds",
		metric.WithDescription("Dispatched HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcal_client_request_duration_seconds histogram: %w", err)
	}

	m.operationsTotal, err = meter.Int64Counter(
		"gcal_api_operations_total",
		metric.WithDescription("Total number of Calendar API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcal_api_operations_total counter: %w", err)
	}

	m.operationDuration, err = meter.Float64Histogram(
		"gcal_api_operation_duration_seconds",
		metric.WithDescription("Calendar API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcal_api_operation_duration_seconds histogram: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"gcal_token_refresh_total",
		metric.WithDescription("Total number of token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcal_token_refresh_total counter: %w", err)
	}

	m.tokenRefreshDuration, err = meter.Float64Histogram(
		"gcal_token_refresh_duration_seconds",
		metric.WithDescription("Token refresh duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcal_token_refresh_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordRequest records one dispatched HTTP request. A status of 0 means the
// request failed before a response was received.
func (m *Metrics) RecordRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.requestsTotal == nil || m.requestDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.requestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOperation records one typed resource operation.
// Status should be StatusSuccess or StatusError.
func (m *Metrics) RecordOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.operationsTotal == nil || m.operationDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.operationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordTokenRefresh records one token refresh attempt.
// Result should be OAuthResultSuccess or OAuthResultFailure.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, result string, duration time.Duration) {
	if m == nil || m.tokenRefreshTotal == nil || m.tokenRefreshDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResult, result),
	}

	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.tokenRefreshDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
