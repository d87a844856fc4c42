// Package instrumentation provides OpenTelemetry-based observability for the
// calendar client: request and token-refresh metrics plus optional tracing.
//
// Metrics can be exported via Prometheus, OTLP, or stdout; tracing via OTLP
// or stdout. Everything is disabled cleanly with a no-op recorder when
// instrumentation is turned off, so library code records unconditionally.
package instrumentation
