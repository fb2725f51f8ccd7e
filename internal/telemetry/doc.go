// Package telemetry provides OpenTelemetry initialization and helpers
// for the pantry recipe relay.
//
// Traces, logs and metrics are exported over OTLP HTTP. When no endpoint is
// configured every provider stays the global no-op and the relay runs
// without telemetry.
package telemetry
