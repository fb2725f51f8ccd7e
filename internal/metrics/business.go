package metrics

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var (
	meter = otel.Meter("pantry/business")

	noopMeter = noop.NewMeterProvider().Meter("pantry/business")

	// Recipe metrics
	RecipeRequestsTotal metric.Int64Counter = mustInt64Counter(noopMeter, "recipe.requests.total")

	// External API metrics
	ExternalAPICallsTotal metric.Int64Counter     = mustInt64Counter(noopMeter, "external.api.calls.total")
	ExternalAPIDuration   metric.Float64Histogram = mustFloat64Histogram(noopMeter, "external.api.duration")

	// AI metrics
	AIGenerationDuration metric.Float64Histogram = mustFloat64Histogram(noopMeter, "ai.generation.duration")

	// Provider error metrics
	ProviderErrorsTotal metric.Int64Counter = mustInt64Counter(noopMeter, "provider.errors.total")
)

// Init replaces the no-op instruments with ones from the global meter provider.
func Init() error {
	var err error

	RecipeRequestsTotal, err = meter.Int64Counter(
		"recipe.requests.total",
		metric.WithDescription("Total number of recipe relay requests by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPICallsTotal, err = meter.Int64Counter(
		"external.api.calls.total",
		metric.WithDescription("Total number of external API calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	ExternalAPIDuration, err = meter.Float64Histogram(
		"external.api.duration",
		metric.WithDescription("Duration of external API calls"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30),
	)
	if err != nil {
		return err
	}

	AIGenerationDuration, err = meter.Float64Histogram(
		"ai.generation.duration",
		metric.WithDescription("Duration of AI recipe generation"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1, 2, 5, 10, 30, 60),
	)
	if err != nil {
		return err
	}

	ProviderErrorsTotal, err = meter.Int64Counter(
		"provider.errors.total",
		metric.WithDescription("Total number of inference provider failures by error type"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return err
	}

	return nil
}

func mustInt64Counter(m metric.Meter, name string) metric.Int64Counter {
	c, _ := m.Int64Counter(name)
	return c
}

func mustFloat64Histogram(m metric.Meter, name string) metric.Float64Histogram {
	h, _ := m.Float64Histogram(name)
	return h
}
