package gateway

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce     sync.Once
	metricsInitErr  error
	decisionCounter metric.Int64Counter
)

// RecordDecision counts a routing decision by chosen route.
func RecordDecision(ctx context.Context, route Route) {
	if err := ensureMetrics(); err != nil || decisionCounter == nil {
		return
	}
	decisionCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("route", route.String())))
}

func ensureMetrics() error {
	metricsOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter("sakhi.gateway")
		decisionCounter, metricsInitErr = meter.Int64Counter(
			"sakhi_gateway_decisions_total",
			metric.WithDescription("Routing decisions by route"),
		)
	})
	return metricsInitErr
}
