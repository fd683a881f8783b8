package knowledge

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce      sync.Once
	metricsInitErr   error
	queryLatencyHist metric.Float64Histogram
	emptyCounter     metric.Int64Counter
)

// RecordQueryLatency tracks end-to-end hierarchical retrieval time.
func RecordQueryLatency(ctx context.Context, d time.Duration) {
	if err := ensureMetrics(); err != nil || queryLatencyHist == nil {
		return
	}
	queryLatencyHist.Record(ctx, d.Seconds())
}

// RecordEmptyResult counts retrievals that surfaced nothing from either corpus.
func RecordEmptyResult(ctx context.Context) {
	if err := ensureMetrics(); err != nil || emptyCounter == nil {
		return
	}
	emptyCounter.Add(ctx, 1)
}

func ensureMetrics() error {
	metricsOnce.Do(func() {
		meter := otel.GetMeterProvider().Meter("sakhi.knowledge")
		queryLatencyHist, metricsInitErr = meter.Float64Histogram(
			"sakhi_knowledge_query_seconds",
			metric.WithDescription("Hierarchical retrieval latency"),
		)
		if metricsInitErr != nil {
			return
		}
		emptyCounter, metricsInitErr = meter.Int64Counter(
			"sakhi_knowledge_empty_results_total",
			metric.WithDescription("Retrievals with no qualifying matches"),
		)
	})
	return metricsInitErr
}
