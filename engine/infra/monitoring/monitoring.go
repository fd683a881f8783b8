// Package monitoring wires the otel metric pipeline to a Prometheus
// /metrics endpoint.
package monitoring

import (
	"context"
	"fmt"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/janmasethu/sakhi/pkg/logger"
)

// Service owns the meter provider and the Prometheus registry behind it.
type Service struct {
	provider *sdkmetric.MeterProvider
	registry *prom.Registry
}

// New builds the metric pipeline and installs the provider globally so the
// gateway and knowledge instruments bind to it.
func New(ctx context.Context) (*Service, error) {
	registry := prom.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("monitoring: initialize prometheus exporter: %w", err)
	}
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	logger.FromContext(ctx).Debug("Metric pipeline initialized")
	return &Service{provider: provider, registry: registry}, nil
}

// Handler serves the scrape endpoint.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

func (s *Service) Shutdown(ctx context.Context) error {
	if err := s.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("monitoring: shutdown meter provider: %w", err)
	}
	return nil
}
