package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/janmasethu/sakhi/engine/embedding"
	"github.com/janmasethu/sakhi/pkg/logger"
)

// ConfigurationError marks a startup-fatal gateway construction failure, such
// as the embedding capability being unreachable while anchors are computed.
// There is no degraded mode: routing is impossible without anchors.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gateway configuration: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Gateway routes user messages to a processing tier by comparing their
// embeddings against precomputed category anchors. Anchors are immutable after
// construction, so a Gateway is safe for concurrent use.
type Gateway struct {
	embedder   embedding.Embedder
	thresholds Thresholds

	smallTalkAnchor      []float64
	medicalSimpleAnchor  []float64
	medicalComplexAnchor []float64
	facilityInfoAnchor   []float64
}

// Option adjusts gateway construction.
type Option func(*Gateway)

// WithThresholds overrides the default routing cutoffs.
func WithThresholds(t Thresholds) Option {
	return func(g *Gateway) {
		g.thresholds = t
	}
}

// New computes the four category anchors and returns a ready gateway. The
// anchor computation embeds every curated phrase once, so construction belongs
// at service startup, not on the request path.
func New(ctx context.Context, embedder embedding.Embedder, opts ...Option) (*Gateway, error) {
	if embedder == nil {
		return nil, &ConfigurationError{Err: errors.New("embedder is required")}
	}
	g := &Gateway{
		embedder:   embedder,
		thresholds: DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(g)
	}
	log := logger.FromContext(ctx)
	log.Info("Computing routing anchors",
		"small_talk", len(smallTalkExamples),
		"medical_simple", len(flattenMedicalSimple()),
		"medical_complex", len(medicalComplexExamples),
		"facility_info", len(facilityInfoExamples),
	)
	anchors := []struct {
		name    string
		phrases []string
		target  *[]float64
	}{
		{"small_talk", smallTalkExamples, &g.smallTalkAnchor},
		{"medical_simple", flattenMedicalSimple(), &g.medicalSimpleAnchor},
		{"medical_complex", medicalComplexExamples, &g.medicalComplexAnchor},
		{"facility_info", facilityInfoExamples, &g.facilityInfoAnchor},
	}
	for _, anchor := range anchors {
		vector, err := g.computeAnchor(ctx, anchor.phrases)
		if err != nil {
			return nil, &ConfigurationError{
				Err: fmt.Errorf("compute %s anchor: %w", anchor.name, err),
			}
		}
		*anchor.target = vector
	}
	log.Info("Routing anchors ready", "dimension", len(g.smallTalkAnchor))
	return g, nil
}

// DecideRoute maps a free-text message to exactly one route. An embedding
// failure propagates to the caller untouched; the gateway never retries.
func (g *Gateway) DecideRoute(ctx context.Context, text string) (Route, error) {
	vector, err := g.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return "", fmt.Errorf("gateway: embed query: %w", err)
	}
	query := toFloat64(vector)
	scores := Scores{
		SmallTalk:      cosineSimilarity(query, g.smallTalkAnchor),
		MedicalSimple:  cosineSimilarity(query, g.medicalSimpleAnchor),
		MedicalComplex: cosineSimilarity(query, g.medicalComplexAnchor),
		FacilityInfo:   cosineSimilarity(query, g.facilityInfoAnchor),
	}
	route := g.thresholds.Route(scores)
	logger.FromContext(ctx).Info("Route decided",
		"query_preview", preview(text),
		"small_talk", fmt.Sprintf("%.3f", scores.SmallTalk),
		"medical_simple", fmt.Sprintf("%.3f", scores.MedicalSimple),
		"medical_complex", fmt.Sprintf("%.3f", scores.MedicalComplex),
		"facility_info", fmt.Sprintf("%.3f", scores.FacilityInfo),
		"route", route,
	)
	RecordDecision(ctx, route)
	return route, nil
}

func (g *Gateway) computeAnchor(ctx context.Context, phrases []string) ([]float64, error) {
	if len(phrases) == 0 {
		return nil, errors.New("anchor requires at least one example phrase")
	}
	vectors, err := g.embedder.EmbedDocuments(ctx, phrases)
	if err != nil {
		return nil, err
	}
	return meanVector(vectors)
}

// meanVector computes the element-wise arithmetic mean in float64 so anchor
// precision does not depend on phrase count.
func meanVector(vectors [][]float32) ([]float64, error) {
	if len(vectors) == 0 {
		return nil, errors.New("mean of zero vectors is undefined")
	}
	dim := len(vectors[0])
	mean := make([]float64, dim)
	for _, vector := range vectors {
		if len(vector) != dim {
			return nil, fmt.Errorf("inconsistent vector dimensions: %d vs %d", len(vector), dim)
		}
		for i := range vector {
			mean[i] += float64(vector[i])
		}
	}
	for i := range mean {
		mean[i] /= float64(len(vectors))
	}
	return mean, nil
}

// cosineSimilarity returns the normalized dot product of two vectors. A zero
// vector on either side yields 0 to guard the division.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func toFloat64(vector []float32) []float64 {
	out := make([]float64, len(vector))
	for i := range vector {
		out[i] = float64(vector[i])
	}
	return out
}

func preview(text string) string {
	const limit = 50
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
