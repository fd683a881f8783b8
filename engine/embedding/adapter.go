package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config describes a provider-backed embedder.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	Dimension int
	CacheSize int
}

var (
	errMissingProvider  = errors.New("embedder provider is required")
	errMissingModel     = errors.New("embedder model is required")
	errInvalidDimension = errors.New("embedder dimension must be greater than zero")
)

// Adapter wraps a langchaingo embedder, adding input cleaning, dimension
// enforcement and an optional LRU cache for repeated queries.
type Adapter struct {
	model     string
	dimension int
	impl      embeddings.Embedder
	cache     *lru.Cache[string, []float32]
}

// New constructs an adapter for the configured provider.
func New(cfg *Config) (*Adapter, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	impl, err := buildProviderEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	return wrap(cfg, impl)
}

// Wrap constructs an adapter around an existing langchaingo embedder. Used by
// tests and by callers that manage their own client.
func Wrap(cfg *Config, impl embeddings.Embedder) (*Adapter, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	if impl == nil {
		return nil, errors.New("embedder implementation is required")
	}
	return wrap(cfg, impl)
}

func wrap(cfg *Config, impl embeddings.Embedder) (*Adapter, error) {
	a := &Adapter{
		model:     cfg.Model,
		dimension: cfg.Dimension,
		impl:      impl,
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, []float32](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("embedder: init cache: %w", err)
		}
		a.cache = cache
	}
	return a, nil
}

// Dimension returns the configured vector dimension.
func (a *Adapter) Dimension() int {
	return a.dimension
}

// EmbedQuery embeds one piece of text, serving repeated queries from cache.
func (a *Adapter) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	cleaned := CleanText(text)
	if a.cache != nil {
		if vector, ok := a.cache.Get(cacheKey(cleaned)); ok {
			return cloneVector(vector), nil
		}
	}
	vector, err := a.impl.EmbedQuery(ctx, cleaned)
	if err != nil {
		return nil, &Error{Op: "query", Err: err}
	}
	if err := a.checkDimension(len(vector)); err != nil {
		return nil, err
	}
	if a.cache != nil {
		a.cache.Add(cacheKey(cleaned), cloneVector(vector))
	}
	return vector, nil
}

// EmbedDocuments embeds a batch of texts.
func (a *Adapter) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	cleaned := make([]string, len(texts))
	for i := range texts {
		cleaned[i] = CleanText(texts[i])
	}
	vectors, err := a.impl.EmbedDocuments(ctx, cleaned)
	if err != nil {
		return nil, &Error{Op: "documents", Err: err}
	}
	if len(vectors) != len(cleaned) {
		return nil, &Error{
			Op:  "documents",
			Err: fmt.Errorf("received %d embeddings for %d texts", len(vectors), len(cleaned)),
		}
	}
	for i := range vectors {
		if err := a.checkDimension(len(vectors[i])); err != nil {
			return nil, err
		}
	}
	return vectors, nil
}

func (a *Adapter) checkDimension(got int) error {
	if got != a.dimension {
		return &Error{
			Op:  "dimension",
			Err: fmt.Errorf("model %q returned %d dimensions, want %d", a.model, got, a.dimension),
		}
	}
	return nil
}

func buildProviderEmbedder(cfg *Config) (embeddings.Embedder, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		opts := []openai.Option{openai.WithEmbeddingModel(cfg.Model)}
		if cfg.APIKey != "" {
			opts = append(opts, openai.WithToken(cfg.APIKey))
		}
		client, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("embedder: initialize openai client: %w", err)
		}
		impl, err := embeddings.NewEmbedder(client)
		if err != nil {
			return nil, fmt.Errorf("embedder: construct openai embedder: %w", err)
		}
		return impl, nil
	default:
		return nil, fmt.Errorf("embedder: provider %q is not supported", cfg.Provider)
	}
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("embedder config is required")
	}
	if strings.TrimSpace(cfg.Provider) == "" {
		return errMissingProvider
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return errMissingModel
	}
	if cfg.Dimension <= 0 {
		return errInvalidDimension
	}
	return nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func cloneVector(src []float32) []float32 {
	if len(src) == 0 {
		return nil
	}
	dst := make([]float32, len(src))
	copy(dst, src)
	return dst
}
