package vectordb

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Provider enumerates supported vector store backends.
type Provider string

const (
	ProviderPGVector Provider = "pgvector"
	// ProviderMemory keeps records in process memory. Used for tests and
	// local development.
	ProviderMemory Provider = "memory"
)

// Record represents one embedded corpus entry.
type Record struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  map[string]any
}

// SearchOptions controls similarity search execution.
type SearchOptions struct {
	TopK     int
	MinScore float64
}

// Match captures a similarity search result, ordered similarity-descending by
// the provider.
type Match struct {
	ID       string
	Score    float64
	Text     string
	Metadata map[string]any
}

// Store is the minimal contract for corpus ingestion and similarity search.
// Search returns an empty slice, not an error, when nothing qualifies.
type Store interface {
	Upsert(ctx context.Context, records []Record) error
	Search(ctx context.Context, query []float32, opts SearchOptions) ([]Match, error)
	Close(ctx context.Context) error
}

// Config captures normalized connection details for a vector store.
type Config struct {
	Provider    Provider
	DSN         string
	Table       string
	Dimension   int
	EnsureIndex bool
}

var (
	errMissingProvider  = errors.New("vector store provider is required")
	errMissingDSN       = errors.New("vector store dsn is required")
	errMissingTable     = errors.New("vector store table is required")
	errInvalidDimension = errors.New("vector store dimension must be greater than zero")
)

// New instantiates a store backed by the requested provider.
func New(ctx context.Context, cfg *Config) (Store, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderPGVector:
		return newPGStore(ctx, cfg)
	case ProviderMemory:
		return NewMemoryStore(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("vector store: provider %q is not supported", cfg.Provider)
	}
}

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("vector store config is required")
	}
	if strings.TrimSpace(string(cfg.Provider)) == "" {
		return errMissingProvider
	}
	if cfg.Dimension <= 0 {
		return errInvalidDimension
	}
	if cfg.Provider == ProviderPGVector {
		if strings.TrimSpace(cfg.DSN) == "" {
			return errMissingDSN
		}
		if strings.TrimSpace(cfg.Table) == "" {
			return errMissingTable
		}
	}
	return nil
}
