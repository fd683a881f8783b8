package vectordb

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local development. It
// ranks records by cosine similarity, matching the pgvector contract.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	records   map[string]Record
}

func NewMemoryStore(dimension int) *MemoryStore {
	return &MemoryStore{
		dimension: dimension,
		records:   make(map[string]Record),
	}
}

func (m *MemoryStore) Upsert(_ context.Context, records []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range records {
		rec := records[i]
		if len(rec.Embedding) != m.dimension {
			return errors.New("memory store: record dimension mismatch")
		}
		m.records[rec.ID] = rec
	}
	return nil
}

func (m *MemoryStore) Search(_ context.Context, query []float32, opts SearchOptions) ([]Match, error) {
	if len(query) != m.dimension {
		return nil, errors.New("memory store: query dimension mismatch")
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	matches := make([]Match, 0, len(m.records))
	for _, rec := range m.records {
		score := cosine(query, rec.Embedding)
		if score < opts.MinScore {
			continue
		}
		matches = append(matches, Match{
			ID:       rec.ID,
			Score:    score,
			Text:     rec.Text,
			Metadata: rec.Metadata,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Score > matches[j].Score
	})
	topK := opts.TopK
	if topK > 0 && len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *MemoryStore) Close(_ context.Context) error {
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
