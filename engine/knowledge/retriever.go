package knowledge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/janmasethu/sakhi/engine/embedding"
	"github.com/janmasethu/sakhi/engine/knowledge/vectordb"
	"github.com/janmasethu/sakhi/pkg/logger"
)

// QueryOptions bounds a hierarchical retrieval.
type QueryOptions struct {
	MatchThreshold float64
	MatchCount     int
}

// DefaultQueryOptions returns the production retrieval bounds.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		MatchThreshold: 0.3,
		MatchCount:     4,
	}
}

// Retriever performs layered retrieval: a hierarchical document-section search
// for answer content and a single-result FAQ search whose purpose is surfacing
// a companion video link. All state is read-only after construction.
type Retriever struct {
	embedder  embedding.Embedder
	documents vectordb.Store
	faqs      vectordb.Store
}

// NewRetriever wires the retriever to its embedding capability and the two
// corpus stores.
func NewRetriever(emb embedding.Embedder, documents, faqs vectordb.Store) (*Retriever, error) {
	if emb == nil {
		return nil, errors.New("knowledge: retriever embedder is required")
	}
	if documents == nil {
		return nil, errors.New("knowledge: document store is required")
	}
	if faqs == nil {
		return nil, errors.New("knowledge: faq store is required")
	}
	return &Retriever{embedder: emb, documents: documents, faqs: faqs}, nil
}

// Query embeds the question once and runs the document and FAQ searches
// concurrently against the shared vector. Provider failures degrade to zero
// results from that source; only an embedding failure propagates, since no
// context can be built without the query vector.
func (r *Retriever) Query(ctx context.Context, query string, opts QueryOptions) ([]Match, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	if opts.MatchCount <= 0 {
		opts.MatchCount = DefaultQueryOptions().MatchCount
	}
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = DefaultQueryOptions().MatchThreshold
	}
	vector, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("knowledge: embed query: %w", err)
	}

	var (
		wg         sync.WaitGroup
		docMatches []vectordb.Match
		faqMatches []vectordb.Match
		docErr     error
		faqErr     error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		docMatches, docErr = r.documents.Search(ctx, vector, vectordb.SearchOptions{
			TopK:     opts.MatchCount,
			MinScore: opts.MatchThreshold,
		})
	}()
	go func() {
		defer wg.Done()
		// Only the single best FAQ match is wanted; it exists to surface a
		// companion video, not answer content.
		faqMatches, faqErr = r.faqs.Search(ctx, vector, vectordb.SearchOptions{TopK: 1})
	}()
	wg.Wait()

	if docErr != nil {
		log.Error("Hierarchical document search failed", "error", docErr)
		docMatches = nil
	}
	if faqErr != nil {
		log.Error("FAQ search failed", "error", faqErr)
		faqMatches = nil
	}

	merged := make([]Match, 0, len(docMatches)+1)
	for i := range docMatches {
		merged = append(merged, documentMatch(docMatches[i]))
	}
	for i := range faqMatches {
		candidate := faqMatch(faqMatches[i])
		// Include the FAQ match only when it brings a video link, or as the
		// last resort when the document search produced nothing.
		if candidate.YouTubeLink != "" || len(merged) == 0 {
			merged = append(merged, candidate)
		}
	}

	RecordQueryLatency(ctx, time.Since(start))
	if len(merged) == 0 {
		RecordEmptyResult(ctx)
	}
	log.Debug("Hierarchical retrieval executed",
		"documents", len(docMatches),
		"faq", len(faqMatches),
		"merged", len(merged),
	)
	return merged, nil
}
