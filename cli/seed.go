package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/janmasethu/sakhi/engine/embedding"
	"github.com/janmasethu/sakhi/engine/knowledge/vectordb"
	"github.com/janmasethu/sakhi/pkg/config"
	"github.com/janmasethu/sakhi/pkg/logger"
)

// seedCorpus is the on-disk layout the seed command ingests.
type seedCorpus struct {
	Sections []seedSection `json:"sections"`
	FAQs     []seedFAQ     `json:"faqs"`
}

type seedSection struct {
	HeaderPath string `json:"header_path"`
	Content    string `json:"content"`
}

type seedFAQ struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	YouTubeLink    string `json:"youtube_link,omitempty"`
	InfographicURL string `json:"infographic_url,omitempty"`
}

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed <corpus.json>",
		Short: "Embed and load a knowledge corpus into the vector stores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, jsonLogs, source, err := logger.FlagsFromCommand(cmd)
			if err != nil {
				return err
			}
			log := logger.Setup(level, jsonLogs, source)
			ctx := logger.ContextWithLogger(cmd.Context(), log)
			return runSeed(ctx, log, args[0])
		},
	}
	return cmd
}

func runSeed(ctx context.Context, log logger.Logger, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read corpus: %w", err)
	}
	var corpus seedCorpus
	if err := json.Unmarshal(raw, &corpus); err != nil {
		return fmt.Errorf("parse corpus: %w", err)
	}
	if len(corpus.Sections) == 0 && len(corpus.FAQs) == 0 {
		return fmt.Errorf("corpus %s contains no sections or faqs", path)
	}

	embedder, err := embedding.New(&embedding.Config{
		Provider:  cfg.Embedder.Provider,
		Model:     cfg.Embedder.Model,
		APIKey:    cfg.Embedder.APIKey,
		Dimension: cfg.Embedder.Dimension,
		CacheSize: cfg.Embedder.CacheSize,
	})
	if err != nil {
		return fmt.Errorf("build embedder: %w", err)
	}
	documents, faqs, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = documents.Close(context.Background())
		_ = faqs.Close(context.Background())
	}()

	if len(corpus.Sections) > 0 {
		records, err := sectionRecords(ctx, embedder, corpus.Sections)
		if err != nil {
			return err
		}
		if err := documents.Upsert(ctx, records); err != nil {
			return fmt.Errorf("seed sections: %w", err)
		}
		log.Info("Seeded document sections", "count", len(records))
	}
	if len(corpus.FAQs) > 0 {
		records, err := faqRecords(ctx, embedder, corpus.FAQs)
		if err != nil {
			return err
		}
		if err := faqs.Upsert(ctx, records); err != nil {
			return fmt.Errorf("seed faqs: %w", err)
		}
		log.Info("Seeded FAQ entries", "count", len(records))
	}
	return nil
}

func sectionRecords(ctx context.Context, embedder embedding.Embedder, sections []seedSection) ([]vectordb.Record, error) {
	texts := make([]string, len(sections))
	for i, section := range sections {
		texts[i] = section.Content
	}
	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed sections: %w", err)
	}
	records := make([]vectordb.Record, len(sections))
	for i, section := range sections {
		records[i] = vectordb.Record{
			ID:        uuid.NewString(),
			Text:      section.Content,
			Embedding: vectors[i],
			Metadata:  map[string]any{"header_path": section.HeaderPath},
		}
	}
	return records, nil
}

func faqRecords(ctx context.Context, embedder embedding.Embedder, faqs []seedFAQ) ([]vectordb.Record, error) {
	texts := make([]string, len(faqs))
	for i, faq := range faqs {
		texts[i] = faq.Question + " " + faq.Answer
	}
	vectors, err := embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed faqs: %w", err)
	}
	records := make([]vectordb.Record, len(faqs))
	for i, faq := range faqs {
		metadata := map[string]any{"question": faq.Question}
		if faq.YouTubeLink != "" {
			metadata["youtube_link"] = faq.YouTubeLink
		}
		if faq.InfographicURL != "" {
			metadata["infographic_url"] = faq.InfographicURL
		}
		records[i] = vectordb.Record{
			ID:        uuid.NewString(),
			Text:      faq.Answer,
			Embedding: vectors[i],
			Metadata:  metadata,
		}
	}
	return records, nil
}
