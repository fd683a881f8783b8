package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/janmasethu/sakhi/engine/chat"
	"github.com/janmasethu/sakhi/engine/conversation"
	"github.com/janmasethu/sakhi/engine/embedding"
	"github.com/janmasethu/sakhi/engine/gateway"
	"github.com/janmasethu/sakhi/engine/infra/monitoring"
	"github.com/janmasethu/sakhi/engine/infra/server"
	"github.com/janmasethu/sakhi/engine/knowledge"
	"github.com/janmasethu/sakhi/engine/knowledge/vectordb"
	"github.com/janmasethu/sakhi/engine/llm"
	"github.com/janmasethu/sakhi/engine/onboarding"
	"github.com/janmasethu/sakhi/engine/user"
	"github.com/janmasethu/sakhi/pkg/config"
	"github.com/janmasethu/sakhi/pkg/logger"
)

var version = "dev"

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Sakhi HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, json, source, err := logger.FlagsFromCommand(cmd)
			if err != nil {
				return err
			}
			log := logger.Setup(level, json, source)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(logger.ContextWithLogger(ctx, log), log)
		},
	}
}

func runServe(ctx context.Context, log logger.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	metrics, err := monitoring.New(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := metrics.Shutdown(context.Background()); err != nil {
			log.Warn("Metric pipeline shutdown failed", "error", err)
		}
	}()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

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

	log.Info("Computing routing anchors", "model", cfg.Embedder.Model)
	router, err := gateway.New(ctx, embedder, gateway.WithThresholds(gateway.Thresholds{
		SmallTalk:     cfg.Gateway.SmallTalkThreshold,
		MedicalSimple: cfg.Gateway.MedicalSimpleThreshold,
		FacilityInfo:  cfg.Gateway.FacilityInfoThreshold,
	}))
	if err != nil {
		return fmt.Errorf("build semantic router: %w", err)
	}

	retriever, err := knowledge.NewRetriever(embedder, documents, faqs)
	if err != nil {
		return fmt.Errorf("build retriever: %w", err)
	}

	slmClient, err := llm.NewSLM(llm.SLMConfig{
		Endpoint:   cfg.Models.SLMEndpoint,
		Timeout:    cfg.Models.SLMTimeout,
		MaxRetries: cfg.Models.MaxRetries,
	})
	if err != nil {
		return err
	}
	openaiClient, err := llm.NewOpenAI(llm.OpenAIConfig{
		Model:  cfg.Models.OpenAIModel,
		APIKey: cfg.Models.OpenAIAPIKey,
	})
	if err != nil {
		return err
	}
	classifier, err := llm.NewClassifierFromConfig(llm.OpenAIConfig{APIKey: cfg.Models.OpenAIAPIKey})
	if err != nil {
		return err
	}

	users := user.NewStore(pool)
	conversations := conversation.NewStore(pool)
	profiles := onboarding.NewStore(pool)

	chatService, err := chat.NewService(
		chat.Config{
			HistoryLimit:   cfg.Conversation.HistoryLimit,
			MaxReplyLength: cfg.Conversation.MaxReplyLength,
			Retrieval: knowledge.QueryOptions{
				MatchThreshold: cfg.Retrieval.MatchThreshold,
				MatchCount:     cfg.Retrieval.MatchCount,
			},
		},
		router, retriever, classifier, slmClient, openaiClient, users, conversations,
	)
	if err != nil {
		return fmt.Errorf("build chat service: %w", err)
	}

	srv, err := server.New(cfg, log, version, server.Deps{
		Chat:     chatService,
		Users:    users,
		Profiles: profiles,
		Metrics:  metrics.Handler(),
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func openStores(ctx context.Context, cfg *config.Config) (documents, faqs vectordb.Store, err error) {
	documents, err = vectordb.New(ctx, &vectordb.Config{
		Provider:    vectordb.ProviderPGVector,
		DSN:         cfg.Database.DSN,
		Table:       cfg.Database.SectionTable,
		Dimension:   cfg.Embedder.Dimension,
		EnsureIndex: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open document store: %w", err)
	}
	faqs, err = vectordb.New(ctx, &vectordb.Config{
		Provider:    vectordb.ProviderPGVector,
		DSN:         cfg.Database.DSN,
		Table:       cfg.Database.FAQTable,
		Dimension:   cfg.Embedder.Dimension,
		EnsureIndex: true,
	})
	if err != nil {
		_ = documents.Close(context.Background())
		return nil, nil, fmt.Errorf("open faq store: %w", err)
	}
	return documents, faqs, nil
}
