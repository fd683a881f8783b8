package config

import "time"

// Config is the full runtime configuration for the Sakhi service.
type Config struct {
	Server       ServerConfig       `koanf:"server"       validate:"required"`
	Database     DatabaseConfig     `koanf:"database"`
	Embedder     EmbedderConfig     `koanf:"embedder"     validate:"required"`
	Models       ModelsConfig       `koanf:"models"`
	Retrieval    RetrievalConfig    `koanf:"retrieval"`
	Gateway      GatewayConfig      `koanf:"gateway"`
	Log          LogConfig          `koanf:"log"`
	Conversation ConversationConfig `koanf:"conversation"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"             validate:"gt=0,lte=65535"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig points at the postgres instance backing users, conversations
// and the pgvector corpora.
type DatabaseConfig struct {
	DSN          string `koanf:"dsn"`
	SectionTable string `koanf:"section_table"`
	FAQTable     string `koanf:"faq_table"`
}

// EmbedderConfig configures the embedding capability.
type EmbedderConfig struct {
	Provider  string `koanf:"provider"   validate:"required"`
	Model     string `koanf:"model"      validate:"required"`
	APIKey    string `koanf:"api_key"`
	Dimension int    `koanf:"dimension"  validate:"gt=0"`
	CacheSize int    `koanf:"cache_size" validate:"gte=0"`
}

// ModelsConfig configures the generation tiers.
type ModelsConfig struct {
	OpenAIModel  string        `koanf:"openai_model"`
	OpenAIAPIKey string        `koanf:"openai_api_key"`
	SLMEndpoint  string        `koanf:"slm_endpoint"`
	SLMTimeout   time.Duration `koanf:"slm_timeout"`
	MaxRetries   int           `koanf:"max_retries" validate:"gte=0"`
}

// RetrievalConfig carries the hierarchical retrieval defaults.
type RetrievalConfig struct {
	MatchThreshold float64 `koanf:"match_threshold" validate:"gte=0,lte=1"`
	MatchCount     int     `koanf:"match_count"     validate:"gt=0"`
}

// GatewayConfig carries the semantic routing thresholds.
type GatewayConfig struct {
	SmallTalkThreshold     float64 `koanf:"small_talk_threshold"     validate:"gte=0,lte=1"`
	MedicalSimpleThreshold float64 `koanf:"medical_simple_threshold" validate:"gte=0,lte=1"`
	FacilityInfoThreshold  float64 `koanf:"facility_info_threshold"  validate:"gte=0,lte=1"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

// ConversationConfig bounds history and reply size.
type ConversationConfig struct {
	HistoryLimit   int `koanf:"history_limit"    validate:"gt=0"`
	MaxReplyLength int `koanf:"max_reply_length" validate:"gt=0"`
}

// Default returns the baseline configuration before env overrides.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			CORSOrigins:     []string{"*"},
			RequestTimeout:  60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			SectionTable: "section_chunks",
			FAQTable:     "faq",
		},
		Embedder: EmbedderConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			Dimension: 1536,
			CacheSize: 512,
		},
		Models: ModelsConfig{
			OpenAIModel: "gpt-4o",
			SLMTimeout:  30 * time.Second,
			MaxRetries:  2,
		},
		Retrieval: RetrievalConfig{
			MatchThreshold: 0.3,
			MatchCount:     4,
		},
		Gateway: GatewayConfig{
			SmallTalkThreshold:     0.75,
			MedicalSimpleThreshold: 0.65,
			FacilityInfoThreshold:  0.50,
		},
		Log: LogConfig{
			Level: "info",
		},
		Conversation: ConversationConfig{
			HistoryLimit:   5,
			MaxReplyLength: 2000,
		},
	}
}
