package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SAKHI_"

// Load builds the configuration from defaults overlaid with SAKHI_* environment
// variables, then validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return transformEnvKey(key), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}
	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints on a configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: configuration is required")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

// transformEnvKey converts SAKHI_SERVER_PORT into server.port. Only the first
// underscore separates the section from the field; the rest of the key keeps
// its underscores (SAKHI_GATEWAY_SMALL_TALK_THRESHOLD →
// gateway.small_talk_threshold).
func transformEnvKey(key string) string {
	trimmed := strings.TrimPrefix(key, envPrefix)
	lowered := strings.ToLower(trimmed)
	parts := strings.SplitN(lowered, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}
