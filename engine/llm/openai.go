package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAIConfig holds the settings for the full-capability generation backend.
type OpenAIConfig struct {
	Model       string
	APIKey      string
	Temperature float64
}

// OpenAIGenerator answers retrieval-grounded medical questions with the
// configured OpenAI chat model.
type OpenAIGenerator struct {
	model       llms.Model
	temperature float64
}

// NewOpenAI builds the generator. The API key may be empty when the
// environment provides OPENAI_API_KEY.
func NewOpenAI(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("llm: openai model is required")
	}
	opts := []openai.Option{openai.WithModel(cfg.Model)}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create openai client: %w", err)
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.4
	}
	return &OpenAIGenerator{model: model, temperature: temperature}, nil
}

// WrapModel builds a generator over an existing model. Used by tests.
func WrapModel(model llms.Model, temperature float64) *OpenAIGenerator {
	return &OpenAIGenerator{model: model, temperature: temperature}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	system := MedicalPrompt(req)
	content, err := g.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, req.Message),
		},
		llms.WithTemperature(g.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("llm: openai generation: %w", err)
	}
	if len(content.Choices) == 0 {
		return "", errors.New("llm: openai returned no choices")
	}
	return strings.TrimSpace(content.Choices[0].Content), nil
}
