package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const classifierPrompt = `You are a Digital South Indian Nurse Chatbot.

Your task:
1. Detect the language of the user's message. The input may be Telugu, English,
   or Tinglish (Telugu written in Roman alphabet).
2. Translate the message internally into English for analysis.
3. Check if the question clearly relates to any of these topics:
   IVF, Fertility, Parenthood, Pregnancy, Ovulation, Infertility,
   IUI, Treatment cost, Success rate, Finance, Clinics, Doctors.

Respond with a single JSON object and nothing else:
{"language": "<identified language>", "signal": "YES" or "NO"}`

// Classification is the language/topic assessment of one user message.
type Classification struct {
	Language string
	Signal   string
}

// Medical reports whether the classifier flagged the message as on-topic.
func (c Classification) Medical() bool {
	return c.Signal == "YES"
}

// Classifier runs the language + topic-signal assessment over a cheap chat
// model.
type Classifier struct {
	model llms.Model
}

func NewClassifier(model llms.Model) *Classifier {
	return &Classifier{model: model}
}

// NewClassifierFromConfig builds a classifier over its own OpenAI client. The
// model defaults to a cheap tier when unset.
func NewClassifierFromConfig(cfg OpenAIConfig) (*Classifier, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = "gpt-4o-mini"
	}
	opts := []openai.Option{openai.WithModel(cfg.Model)}
	if cfg.APIKey != "" {
		opts = append(opts, openai.WithToken(cfg.APIKey))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create classifier client: %w", err)
	}
	return &Classifier{model: model}, nil
}

// Classify never guesses structure: fields the model omitted or mangled fall
// back to "en" / "NO".
func (c *Classifier) Classify(ctx context.Context, message string) (Classification, error) {
	content, err := c.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, classifierPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, message),
		},
		llms.WithTemperature(0.2),
	)
	if err != nil {
		return Classification{}, fmt.Errorf("llm: classify message: %w", err)
	}
	if len(content.Choices) == 0 {
		return Classification{Language: "en", Signal: "NO"}, nil
	}
	return parseClassification(content.Choices[0].Content), nil
}

func parseClassification(raw string) Classification {
	// Models occasionally fence the JSON; gjson skips leading prose as long as
	// we hand it the object itself.
	raw = strings.TrimSpace(raw)
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}
	out := Classification{
		Language: strings.TrimSpace(gjson.Get(raw, "language").String()),
		Signal:   strings.ToUpper(strings.TrimSpace(gjson.Get(raw, "signal").String())),
	}
	if out.Language == "" {
		out.Language = "en"
	}
	if out.Signal != "YES" {
		out.Signal = "NO"
	}
	return out
}
