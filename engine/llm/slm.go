package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"
)

// SLMConfig configures the small-language-model HTTP backend that serves the
// low-cost routes.
type SLMConfig struct {
	Endpoint   string
	Timeout    time.Duration
	MaxRetries int
}

// SLMClient talks to a self-hosted small model over HTTP. Direct chat and
// retrieval-grounded generation share one endpoint; the request distinguishes
// them by whether Context is present.
type SLMClient struct {
	http       *resty.Client
	maxRetries uint64
}

type slmRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
	UserName string `json:"user_name,omitempty"`
	Context  string `json:"context,omitempty"`
	System   string `json:"system,omitempty"`
}

// NewSLM validates the config and builds the client.
func NewSLM(cfg SLMConfig) (*SLMClient, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("llm: slm endpoint is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.Endpoint, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &SLMClient{http: client, maxRetries: uint64(maxRetries)}, nil
}

func (c *SLMClient) Generate(ctx context.Context, req Request) (string, error) {
	system := SmallTalkPrompt(req)
	if strings.TrimSpace(req.Context) != "" {
		system = MedicalPrompt(req)
	}
	payload := slmRequest{
		Message:  req.Message,
		Language: req.Language,
		UserName: friendlyName(req.UserName),
		Context:  req.Context,
		System:   system,
	}

	var reply string
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(300*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.http.R().SetContext(ctx).SetBody(payload).Post("/v1/generate")
		if err != nil {
			return retry.RetryableError(fmt.Errorf("llm: slm request: %w", err))
		}
		if resp.StatusCode() >= 500 {
			return retry.RetryableError(fmt.Errorf("llm: slm status %d", resp.StatusCode()))
		}
		if resp.IsError() {
			return fmt.Errorf("llm: slm status %d: %s", resp.StatusCode(), resp.String())
		}
		reply = strings.TrimSpace(gjson.GetBytes(resp.Body(), "reply").String())
		if reply == "" {
			return errors.New("llm: slm response missing reply")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}
