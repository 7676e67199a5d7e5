// Package gemini implements the completion oracle over the Google GenAI API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/taperedworks/enquiry-tracker/internal/common"
	"github.com/taperedworks/enquiry-tracker/internal/llm"
)

// Client implements llm.Completer. Every call site goes through the shared retry
// decorator, so rate-limit responses back off and everything else fails fast.
type Client struct {
	cfg    common.LLMConfig
	client *genai.Client
	retry  llm.RetryConfig
	log    *slog.Logger
}

func NewClient(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	retry := llm.DefaultRetryConfig()
	if cfg.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BackoffFloor > 0 {
		retry.BackoffFloor = cfg.BackoffFloor
	}
	if cfg.BackoffCeiling > 0 {
		retry.BackoffCeiling = cfg.BackoffCeiling
	}

	return &Client{cfg: cfg, client: gc, retry: retry, log: logger}, nil
}

// Model returns the configured default model ID.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Complete sends the parts as a single user turn and returns the model's text.
func (c *Client) Complete(ctx context.Context, model string, parts []llm.Part) (string, error) {
	if model == "" {
		model = c.cfg.Model
	}
	rid := uuid.New().String()
	start := time.Now()

	gparts := make([]*genai.Part, 0, len(parts))
	textLen := 0
	for _, p := range parts {
		if len(p.Data) > 0 {
			gparts = append(gparts, genai.NewPartFromBytes(p.Data, p.MIMEType))
			continue
		}
		textLen += len(p.Text)
		gparts = append(gparts, genai.NewPartFromText(p.Text))
	}
	contents := []*genai.Content{genai.NewContentFromParts(gparts, genai.RoleUser)}

	c.log.Info("llm.complete.start",
		"req_id", rid,
		"model", model,
		"parts", len(parts),
		"text_len", textLen,
	)

	text, err := llm.Retry(ctx, c.retry, c.log, func(ctx context.Context) (string, error) {
		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		resp, err := c.client.Models.GenerateContent(callCtx, model, contents, nil)
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}
		out := resp.Text()
		if out == "" {
			return "", fmt.Errorf("%w: empty completion", common.ErrNoData)
		}
		return out, nil
	})
	if err != nil {
		c.log.Error("llm.complete.error",
			"req_id", rid, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", err
	}

	c.log.Info("llm.complete.ok",
		"req_id", rid,
		"response_len", len(text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return text, nil
}
