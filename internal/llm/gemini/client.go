package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"claims-assistant/internal/common"
)

// Config for the Gemini client.
type Config struct {
	APIKey  string
	Model   string // e.g. "gemini-2.0-flash"
	Timeout time.Duration
}

// Client implements extract.TextGenerator against the Gemini API. It is
// stateless; a genai client is built per call and closed with it, so
// concurrent requests never share a connection guard.
type Client struct {
	cfg    Config
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, logger: logger}
}

// Generate sends a single prompt and returns the raw text completion. No
// format contract is assumed on the response.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	c.logger.Info("llm.generate.start",
		"req_id", rid, "model", c.cfg.Model, "prompt_len", len(prompt))

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		c.logger.Error("llm.generate.client_error", "req_id", rid, "error", err)
		return "", fmt.Errorf("%w: create client: %w", common.ErrUpstream, err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.cfg.Model)
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error("llm.generate.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: generate content: %w", common.ErrUpstream, err)
	}

	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		c.logger.Error("llm.generate.empty_response",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("%w: gemini returned no text", common.ErrUpstream)
	}

	c.logger.Info("llm.generate.ok",
		"req_id", rid, "response_len", len(txt),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
