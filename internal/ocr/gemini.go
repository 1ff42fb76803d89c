package ocr

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

const transcribePrompt = "Transcribe ALL text visible in this image, preserving line breaks. " +
	"Return the raw text only, with no commentary. If no text is readable, return nothing."

// GeminiReader implements Reader using Gemini's vision input.
type GeminiReader struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewGeminiReader(apiKey, model string, timeout time.Duration, logger *slog.Logger) *GeminiReader {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GeminiReader{apiKey: apiKey, model: model, timeout: timeout, logger: logger}
}

func (r *GeminiReader) ExtractText(ctx context.Context, image []byte) (string, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	r.logger.Info("ocr.extract.start", "req_id", rid, "model", r.model, "image_bytes", len(image))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(r.apiKey))
	if err != nil {
		r.logger.Error("ocr.extract.client_error", "req_id", rid, "error", err)
		return "", fmt.Errorf("%w: create client: %w", common.ErrUpstream, err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(r.model)
	resp, err := m.GenerateContent(ctx,
		genai.Text(transcribePrompt),
		&genai.Blob{MIMEType: DetectMIME(image), Data: image},
	)
	if err != nil {
		r.logger.Error("ocr.extract.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("%w: transcribe image: %w", common.ErrUpstream, err)
	}

	txt := strings.TrimSpace(firstText(resp))
	r.logger.Info("ocr.extract.ok",
		"req_id", rid, "text_len", len(txt),
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
