package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"claims-assistant/internal/common"
	"claims-assistant/internal/entity"
)

// TextGenerator is the external text-generation boundary. Latency and output
// format are both uncontrolled; responses are treated as untrusted text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Orchestrator drives text → CanonicalClaim. It holds no mutable state, so
// concurrent extractions never serialize on each other; the generation call
// is the single suspension point.
type Orchestrator struct {
	gen    TextGenerator
	logger *slog.Logger
}

func NewOrchestrator(gen TextGenerator, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{gen: gen, logger: logger}
}

// ExtractClaim runs the pipeline: one generation call, parse, normalize, then
// the regex amount fallback against the ORIGINAL input when the normalized
// total is absent. Malformed model output degrades to an empty claim; only
// blank input and a failed generation call are returned as errors.
func (o *Orchestrator) ExtractClaim(ctx context.Context, text string) (entity.CanonicalClaim, error) {
	if strings.TrimSpace(text) == "" {
		return entity.CanonicalClaim{}, common.WrapError(common.ErrEmptyInput, "no text to extract from")
	}

	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	o.logger.Info("extract.start",
		"req_id", rid, "user_id", common.UserIDFromContext(ctx), "text_len", len(text))

	raw, err := o.gen.Generate(ctx, BuildExtractionPrompt(text))
	if err != nil {
		o.logger.Error("extract.llm_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return entity.CanonicalClaim{}, common.NewAppError("LLM_ERROR", "text generation failed", err)
	}

	bag := ParseObject(raw)
	if len(bag) == 0 {
		o.logger.Warn("extract.unstructured_output", "req_id", rid, "raw_len", len(raw))
	}

	claim := Normalize(bag)

	// The fallback fills a missing total from the input text; it never
	// overrides a value the normalizer already produced.
	if claim.TotalClaimAmount == nil {
		if amt, ok := Amount(text); ok {
			claim.TotalClaimAmount = &amt
			o.logger.Info("extract.fallback_amount", "req_id", rid, "amount", amt)
		}
	}

	o.auditShape(rid, claim)

	o.logger.Info("extract.ok",
		"req_id", rid,
		"empty", claim.IsEmpty(),
		"has_total", claim.TotalClaimAmount != nil,
		"items", len(claim.Items),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return claim, nil
}

// auditShape checks the normalized claim against the canonical schema and
// logs any mismatch. Advisory only: normalization already owns the shape, so
// a mismatch here means the normalizer and schema drifted apart.
func (o *Orchestrator) auditShape(rid string, claim entity.CanonicalClaim) {
	b, err := json.Marshal(claim)
	if err != nil {
		return
	}
	if err := ValidateJSONAgainstSchema(BuildClaimJSONSchema(), b); err != nil {
		o.logger.Warn("extract.schema_drift", "req_id", rid, "error", err)
	}
}
