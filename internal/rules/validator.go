package rules

import (
	"fmt"
	"log/slog"
)

// ValidationResult reports rule evaluation over a claim document. Validity is
// simply the absence of errors.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// Validator applies the configured business rules to claim documents. Rules
// never panic; a field whose type defeats a rule becomes an error entry.
type Validator struct {
	amountThreshold float64
	logger          *slog.Logger
}

func NewValidator(amountThreshold float64, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{amountThreshold: amountThreshold, logger: logger}
}

// Validate evaluates the rule set against a loosely-typed claim document.
// Documents rather than canonical structs, because stored legacy records can
// carry values (e.g. string amounts) the rules must flag rather than choke on.
func (v *Validator) Validate(doc map[string]any) ValidationResult {
	errs := make([]string, 0, 2)

	if raw, ok := doc["total_claim_amount"]; ok && raw != nil {
		if amt, numeric := asNumber(raw); numeric {
			if amt > v.amountThreshold {
				errs = append(errs, fmt.Sprintf("total_claim_amount %.2f exceeds threshold %.2f", amt, v.amountThreshold))
			}
		} else {
			errs = append(errs, "total_claim_amount is not numeric")
		}
	}

	// Lexical comparison: ISO-8601 dates order correctly, other formats are
	// not calendar-aware and may not.
	admit, okA := doc["admit_date"].(string)
	discharge, okD := doc["discharge_date"].(string)
	if okA && okD && admit != "" && discharge != "" && admit > discharge {
		errs = append(errs, fmt.Sprintf("admit_date %q is after discharge_date %q", admit, discharge))
	}

	result := ValidationResult{IsValid: len(errs) == 0, Errors: errs}
	if !result.IsValid {
		v.logger.Info("rules.validate.failed", "errors", len(errs))
	}
	return result
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}
