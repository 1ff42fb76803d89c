package chat

import (
	"strings"
	"testing"

	"claims-assistant/internal/entity"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1250, "₹1,250.00"},
		{50, "₹50.00"},
		{1234567.5, "₹1,234,567.50"},
		{999.99, "₹999.99"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSummarize_NoClaims(t *testing.T) {
	got := Summarize(nil)
	if !strings.Contains(got, "couldn't find any claims") {
		t.Errorf("unexpected empty-state message: %q", got)
	}
}

func TestSummarize_RendersClaimLines(t *testing.T) {
	records := []entity.ClaimRecord{
		{Doc: map[string]any{
			"invoice_date":       "2025-01-15",
			"total_claim_amount": 1250.0,
			"provider":           "ABC Pharmacy",
		}},
		{Doc: map[string]any{}},
	}

	got := Summarize(records)
	if !strings.Contains(got, "**2025-01-15** — ₹1,250.00 at ABC Pharmacy") {
		t.Errorf("missing formatted claim line in:\n%s", got)
	}
	if !strings.Contains(got, "**Unknown date** — ₹N/A at Unknown place") {
		t.Errorf("missing placeholder line for sparse document in:\n%s", got)
	}
	if !strings.Contains(got, "Anything else") {
		t.Errorf("missing follow-up line in:\n%s", got)
	}
}

func TestSummarize_LegacyPlaceKeys(t *testing.T) {
	records := []entity.ClaimRecord{
		{Doc: map[string]any{"invoice_date": "2025-01-10", "hospital": "City Hospital"}},
		{Doc: map[string]any{"invoice_date": "2025-01-11", "pharmacy": "Corner Pharmacy"}},
		{Doc: map[string]any{"invoice_date": "2025-01-12", "provider": "New Clinic", "hospital": "Old Hospital"}},
	}

	got := Summarize(records)
	if !strings.Contains(got, "at City Hospital") {
		t.Errorf("legacy hospital key should render as the place:\n%s", got)
	}
	if !strings.Contains(got, "at Corner Pharmacy") {
		t.Errorf("legacy pharmacy key should render as the place:\n%s", got)
	}
	if !strings.Contains(got, "at New Clinic") || strings.Contains(got, "Old Hospital") {
		t.Errorf("canonical provider should win over legacy keys:\n%s", got)
	}
}

func TestBuildQuestionPrompt_GroundsClaimsJSON(t *testing.T) {
	records := []entity.ClaimRecord{
		{Doc: map[string]any{"invoice_date": "2025-01-15", "total_claim_amount": 1250.0}},
	}

	got := BuildQuestionPrompt("How much did I claim in January?", records)
	if !strings.Contains(got, "How much did I claim in January?") {
		t.Error("prompt should embed the question")
	}
	if !strings.Contains(got, "2025-01-15") {
		t.Error("prompt should embed the claims JSON")
	}
	if !strings.Contains(got, "Do NOT invent values") {
		t.Error("prompt should forbid inventing values")
	}
}
