// Package chat renders the conversational surface: templated claim summaries
// and grounded prompts for question answering over stored claims.
package chat

import (
	"strconv"
	"strings"

	"claims-assistant/internal/entity"
)

// FormatAmount renders a rupee amount with thousands separators, two
// decimals: 1250 → "₹1,250.00".
func FormatAmount(amt float64) string {
	s := strconv.FormatFloat(amt, 'f', 2, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "₹" + b.String() + "." + fracPart
}

// amountDisplay handles documents whose amount is missing or non-numeric.
func amountDisplay(doc map[string]any) string {
	if amt, ok := doc["total_claim_amount"].(float64); ok {
		return FormatAmount(amt)
	}
	return "₹N/A"
}

// placeDisplay reads the canonical provider field, falling back to the
// legacy hospital/pharmacy keys older stored documents still carry.
func placeDisplay(doc map[string]any) string {
	for _, key := range []string{"provider", "hospital", "pharmacy"} {
		if place, ok := doc[key].(string); ok && place != "" {
			return place
		}
	}
	return "Unknown place"
}

// Summarize renders a user's claims as a short Markdown summary.
func Summarize(records []entity.ClaimRecord) string {
	if len(records) == 0 {
		return "I couldn't find any claims for you."
	}

	lines := []string{"Here's what I found about your claims:"}
	for _, rec := range records {
		date, _ := rec.Doc["invoice_date"].(string)
		if date == "" {
			date = "Unknown date"
		}
		lines = append(lines, "- **"+date+"** — "+amountDisplay(rec.Doc)+" at "+placeDisplay(rec.Doc))
	}
	lines = append(lines, "", "Anything else you'd like to check?")
	return strings.Join(lines, "\n")
}
